// Package actions wires the remote data gateway to the state store.
// Each action runs one gateway operation through the shared
// loading/error machine: pending sets loading, success applies the
// result and clears the error, failure sets the fixed operation message.
//
// Actions are deliberately uncoordinated: there is no request
// sequencing, no cancellation token and no client-side timeout. When
// two invocations of the same operation overlap, completions apply in
// completion order and the last completion wins, even when that is the
// request issued first.
package actions

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/lucent-dev/lucent/internal/api"
	"github.com/lucent-dev/lucent/internal/state"
)

// Gateway is the remote operation surface the actions need. *api.Client
// satisfies it; tests substitute their own.
type Gateway interface {
	FetchInsights(ctx context.Context, start, end time.Time) ([]api.Insight, error)
	UpdateSettings(ctx context.Context, patch api.SettingsPatch) (api.Settings, error)
	GenerateReport(ctx context.Context, insightID string) (api.Report, error)
	ExportData(ctx context.Context, format api.ExportFormat, start, end time.Time) ([]byte, error)
}

// ReportStore persists generated reports locally. Optional.
type ReportStore interface {
	SaveReport(api.Report) error
}

// Notifier delivers a notification outside the dashboard, e.g. to the
// desktop. Optional; consulted only when settings.Notifications is on.
type Notifier interface {
	Send(title, body string)
}

// Actions bundles the gateway, the store and the optional sinks.
type Actions struct {
	store    *state.Store
	gateway  Gateway
	reports  ReportStore
	notifier Notifier
	log      zerolog.Logger
}

// Option configures Actions.
type Option func(*Actions)

// WithReportStore persists generated reports to local history.
func WithReportStore(rs ReportStore) Option {
	return func(a *Actions) { a.reports = rs }
}

// WithNotifier enables out-of-band notification delivery.
func WithNotifier(n Notifier) Option {
	return func(a *Actions) { a.notifier = n }
}

// WithLogger attaches a structured logger.
func WithLogger(log zerolog.Logger) Option {
	return func(a *Actions) { a.log = log }
}

// New creates the action layer.
func New(store *state.Store, gateway Gateway, opts ...Option) *Actions {
	a := &Actions{
		store:   store,
		gateway: gateway,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// FetchInsights loads insights for the date range and replaces the
// store's insight list on success.
func (a *Actions) FetchInsights(ctx context.Context, start, end time.Time) error {
	a.store.SetLoading(true)

	insights, err := a.gateway.FetchInsights(ctx, start, end)
	if err != nil {
		a.fail("fetchInsights", err)
		return err
	}

	a.store.SetInsights(insights)
	a.succeed("fetchInsights")
	return nil
}

// SaveSettings sends a partial patch to the backend and installs the
// server's full settings response, which also persists it locally.
func (a *Actions) SaveSettings(ctx context.Context, patch api.SettingsPatch) error {
	a.store.SetLoading(true)

	settings, err := a.gateway.UpdateSettings(ctx, patch)
	if err != nil {
		a.fail("updateSettings", err)
		return err
	}

	a.store.ReplaceSettings(settings)
	a.succeed("updateSettings")
	a.notify(state.NotifySuccess, "Settings saved")
	return nil
}

// GenerateReport requests a report for one insight, records it in local
// history when a report store is attached, and returns it.
func (a *Actions) GenerateReport(ctx context.Context, insightID string) (api.Report, error) {
	a.store.SetLoading(true)

	report, err := a.gateway.GenerateReport(ctx, insightID)
	if err != nil {
		a.fail("generateReport", err)
		return api.Report{}, err
	}

	if a.reports != nil {
		if err := a.reports.SaveReport(report); err != nil {
			a.log.Warn().Err(err).Str("insight", insightID).Msg("failed to record report history")
		}
	}

	a.succeed("generateReport")
	a.notify(state.NotifySuccess, "Report ready for insight "+insightID)
	return report, nil
}

// ExportData downloads an export payload and writes it to path.
func (a *Actions) ExportData(ctx context.Context, format api.ExportFormat, start, end time.Time, path string) error {
	a.store.SetLoading(true)

	payload, err := a.gateway.ExportData(ctx, format, start, end)
	if err != nil {
		a.fail("exportData", err)
		return err
	}

	if err := os.WriteFile(path, payload, 0600); err != nil {
		a.store.SetLoading(false)
		a.store.SetError(api.MsgExportData)
		a.log.Warn().Err(err).Str("path", path).Msg("export write failed")
		return err
	}

	a.succeed("exportData")
	a.notify(state.NotifySuccess, "Export written to "+path)
	return nil
}

// DismissNotification removes a notification from the tray.
func (a *Actions) DismissNotification(id string) {
	a.store.RemoveNotification(id)
}

func (a *Actions) succeed(op string) {
	a.store.SetLoading(false)
	a.store.SetError("")
	a.log.Debug().Str("op", op).Msg("action complete")
}

func (a *Actions) fail(op string, err error) {
	a.store.SetLoading(false)
	a.store.SetError(err.Error())
	a.log.Warn().Str("op", op).Err(err).Msg("action failed")
}

// notify appends to the store tray and, when enabled in settings,
// forwards to the out-of-band notifier.
func (a *Actions) notify(kind state.NotificationType, message string) {
	n := state.NewNotification(kind, message)
	a.store.AddNotification(n)

	if a.notifier != nil && a.store.Snapshot().Settings.Notifications {
		a.notifier.Send("Lucent", message)
	}
}
