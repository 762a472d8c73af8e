// Package main is the Lucent terminal client.
//
// Usage:
//
//	lucent                  - Open the interactive dashboard
//	lucent insights         - Print recent insights
//	lucent settings get     - Print current settings
//	lucent settings set k=v - Patch settings
//	lucent report <id>      - Generate a report for an insight
//	lucent export           - Download an export payload
package main

import (
	"fmt"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lucent-dev/lucent/internal/actions"
	"github.com/lucent-dev/lucent/internal/api"
	"github.com/lucent-dev/lucent/internal/config"
	"github.com/lucent-dev/lucent/internal/dashboard"
	"github.com/lucent-dev/lucent/internal/notify"
	"github.com/lucent-dev/lucent/internal/state"
	"github.com/lucent-dev/lucent/internal/storage"
)

var version = "dev"

// app bundles everything a command needs: config, logger, durable
// storage, the shared store and the action layer on top of the gateway.
type app struct {
	cfg   *config.Config
	log   zerolog.Logger
	db    *storage.Store
	store *state.Store
	acts  *actions.Actions

	logFile *os.File
}

// newApp wires the client together. The store loads persisted settings
// during construction; everything else starts empty.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := zerolog.Nop()
	var logFile *os.File
	if cfg.LogFile != "" {
		if f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600); err == nil {
			logFile = f
			level := zerolog.InfoLevel
			if cfg.Debug {
				level = zerolog.DebugLevel
			}
			log = zerolog.New(f).Level(level).With().Timestamp().Logger()
		}
	}

	db, err := storage.Open(cfg.StateDir)
	if err != nil {
		if logFile != nil {
			logFile.Close()
		}
		return nil, fmt.Errorf("failed to open local state: %w", err)
	}

	store := state.New(
		state.WithPersister(db),
		state.WithInspector(state.NewLogInspector(log)),
	)

	client := api.NewClient(cfg.ServerURL,
		api.WithHTTPClient(&http.Client{Timeout: cfg.Timeout()}),
		api.WithLogger(log),
	)

	acts := actions.New(store, client,
		actions.WithReportStore(db),
		actions.WithNotifier(notify.NewDesktopNotifier()),
		actions.WithLogger(log),
	)

	return &app{
		cfg:     cfg,
		log:     log,
		db:      db,
		store:   store,
		acts:    acts,
		logFile: logFile,
	}, nil
}

func (a *app) Close() {
	a.db.Close()
	if a.logFile != nil {
		a.logFile.Close()
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lucent",
		Short:         "Personal productivity and finance dashboard",
		Long:          "Lucent renders insights, notifications and settings from your analytics backend in an interactive terminal dashboard.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard()
		},
	}

	root.AddCommand(
		newInsightsCmd(),
		newSettingsCmd(),
		newReportCmd(),
		newExportCmd(),
	)
	return root
}

func runDashboard() error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	model := dashboard.New(a.store, a.acts, a.cfg.RefreshInterval())
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
