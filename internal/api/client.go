// Package api is the remote data gateway: thin typed wrappers over the
// Lucent backend's REST endpoints. Each operation issues exactly one
// request and reports failure as a single normalized error with a fixed
// per-operation message. The gateway never touches the shared store;
// that is the action layer's job.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

// Client talks to the Lucent backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying transport, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger attaches a structured logger for request outcomes.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// NewClient creates a gateway client for the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchInsights retrieves insights for the given date range. Zero times
// omit the corresponding query parameter.
func (c *Client) FetchInsights(ctx context.Context, start, end time.Time) ([]Insight, error) {
	const op = "fetchInsights"

	q := url.Values{}
	if !start.IsZero() {
		q.Set("startDate", start.Format(time.RFC3339))
	}
	if !end.IsZero() {
		q.Set("endDate", end.Format(time.RFC3339))
	}

	body, err := c.do(ctx, op, MsgFetchInsights, http.MethodGet, "/insights", q, nil)
	if err != nil {
		return nil, err
	}

	var insights []Insight
	if err := json.Unmarshal(body, &insights); err != nil {
		return nil, c.fail(op, KindDecode, MsgFetchInsights, err)
	}
	return insights, nil
}

// UpdateSettings sends a partial settings patch and returns the full
// settings document the server now holds.
func (c *Client) UpdateSettings(ctx context.Context, patch SettingsPatch) (Settings, error) {
	const op = "updateSettings"

	payload, err := json.Marshal(patch)
	if err != nil {
		return Settings{}, c.fail(op, KindDecode, MsgUpdateSettings, err)
	}

	body, err := c.do(ctx, op, MsgUpdateSettings, http.MethodPatch, "/settings", nil, payload)
	if err != nil {
		return Settings{}, err
	}

	var settings Settings
	if err := json.Unmarshal(body, &settings); err != nil {
		return Settings{}, c.fail(op, KindDecode, MsgUpdateSettings, err)
	}
	if settings.Integrations == nil {
		settings.Integrations = map[string]bool{}
	}
	return settings, nil
}

// GenerateReport asks the backend to build a report for one insight.
func (c *Client) GenerateReport(ctx context.Context, insightID string) (Report, error) {
	const op = "generateReport"

	path := "/insights/" + url.PathEscape(insightID) + "/report"
	body, err := c.do(ctx, op, MsgGenerateReport, http.MethodPost, path, nil, nil)
	if err != nil {
		return Report{}, err
	}

	var report Report
	if err := json.Unmarshal(body, &report); err != nil {
		return Report{}, c.fail(op, KindDecode, MsgGenerateReport, err)
	}
	if report.InsightID == "" {
		report.InsightID = insightID
	}
	return report, nil
}

// ExportData downloads the raw export payload for the given format and
// date range. The payload is opaque; the caller writes it out as-is.
func (c *Client) ExportData(ctx context.Context, format ExportFormat, start, end time.Time) ([]byte, error) {
	const op = "exportData"

	q := url.Values{}
	q.Set("format", string(format))
	if !start.IsZero() {
		q.Set("start", start.Format(time.RFC3339))
	}
	if !end.IsZero() {
		q.Set("end", end.Format(time.RFC3339))
	}

	return c.do(ctx, op, MsgExportData, http.MethodGet, "/export", q, nil)
}

// do issues one request and returns the response body, normalizing every
// failure mode into an *Error carrying msg.
func (c *Client) do(ctx context.Context, op, msg, method, path string, q url.Values, payload []byte) ([]byte, error) {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, c.fail(op, KindNetwork, msg, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.fail(op, KindNetwork, msg, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.fail(op, KindNetwork, msg, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		cause := fmt.Errorf("status %d: %s", resp.StatusCode, truncate(body, 200))
		return nil, c.fail(op, KindServer, msg, cause)
	}

	c.log.Debug().Str("op", op).Int("status", resp.StatusCode).Int("bytes", len(body)).Msg("gateway request")
	return body, nil
}

func (c *Client) fail(op string, kind ErrorKind, msg string, cause error) *Error {
	c.log.Warn().Str("op", op).Str("kind", string(kind)).Err(cause).Msg("gateway request failed")
	return newError(op, kind, msg, cause)
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
