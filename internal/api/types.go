package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// Theme selects the dashboard color scheme.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Insight is a computed analytical result about the user's activity or
// finances. Insights are created server-side and are read-only on the
// client; a refetch replaces the whole set.
type Insight struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	Score       float64   `json:"score"` // confidence in [0, 1]
	Data        []Point   `json:"data,omitempty"`
}

// Point is a single time-series sample attached to an insight.
// Financial series carry exact amounts, hence decimal.
type Point struct {
	Timestamp time.Time       `json:"timestamp"`
	Value     decimal.Decimal `json:"value"`
}

// Settings holds the user's preferences and integration toggles.
// Integrations is open-ended: the backend may introduce new integration
// names without a client update.
type Settings struct {
	Theme          Theme           `json:"theme"`
	Notifications  bool            `json:"notifications"`
	DataCollection bool            `json:"dataCollection"`
	Integrations   map[string]bool `json:"integrations"`
}

// DefaultSettings returns the settings used before the first load and
// after a corrupted local state file.
func DefaultSettings() Settings {
	return Settings{
		Theme:          ThemeSystem,
		Notifications:  true,
		DataCollection: true,
		Integrations:   map[string]bool{},
	}
}

// Clone returns a copy that shares no mutable state with s.
func (s Settings) Clone() Settings {
	out := s
	out.Integrations = make(map[string]bool, len(s.Integrations))
	for k, v := range s.Integrations {
		out.Integrations[k] = v
	}
	return out
}

// SettingsPatch is a partial settings update. Keys are either top-level
// field names ("theme", "notifications", "dataCollection") or dotted
// integration paths ("integrations.github"). Unlisted keys are retained.
type SettingsPatch map[string]any

// Report is the server-generated report for a single insight. The body
// shape is backend-defined, so it stays a raw document.
type Report struct {
	ID          string         `json:"id"`
	InsightID   string         `json:"insight_id"`
	GeneratedAt time.Time      `json:"generated_at"`
	Body        map[string]any `json:"body"`
}

// ExportFormat selects the payload type for data export.
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportJSON ExportFormat = "json"
)
