// Package storage persists the durable subset of client state.
//
// Architecture:
//   - SQLite database for the namespaced state record and report history
//   - Everything else (insights, notifications, flags) is ephemeral and
//     lives only in the state store
//
// ~/.local/share/lucent/
// └── lucent.db
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/lucent-dev/lucent/internal/api"
)

// Namespace keys all durable client state. A fixed value so that every
// Lucent process reads the same record.
const Namespace = "lucent"

const settingsKey = "settings"

// Store handles persistence of client state.
type Store struct {
	db *sql.DB
}

// Open creates the storage directory if needed and opens the database.
func Open(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	dbPath := filepath.Join(baseDir, "lucent.db")
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS client_state (
		namespace TEXT NOT NULL,
		key TEXT NOT NULL,
		value JSON NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (namespace, key)
	);

	CREATE TABLE IF NOT EXISTS reports (
		id TEXT PRIMARY KEY,
		insight_id TEXT NOT NULL,
		generated_at DATETIME NOT NULL,
		body JSON,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_reports_insight ON reports(insight_id);
	CREATE INDEX IF NOT EXISTS idx_reports_generated ON reports(generated_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveSettings writes the settings record. Called on every settings
// mutation, so the write stays a single upsert.
func (s *Store) SaveSettings(settings api.Settings) error {
	value, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to serialize settings: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO client_state (namespace, key, value, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(namespace, key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, Namespace, settingsKey, string(value))
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// LoadSettings reads the persisted settings record. The second return
// value is false when no record exists or the stored value cannot be
// decoded; callers fall back to defaults in both cases.
func (s *Store) LoadSettings() (api.Settings, bool, error) {
	var value string
	err := s.db.QueryRow(`
		SELECT value FROM client_state WHERE namespace = ? AND key = ?
	`, Namespace, settingsKey).Scan(&value)
	if err == sql.ErrNoRows {
		return api.Settings{}, false, nil
	}
	if err != nil {
		return api.Settings{}, false, err
	}

	var settings api.Settings
	if err := json.Unmarshal([]byte(value), &settings); err != nil {
		// Corrupted record: treat as absent rather than failing startup.
		return api.Settings{}, false, nil
	}
	if settings.Integrations == nil {
		settings.Integrations = map[string]bool{}
	}
	return settings, true, nil
}

// SaveReport stores a generated report in the local history.
func (s *Store) SaveReport(report api.Report) error {
	body, err := json.Marshal(report.Body)
	if err != nil {
		return fmt.Errorf("failed to serialize report body: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO reports (id, insight_id, generated_at, body)
		VALUES (?, ?, ?, ?)
	`, report.ID, report.InsightID, report.GeneratedAt, string(body))
	if err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}
	return nil
}

// RecentReports retrieves the most recently generated reports.
func (s *Store) RecentReports(limit int) ([]api.Report, error) {
	rows, err := s.db.Query(`
		SELECT id, insight_id, generated_at, body
		FROM reports
		ORDER BY generated_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanReports(rows)
}

// ReportsForInsight retrieves report history for one insight.
func (s *Store) ReportsForInsight(insightID string) ([]api.Report, error) {
	rows, err := s.db.Query(`
		SELECT id, insight_id, generated_at, body
		FROM reports
		WHERE insight_id = ?
		ORDER BY generated_at DESC
	`, insightID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanReports(rows)
}

func scanReports(rows *sql.Rows) ([]api.Report, error) {
	var reports []api.Report
	for rows.Next() {
		var r api.Report
		var body sql.NullString
		var generatedAt time.Time

		if err := rows.Scan(&r.ID, &r.InsightID, &generatedAt, &body); err != nil {
			return nil, err
		}
		r.GeneratedAt = generatedAt

		if body.Valid && body.String != "" {
			json.Unmarshal([]byte(body.String), &r.Body)
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}
