package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "http://localhost:8000/api/v1", cfg.ServerURL)
	assert.NotEmpty(t, cfg.StateDir)
	assert.Equal(t, 30*time.Second, cfg.Timeout())
	assert.Equal(t, time.Minute, cfg.RefreshInterval())
}

func TestLoadFromFileMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server_url: https://dash.example.com/api\ntimeout_seconds: 5\n"), 0600))

	cfg := DefaultConfig()
	require.NoError(t, loadFromFile(cfg, path))

	assert.Equal(t, "https://dash.example.com/api", cfg.ServerURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout())
	// Keys absent from the file keep their defaults.
	assert.Equal(t, time.Minute, cfg.RefreshInterval())
	assert.NotEmpty(t, cfg.StateDir)
}

func TestLoadFromFileRejectsBadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server_url: [unclosed"), 0600))

	assert.Error(t, loadFromFile(DefaultConfig(), path))
}

func TestTimeoutFloorsNonPositiveValues(t *testing.T) {
	cfg := &Config{TimeoutSeconds: -1}
	assert.Equal(t, 30*time.Second, cfg.Timeout())

	cfg = &Config{RefreshIntervalSeconds: 0}
	assert.Equal(t, time.Minute, cfg.RefreshInterval())
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "data"), expandTilde("~/data"))
	assert.Equal(t, "/var/lib/lucent", expandTilde("/var/lib/lucent"))
	assert.Equal(t, "", expandTilde(""))
}
