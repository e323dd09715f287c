package config

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsMatchDefault(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadReadsPrefixedVariables(t *testing.T) {
	t.Setenv("RFM_SEARCH_DEBOUNCE", "1s")
	t.Setenv("RFM_SEARCH_EXCLUDE", ".git,node_modules")
	t.Setenv("RFM_SEARCH_WORKERS", "3")
	t.Setenv("RFM_LOG_LEVEL", "debug")
	t.Setenv("RFM_LOG_FILE", "/tmp/custom.log")
	t.Setenv("RFM_WATCH_ENABLED", "false")
	t.Setenv("RFM_WATCH_COALESCE", "50ms")
	t.Setenv("RFM_UI_THEME", "dark")
	t.Setenv("RFM_UI_TERMINAL", "alacritty")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, time.Second, cfg.Search.Debounce)
	assert.Equal(t, []string{".git", "node_modules"}, cfg.Search.Exclude)
	assert.Equal(t, 3, cfg.Search.Workers)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/tmp/custom.log", cfg.Logging.File)
	assert.False(t, cfg.Watch.Enabled)
	assert.Equal(t, 50*time.Millisecond, cfg.Watch.Coalesce)
	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.Equal(t, "alacritty", cfg.UI.Terminal)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("RFM_SEARCH_DEBOUNCE", "soon")
	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsUnknownTheme(t *testing.T) {
	t.Setenv("RFM_UI_THEME", "solarized")
	_, err := Load()
	require.Error(t, err)
}

func TestLoadOrDefaultFallsBack(t *testing.T) {
	t.Setenv("RFM_SEARCH_WORKERS", "-2")
	assert.Equal(t, Default(), LoadOrDefault())
}

func TestUsageListsVariables(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Usage(&buf))
	out := buf.String()
	assert.Contains(t, out, "RFM_SEARCH_DEBOUNCE")
	assert.Contains(t, out, "RFM_LOG_FILE")
	assert.Contains(t, out, "RFM_UI_TERMINAL")
}
