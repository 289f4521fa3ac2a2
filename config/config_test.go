package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1500*time.Millisecond, cfg.Assistant.Delay())
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
server:
  addr: "127.0.0.1:9000"
  allowed_origins: ["http://localhost:5173"]
assistant:
  delay_ms: 0
log:
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, time.Duration(0), cfg.Assistant.Delay())
	assert.Equal(t, "debug", cfg.Log.Level)
	// untouched sections keep their defaults
	assert.Equal(t, 5.0, cfg.Server.RateLimit)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"negative delay": "assistant:\n  delay_ms: -1\n",
		"empty addr":     "server:\n  addr: \"\"\n",
		"no burst":       "server:\n  rate_limit: 2\n  rate_burst: 0\n",
		"metrics path":   "metrics:\n  enabled: true\n  path: \"\"\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, body))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "server: [unclosed"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)
}
