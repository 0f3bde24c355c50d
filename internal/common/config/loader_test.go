package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: https://dashboard.example.com
  timeout: 2500
  session_cookie_name: sid
genai:
  model: gemini-2.5-pro
  requests_per_minute: 30
logging:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://dashboard.example.com", cfg.API.BaseURL)
	assert.Equal(t, 2500*time.Millisecond, GetDuration(cfg.API.Timeout))
	assert.Equal(t, "sid", cfg.API.SessionCookieName)
	assert.Equal(t, "gemini-2.5-pro", cfg.GenAI.Model)
	assert.Equal(t, 30, cfg.GenAI.RequestsPerMinute)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "app:\n  name: test\n"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3001", cfg.API.BaseURL)
	assert.Equal(t, 0, cfg.API.Timeout)
	assert.Equal(t, "connect.sid", cfg.API.SessionCookieName)
	assert.Equal(t, "gemini-2.5-flash", cfg.GenAI.Model)
	assert.Equal(t, 30000, cfg.GenAI.Timeout)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "stderr", cfg.Logging.Output)
	assert.Equal(t, ":3001", cfg.DevServer.Addr)
	assert.Equal(t, "Demo Owner", cfg.DevServer.DemoUser.Name)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://127.0.0.1:9999")
	t.Setenv("GENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "gem-key")

	cfg, err := Load(writeConfig(t, "logging:\n  level: warn\n"))
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:9999", cfg.API.BaseURL)
	assert.Equal(t, "gem-key", cfg.GenAI.APIKey)
}

func TestLoad_ExpandsPlaceholders(t *testing.T) {
	t.Setenv("DASHBOARD_SESSION", "s%3Aabc")

	cfg, err := Load(writeConfig(t, "api:\n  session_cookie: ${DASHBOARD_SESSION}\n"))
	require.NoError(t, err)
	assert.Equal(t, "s%3Aabc", cfg.API.SessionCookie)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"relative base url", "api:\n  base_url: /api\n"},
		{"negative timeout", "api:\n  timeout: -1\n"},
		{"bad log format", "logging:\n  format: xml\n"},
		{"negative rate", "genai:\n  requests_per_minute: -5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
