package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_missing_file_uses_defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultTokenEnv, cfg.Backend.TokenEnv)
	assert.Equal(t, 100, cfg.TUI.CompactWidth)
}

func TestLoad_parses_yaml(t *testing.T) {
	path := writeConfig(t, `
backend:
  url: https://api.example.com
  workspace: ws-42
cache:
  max_age: 5m
sources:
  ignore:
    - "slack/bot-*"
tui:
  compact_width: 80
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.Backend.URL)
	assert.Equal(t, "ws-42", cfg.Backend.Workspace)
	assert.Equal(t, 5*time.Minute, cfg.Cache.MaxAge)
	assert.Equal(t, []string{"slack/bot-*"}, cfg.Sources.Ignore)
	assert.Equal(t, 80, cfg.TUI.CompactWidth)
}

func TestLoad_invalid_yaml(t *testing.T) {
	path := writeConfig(t, "backend: [not a map")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestBackend_Token_reads_env(t *testing.T) {
	t.Setenv("TRIAGE_TEST_TOKEN", "secret")
	b := Backend{TokenEnv: "TRIAGE_TEST_TOKEN"}
	assert.Equal(t, "secret", b.Token())
}

func TestValidate_accepts_defaults(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestValidate_rejects_bad_url(t *testing.T) {
	cfg := Default()
	cfg.Backend.URL = "ftp://example.com"
	assert.Error(t, cfg.Validate())

	cfg.Backend.URL = "https://"
	assert.Error(t, cfg.Validate())
}

func TestValidate_rejects_bad_glob(t *testing.T) {
	cfg := Default()
	cfg.Sources.Ignore = []string{"slack/[unclosed"}
	assert.Error(t, cfg.Validate())
}

func TestValidate_rejects_negative_max_age(t *testing.T) {
	cfg := Default()
	cfg.Cache.MaxAge = -time.Second
	assert.Error(t, cfg.Validate())
}
