package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Load_Defaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := NewLoader(dir).Load()
	require.NoError(t, err)
	assert.Equal(t, "Local", cfg.Timezone)
	assert.Equal(t, "json", cfg.Store.Backend)
	assert.Equal(t, filepath.Join(dir, "tasks.json"), cfg.Store.Path)
	assert.Equal(t, 60, cfg.Remind.CadenceSeconds)
	assert.Equal(t, 8, cfg.Remind.DigestHour)
	assert.Equal(t, "console", cfg.Notify.Backend)
	assert.Equal(t, "en", cfg.Notify.Language)
}

func TestLoader_Load_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	content := `
timezone = "Asia/Kolkata"

[remind]
cadence_seconds = 30
digest_hour = 7

[notify]
backend = "webhook"
webhook_url = "https://hooks.example.com/taskping"
language = "fr"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644))

	cfg, err := NewLoader(dir).Load()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Kolkata", cfg.Timezone)
	assert.Equal(t, 30, cfg.Remind.CadenceSeconds)
	assert.Equal(t, 7, cfg.Remind.DigestHour)
	assert.Equal(t, "webhook", cfg.Notify.Backend)
	assert.Equal(t, "fr", cfg.Notify.Language)
	// Untouched keys keep their defaults.
	assert.Equal(t, "json", cfg.Store.Backend)
	assert.Equal(t, 0, cfg.Remind.DigestMinute)
}

func TestLoader_Load_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("timezone = \"Asia/Kolkata\"\n"), 0o644))
	t.Setenv("TASKPING_TIMEZONE", "Europe/Berlin")
	t.Setenv("TASKPING_CADENCE_SECONDS", "15")

	cfg, err := NewLoader(dir).Load()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", cfg.Timezone)
	assert.Equal(t, 15, cfg.Remind.CadenceSeconds)
}

func TestLoader_Load_InvalidBackend(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[store]\nbackend = \"redis\"\n"), 0o644))

	_, err := NewLoader(dir).Load()
	assert.ErrorContains(t, err, "unknown store backend")
}

func TestLoader_Load_SQLBackendRequiresDSN(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[store]\nbackend = \"sql\"\n"), 0o644))

	_, err := NewLoader(dir).Load()
	assert.ErrorContains(t, err, "requires a dsn")
}

func TestLoader_Load_MalformedTOML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("timezone = [broken"), 0o644))

	_, err := NewLoader(dir).Load()
	assert.Error(t, err)
}
