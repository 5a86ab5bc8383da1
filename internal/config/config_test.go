package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromDefaults(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("APP_ENV", "")
	c, err := LoadFrom("")
	require.NoError(t, err)
	assert.Equal(t, BackendFile, c.StorageBackend)
	assert.Equal(t, time.Minute, c.ReminderPoll)
	assert.Equal(t, ":8088", c.HTTPAddr)
}

func TestLoadFromYAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "healthcoach.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
storage_backend: sqlite
sqlite_path: /tmp/coach.db
reminder_poll: 30s
log_level: debug
`), 0o644))

	t.Setenv("LOG_LEVEL", "warn")
	c, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, c.StorageBackend)
	assert.Equal(t, "/tmp/coach.db", c.SQLitePath)
	assert.Equal(t, 30*time.Second, c.ReminderPoll)
	assert.Equal(t, "warn", c.LogLevel)
}

func TestValidate(t *testing.T) {
	c := Defaults()
	c.StorageBackend = BackendPostgres
	assert.Error(t, c.Validate())

	c.PostgresDSN = "postgres://localhost/coach"
	assert.NoError(t, c.Validate())

	c.Env = "moon"
	assert.Error(t, c.Validate())

	c = Defaults()
	c.StorageBackend = "csv"
	assert.Error(t, c.Validate())
}

func TestBadPollInterval(t *testing.T) {
	t.Setenv("REMINDER_POLL", "soon")
	_, err := LoadFrom("")
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("# comment\nHEALTHCOACH_TEST_KEY = value\nbroken line\n"), 0o644))
	t.Setenv("HEALTHCOACH_TEST_KEY", "")

	require.NoError(t, loadDotEnv(path))
	assert.Equal(t, "value", os.Getenv("HEALTHCOACH_TEST_KEY"))
	assert.NoError(t, loadDotEnv(filepath.Join(t.TempDir(), "missing")))
}
