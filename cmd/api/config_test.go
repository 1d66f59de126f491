package main

import (
	"os"
	"time"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transit.smartcity.org/internal/appconf"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"APP_ENV", "MOBILITY_SERVICE_URL", "PORT", "LOG_LEVEL", "LOG_FORMAT",
		"TIMETABLE_SOURCE", "GTFS_URL", "TIMETABLE_DB", "API_KEYS"} {
		t.Setenv(key, "")
	}
}

func TestParseConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := parseConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, appconf.SourceREST, cfg.Timetable.Source)
	assert.Empty(t, cfg.ApiKeys)
}

func TestParseConfigFlagsOverrideFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("port: 9000\napiKeys: [file-key]\n"), 0o600))

	cfg, err := parseConfig([]string{
		"-config", path,
		"-port", "9100",
		"-env", "production",
		"-api-keys", "a, b",
		"-source", "sqlite",
		"-db", "/var/lib/transit/timetable.db",
	})
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, appconf.Production, cfg.Env)
	assert.Equal(t, []string{"a", "b"}, cfg.ApiKeys)
	assert.Equal(t, appconf.SourceSQLite, cfg.Timetable.Source)
	assert.Equal(t, "/var/lib/transit/timetable.db", cfg.Timetable.DBPath)
}

func TestParseConfigFileValuesKeptWithoutFlags(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("port: 9000\n"), 0o600))

	cfg, err := parseConfig([]string{"-config", path})
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port, "flag defaults must not override the file")
}

func TestParseConfigRejectsInvalidSource(t *testing.T) {
	clearEnv(t)
	_, err := parseConfig([]string{"-source", "gtfs"})
	assert.Error(t, err, "gtfs needs a feed URL")
}

func TestWriteTimeoutCoversRetries(t *testing.T) {
	assert.Equal(t, 102*time.Second, writeTimeout(appconf.Default().Timetable))

	noRetries := appconf.TimetableConfig{Timeout: 5 * time.Second, RetryDelay: time.Second}
	assert.Equal(t, 20*time.Second, writeTimeout(noRetries))
}
