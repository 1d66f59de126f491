package app

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transit.smartcity.org/internal/appconf"
	"transit.smartcity.org/internal/timetable"
	"transit.smartcity.org/timetabledb"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(appconf.LogConfig{Level: "debug", Format: "text"})
	require.NoError(t, err)
	assert.NotNil(t, logger)

	_, err = NewLogger(appconf.LogConfig{Level: "loud"})
	assert.Error(t, err)
}

func TestNewTimetableSourceREST(t *testing.T) {
	config := appconf.Default()
	config.Timetable.CacheTTL = 0

	source, cleanup, err := NewTimetableSource(context.Background(), config, testLogger())
	require.NoError(t, err)
	defer cleanup()

	assert.IsType(t, &timetable.RESTSource{}, source)
}

func TestNewTimetableSourceCached(t *testing.T) {
	config := appconf.Default()
	config.Timetable.CacheTTL = time.Minute

	source, cleanup, err := NewTimetableSource(context.Background(), config, testLogger())
	require.NoError(t, err)
	defer cleanup()

	assert.IsType(t, &timetable.CachedSource{}, source)
}

func TestNewTimetableSourceSQLite(t *testing.T) {
	config := appconf.Default()
	config.Env = appconf.Test
	config.Timetable.Source = appconf.SourceSQLite
	config.Timetable.DBPath = ":memory:"
	config.Timetable.CacheTTL = 0

	source, cleanup, err := NewTimetableSource(context.Background(), config, testLogger())
	require.NoError(t, err)
	defer cleanup()

	assert.IsType(t, &timetabledb.Client{}, source)
	lines, err := source.ListLines(context.Background())
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestNewTimetableSourceGTFSMissingFile(t *testing.T) {
	config := appconf.Default()
	config.Timetable.Source = appconf.SourceGTFS
	config.Timetable.GtfsURL = filepath.Join(t.TempDir(), "missing.zip")

	_, _, err := NewTimetableSource(context.Background(), config, testLogger())
	assert.Error(t, err)
}

func TestNewTimetableSourceUnknown(t *testing.T) {
	config := appconf.Default()
	config.Timetable.Source = "carrier-pigeon"

	_, _, err := NewTimetableSource(context.Background(), config, testLogger())
	assert.Error(t, err)
}

func TestNewApplication(t *testing.T) {
	config := appconf.Default()

	application, cleanup, err := New(context.Background(), config, testLogger())
	require.NoError(t, err)
	defer cleanup()

	assert.NotNil(t, application.Planner)
	assert.NotNil(t, application.Source)
	assert.Same(t, application.Source, application.Planner.Source())
}

func TestNewApplicationTransferBuffer(t *testing.T) {
	config := appconf.Default()

	application, cleanup, err := New(context.Background(), config, testLogger())
	require.NoError(t, err)
	defer cleanup()
	assert.Equal(t, 5, application.Planner.Options().TransferBuffer)

	config.Planner.TransferBufferMinutes = 0
	application, cleanup, err = New(context.Background(), config, testLogger())
	require.NoError(t, err)
	defer cleanup()
	assert.Equal(t, 0, application.Planner.Options().TransferBuffer, "zero in the config file means no buffer")
}
