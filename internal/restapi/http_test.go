package restapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"transit.smartcity.org/internal/app"
	"transit.smartcity.org/internal/appconf"
	"transit.smartcity.org/internal/planner"
)

// memorySource is an in-memory timetable source.
type memorySource struct {
	mu       sync.Mutex
	tt       planner.Timetable
	linesErr error
	calls    int
}

func (m *memorySource) ListLines(ctx context.Context) ([]planner.Line, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.linesErr != nil {
		return nil, m.linesErr
	}
	return m.tt.Lines, nil
}

func (m *memorySource) ListStopEvents(ctx context.Context, line planner.Line) ([]planner.StopEvent, error) {
	return m.tt.EventsFor(line.ID), nil
}

func mustClock(t *testing.T, s string) planner.Clock {
	t.Helper()
	c, err := planner.ParseClock(s)
	require.NoError(t, err)
	return c
}

// sampleTimetable is line 1 Gare->Hotel de Ville->Port and line 2
// Hotel de Ville->Stade.
func sampleTimetable(t *testing.T) planner.Timetable {
	return planner.Timetable{
		Lines: []planner.Line{
			{ID: "1", Number: "L1", Name: "Ligne 1", TransportMode: "bus", Active: true},
			{ID: "2", Number: "M2", Name: "Metro 2", TransportMode: "metro", Active: true},
		},
		StopEvents: map[string][]planner.StopEvent{
			"1": {
				{LineID: "1", Station: "Gare", Destination: "Hotel de Ville", Departure: mustClock(t, "08:00"), Arrival: mustClock(t, "08:10")},
				{LineID: "1", Station: "Hotel de Ville", Destination: "Port", Departure: mustClock(t, "08:12"), Arrival: mustClock(t, "08:30")},
			},
			"2": {
				{LineID: "2", Station: "Hotel de Ville", Destination: "Stade", Departure: mustClock(t, "08:20"), Arrival: mustClock(t, "08:35")},
			},
		},
	}
}

func createTestApiWithSource(t *testing.T, source planner.Source, config appconf.Config) *RestAPI {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	application := &app.Application{
		Config:  config,
		Logger:  logger,
		Source:  source,
		Planner: planner.New(source, logger, planner.DefaultOptions()),
	}

	api := NewRestAPI(application)
	t.Cleanup(api.Shutdown)
	return api
}

func createTestApi(t *testing.T) (*RestAPI, *memorySource) {
	t.Helper()
	source := &memorySource{tt: sampleTimetable(t)}
	config := appconf.Config{
		Env:       appconf.EnvFlagToEnvironment("test"),
		ApiKeys:   []string{"TEST"},
		RateLimit: 100,
	}
	return createTestApiWithSource(t, source, config), source
}

func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string) (*http.Response, map[string]interface{}) {
	t.Helper()
	server := httptest.NewServer(api.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer resp.Body.Close() // nolint

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var model map[string]interface{}
	if len(body) > 0 && body[0] == '{' {
		require.NoError(t, json.Unmarshal(body, &model), string(body))
	}
	return resp, model
}
