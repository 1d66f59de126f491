package planner

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeSource is an in-memory Source that records the calls it receives.
type fakeSource struct {
	lines      []Line
	events     map[string][]StopEvent
	linesErr   error
	lineErrors map[string]error

	mu         sync.Mutex
	listCalls  int
	eventCalls int
}

func (f *fakeSource) ListLines(ctx context.Context) ([]Line, error) {
	f.mu.Lock()
	f.listCalls++
	f.mu.Unlock()
	if f.linesErr != nil {
		return nil, f.linesErr
	}
	return f.lines, nil
}

func (f *fakeSource) ListStopEvents(ctx context.Context, line Line) ([]StopEvent, error) {
	f.mu.Lock()
	f.eventCalls++
	f.mu.Unlock()
	if err := f.lineErrors[line.ID]; err != nil {
		return nil, err
	}
	return f.events[line.ID], nil
}

var errBoom = errors.New("boom")

func clock(t *testing.T, s string) Clock {
	t.Helper()
	c, err := ParseClock(s)
	require.NoError(t, err)
	return c
}

func event(t *testing.T, lineID, station, destination, dep, arr string) StopEvent {
	t.Helper()
	return StopEvent{
		LineID:      lineID,
		Station:     station,
		Destination: destination,
		Departure:   clock(t, dep),
		Arrival:     clock(t, arr),
	}
}

// twoLineTimetable is line 1 A->B 08:00-08:15 and line 2 B->C 08:25-08:40.
func twoLineTimetable(t *testing.T) Timetable {
	return Timetable{
		Lines: []Line{
			{ID: "l1", Number: "1", TransportMode: "bus", Active: true},
			{ID: "l2", Number: "2", TransportMode: "metro", Active: true},
		},
		StopEvents: map[string][]StopEvent{
			"l1": {event(t, "l1", "A", "B", "08:00", "08:15")},
			"l2": {event(t, "l2", "B", "C", "08:25", "08:40")},
		},
	}
}

func segmentSum(it Itinerary) int {
	total := 0
	for _, s := range it.Segments {
		total += s.DurationMinutes
	}
	return total
}
