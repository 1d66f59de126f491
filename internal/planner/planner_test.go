package planner

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPlanner(source Source) *Planner {
	p := New(source, slog.New(slog.NewTextHandler(io.Discard, nil)), DefaultOptions())
	p.now = func() time.Time { return time.Date(2025, 3, 14, 8, 0, 0, 0, time.UTC) }
	return p
}

func sourceFrom(tt Timetable) *fakeSource {
	return &fakeSource{lines: tt.Lines, events: tt.StopEvents}
}

func TestPlanTransferExample(t *testing.T) {
	p := newTestPlanner(sourceFrom(twoLineTimetable(t)))

	result, err := p.Plan(context.Background(), Request{Departure: "A", Arrival: "C"})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Count)
	require.Len(t, result.Itineraries, 1)
	it := result.Itineraries[0]
	assert.Equal(t, 1, it.Transfers)
	assert.Equal(t, 40, it.TotalMinutes)
	assert.Equal(t, "B", it.Segments[0].To)
	assert.Equal(t, "B", it.Segments[1].From)
	assert.Equal(t, time.Date(2025, 3, 14, 8, 0, 0, 0, time.UTC), result.Timestamp)
}

func TestPlanInvalidRequest(t *testing.T) {
	tests := []struct {
		name string
		req  Request
	}{
		{"missing departure", Request{Arrival: "C"}},
		{"blank departure", Request{Departure: "  ", Arrival: "C"}},
		{"missing arrival", Request{Departure: "A"}},
		{"bad departure time", Request{Departure: "A", Arrival: "C", DepartureTime: "8h00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := sourceFrom(twoLineTimetable(t))
			p := newTestPlanner(source)

			result, err := p.Plan(context.Background(), tt.req)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, ErrInvalidRequest)
			assert.Zero(t, source.listCalls, "source must not be called")
			assert.Zero(t, source.eventCalls, "source must not be called")
		})
	}
}

func TestPlanSourceUnavailable(t *testing.T) {
	source := &fakeSource{linesErr: errBoom}
	p := newTestPlanner(source)

	result, err := p.Plan(context.Background(), Request{Departure: "A", Arrival: "C"})
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrSourceUnavailable)
	assert.ErrorIs(t, err, errBoom)
}

func TestPlanPerLineFailureDegrades(t *testing.T) {
	tt := twoLineTimetable(t)
	tt.Lines = append(tt.Lines, Line{ID: "l3", Number: "3", TransportMode: "bus"})
	tt.StopEvents["l3"] = []StopEvent{event(t, "l3", "A", "C", "08:00", "08:20")}

	source := sourceFrom(tt)
	source.lineErrors = map[string]error{"l3": errBoom}
	p := newTestPlanner(source)

	result, err := p.Plan(context.Background(), Request{Departure: "A", Arrival: "C"})
	require.NoError(t, err)
	require.Equal(t, 1, result.Count)
	assert.Equal(t, 1, result.Itineraries[0].Transfers, "the direct line failed to load")
	assert.Equal(t, 3, source.eventCalls)
}

func TestPlanNoConnection(t *testing.T) {
	p := newTestPlanner(sourceFrom(twoLineTimetable(t)))

	result, err := p.Plan(context.Background(), Request{Departure: "A", Arrival: "Nowhere"})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Count)
	assert.NotNil(t, result.Itineraries)
	assert.Empty(t, result.Itineraries)

	body, err := json.Marshal(result)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"itineraires":[]`)
	assert.Contains(t, string(body), `"nombre_itineraires":0`)
}

func TestPlanDirectAlwaysFound(t *testing.T) {
	tt := twoLineTimetable(t)
	tt.StopEvents["l1"] = append(tt.StopEvents["l1"], event(t, "l1", "A", "C", "08:00", "09:30"))

	p := newTestPlanner(sourceFrom(tt))
	result, err := p.Plan(context.Background(), Request{Departure: "A", Arrival: "C"})
	require.NoError(t, err)

	var direct int
	for _, it := range result.Itineraries {
		if it.Transfers == 0 {
			direct++
		}
	}
	assert.GreaterOrEqual(t, direct, 1)
	// The 40-minute transfer beats the 90-minute direct ride.
	assert.Equal(t, 1, result.Itineraries[0].Transfers)
}

func TestPlanResultProperties(t *testing.T) {
	lines := []Line{
		{ID: "l1", Number: "1", TransportMode: "bus"},
		{ID: "l2", Number: "2", TransportMode: "metro"},
		{ID: "l3", Number: "3", TransportMode: "tramway"},
	}
	events := map[string][]StopEvent{
		"l1": {
			event(t, "l1", "A", "B", "07:00", "07:12"),
			event(t, "l1", "A", "B", "07:30", "07:42"),
			event(t, "l1", "A", "C", "07:10", "07:55"),
			event(t, "l1", "B", "D", "07:20", "07:35"),
		},
		"l2": {
			event(t, "l2", "B", "C", "07:20", "07:40"),
			event(t, "l2", "B", "C", "07:50", "08:10"),
			event(t, "l2", "D", "C", "07:40", "07:48"),
		},
		"l3": {
			event(t, "l3", "A", "D", "06:55", "07:25"),
			event(t, "l3", "D", "C", "07:35", "07:50"),
			event(t, "l3", "B", "C", "07:00", "07:30"),
		},
	}

	p := newTestPlanner(sourceFrom(Timetable{Lines: lines, StopEvents: events}))
	result, err := p.Plan(context.Background(), Request{Departure: "A", Arrival: "C", DepartureTime: "06:50"})
	require.NoError(t, err)

	require.NotEmpty(t, result.Itineraries)
	assert.LessOrEqual(t, result.Count, DefaultMaxResults)
	assert.Equal(t, len(result.Itineraries), result.Count)

	for i, it := range result.Itineraries {
		if i > 0 {
			assert.LessOrEqual(t, result.Itineraries[i-1].TotalMinutes, it.TotalMinutes)
		}
		switch it.Transfers {
		case 0:
			require.Len(t, it.Segments, 1)
			assert.Equal(t, it.Segments[0].DurationMinutes, it.TotalMinutes)
		case 1:
			require.Len(t, it.Segments, 2)
			wait := Minutes(it.DepartureTime.Add(it.Segments[0].DurationMinutes), it.ArrivalTime.Add(-it.Segments[1].DurationMinutes))
			assert.Equal(t, segmentSum(it)+wait, it.TotalMinutes)
			assert.GreaterOrEqual(t, wait, DefaultTransferBuffer)
		default:
			t.Fatalf("unexpected transfer count %d", it.Transfers)
		}
	}
}

func TestPlanCancelledContext(t *testing.T) {
	p := newTestPlanner(sourceFrom(twoLineTimetable(t)))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Plan(ctx, Request{Departure: "A", Arrival: "C"})
	assert.ErrorIs(t, err, ErrSourceUnavailable)
	assert.ErrorIs(t, err, context.Canceled)
}

// tightTransfer arrives at B 08:15 and leaves B at 08:16.
func tightTransfer(t *testing.T) Timetable {
	return Timetable{
		Lines: []Line{
			{ID: "l1", Number: "1", TransportMode: "bus"},
			{ID: "l2", Number: "2", TransportMode: "bus"},
		},
		StopEvents: map[string][]StopEvent{
			"l1": {event(t, "l1", "A", "B", "08:00", "08:15")},
			"l2": {event(t, "l2", "B", "C", "08:16", "08:30")},
		},
	}
}

func TestZeroOptionsKeepTransferBuffer(t *testing.T) {
	p := New(sourceFrom(tightTransfer(t)), nil, Options{})
	assert.Equal(t, DefaultTransferBuffer, p.options.TransferBuffer)
	assert.Equal(t, DefaultMaxResults, p.options.MaxResults)
	assert.Equal(t, DefaultFetchConcurrency, p.options.FetchConcurrency)

	result, err := p.Plan(context.Background(), Request{Departure: "A", Arrival: "C"})
	require.NoError(t, err)
	assert.Empty(t, result.Itineraries, "a one-minute connection is below the buffer")
}

func TestNoTransferBuffer(t *testing.T) {
	p := New(sourceFrom(tightTransfer(t)), nil, Options{TransferBuffer: NoTransferBuffer})
	assert.Equal(t, 0, p.options.TransferBuffer)

	result, err := p.Plan(context.Background(), Request{Departure: "A", Arrival: "C"})
	require.NoError(t, err)
	require.Len(t, result.Itineraries, 1)
	assert.Equal(t, 30, result.Itineraries[0].TotalMinutes)
}
