package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentOptions(t *testing.T) {
	events := []StopEvent{
		event(t, "l1", "A", "B", "08:00", "08:10"),
		event(t, "l1", "B", "C", "08:10", "08:20"),
		event(t, "l1", "A", "B", "09:00", "09:10"),
		event(t, "l1", "B", "C", "09:10", "09:20"),
	}

	t.Run("pairs each departure with first reachable arrival event", func(t *testing.T) {
		opts := SegmentOptions("A", "C", events, nil)
		require.Len(t, opts, 2)
		assert.Equal(t, "08:00", opts[0].Departure.String())
		assert.Equal(t, "08:20", opts[0].Arrival.String())
		assert.Equal(t, "09:00", opts[1].Departure.String())
		assert.Equal(t, "09:20", opts[1].Arrival.String())
	})

	t.Run("floor drops earlier departures", func(t *testing.T) {
		floor := clock(t, "08:30")
		opts := SegmentOptions("A", "C", events, &floor)
		require.Len(t, opts, 1)
		assert.Equal(t, "09:00", opts[0].Departure.String())
	})

	t.Run("floor equal to departure is kept", func(t *testing.T) {
		floor := clock(t, "09:00")
		assert.Len(t, SegmentOptions("A", "C", events, &floor), 1)
	})

	t.Run("no arrival event leaves nothing", func(t *testing.T) {
		assert.Empty(t, SegmentOptions("A", "Z", events, nil))
	})

	t.Run("station names are normalized", func(t *testing.T) {
		assert.Len(t, SegmentOptions(" a ", "c", events, nil), 2)
	})
}

func TestSegmentOptionsListOrderTieBreak(t *testing.T) {
	// The later-arriving event comes first in the list and wins.
	events := []StopEvent{
		event(t, "l1", "A", "X", "08:00", "08:05"),
		event(t, "l1", "X", "B", "08:30", "09:00"),
		event(t, "l1", "Y", "B", "08:10", "08:20"),
	}

	opts := SegmentOptions("A", "B", events, nil)
	require.Len(t, opts, 1)
	assert.Equal(t, "09:00", opts[0].Arrival.String())
}

func TestFindDirectRoutes(t *testing.T) {
	tt := Timetable{
		Lines: []Line{
			{ID: "l1", Number: "L1", TransportMode: "métro", Active: true},
			{ID: "l2", Number: "B15", TransportMode: "bus", Active: false},
			{ID: "l3", Number: "T3", TransportMode: "tramway", Active: true},
		},
		StopEvents: map[string][]StopEvent{
			"l1": {
				event(t, "l1", "Gare Centrale", "Université", "07:45", "08:05"),
				event(t, "l1", "Gare Centrale", "Université", "08:15", "08:35"),
			},
			"l2": {
				event(t, "l2", "gare centrale", "université ", "08:00", "08:30"),
			},
		},
	}

	routes := FindDirectRoutes("Gare Centrale", "Université", tt, nil)
	require.Len(t, routes, 3)

	for i, r := range routes {
		assert.Equal(t, i+1, r.ID, "ids are sequential from 1 across lines")
		assert.Equal(t, 0, r.Transfers)
		require.Len(t, r.Segments, 1)
		assert.Equal(t, r.TotalMinutes, r.Segments[0].DurationMinutes)
		assert.Equal(t, "Gare Centrale", r.Segments[0].From)
		assert.Equal(t, "Université", r.Segments[0].To)
	}

	assert.Equal(t, "L1", routes[0].Segments[0].Line)
	assert.Equal(t, "Métro", routes[0].Segments[0].Mode)
	assert.Equal(t, 20, routes[0].TotalMinutes)

	// Inactive lines are still searched.
	assert.Equal(t, "B15", routes[2].Segments[0].Line)
	assert.Equal(t, "Bus", routes[2].Segments[0].Mode)
	assert.Equal(t, "08:00", routes[2].DepartureTime.String())
	assert.Equal(t, "08:30", routes[2].ArrivalTime.String())
}

func TestFindDirectRoutesDepartureFloor(t *testing.T) {
	tt := Timetable{
		Lines: []Line{{ID: "l1", Number: "1", TransportMode: "bus"}},
		StopEvents: map[string][]StopEvent{
			"l1": {
				event(t, "l1", "A", "B", "07:00", "07:10"),
				event(t, "l1", "A", "B", "08:00", "08:10"),
			},
		},
	}

	floor := clock(t, "07:30")
	routes := FindDirectRoutes("A", "B", tt, &floor)
	require.Len(t, routes, 1)
	assert.Equal(t, "08:00", routes[0].DepartureTime.String())
	assert.Equal(t, 1, routes[0].ID)
}

func TestFindDirectRoutesWraparound(t *testing.T) {
	tt := Timetable{
		Lines: []Line{{ID: "n1", Number: "N1", TransportMode: "bus"}},
		StopEvents: map[string][]StopEvent{
			"n1": {event(t, "n1", "A", "B", "23:50", "00:10")},
		},
	}

	routes := FindDirectRoutes("A", "B", tt, nil)
	require.Len(t, routes, 1)
	assert.Equal(t, 20, routes[0].TotalMinutes)
	assert.Equal(t, 20, routes[0].Segments[0].DurationMinutes)
}

func TestFindDirectRoutesMissingTimetable(t *testing.T) {
	tt := Timetable{
		Lines: []Line{{ID: "ghost", Number: "9"}},
	}
	assert.Empty(t, FindDirectRoutes("A", "B", tt, nil))
}

func TestFindDirectRoutesDuplicateEvents(t *testing.T) {
	dup := event(t, "l1", "A", "B", "08:00", "08:10")
	tt := Timetable{
		Lines:      []Line{{ID: "l1", Number: "1", TransportMode: "bus"}},
		StopEvents: map[string][]StopEvent{"l1": {dup, dup}},
	}

	routes := FindDirectRoutes("A", "B", tt, nil)
	require.Len(t, routes, 2)
	assert.Equal(t, 1, routes[0].ID)
	assert.Equal(t, 2, routes[1].ID)
}
