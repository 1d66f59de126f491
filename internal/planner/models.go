package planner

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Line is a transit route as published by the timetable source.
type Line struct {
	ID            string `json:"id"`
	Number        string `json:"numero"`
	Name          string `json:"nom"`
	TransportMode string `json:"type_transport"`
	StartTerminus string `json:"terminus_debut"`
	EndTerminus   string `json:"terminus_fin"`
	Active        bool   `json:"actif"`
}

// StopEvent is one scheduled station visit on a line: a vehicle leaving
// Station at Departure and reaching Destination at Arrival.
type StopEvent struct {
	ID          string `json:"id,omitempty"`
	LineID      string `json:"ligne_id"`
	Station     string `json:"station"`
	Destination string `json:"destination"`
	Departure   Clock  `json:"heure_depart"`
	Arrival     Clock  `json:"heure_arrivee"`
	Platform    string `json:"quai,omitempty"`
}

// SegmentOption is a feasible ride between two named stations on one line.
type SegmentOption struct {
	Departure Clock
	Arrival   Clock
}

// ItinerarySegment is one ride on one line.
type ItinerarySegment struct {
	Line            string `json:"ligne"`
	From            string `json:"depart"`
	To              string `json:"arrivee"`
	DurationMinutes int    `json:"duree_minutes"`
	Mode            string `json:"type"`
}

// Itinerary is a complete journey of one or two segments.
type Itinerary struct {
	ID            int                `json:"itineraire_id"`
	From          string             `json:"depart"`
	To            string             `json:"arrivee"`
	TotalMinutes  int                `json:"duree_totale_minutes"`
	Transfers     int                `json:"nombre_correspondances"`
	DepartureTime Clock              `json:"heure_depart"`
	ArrivalTime   Clock              `json:"heure_arrivee"`
	Segments      []ItinerarySegment `json:"segments"`
}

// Result is the envelope returned by Plan.
type Result struct {
	Timestamp   time.Time   `json:"timestamp"`
	Count       int         `json:"nombre_itineraires"`
	Itineraries []Itinerary `json:"itineraires"`
}

// Timetable is the planning input: every line and, per line id, its stop
// events in source order. It is built once per plan and read-only afterwards.
type Timetable struct {
	Lines      []Line
	StopEvents map[string][]StopEvent
}

// EventsFor returns the stop events of a line; a line without an entry has an
// empty timetable.
func (tt Timetable) EventsFor(lineID string) []StopEvent {
	if tt.StopEvents == nil {
		return nil
	}
	return tt.StopEvents[lineID]
}

// modeLabel upper-cases the first letter of a transport mode ("métro" -> "Métro").
func modeLabel(mode string) string {
	r, size := utf8.DecodeRuneInString(mode)
	if r == utf8.RuneError {
		return mode
	}
	return string(unicode.ToUpper(r)) + mode[size:]
}

// intermediateStations lists the transfer candidates: every station and
// destination served by any line, de-duplicated by normalized name, minus
// the departure and arrival stations. The first spelling seen is kept and
// candidates come out in order of first appearance.
func intermediateStations(departure, arrival string, tt Timetable) []string {
	excluded := map[string]bool{
		Normalize(departure): true,
		Normalize(arrival):   true,
	}
	seen := make(map[string]bool)
	var stations []string

	add := func(name string) {
		key := Normalize(name)
		if key == "" || excluded[key] || seen[key] {
			return
		}
		seen[key] = true
		stations = append(stations, strings.TrimSpace(name))
	}

	for _, line := range tt.Lines {
		for _, event := range tt.EventsFor(line.ID) {
			add(event.Station)
			add(event.Destination)
		}
	}
	return stations
}
