package planner

// SegmentOptions returns every ride from one station to another among the
// stop events of a single line. Each event leaving from is paired with the
// first event, in list order, that reaches to and does not depart earlier.
// Events departing before floor, when given, are ignored.
func SegmentOptions(from, to string, events []StopEvent, floor *Clock) []SegmentOption {
	var options []SegmentOption
	for i := range events {
		if !SameStation(events[i].Station, from) {
			continue
		}
		if opt, ok := segmentFrom(events[i], to, events, floor); ok {
			options = append(options, opt)
		}
	}
	return options
}

// firstSegmentOption is SegmentOptions cut short at the first match.
func firstSegmentOption(from, to string, events []StopEvent, floor *Clock) (SegmentOption, bool) {
	for i := range events {
		if !SameStation(events[i].Station, from) {
			continue
		}
		if opt, ok := segmentFrom(events[i], to, events, floor); ok {
			return opt, true
		}
	}
	return SegmentOption{}, false
}

func segmentFrom(dep StopEvent, to string, events []StopEvent, floor *Clock) (SegmentOption, bool) {
	if floor != nil && dep.Departure < *floor {
		return SegmentOption{}, false
	}
	for _, arr := range events {
		if SameStation(arr.Destination, to) && arr.Departure >= dep.Departure {
			return SegmentOption{Departure: dep.Departure, Arrival: arr.Arrival}, true
		}
	}
	return SegmentOption{}, false
}

// FindDirectRoutes returns the zero-transfer itineraries between two
// stations. Lines are not filtered on their active flag. Ids start at 1 and
// are shared across lines.
func FindDirectRoutes(departure, arrival string, tt Timetable, floor *Clock) []Itinerary {
	var itineraries []Itinerary
	nextID := 1

	for _, line := range tt.Lines {
		for _, opt := range SegmentOptions(departure, arrival, tt.EventsFor(line.ID), floor) {
			duration := Minutes(opt.Departure, opt.Arrival)
			itineraries = append(itineraries, Itinerary{
				ID:            nextID,
				From:          departure,
				To:            arrival,
				TotalMinutes:  duration,
				Transfers:     0,
				DepartureTime: opt.Departure,
				ArrivalTime:   opt.Arrival,
				Segments: []ItinerarySegment{{
					Line:            line.Number,
					From:            departure,
					To:              arrival,
					DurationMinutes: duration,
					Mode:            modeLabel(line.TransportMode),
				}},
			})
			nextID++
		}
	}

	return itineraries
}
