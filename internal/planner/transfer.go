package planner

// DefaultTransferBuffer is the minimum gap, in minutes, between arriving on
// the first leg and departing on the second.
const DefaultTransferBuffer = 5

// NoTransferBuffer disables the transfer gap in Options.
const NoTransferBuffer = -1

// TransferFirstID is the id given to the first transfer itinerary of a search.
const TransferFirstID = 1000

// FindTransferRoutes returns the one-transfer itineraries between two
// stations. Every intermediate station and every ordered pair of distinct
// lines is tried; for each first-leg option only the first second-leg option
// leaving at least buffer minutes after arrival is kept.
//
// The search is exhaustive over stations x line pairs x options. That is fine
// for networks of a few tens of lines and is not meant for larger ones.
func FindTransferRoutes(departure, arrival string, tt Timetable, floor *Clock, buffer int) []Itinerary {
	var itineraries []Itinerary
	nextID := TransferFirstID

	for _, via := range intermediateStations(departure, arrival, tt) {
		for _, first := range tt.Lines {
			firstLegs := SegmentOptions(departure, via, tt.EventsFor(first.ID), floor)
			if len(firstLegs) == 0 {
				continue
			}

			for _, seg1 := range firstLegs {
				transferFloor := seg1.Arrival.Add(buffer)

				for _, second := range tt.Lines {
					if second.ID == first.ID {
						continue
					}

					seg2, ok := firstSegmentOption(via, arrival, tt.EventsFor(second.ID), &transferFloor)
					if !ok {
						continue
					}

					firstDuration := Minutes(seg1.Departure, seg1.Arrival)
					secondDuration := Minutes(seg2.Departure, seg2.Arrival)
					wait := Minutes(seg1.Arrival, seg2.Departure)

					itineraries = append(itineraries, Itinerary{
						ID:            nextID,
						From:          departure,
						To:            arrival,
						TotalMinutes:  firstDuration + secondDuration + wait,
						Transfers:     1,
						DepartureTime: seg1.Departure,
						ArrivalTime:   seg2.Arrival,
						Segments: []ItinerarySegment{
							{
								Line:            first.Number,
								From:            departure,
								To:              via,
								DurationMinutes: firstDuration,
								Mode:            modeLabel(first.TransportMode),
							},
							{
								Line:            second.Number,
								From:            via,
								To:              arrival,
								DurationMinutes: secondDuration,
								Mode:            modeLabel(second.TransportMode),
							},
						},
					})
					nextID++
				}
			}
		}
	}

	return itineraries
}
