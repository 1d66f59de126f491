package planner

import "sort"

// DefaultMaxResults caps the number of itineraries in a Result.
const DefaultMaxResults = 5

// Rank merges direct and transfer itineraries, orders them by total duration
// and keeps the first limit. Equal durations keep their input order, so a
// direct itinerary wins a tie against a transfer one.
func Rank(direct, transfer []Itinerary, limit int) []Itinerary {
	all := make([]Itinerary, 0, len(direct)+len(transfer))
	all = append(all, direct...)
	all = append(all, transfer...)

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].TotalMinutes < all[j].TotalMinutes
	})

	if limit >= 0 && len(all) > limit {
		all = all[:limit]
	}
	return all
}
