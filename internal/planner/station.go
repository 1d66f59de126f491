package planner

import "strings"

// Normalize returns the comparison form of a station name: lower-cased and
// trimmed of surrounding whitespace.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// SameStation reports whether two names designate the same station.
func SameStation(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
