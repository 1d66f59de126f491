package utils

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"transit.smartcity.org/internal/planner"
)

// Compiled regular expressions for validation
var (
	// Line numbers such as "12", "M2", "T1-bis"
	validLineNumberPattern = regexp.MustCompile(`^[\p{L}0-9_. -]+$`)

	// Detect potentially dangerous characters - more focused on injection patterns
	dangerousPattern = regexp.MustCompile(`[<>]|--|\/\*|\*\/|;.*--`)

	// Detect HTML/script tags
	htmlTagPattern = regexp.MustCompile(`<[^>]*>`)
)

const maxStationLength = 100

// ValidateStation checks a station name typed by a user. Accents, spaces
// and apostrophes are fine; markup and injection patterns are not.
func ValidateStation(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("station cannot be empty")
	}

	if utf8.RuneCountInString(name) > maxStationLength {
		return errors.New("station too long (max 100 characters)")
	}

	if dangerousPattern.MatchString(name) {
		return errors.New("station contains invalid characters")
	}

	return nil
}

// ValidateLineNumber validates a line number taken from the URL path
func ValidateLineNumber(number string) error {
	if number == "" {
		return errors.New("line number cannot be empty")
	}

	if len(number) > 20 {
		return errors.New("line number too long (max 20 characters)")
	}

	if !validLineNumberPattern.MatchString(number) {
		return errors.New("line number contains invalid characters")
	}

	return nil
}

// ValidateClock validates a time of day in HH:MM format
func ValidateClock(value string) error {
	// Empty is allowed: planning then starts from the earliest event
	if value == "" {
		return nil
	}

	if _, err := planner.ParseClock(value); err != nil {
		return errors.New("invalid time format, use HH:MM")
	}

	return nil
}

// SanitizeInput removes HTML tags and other potentially dangerous content
func SanitizeInput(input string) string {
	sanitized := htmlTagPattern.ReplaceAllString(input, "")
	return strings.TrimSpace(sanitized)
}

// ValidatePlanningParams validates the query of a planning request and
// returns the errors keyed by parameter name.
func ValidatePlanningParams(departure, arrival, departureTime string) map[string][]string {
	fieldErrors := make(map[string][]string)

	if err := ValidateStation(departure); err != nil {
		fieldErrors["depart"] = append(fieldErrors["depart"], err.Error())
	}

	if err := ValidateStation(arrival); err != nil {
		fieldErrors["arrivee"] = append(fieldErrors["arrivee"], err.Error())
	}

	if err := ValidateClock(departureTime); err != nil {
		fieldErrors["heure_depart"] = append(fieldErrors["heure_depart"], err.Error())
	}

	return fieldErrors
}
