package planner

import "errors"

var (
	// ErrInvalidRequest reports a request the caller must correct, such as a
	// missing station. Retrying it unchanged will fail again.
	ErrInvalidRequest = errors.New("invalid planning request")

	// ErrSourceUnavailable reports that the timetable could not be obtained
	// at all. Callers may retry or fall back.
	ErrSourceUnavailable = errors.New("timetable source unavailable")
)
