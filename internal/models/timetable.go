package models

import "transit.smartcity.org/internal/planner"

// LineSchedule is the body of GET /horaires/:numero, in the same shape as
// the mobility service answers it.
type LineSchedule struct {
	Line      string              `json:"ligne"`
	Schedules []planner.StopEvent `json:"horaires"`
}

func NewLineSchedule(number string, events []planner.StopEvent) LineSchedule {
	if events == nil {
		events = []planner.StopEvent{}
	}
	return LineSchedule{Line: number, Schedules: events}
}

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	Status    string `json:"status"`
	Source    string `json:"source"`
	Error     string `json:"error,omitempty"`
	Timestamp string `json:"timestamp"`
}
