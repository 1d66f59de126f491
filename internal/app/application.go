package app

import (
	"log/slog"

	"transit.smartcity.org/internal/appconf"
	"transit.smartcity.org/internal/planner"
)

// Application holds the dependencies shared by the HTTP handlers, the
// debug UI and the middleware.
type Application struct {
	Config  appconf.Config
	Logger  *slog.Logger
	Planner *planner.Planner
	// Source is the timetable source the planner reads from. Health checks
	// and the debug UI use it directly.
	Source planner.Source
}
