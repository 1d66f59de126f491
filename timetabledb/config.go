package timetabledb

import (
	"log/slog"

	"transit.smartcity.org/internal/appconf"
)

// Config holds configuration options for the Client
type Config struct {
	DBPath string // Path to SQLite database file, or ":memory:"
	Env    appconf.Environment
	Logger *slog.Logger
}

func NewConfig(dbPath string, env appconf.Environment, logger *slog.Logger) Config {
	return Config{
		DBPath: dbPath,
		Env:    env,
		Logger: logger,
	}
}
