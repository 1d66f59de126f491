package timetabledb

import (
	"context"
	"database/sql"
	"log/slog"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Client stores timetable snapshots in SQLite and serves them back as a
// planner.Source.
type Client struct {
	config Config
	DB     *sql.DB
	logger *slog.Logger
}

// NewClient opens the database at config.DBPath and creates missing tables.
func NewClient(config Config) (*Client, error) {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	db, err := createDB(context.Background(), config)
	if err != nil {
		return nil, err
	}

	return &Client{
		config: config,
		DB:     db,
		logger: logger.With(slog.String("component", "timetabledb")),
	}, nil
}

func (c *Client) Close() error {
	return c.DB.Close()
}
