package timetabledb

import (
	"context"
	"database/sql"
	"fmt"

	"transit.smartcity.org/internal/logging"
	"transit.smartcity.org/internal/planner"
)

// ListStopEvents returns the events of one line in their original order.
// The order matters: the route finders break ties by list position.
func (c *Client) ListStopEvents(ctx context.Context, line planner.Line) ([]planner.StopEvent, error) {
	rows, err := c.DB.QueryContext(ctx, `
		SELECT event_id, station, destination, departure_minutes, arrival_minutes, platform
		FROM stop_events
		WHERE line_id = ?
		ORDER BY position`, line.ID)
	if err != nil {
		return nil, fmt.Errorf("querying stop events: %w", err)
	}
	defer logging.SafeCloseWithLogging(rows, c.logger, "list_stop_events_rows")

	var events []planner.StopEvent
	for rows.Next() {
		var (
			event              planner.StopEvent
			eventID, platform  sql.NullString
			departure, arrival int
		)
		if err := rows.Scan(&eventID, &event.Station, &event.Destination, &departure, &arrival, &platform); err != nil {
			return nil, fmt.Errorf("scanning stop event: %w", err)
		}
		event.ID = eventID.String
		event.LineID = line.ID
		event.Departure = planner.ClockFromMinutes(departure)
		event.Arrival = planner.ClockFromMinutes(arrival)
		event.Platform = platform.String
		events = append(events, event)
	}
	return events, rows.Err()
}

func insertStopEvents(ctx context.Context, tx *sql.Tx, lineID string, events []planner.StopEvent) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO stop_events (
			line_id, position, event_id, station, destination,
			departure_minutes, arrival_minutes, platform
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("error preparing statement: %w", err)
	}
	defer stmt.Close() // nolint:errcheck

	for i, e := range events {
		_, err := stmt.ExecContext(ctx,
			lineID, i, toNullString(e.ID), e.Station, e.Destination,
			int(e.Departure), int(e.Arrival), toNullString(e.Platform),
		)
		if err != nil {
			return fmt.Errorf("error inserting stop event %d of line %s: %w", i, lineID, err)
		}
	}
	return nil
}
