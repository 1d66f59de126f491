package timetabledb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"transit.smartcity.org/internal/logging"
	"transit.smartcity.org/internal/planner"
)

// ReplaceTimetable swaps the stored timetable for tt in a single
// transaction. Events keyed by a line id absent from tt.Lines are stored
// too; they are simply never listed.
func (c *Client) ReplaceTimetable(ctx context.Context, tt planner.Timetable) error {
	startTime := time.Now()

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer logging.SafeRollbackWithLogging(tx, c.logger, "replace_timetable")

	for _, table := range []string{"stop_events", "lines", "import_metadata"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("error clearing %s: %w", table, err)
		}
	}

	if err := insertLines(ctx, tx, tt.Lines); err != nil {
		return err
	}

	eventCount := 0
	for lineID, events := range tt.StopEvents {
		if err := insertStopEvents(ctx, tx, lineID, events); err != nil {
			return err
		}
		eventCount += len(events)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO import_metadata (id, imported_at, line_count, event_count)
		VALUES (1, ?, ?, ?)`, time.Now().Unix(), len(tt.Lines), eventCount); err != nil {
		return fmt.Errorf("error recording import metadata: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}

	logging.LogOperation(c.logger, "timetable_stored",
		slog.Int("lines", len(tt.Lines)),
		slog.Int("stop_events", eventCount),
		slog.Duration("duration", time.Since(startTime)))
	return nil
}

// Import copies every line and its events from source into the database.
// Unlike planning, a failed line aborts the import so that a partial
// snapshot never replaces a complete one.
func (c *Client) Import(ctx context.Context, source planner.Source) error {
	lines, err := source.ListLines(ctx)
	if err != nil {
		return fmt.Errorf("listing lines: %w", err)
	}

	tt := planner.Timetable{
		Lines:      lines,
		StopEvents: make(map[string][]planner.StopEvent, len(lines)),
	}
	for _, line := range lines {
		events, err := source.ListStopEvents(ctx, line)
		if err != nil {
			return fmt.Errorf("fetching events of line %s: %w", line.Number, err)
		}
		tt.StopEvents[line.ID] = events
	}

	return c.ReplaceTimetable(ctx, tt)
}

// ImportInfo describes the last stored snapshot.
type ImportInfo struct {
	ImportedAt time.Time
	Lines      int
	StopEvents int
}

// LastImport returns metadata of the stored snapshot; ok is false when the
// database is empty.
func (c *Client) LastImport(ctx context.Context) (info ImportInfo, ok bool, err error) {
	rows, err := c.DB.QueryContext(ctx, `SELECT imported_at, line_count, event_count FROM import_metadata WHERE id = 1`)
	if err != nil {
		return ImportInfo{}, false, err
	}
	defer logging.SafeCloseWithLogging(rows, c.logger, "last_import_rows")

	if !rows.Next() {
		return ImportInfo{}, false, rows.Err()
	}
	var importedAt int64
	if err := rows.Scan(&importedAt, &info.Lines, &info.StopEvents); err != nil {
		return ImportInfo{}, false, err
	}
	info.ImportedAt = time.Unix(importedAt, 0)
	return info, true, nil
}
