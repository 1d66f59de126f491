package timetabledb

import (
	"context"
	"database/sql"
	"fmt"

	"transit.smartcity.org/internal/logging"
	"transit.smartcity.org/internal/planner"
)

// ListLines returns the stored lines in the order they were imported.
func (c *Client) ListLines(ctx context.Context) ([]planner.Line, error) {
	rows, err := c.DB.QueryContext(ctx, `
		SELECT id, numero, nom, type_transport, terminus_debut, terminus_fin, actif
		FROM lines
		ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying lines: %w", err)
	}
	defer logging.SafeCloseWithLogging(rows, c.logger, "list_lines_rows")

	lines := []planner.Line{}
	for rows.Next() {
		var (
			line                                   planner.Line
			name, mode, startTerminus, endTerminus sql.NullString
			active                                 int64
		)
		if err := rows.Scan(&line.ID, &line.Number, &name, &mode, &startTerminus, &endTerminus, &active); err != nil {
			return nil, fmt.Errorf("scanning line: %w", err)
		}
		line.Name = name.String
		line.TransportMode = mode.String
		line.StartTerminus = startTerminus.String
		line.EndTerminus = endTerminus.String
		line.Active = active != 0
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func insertLines(ctx context.Context, tx *sql.Tx, lines []planner.Line) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO lines (id, numero, nom, type_transport, terminus_debut, terminus_fin, actif, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("error preparing statement: %w", err)
	}
	defer stmt.Close() // nolint:errcheck

	for i, line := range lines {
		_, err := stmt.ExecContext(ctx,
			line.ID, line.Number, toNullString(line.Name), toNullString(line.TransportMode),
			toNullString(line.StartTerminus), toNullString(line.EndTerminus), boolToInt(line.Active), i,
		)
		if err != nil {
			return fmt.Errorf("error inserting line %s: %w", line.ID, err)
		}
	}
	return nil
}
