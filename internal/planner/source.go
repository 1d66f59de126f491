package planner

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"transit.smartcity.org/internal/logging"
)

// DefaultFetchConcurrency bounds the number of per-line timetable requests in
// flight during LoadTimetable.
const DefaultFetchConcurrency = 8

// Source supplies the timetable the planner searches.
type Source interface {
	// ListLines returns every line known to the source.
	ListLines(ctx context.Context) ([]Line, error)
	// ListStopEvents returns the scheduled stop events of one line.
	ListStopEvents(ctx context.Context, line Line) ([]StopEvent, error)
}

// LoadTimetable lists the lines of source and fetches their stop events
// concurrently. Failing to list lines is fatal and reported as
// ErrSourceUnavailable; a line whose events cannot be fetched is logged and
// planned with an empty timetable.
func LoadTimetable(ctx context.Context, source Source, concurrency int, logger *slog.Logger) (Timetable, error) {
	if logger == nil {
		logger = logging.FromContext(ctx)
	}

	lines, err := source.ListLines(ctx)
	if err != nil {
		return Timetable{}, fmt.Errorf("%w: listing lines: %w", ErrSourceUnavailable, err)
	}

	if concurrency <= 0 {
		concurrency = DefaultFetchConcurrency
	}

	// One slot per line: goroutines never share a write target.
	fetched := make([][]StopEvent, len(lines))

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, line := range lines {
		g.Go(func() error {
			events, err := source.ListStopEvents(ctx, line)
			if err != nil {
				logging.LogError(logger, "stop event fetch failed, using empty timetable", err,
					slog.String("line_id", line.ID),
					slog.String("line_number", line.Number),
					slog.String("component", "timetable_loader"))
				return nil
			}
			fetched[i] = events
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return Timetable{}, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	tt := Timetable{
		Lines:      lines,
		StopEvents: make(map[string][]StopEvent, len(lines)),
	}
	for i, line := range lines {
		if fetched[i] != nil {
			tt.StopEvents[line.ID] = fetched[i]
		}
	}
	return tt, nil
}
