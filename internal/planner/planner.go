package planner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"transit.smartcity.org/internal/logging"
)

// Request is a planning query. DepartureTime is an optional "HH:MM" floor:
// rides leaving earlier are not considered.
type Request struct {
	Departure     string
	Arrival       string
	DepartureTime string
}

// Options tunes the search. Zero values select the defaults; use
// NoTransferBuffer to allow connections without any gap.
type Options struct {
	MaxResults       int
	TransferBuffer   int
	FetchConcurrency int
}

func (o Options) withDefaults() Options {
	if o.MaxResults <= 0 {
		o.MaxResults = DefaultMaxResults
	}
	switch {
	case o.TransferBuffer == 0:
		o.TransferBuffer = DefaultTransferBuffer
	case o.TransferBuffer < 0:
		o.TransferBuffer = 0
	}
	if o.FetchConcurrency <= 0 {
		o.FetchConcurrency = DefaultFetchConcurrency
	}
	return o
}

// DefaultOptions returns the settings used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		MaxResults:       DefaultMaxResults,
		TransferBuffer:   DefaultTransferBuffer,
		FetchConcurrency: DefaultFetchConcurrency,
	}
}

// Planner answers itinerary queries against a timetable source. It holds no
// per-request state and is safe for concurrent use.
type Planner struct {
	source  Source
	logger  *slog.Logger
	options Options
	now     func() time.Time
}

// New creates a Planner reading timetables from source.
func New(source Source, logger *slog.Logger, options Options) *Planner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Planner{
		source:  source,
		logger:  logger.With(slog.String("component", "planner")),
		options: options.withDefaults(),
		now:     time.Now,
	}
}

// Options returns the effective search settings.
func (p *Planner) Options() Options {
	return p.options
}

// Source returns the timetable source the planner reads from.
func (p *Planner) Source() Source {
	return p.source
}

// Plan validates the request, loads the timetable and returns the best
// itineraries. Finding nothing is not an error: the result is simply empty.
func (p *Planner) Plan(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	departure := strings.TrimSpace(req.Departure)
	arrival := strings.TrimSpace(req.Arrival)
	if departure == "" {
		return nil, fmt.Errorf("%w: departure station is required", ErrInvalidRequest)
	}
	if arrival == "" {
		return nil, fmt.Errorf("%w: arrival station is required", ErrInvalidRequest)
	}

	var floor *Clock
	if t := strings.TrimSpace(req.DepartureTime); t != "" {
		c, err := ParseClock(t)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
		}
		floor = &c
	}

	tt, err := LoadTimetable(ctx, p.source, p.options.FetchConcurrency, p.logger)
	if err != nil {
		planFailures.Inc()
		logging.LogError(p.logger, "timetable load failed", err,
			slog.String("departure", departure),
			slog.String("arrival", arrival))
		return nil, err
	}

	direct := FindDirectRoutes(departure, arrival, tt, floor)
	transfer := FindTransferRoutes(departure, arrival, tt, floor, p.options.TransferBuffer)
	ranked := Rank(direct, transfer, p.options.MaxResults)

	result := &Result{
		Timestamp:   p.now(),
		Count:       len(ranked),
		Itineraries: ranked,
	}

	elapsed := time.Since(start)
	planDuration.Observe(elapsed.Seconds())
	planResults.Observe(float64(result.Count))

	logging.LogOperation(p.logger, "plan_completed",
		slog.String("departure", departure),
		slog.String("arrival", arrival),
		slog.Int("lines", len(tt.Lines)),
		slog.Int("direct_candidates", len(direct)),
		slog.Int("transfer_candidates", len(transfer)),
		slog.Int("itineraries", result.Count),
		slog.Duration("duration", elapsed))

	return result, nil
}
