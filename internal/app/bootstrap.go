package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"transit.smartcity.org/internal/appconf"
	"transit.smartcity.org/internal/logging"
	"transit.smartcity.org/internal/planner"
	"transit.smartcity.org/internal/timetable"
	"transit.smartcity.org/timetabledb"
)

// NewLogger builds the process logger from the log settings.
func NewLogger(config appconf.LogConfig) (*slog.Logger, error) {
	level, err := logging.ParseLevel(config.Level)
	if err != nil {
		return nil, err
	}
	return logging.NewLogger(os.Stdout, level, config.Format), nil
}

// NewTimetableSource builds the source selected by config.Timetable.Source,
// wrapped in a cache when CacheTTL is positive. The returned function
// releases what the source holds and must be called on shutdown.
func NewTimetableSource(ctx context.Context, config appconf.Config, logger *slog.Logger) (planner.Source, func(), error) {
	tc := config.Timetable

	var (
		source  planner.Source
		cleanup = func() {}
	)

	switch tc.Source {
	case appconf.SourceREST:
		restConfig := timetable.DefaultRESTConfig(tc.MobilityServiceURL)
		restConfig.Timeout = tc.Timeout
		restConfig.MaxRetries = tc.MaxRetries
		restConfig.RetryDelay = tc.RetryDelay

		rest, err := timetable.NewRESTSource(restConfig, logger)
		if err != nil {
			return nil, nil, err
		}
		source = rest

	case appconf.SourceGTFS:
		gtfsSource, err := timetable.NewGTFSSource(ctx, timetable.GTFSConfig{
			URL:             tc.GtfsURL,
			RefreshInterval: tc.RefreshInterval,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		source = gtfsSource
		cleanup = gtfsSource.Shutdown

	case appconf.SourceSQLite:
		client, err := timetabledb.NewClient(timetabledb.NewConfig(tc.DBPath, config.Env, logger))
		if err != nil {
			return nil, nil, err
		}
		source = client
		cleanup = func() {
			logging.SafeCloseWithLogging(client, logger, "timetable_database")
		}

	default:
		return nil, nil, fmt.Errorf("unknown timetable source %q", tc.Source)
	}

	if tc.CacheTTL > 0 {
		source = timetable.NewCachedSource(source, tc.CacheTTL, tc.CacheSize)
	}

	return source, cleanup, nil
}

// New wires the application: logger, timetable source and planner.
func New(ctx context.Context, config appconf.Config, logger *slog.Logger) (*Application, func(), error) {
	source, cleanup, err := NewTimetableSource(ctx, config, logger)
	if err != nil {
		return nil, nil, err
	}

	options := planner.Options{
		MaxResults:       config.Planner.MaxResults,
		TransferBuffer:   config.Planner.TransferBufferMinutes,
		FetchConcurrency: config.Planner.FetchConcurrency,
	}
	if options.TransferBuffer == 0 {
		options.TransferBuffer = planner.NoTransferBuffer
	}

	return &Application{
		Config:  config,
		Logger:  logger,
		Source:  source,
		Planner: planner.New(source, logger, options),
	}, cleanup, nil
}
