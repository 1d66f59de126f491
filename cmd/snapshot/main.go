// Command snapshot copies the configured timetable source into a SQLite
// database that the service can later read with -source sqlite.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"transit.smartcity.org/internal/app"
	"transit.smartcity.org/internal/appconf"
	"transit.smartcity.org/internal/logging"
	"transit.smartcity.org/timetabledb"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("snapshot", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "Path to a YAML configuration file")
	out := fs.String("out", "", "SQLite database to write (required)")
	source := fs.String("source", "", "Timetable source to copy (rest|gtfs), overrides the configuration")
	timeout := fs.Duration("timeout", 5*time.Minute, "Maximum time for the whole import")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *out == "" {
		fmt.Fprintln(stderr, "-out is required")
		fs.Usage()
		return 2
	}

	if err := appconf.LoadDotEnv(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	cfg, err := appconf.Load(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if *source != "" {
		cfg.Timetable.Source = *source
	}
	if cfg.Timetable.Source == appconf.SourceSQLite && cfg.Timetable.DBPath == *out {
		fmt.Fprintln(stderr, "refusing to snapshot a database onto itself")
		return 2
	}
	cfg.Timetable.CacheTTL = 0
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	logger := logging.NewLogger(stderr, level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	if err := snapshot(ctx, cfg, *out, logger); err != nil {
		logging.LogError(logger, "snapshot failed", err, slog.String("out", *out))
		return 1
	}
	return 0
}

func snapshot(ctx context.Context, cfg appconf.Config, out string, logger *slog.Logger) error {
	source, cleanup, err := app.NewTimetableSource(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	client, err := timetabledb.NewClient(timetabledb.NewConfig(out, cfg.Env, logger))
	if err != nil {
		return err
	}
	defer logging.SafeCloseWithLogging(client, logger, "snapshot_database")

	start := time.Now()
	if err := client.Import(ctx, source); err != nil {
		return err
	}

	counts, err := client.TableCounts(ctx)
	if err != nil {
		return err
	}
	logging.LogOperation(logger, "snapshot_written",
		slog.String("out", out),
		slog.String("source", cfg.Timetable.Source),
		slog.Int("lines", counts["lines"]),
		slog.Int("stop_events", counts["stop_events"]),
		slog.Duration("duration", time.Since(start)))
	return nil
}
