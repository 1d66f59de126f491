// Command plan prints the itineraries between two stations as JSON.
//
//	plan -from "Gare Centrale" -to "Stade" -at 08:15
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"transit.smartcity.org/internal/app"
	"transit.smartcity.org/internal/appconf"
	"transit.smartcity.org/internal/logging"
	"transit.smartcity.org/internal/planner"
)

const (
	exitInvalidRequest    = 2
	exitSourceUnavailable = 3
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("plan", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "Path to a YAML configuration file")
	from := fs.String("from", "", "Departure station")
	to := fs.String("to", "", "Arrival station")
	at := fs.String("at", "", "Earliest departure time, HH:MM")
	source := fs.String("source", "", "Timetable source (rest|gtfs|sqlite), overrides the configuration")

	if err := fs.Parse(args); err != nil {
		return exitInvalidRequest
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
		if err := cfg.Validate(); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	logger := logging.NewLogger(stderr, level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, cleanup, err := app.New(ctx, cfg, logger)
	if err != nil {
		logging.LogError(logger, "initializing planner", err)
		return 1
	}
	defer cleanup()

	result, err := application.Planner.Plan(ctx, planner.Request{
		Departure:     *from,
		Arrival:       *to,
		DepartureTime: *at,
	})
	switch {
	case errors.Is(err, planner.ErrInvalidRequest):
		fmt.Fprintln(stderr, err)
		fs.Usage()
		return exitInvalidRequest
	case errors.Is(err, planner.ErrSourceUnavailable):
		fmt.Fprintln(stderr, err)
		return exitSourceUnavailable
	case err != nil:
		fmt.Fprintln(stderr, err)
		return 1
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}
