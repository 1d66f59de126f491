package main

import (
	"flag"
	"time"

	"transit.smartcity.org/internal/appconf"
)

// parseConfig reads the configuration file named by -config, applies the
// environment, then lets explicitly set flags override both.
func parseConfig(args []string) (appconf.Config, error) {
	fs := flag.NewFlagSet("api", flag.ContinueOnError)

	configPath := fs.String("config", "", "Path to a YAML configuration file")
	port := fs.Int("port", 8080, "API server port")
	env := fs.String("env", "development", "Environment (development|test|production)")
	apiKeys := fs.String("api-keys", "", "Comma separated API keys; empty leaves the API open")
	source := fs.String("source", appconf.SourceREST, "Timetable source (rest|gtfs|sqlite)")
	mobilityURL := fs.String("mobility-url", "", "Base URL of the mobility service")
	gtfsURL := fs.String("gtfs-url", "", "URL or path of a static GTFS zip file")
	dbPath := fs.String("db", "", "Path of the SQLite timetable snapshot")

	if err := fs.Parse(args); err != nil {
		return appconf.Config{}, err
	}

	cfg, err := appconf.Load(*configPath)
	if err != nil {
		return appconf.Config{}, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			cfg.Port = *port
		case "env":
			cfg.Environment = *env
		case "api-keys":
			cfg.ApiKeys = appconf.SplitList(*apiKeys)
		case "source":
			cfg.Timetable.Source = *source
		case "mobility-url":
			cfg.Timetable.MobilityServiceURL = *mobilityURL
		case "gtfs-url":
			cfg.Timetable.GtfsURL = *gtfsURL
		case "db":
			cfg.Timetable.DBPath = *dbPath
		}
	})

	if err := cfg.Validate(); err != nil {
		return appconf.Config{}, err
	}
	return cfg, nil
}

// writeTimeout bounds a response by the worst planning latency: listing the
// lines, then the per-line fetches (run in parallel, so one call deep), each
// using every retry and retry delay. A margin covers the search itself.
func writeTimeout(t appconf.TimetableConfig) time.Duration {
	retries := time.Duration(t.MaxRetries)
	perCall := t.Timeout*(retries+1) + t.RetryDelay*retries
	return 2*perCall + 10*time.Second
}
