package appconf

import "time"

// Config holds every setting of the planning service. It is read from a
// YAML file, then overridden by environment variables and command-line flags.
type Config struct {
	Env         Environment `yaml:"-"`
	Environment string      `yaml:"env" validate:"omitempty,oneof=development test production prod"`

	Port           int      `yaml:"port" validate:"gt=0,lte=65535"`
	ApiKeys        []string `yaml:"apiKeys"`
	RateLimit      int      `yaml:"rateLimit" validate:"gte=0"`
	AllowedOrigins []string `yaml:"allowedOrigins"`

	Log       LogConfig       `yaml:"log"`
	Timetable TimetableConfig `yaml:"timetable"`
	Planner   PlannerConfig   `yaml:"planner"`
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn warning error"`
	Format string `yaml:"format" validate:"omitempty,oneof=json text"`
}

// Timetable sources.
const (
	SourceREST   = "rest"
	SourceGTFS   = "gtfs"
	SourceSQLite = "sqlite"
)

type TimetableConfig struct {
	Source             string        `yaml:"source" validate:"oneof=rest gtfs sqlite"`
	MobilityServiceURL string        `yaml:"mobilityServiceURL" validate:"omitempty,url"`
	GtfsURL            string        `yaml:"gtfsURL"`
	DBPath             string        `yaml:"dbPath"`
	Timeout            time.Duration `yaml:"timeout" validate:"gt=0"`
	MaxRetries         int           `yaml:"maxRetries" validate:"gte=0,lte=10"`
	RetryDelay         time.Duration `yaml:"retryDelay" validate:"gte=0"`
	RefreshInterval    time.Duration `yaml:"refreshInterval" validate:"gte=0"`
	// CacheTTL of zero disables caching.
	CacheTTL  time.Duration `yaml:"cacheTTL" validate:"gte=0"`
	CacheSize int           `yaml:"cacheSize" validate:"gte=0"`
}

type PlannerConfig struct {
	MaxResults            int `yaml:"maxResults" validate:"gt=0"`
	TransferBufferMinutes int `yaml:"transferBufferMinutes" validate:"gte=0,lt=1440"`
	FetchConcurrency      int `yaml:"fetchConcurrency" validate:"gt=0"`
}

// Default returns the settings used when nothing else is configured.
func Default() Config {
	return Config{
		Env:         Development,
		Environment: "development",
		Port:        8080,
		RateLimit:   100,
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Timetable: TimetableConfig{
			Source:             SourceREST,
			MobilityServiceURL: "http://mobility-service:8000",
			Timeout:            10 * time.Second,
			MaxRetries:         3,
			RetryDelay:         2 * time.Second,
			RefreshInterval:    24 * time.Hour,
			CacheTTL:           30 * time.Second,
			CacheSize:          1024,
		},
		Planner: PlannerConfig{
			MaxResults:            5,
			TransferBufferMinutes: 5,
			FetchConcurrency:      8,
		},
	}
}
