package appconf

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LoadDotEnv loads variables from the given .env files (".env" when none
// are given) without overriding variables already set. Missing files are
// ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

// Load reads the YAML file at path on top of Default, applies environment
// overrides and validates the result. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with the environment variables understood by the
// service. lookup is usually os.LookupEnv.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(key string, target *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*target = strings.TrimSpace(v)
		}
	}

	str("APP_ENV", &cfg.Environment)
	str("MOBILITY_SERVICE_URL", &cfg.Timetable.MobilityServiceURL)
	str("LOG_LEVEL", &cfg.Log.Level)
	str("LOG_FORMAT", &cfg.Log.Format)
	str("TIMETABLE_SOURCE", &cfg.Timetable.Source)
	str("GTFS_URL", &cfg.Timetable.GtfsURL)
	str("TIMETABLE_DB", &cfg.Timetable.DBPath)

	if v, ok := lookup("PORT"); ok && strings.TrimSpace(v) != "" {
		port, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Port = port
	}

	if v, ok := lookup("API_KEYS"); ok && strings.TrimSpace(v) != "" {
		cfg.ApiKeys = SplitList(v)
	}

	cfg.Environment = strings.ToLower(cfg.Environment)
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)
	cfg.Timetable.Source = strings.ToLower(cfg.Timetable.Source)
	return nil
}

// SplitList splits a comma separated list, dropping blank entries.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks field constraints and the settings each timetable source
// needs. It also resolves Env from Environment.
func (c *Config) Validate() error {
	c.Environment = strings.ToLower(strings.TrimSpace(c.Environment))
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	switch c.Timetable.Source {
	case SourceREST:
		if c.Timetable.MobilityServiceURL == "" {
			return errors.New("invalid config: timetable.mobilityServiceURL is required for the rest source")
		}
	case SourceGTFS:
		if c.Timetable.GtfsURL == "" {
			return errors.New("invalid config: timetable.gtfsURL is required for the gtfs source")
		}
	case SourceSQLite:
		if c.Timetable.DBPath == "" {
			return errors.New("invalid config: timetable.dbPath is required for the sqlite source")
		}
	}

	c.Env = EnvFlagToEnvironment(c.Environment)
	return nil
}
