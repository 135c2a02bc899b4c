package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
// It exits the process when the configuration is invalid.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	cfg, err := Parse()
	if err != nil {
		log.Fatal("Invalid configuration", "error", err)
	}
	return cfg
}

// Parse reads the configuration from the process environment only.
func Parse() (Config, error) {
	return parse(env.Options{})
}

// ParseEnviron reads the configuration from the given variables instead of
// the process environment.
func ParseEnviron(environ map[string]string) (Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.StorageBackend = strings.ToLower(strings.TrimSpace(cfg.StorageBackend))
	switch cfg.StorageBackend {
	case BackendSQLite, BackendFile:
	default:
		return Config{}, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.StorageBackend)
	}
	if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return Config{}, fmt.Errorf("invalid CLUB_TIMEZONE: %w", err)
	}
	return cfg, nil
}

// Level returns the configured log level, info when unset.
func (c Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// Location returns the club's time zone, falling back to UTC.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Enabled reports whether messages can actually be posted to Slack.
func (s SlackConfig) Enabled() bool {
	return s.Token != "" && s.ChannelID != ""
}
