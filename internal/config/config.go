// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Storage backends selectable with STORE_BACKEND.
const (
	BackendBadger   = "badger"
	BackendPostgres = "postgres"
)

// Config holds all configuration values for the API server and the CLI.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"].
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// StoreBackend selects where trips are kept: "badger" (default, an
	// embedded store under BadgerPath) or "postgres" (DatabaseURL).
	StoreBackend string

	// DatabaseURL is the Postgres connection string. Required when
	// StoreBackend is "postgres".
	DatabaseURL string

	// BadgerPath is the directory of the embedded store. Defaults to "data/triplog".
	BadgerPath string

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB; 0 disables the cap.
	MaxBodyBytes int64

	// DefaultLocation is used as the start location of a new recording
	// when the client supplies none.
	DefaultLocation string
}

// Load reads configuration from environment variables and returns a Config.
// When TRIPLOG_CONFIG names a TOML file, its values are used beneath the
// environment (see LoadFile).
// Returns an error listing any required variables that are not set or any
// variables whose value is invalid.
func Load() (Config, error) {
	return LoadFile(os.Getenv("TRIPLOG_CONFIG"))
}

// LoadFile is Load with the TOML file at path supplying defaults. Every
// environment variable still takes precedence over the file. An empty path
// reads no file.
func LoadFile(path string) (Config, error) {
	var file fileConfig
	if path != "" {
		var err error
		if file, err = readFile(path); err != nil {
			return Config{}, err
		}
	}

	cfg := Config{
		Port:            getEnv("PORT", or(file.Port, "8080")),
		LogLevel:        getEnv("LOG_LEVEL", or(file.LogLevel, "info")),
		CORSOrigins:     splitCSV(getEnv("CORS_ORIGINS", or(strings.Join(file.CORSOrigins, ","), "http://localhost:5173"))),
		StoreBackend:    strings.ToLower(getEnv("STORE_BACKEND", or(file.StoreBackend, BackendBadger))),
		DatabaseURL:     getEnv("DATABASE_URL", file.DatabaseURL),
		BadgerPath:      getEnv("BADGER_PATH", or(file.BadgerPath, "data/triplog")),
		DefaultLocation: strings.TrimSpace(getEnv("DEFAULT_LOCATION", file.DefaultLocation)),
	}

	var missing, invalid []string

	switch cfg.StoreBackend {
	case BackendBadger:
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
	default:
		invalid = append(invalid, fmt.Sprintf("STORE_BACKEND=%q (want badger or postgres)", cfg.StoreBackend))
	}

	maxBodyDefault := "1048576"
	if file.MaxBodyBytes != nil {
		maxBodyDefault = strconv.FormatInt(*file.MaxBodyBytes, 10)
	}
	maxBody, err := strconv.ParseInt(getEnv("MAX_BODY_BYTES", maxBodyDefault), 10, 64)
	if err != nil || maxBody < 0 {
		invalid = append(invalid, "MAX_BODY_BYTES (want a non-negative integer)")
	}
	cfg.MaxBodyBytes = maxBody

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, "; "))
	}

	return cfg, nil
}

func or(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
