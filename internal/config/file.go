package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// fileConfig is the TOML shape of a config file. Keys mirror the
// environment variables in lower case:
//
//	port = "8080"
//	log_level = "debug"
//	cors_origins = ["http://localhost:5173"]
//	store_backend = "badger"
//	badger_path = "/var/lib/triplog"
//	max_body_bytes = 1048576
//	default_location = "Home"
type fileConfig struct {
	Port            string   `toml:"port"`
	LogLevel        string   `toml:"log_level"`
	CORSOrigins     []string `toml:"cors_origins"`
	StoreBackend    string   `toml:"store_backend"`
	DatabaseURL     string   `toml:"database_url"`
	BadgerPath      string   `toml:"badger_path"`
	MaxBodyBytes    *int64   `toml:"max_body_bytes"`
	DefaultLocation string   `toml:"default_location"`
}

// readFile decodes the TOML file at path. Unknown keys are rejected so a
// typo does not silently fall back to a default.
func readFile(path string) (fileConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	var fc fileConfig
	md, err := toml.NewDecoder(f).Decode(&fc)
	if err != nil {
		return fileConfig{}, fmt.Errorf("reading config from %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fileConfig{}, fmt.Errorf("reading config from %s: unknown key %q", path, undecoded[0].String())
	}
	return fc, nil
}
