// Package config loads panel configuration from a YAML file with
// environment-variable overrides. Environment wins over file, file wins
// over defaults.
package config

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"
)

// Environment variable names.
const (
	EnvListen      = "PANEL_LISTEN"
	EnvEngineHost  = "PANEL_ENGINE_HOST"
	EnvDatabase    = "PANEL_DB"
	EnvTokenSecret = "PANEL_TOKEN_SECRET"
	EnvDev         = "PANEL_DEV"
	EnvLogLevel    = "PANEL_LOG_LEVEL"
	EnvLogJSON     = "PANEL_LOG_JSON"
)

// Log holds logging configuration.
type Log struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Config is the panel's runtime configuration.
type Config struct {
	// Listen is the HTTP listen address.
	Listen string `yaml:"listen"`
	// EngineHost is the container engine endpoint (unix socket or tcp).
	EngineHost string `yaml:"engine_host"`
	// Database is the path of the SQLite user database.
	Database string `yaml:"database"`
	// TokenSecret signs session credentials. When empty, a random
	// per-process secret is generated at startup and sessions do not
	// survive a restart.
	TokenSecret string `yaml:"token_secret"`
	// Dev disables the Secure cookie flag for plain-HTTP development.
	Dev bool `yaml:"dev"`

	Log Log `yaml:"log"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Listen:     ":8080",
		EngineHost: "unix:///var/run/docker.sock",
		Database:   "data/panel.db",
		Log:        Log{Level: "info"},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if
// path is non-empty), then environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvListen); v != "" {
		c.Listen = v
	}
	if v := os.Getenv(EnvEngineHost); v != "" {
		c.EngineHost = v
	}
	if v := os.Getenv(EnvDatabase); v != "" {
		c.Database = v
	}
	if v := os.Getenv(EnvTokenSecret); v != "" {
		c.TokenSecret = v
	}
	if v := os.Getenv(EnvDev); v != "" {
		c.Dev = v == "1" || v == "true"
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvLogJSON); v != "" {
		c.Log.JSON = v == "1" || v == "true"
	}
}

func (c *Config) validate() error {
	if c.Listen == "" {
		return fmt.Errorf("config: listen address must not be empty")
	}
	if c.EngineHost == "" {
		return fmt.Errorf("config: engine host must not be empty")
	}
	if c.Database == "" {
		return fmt.Errorf("config: database path must not be empty")
	}
	return nil
}
