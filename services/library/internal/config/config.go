package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigPath is used when no --config flag is given. A missing default
// file is not an error; defaults and environment overrides still apply.
const ConfigPath = "config.yaml"

// FileConfig represents configuration loaded from YAML.
type FileConfig struct {
	DatabaseURL string         `yaml:"databaseURL"`
	LogLevel    string         `yaml:"logLevel"`
	LogFormat   string         `yaml:"logFormat"`
	SQLLogLevel string         `yaml:"sqlLogLevel"`
	Features    FeaturesConfig `yaml:"features"`
}

// FeaturesConfig switches optional entity types off. Unset means on.
type FeaturesConfig struct {
	Readers       *bool `yaml:"readers"`
	BookInstances *bool `yaml:"bookInstances"`
}

func (f FeaturesConfig) ReadersEnabled() bool       { return f.Readers == nil || *f.Readers }
func (f FeaturesConfig) BookInstancesEnabled() bool { return f.BookInstances == nil || *f.BookInstances }

// SQL logging defaults to silent; the seeder reports failed inserts itself.
func defaults() FileConfig {
	return FileConfig{
		DatabaseURL: "library.db",
		LogLevel:    "info",
		LogFormat:   "text",
		SQLLogLevel: "silent",
	}
}

// Load reads config from path (defaults to ConfigPath) and applies env overrides.
func Load(path string) (FileConfig, error) {
	cfg := defaults()
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = ConfigPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	case explicit || !errors.Is(err, os.ErrNotExist):
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("SQL_LOG_LEVEL"); v != "" {
		cfg.SQLLogLevel = v
	}
	if v, ok := envBool("LIBRARY_FEATURE_READERS"); ok {
		cfg.Features.Readers = &v
	}
	if v, ok := envBool("LIBRARY_FEATURE_BOOK_INSTANCES"); ok {
		cfg.Features.BookInstances = &v
	}
	if err := validateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func validateConfig(cfg FileConfig) error {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return errors.New("config: databaseURL is required (set in config.yaml or DATABASE_URL)")
	}
	switch strings.ToLower(cfg.LogFormat) {
	case "", "json", "text":
	default:
		return fmt.Errorf("config: unsupported logFormat %q", cfg.LogFormat)
	}
	switch strings.ToLower(cfg.SQLLogLevel) {
	case "", "silent", "error", "warn", "info":
	default:
		return fmt.Errorf("config: unsupported sqlLogLevel %q", cfg.SQLLogLevel)
	}
	return nil
}

func envBool(key string) (bool, bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
