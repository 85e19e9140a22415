package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigPath is used when no --config flag is given.
const ConfigPath = "config.yaml"

// FileConfig represents configuration loaded from YAML.
type FileConfig struct {
	Port               string   `yaml:"port"`
	DatabaseURL        string   `yaml:"databaseURL"`
	LogLevel           string   `yaml:"logLevel"`
	LogFormat          string   `yaml:"logFormat"`
	SQLLogLevel        string   `yaml:"sqlLogLevel"`
	RedisAddr          string   `yaml:"redisAddr"`
	RedisPassword      string   `yaml:"redisPassword"`
	RateLimitPerMinute int      `yaml:"rateLimitPerMinute"`
	RateLimitFailOpen  bool     `yaml:"rateLimitFailOpen"`
	TrustedProxies     []string `yaml:"trustedProxies"`
	AdminJWTSecret     string   `yaml:"adminJwtSecret"`
	AdminTokenTTL      string   `yaml:"adminTokenTTL"`
}

func defaults() FileConfig {
	return FileConfig{
		Port:          "8000",
		DatabaseURL:   "blog.db",
		LogLevel:      "info",
		LogFormat:     "json",
		SQLLogLevel:   "warn",
		AdminTokenTTL: "12h",
	}
}

// Load reads config from path (defaults to ConfigPath). A missing default
// file is tolerated; an explicit path must exist.
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

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
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
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.RedisPassword = v
	}
	if v := os.Getenv("BLOG_RATE_LIMIT_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RateLimitPerMinute = n
		}
	}
	if v := os.Getenv("BLOG_RATE_LIMIT_FAIL_OPEN"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.RateLimitFailOpen = b
		}
	}
	if v := os.Getenv("BLOG_ADMIN_JWT_SECRET"); v != "" {
		cfg.AdminJWTSecret = v
	}
	if v := os.Getenv("BLOG_ADMIN_TOKEN_TTL"); v != "" {
		cfg.AdminTokenTTL = v
	}
	if v := os.Getenv("TRUSTED_PROXIES"); v != "" {
		cfg.TrustedProxies = splitCSV(v)
	}
	if err := validateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func validateConfig(cfg FileConfig) error {
	if strings.TrimSpace(cfg.Port) == "" {
		return errors.New("config: port is required (set in config.yaml or PORT)")
	}
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return errors.New("config: databaseURL is required (set in config.yaml or DATABASE_URL)")
	}
	if cfg.RateLimitPerMinute < 0 {
		return errors.New("config: rateLimitPerMinute must not be negative")
	}
	if cfg.RateLimitPerMinute > 0 && strings.TrimSpace(cfg.RedisAddr) == "" {
		return errors.New("config: redisAddr is required when rateLimitPerMinute is set")
	}
	if _, err := cfg.AdminTTL(); err != nil {
		return err
	}
	return nil
}

// AdminTTL parses AdminTokenTTL.
func (c FileConfig) AdminTTL() (time.Duration, error) {
	raw := strings.TrimSpace(c.AdminTokenTTL)
	if raw == "" {
		return 0, nil
	}
	ttl, err := time.ParseDuration(raw)
	if err != nil || ttl < 0 {
		return 0, fmt.Errorf("config: invalid adminTokenTTL %q", raw)
	}
	return ttl, nil
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
