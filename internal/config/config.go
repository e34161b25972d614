// Package config loads the application configuration from a YAML file.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Quota defaults.
const (
	// DefaultDailyLimit caps distinct contacts a user may unlock per UTC day.
	DefaultDailyLimit = 50
	// DefaultPageSize is the number of contacts per page.
	DefaultPageSize = 10
)

// Config is the root application configuration.
type Config struct {
	Listen   string      `yaml:"listen"`   // HTTP listen address.
	Database string      `yaml:"database"` // GORM DSN, sqlite file or postgres URL.
	RedisURL string      `yaml:"redis-url"` // Optional Redis URL for the count cache.
	JWT      JWTConfig   `yaml:"jwt"`
	Quota    QuotaConfig `yaml:"quota"`
	Log      LogConfig   `yaml:"log"`
}

// JWTConfig configures user token signing.
type JWTConfig struct {
	Secret string        `yaml:"secret"` // HS256 signing secret.
	Expiry time.Duration `yaml:"expiry"` // Token lifetime.
}

// QuotaConfig configures the daily contact quota.
type QuotaConfig struct {
	DailyLimit int `yaml:"daily-limit"` // Distinct contact unlocks per UTC day.
	PageSize   int `yaml:"page-size"`   // Contacts per page.
}

// LogConfig configures logging output.
type LogConfig struct {
	Level      string `yaml:"level"`        // logrus level name.
	File       string `yaml:"file"`         // Log file path; empty logs to stderr.
	MaxSizeMB  int    `yaml:"max-size-mb"`  // Rotate after this size.
	MaxBackups int    `yaml:"max-backups"`  // Rotated files to keep.
	MaxAgeDays int    `yaml:"max-age-days"` // Days to retain rotated files.
}

// Load reads and validates a configuration file, applying defaults.
func Load(path string) (Config, error) {
	data, errRead := os.ReadFile(path)
	if errRead != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, errRead)
	}

	var cfg Config
	if errDecode := yaml.Unmarshal(data, &cfg); errDecode != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, errDecode)
	}

	applyDefaults(&cfg)
	if errValidate := cfg.validate(); errValidate != nil {
		return Config{}, errValidate
	}
	return cfg, nil
}

// Default returns a configuration with all defaults applied, suitable for
// tests and local runs without a config file.
func Default() Config {
	var cfg Config
	applyDefaults(&cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.Listen) == "" {
		cfg.Listen = ":8318"
	}
	if strings.TrimSpace(cfg.Database) == "" {
		cfg.Database = "agencydesk.db"
	}
	if cfg.JWT.Expiry <= 0 {
		cfg.JWT.Expiry = 24 * time.Hour
	}
	if cfg.Quota.DailyLimit <= 0 {
		cfg.Quota.DailyLimit = DefaultDailyLimit
	}
	if cfg.Quota.PageSize <= 0 {
		cfg.Quota.PageSize = DefaultPageSize
	}
	if strings.TrimSpace(cfg.Log.Level) == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.MaxSizeMB <= 0 {
		cfg.Log.MaxSizeMB = 100
	}
	if cfg.Log.MaxBackups <= 0 {
		cfg.Log.MaxBackups = 3
	}
	if cfg.Log.MaxAgeDays <= 0 {
		cfg.Log.MaxAgeDays = 28
	}
}

func (c Config) validate() error {
	if c.Quota.PageSize > c.Quota.DailyLimit {
		return fmt.Errorf("config: page size %d exceeds daily limit %d", c.Quota.PageSize, c.Quota.DailyLimit)
	}
	return nil
}
