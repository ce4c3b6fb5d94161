package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"stockwatch/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Backend struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"backend"`
	Watch struct {
		Symbol      string `yaml:"symbol"`
		Interval    string `yaml:"interval"`
		PollSeconds int    `yaml:"poll_seconds"`
		Mock        bool   `yaml:"mock"`
	} `yaml:"watch"`
	Directory struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"directory"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("STOCKWATCH_BASE_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := os.Getenv("STOCKWATCH_SYMBOL"); v != "" {
		cfg.Watch.Symbol = v
	}
	if v := os.Getenv("STOCKWATCH_INTERVAL"); v != "" {
		cfg.Watch.Interval = v
	}
	if v := os.Getenv("STOCKWATCH_POLL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Watch.PollSeconds = n
		}
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.Backend.BaseURL == "" {
		cfg.Backend.BaseURL = "http://localhost:5000"
	}
	if cfg.Watch.Symbol == "" {
		cfg.Watch.Symbol = "AAPL"
	}
	if cfg.Watch.Interval == "" {
		cfg.Watch.Interval = "1d"
	}
	if cfg.Watch.PollSeconds == 0 {
		cfg.Watch.PollSeconds = 30
	}
	if cfg.Directory.RefreshCron == "" {
		cfg.Directory.RefreshCron = "0 0 * * * *"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/stockwatch.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url is required")
	}
	if c.Watch.Symbol == "" {
		return fmt.Errorf("watch.symbol is required")
	}
	if _, err := model.ParseInterval(c.Watch.Interval); err != nil {
		return fmt.Errorf("watch.interval: %w", err)
	}
	if c.Watch.PollSeconds <= 0 {
		return fmt.Errorf("watch.poll_seconds must be positive")
	}
	return nil
}
