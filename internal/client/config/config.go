package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/taskadmin/internal/client/export"
)

const (
	DefaultBackendURL   = "http://127.0.0.1:8000"
	DefaultDatabasePath = "taskadmin.db"
	DefaultPageSize     = 10
	DefaultLogLevel     = "info"
)

// Config holds runtime settings for the taskadmin CLI.
type Config struct {
	BackendURL   string
	DatabasePath string
	PageSize     int
	LogLevel     string
	Export       export.Settings
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BackendURL = DefaultBackendURL
	c.DatabasePath = DefaultDatabasePath
	c.PageSize = DefaultPageSize
	c.LogLevel = DefaultLogLevel
	c.Export = export.Settings{Region: "us-east-1"}
}

func (c *Config) validate() error {
	if c.BackendURL == "" {
		return errors.New("backend url must not be empty")
	}
	if c.DatabasePath == "" {
		return errors.New("database path must not be empty")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("page size must be positive, got %d", c.PageSize)
	}
	return nil
}

// LoadConfig applies defaults, then the config file, the environment and
// the command-line flags. Later sources take precedence over earlier ones.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseFile(cfg); err != nil {
		return nil, err
	}
	parseEnv(cfg, os.LookupEnv)
	if err := parseFlags(cfg, os.Args[1:]); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
