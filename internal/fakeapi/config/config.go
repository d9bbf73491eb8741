// Package config handles configuration of the fake backend: defaults, an
// optional JSON file and command-line flags.
package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/taskadmin/internal/flagx"
)

// Config holds runtime settings for the fake backend.
//
//   - Addr: listen address of the HTTP server.
//   - SecretKey: HMAC secret for access tokens. The default is for local use only.
//   - AccessTokenTTL: lifetime of issued tokens.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	Addr           string
	SecretKey      string
	AccessTokenTTL time.Duration
	LogLevel       string
}

func (c *Config) LoadDefaults() {
	c.Addr = ":8000"
	c.SecretKey = "secretKey"
	c.AccessTokenTTL = 30 * time.Minute
	c.LogLevel = "info"
}

type jsonConfig struct {
	Addr           *string `json:"addr"`
	SecretKey      *string `json:"secret_key"`
	AccessTokenTTL *string `json:"access_token_ttl"`
	LogLevel       *string `json:"log_level"`
}

func parseJSON(cfg *Config, path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if jc.Addr != nil {
		cfg.Addr = *jc.Addr
	}
	if jc.SecretKey != nil {
		cfg.SecretKey = *jc.SecretKey
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.AccessTokenTTL != nil {
		d, err := time.ParseDuration(*jc.AccessTokenTTL)
		if err != nil {
			return fmt.Errorf("access_token_ttl: %w", err)
		}
		cfg.AccessTokenTTL = d
	}
	return nil
}

func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-addr", "-secret", "-ttl", "-log"})

	fs := flag.NewFlagSet("fakeapi", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	fs.StringVar(&cfg.SecretKey, "secret", cfg.SecretKey, "token signing secret")
	fs.DurationVar(&cfg.AccessTokenTTL, "ttl", cfg.AccessTokenTTL, "access token lifetime")
	fs.StringVar(&cfg.LogLevel, "log", cfg.LogLevel, "log level")

	return fs.Parse(args)
}

// LoadConfig applies defaults, then the JSON file given with -c/-config,
// then flags.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, flagx.ConfigFileFlag()); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, os.Args[1:]); err != nil {
		return nil, err
	}
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("secret key must not be empty")
	}
	return cfg, nil
}
