package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/taskadmin/internal/client/export"
	"github.com/dmitrijs2005/taskadmin/internal/flagx"
	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape. Pointer fields distinguish "absent"
// from an explicit zero so that absent keys keep the defaults.
type fileConfig struct {
	BackendURL   *string          `json:"backend_url" yaml:"backend_url"`
	DatabasePath *string          `json:"database_path" yaml:"database_path"`
	PageSize     *int             `json:"page_size" yaml:"page_size"`
	LogLevel     *string          `json:"log_level" yaml:"log_level"`
	Export       *export.Settings `json:"export" yaml:"export"`
}

// parseFile overlays cfg with the file named by -c/-config, if any.
func parseFile(cfg *Config) error {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return nil
	}
	return loadFile(cfg, path)
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc fileConfig) apply(cfg *Config) {
	if fc.BackendURL != nil {
		cfg.BackendURL = *fc.BackendURL
	}
	if fc.DatabasePath != nil {
		cfg.DatabasePath = *fc.DatabasePath
	}
	if fc.PageSize != nil {
		cfg.PageSize = *fc.PageSize
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.Export != nil {
		e := *fc.Export
		if e.Region == "" {
			e.Region = cfg.Export.Region
		}
		cfg.Export = e
	}
}
