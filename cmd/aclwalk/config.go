package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tmcnab/aclwalk/pkg/authorization"
)

// Config holds the resolver CLI configuration
type Config struct {
	// RootDir is the directory tree containing the rule files
	RootDir string `json:"root_dir"`

	// CacheSize bounds the permission lookup cache (entries)
	CacheSize int `json:"cache_size,omitempty"`

	// Logging settings
	AppLogPath   string `json:"app_log_path,omitempty"`   // Optional: application log file
	AuditLogPath string `json:"audit_log_path,omitempty"` // Optional: decision log file
	LogLevel     string `json:"log_level,omitempty"`      // debug, info, warn, error
}

// LoadConfig loads configuration from a JSON file
func LoadConfig(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := json.Unmarshal(data, config); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	// Convert relative paths to absolute paths based on config file location
	configDir := filepath.Dir(path)
	if config.RootDir != "" && !filepath.IsAbs(config.RootDir) {
		config.RootDir = filepath.Join(configDir, config.RootDir)
	}
	if config.AppLogPath != "" && !filepath.IsAbs(config.AppLogPath) {
		config.AppLogPath = filepath.Join(configDir, config.AppLogPath)
	}
	if config.AuditLogPath != "" && !filepath.IsAbs(config.AuditLogPath) {
		config.AuditLogPath = filepath.Join(configDir, config.AuditLogPath)
	}

	config.applyDefaults()
	return nil
}

func (c *Config) applyDefaults() {
	if c.CacheSize == 0 {
		c.CacheSize = authorization.DefaultCacheSize
	}
}
