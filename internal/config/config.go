// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"tourcost/core/types"
	"tourcost/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Catalog contains catalog source configuration
	Catalog CatalogConfig `json:"catalog"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Server contains HTTP server configuration
	Server ServerConfig `json:"server"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// CatalogConfig contains catalog source settings
type CatalogConfig struct {
	// File is the path to an HCL catalog file
	File string `json:"file,omitempty"`

	// DatabaseDSN is the Postgres DSN for a database-backed catalog
	DatabaseDSN string `json:"database_dsn,omitempty"`

	// DefaultCurrency is the currency assumed for catalog amounts
	DefaultCurrency types.Currency `json:"default_currency"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format (cli, json)
	DefaultFormat string `json:"default_format"`

	// ShowDetails shows the per-side resolution messages
	ShowDetails bool `json:"show_details"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr"`
}

// Default returns a default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	catalogFile := filepath.Join(homeDir, ".tourcost", "catalog.hcl")

	return &Config{
		Version: "1.0",
		Catalog: CatalogConfig{
			File:            catalogFile,
			DefaultCurrency: types.CurrencyEUR,
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
			ShowDetails:   true,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
