//-------------------------------------------------------------------------
//
// martgen - Star Schema Data Mart Generator
//
// Copyright (c) 2025 - 2026, dmartlab
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for martgen.
// Configuration is loaded from config files and CLI flags (no environment
// variables). CLI flags take precedence over config file values. The
// resulting Config is constructed once in the CLI layer and passed into
// components explicitly; nothing reads configuration from ambient state.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// DateFormat is the layout used for all configured calendar dates.
const DateFormat = "2006-01-02"

// Config holds all configuration for martgen.
type Config struct {
	// Connection is the PostgreSQL connection string for the warehouse.
	Connection string `mapstructure:"connection"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// DataDir is the directory holding staged CSV files.
	DataDir string `mapstructure:"data_dir"`

	// Generate holds configuration for the generate subcommand.
	Generate GenerateConfig `mapstructure:"generate"`

	// Load holds configuration for the load subcommand.
	Load LoadConfig `mapstructure:"load"`
}

// GenerateConfig holds configuration for data generation.
type GenerateConfig struct {
	// Customers is the number of customer records to generate.
	Customers int `mapstructure:"customers"`

	// Products is the number of product records to generate.
	Products int `mapstructure:"products"`

	// Transactions is the number of sales transaction records to generate.
	Transactions int `mapstructure:"transactions"`

	// StartDate is the first day of the date dimension (YYYY-MM-DD).
	StartDate string `mapstructure:"start_date"`

	// EndDate is the last day of the date dimension (YYYY-MM-DD), inclusive.
	EndDate string `mapstructure:"end_date"`

	// Seed drives all random draws. The same seed and configuration
	// reproduce byte-identical staged output. Zero picks a random seed.
	Seed uint64 `mapstructure:"seed"`

	// WeekendBoost multiplies the sampling weight of weekend dates when
	// drawing transaction dates. 1.0 means uniform.
	WeekendBoost float64 `mapstructure:"weekend_boost"`

	// PremiumBoost multiplies the sampling weight of Premium-segment
	// customers when drawing transaction customers. 1.0 means uniform.
	PremiumBoost float64 `mapstructure:"premium_boost"`
}

// LoadConfig holds configuration for warehouse loading.
type LoadConfig struct {
	// BatchSize is the number of rows committed per transaction.
	BatchSize int `mapstructure:"batch_size"`

	// Workers is the number of concurrent fact-loading workers. It also
	// bounds warehouse connection usage.
	Workers int `mapstructure:"workers"`

	// MaxRetries is the number of times a batch is retried after a
	// transient failure before the run aborts.
	MaxRetries int `mapstructure:"max_retries"`

	// Truncate empties the warehouse tables before loading. Without it
	// the loader refuses to load into non-empty tables.
	Truncate bool `mapstructure:"truncate"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		DataDir:  "data",
		Generate: GenerateConfig{
			Customers:    5000,
			Products:     500,
			Transactions: 85000,
			StartDate:    "2023-01-01",
			EndDate:      "2024-12-31",
			WeekendBoost: 1.0,
			PremiumBoost: 1.0,
		},
		Load: LoadConfig{
			BatchSize:  5000,
			Workers:    4,
			MaxRetries: 3,
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./martgen.yaml
// 3. ~/.config/martgen/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("martgen")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "martgen"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// DateRange parses and validates the configured generation window.
func (g *GenerateConfig) DateRange() (start, end time.Time, err error) {
	start, err = time.Parse(DateFormat, g.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start_date %q: %w", g.StartDate, err)
	}
	end, err = time.Parse(DateFormat, g.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end_date %q: %w", g.EndDate, err)
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("start_date %s is after end_date %s", g.StartDate, g.EndDate)
	}
	return start, end, nil
}

// Validate checks configuration shared by all warehouse commands.
func (c *Config) Validate() error {
	if c.Connection == "" {
		return fmt.Errorf("connection string is required")
	}
	return nil
}

// ValidateGenerate checks configuration required for the generate command.
// Generation never touches the warehouse, so no connection is required.
func (c *Config) ValidateGenerate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if c.Generate.Customers < 1 {
		return fmt.Errorf("generate.customers must be at least 1")
	}
	if c.Generate.Products < 1 {
		return fmt.Errorf("generate.products must be at least 1")
	}
	if c.Generate.Transactions < 1 {
		return fmt.Errorf("generate.transactions must be at least 1")
	}
	if c.Generate.WeekendBoost <= 0 {
		return fmt.Errorf("generate.weekend_boost must be positive")
	}
	if c.Generate.PremiumBoost <= 0 {
		return fmt.Errorf("generate.premium_boost must be positive")
	}
	if _, _, err := c.Generate.DateRange(); err != nil {
		return err
	}
	return nil
}

// ValidateLoad checks configuration required for the load command.
func (c *Config) ValidateLoad() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if c.Load.BatchSize < 1 {
		return fmt.Errorf("load.batch_size must be at least 1")
	}
	if c.Load.Workers < 1 {
		return fmt.Errorf("load.workers must be at least 1")
	}
	if c.Load.MaxRetries < 0 {
		return fmt.Errorf("load.max_retries must be non-negative")
	}
	return nil
}
