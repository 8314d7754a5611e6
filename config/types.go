package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Toggl   TogglConfig   `mapstructure:"toggl"`
	Filter  FilterConfig  `mapstructure:"filter"`
	MySQL   MySQLConfig   `mapstructure:"mysql"`
	Sync    SyncConfig    `mapstructure:"sync"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// TogglConfig holds Toggl API connection details
type TogglConfig struct {
	APIToken    string        `mapstructure:"api_token"`
	BaseURL     string        `mapstructure:"base_url"`
	APIVersion  string        `mapstructure:"api_version"`
	WorkspaceID int64         `mapstructure:"workspace_id"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// FilterConfig contains filter definitions
type FilterConfig struct {
	Default string            `mapstructure:"default"`
	Presets map[string]string `mapstructure:"presets"`
}

// MySQLConfig points togglr sync at a MySQL database
type MySQLConfig struct {
	DSN string `mapstructure:"dsn"`
}

// SyncConfig tunes togglr sync
type SyncConfig struct {
	Concurrency int    `mapstructure:"concurrency"`
	Since       string `mapstructure:"since"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
