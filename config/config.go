package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"github.com/s0up4200/togglr/toggl"
)

// AppName names the config directory and the environment prefix
const AppName = "togglr"

// ErrMissingToken is returned when no API token is configured
var ErrMissingToken = errors.New("toggl.api_token is required")

// Load loads the configuration. An explicit path must exist; otherwise
// config.yaml is looked up in the current directory, the XDG config directory
// and /etc, and a missing file is not an error. TOGGLR_* variables override
// file values, e.g. TOGGLR_TOGGL_API_TOKEN.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(AppName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		for _, dir := range SearchPaths() {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// SearchPaths lists the directories searched for config.yaml, in order
func SearchPaths() []string {
	return []string{
		".",
		filepath.Join(xdg.ConfigHome, AppName),
		filepath.Join("/etc", AppName),
	}
}

// setDefaults sets default configuration values. Every key needs a default
// so that environment variables are picked up by Unmarshal.
func setDefaults(v *viper.Viper) {
	// Toggl defaults
	v.SetDefault("toggl.api_token", "")
	v.SetDefault("toggl.base_url", toggl.DefaultBaseURL)
	v.SetDefault("toggl.api_version", "v9")
	v.SetDefault("toggl.workspace_id", 0)
	v.SetDefault("toggl.timeout", toggl.DefaultTimeout)

	v.SetDefault("filter.default", "")

	v.SetDefault("mysql.dsn", "")

	v.SetDefault("sync.concurrency", 4)
	v.SetDefault("sync.since", "last month")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if _, ok := toggl.ParseVersion(cfg.Toggl.APIVersion); !ok {
		return fmt.Errorf("invalid toggl.api_version: %s (must be 'v8' or 'v9')", cfg.Toggl.APIVersion)
	}

	if cfg.Toggl.WorkspaceID < 0 {
		return fmt.Errorf("invalid toggl.workspace_id: %d", cfg.Toggl.WorkspaceID)
	}

	if cfg.Toggl.Timeout < 0 {
		return fmt.Errorf("invalid toggl.timeout: %s", cfg.Toggl.Timeout)
	}

	if cfg.Sync.Concurrency < 1 {
		return fmt.Errorf("invalid sync.concurrency: %d (must be at least 1)", cfg.Sync.Concurrency)
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}

// RequireToken reports ErrMissingToken unless an API token is configured.
// Commands that do not talk to Toggl skip this check.
func (c *Config) RequireToken() error {
	token := strings.TrimSpace(c.Toggl.APIToken)
	if token == "" || token == "your-api-token-here" {
		return ErrMissingToken
	}
	return nil
}

// Version returns the configured API version
func (c *Config) Version() toggl.Version {
	v, _ := toggl.ParseVersion(c.Toggl.APIVersion)
	return v
}
