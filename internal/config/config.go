// Package config provides configuration loading and validation for the CLI and preview server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Backends a session can persist through
const (
	BackendAPI      = "api"
	BackendPostgres = "postgres"
)

// Defaults applied by MergeWithDefaults
const (
	DefaultBackend  = BackendAPI
	DefaultTemplate = "classic"
	DefaultPort     = 8080
	DefaultLogLevel = "info"
)

// Config represents the configuration that can be loaded from a JSON file and the environment.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Collaborators
	APIBaseURL    string `json:"api_base_url,omitempty" validate:"omitempty,url"`    // Portfolio REST API root
	APIToken      string `json:"api_token,omitempty"`                                // Bearer token for the API
	PublicBaseURL string `json:"public_base_url,omitempty" validate:"omitempty,url"` // Prefix for published pages
	DatabaseURL   string `json:"database_url,omitempty"`                             // PostgreSQL connection URL
	UserID        string `json:"user_id,omitempty" validate:"omitempty,uuid"`        // Owner of portfolios and drafts in postgres mode
	Backend       string `json:"backend,omitempty" validate:"omitempty,oneof=api postgres"`

	// Editor defaults
	Template string `json:"template,omitempty" validate:"omitempty,alphanum,max=64"` // Template key
	Title    string `json:"title,omitempty" validate:"max=200"`                      // Draft title

	// Server
	Port     int    `json:"port,omitempty" validate:"gte=0,lte=65535"`
	LogLevel string `json:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`

	Verbose bool `json:"verbose,omitempty"` // Print boxed summaries
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv reads configuration from environment variables. Unset variables leave fields empty.
func FromEnv() (*Config, error) {
	cfg := &Config{
		APIBaseURL:    os.Getenv("PORTFOLIO_API_URL"),
		APIToken:      os.Getenv("PORTFOLIO_API_TOKEN"),
		PublicBaseURL: os.Getenv("PUBLIC_BASE_URL"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		UserID:        os.Getenv("PORTFOLIO_USER_ID"),
		Backend:       os.Getenv("PORTFOLIO_BACKEND"),
		Template:      os.Getenv("PORTFOLIO_TEMPLATE"),
		Title:         os.Getenv("PORTFOLIO_TITLE"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %v", err)
		}
		cfg.Port = port
	}

	return cfg, nil
}

// Validate checks that the configuration has valid values.
// Required collaborators are checked by RequireBackend once the command knows it needs one.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// RequireBackend checks that the selected backend has what it needs to connect
func (c *Config) RequireBackend() error {
	switch c.Backend {
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: 'database_url' is required for the postgres backend")
		}
		if c.UserID == "" {
			return fmt.Errorf("config error: 'user_id' is required for the postgres backend")
		}
	case BackendAPI, "":
		if c.APIBaseURL == "" {
			return fmt.Errorf("config error: 'api_base_url' is required for the api backend")
		}
	default:
		return fmt.Errorf("config error: unknown backend %q", c.Backend)
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults,
// then from built-in defaults for backend, template, port and log level.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.APIBaseURL == "" {
		result.APIBaseURL = defaults.APIBaseURL
	}
	if result.APIToken == "" {
		result.APIToken = defaults.APIToken
	}
	if result.PublicBaseURL == "" {
		result.PublicBaseURL = defaults.PublicBaseURL
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.UserID == "" {
		result.UserID = defaults.UserID
	}
	if result.Backend == "" {
		result.Backend = orDefault(defaults.Backend, DefaultBackend)
	}
	if result.Template == "" {
		result.Template = orDefault(defaults.Template, DefaultTemplate)
	}
	if result.Title == "" {
		result.Title = defaults.Title
	}
	if result.LogLevel == "" {
		result.LogLevel = orDefault(defaults.LogLevel, DefaultLogLevel)
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
		if result.Port == 0 {
			result.Port = DefaultPort
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
