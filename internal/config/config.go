// Package config loads execdash settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/emiliopalmerini/execdash/internal/adapters/otel"
)

const (
	WarehouseBigQuery = "bigquery"
	WarehouseLibSQL   = "libsql"
)

// DefaultEnvFiles are loaded in order; variables already set win.
var DefaultEnvFiles = []string{".env.local", ".env"}

// Error reports missing or invalid configuration.
type Error struct {
	Key string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("configuration error: %s: %v", e.Key, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// BigQuery holds the warehouse connection settings. The variable names are
// shared with the Google SDKs, so they carry no prefix.
type BigQuery struct {
	ProjectID       string `envconfig:"GOOGLE_CLOUD_PROJECT_ID"`
	CredentialsFile string `envconfig:"GOOGLE_APPLICATION_CREDENTIALS"`
	Dataset         string `envconfig:"BIGQUERY_DATASET" default:"analytics_ecommerce_ecommerce"`
	Location        string `envconfig:"BIGQUERY_LOCATION" default:"US"`
}

type Config struct {
	Port            int           `envconfig:"PORT" default:"8080"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	Warehouse       string `envconfig:"WAREHOUSE" default:"bigquery"`
	LibSQLURL       string `envconfig:"LIBSQL_URL" default:"file:execdash.db"`
	LibSQLAuthToken string `envconfig:"LIBSQL_AUTH_TOKEN"`

	QueryTimeout   time.Duration `envconfig:"QUERY_TIMEOUT" default:"30s"`
	GrossMarginPct float64       `envconfig:"GROSS_MARGIN_PCT" default:"30"`
	MaxWindowDays  int           `envconfig:"MAX_WINDOW_DAYS" default:"365"`
	MaxChannels    int           `envconfig:"MAX_CHANNELS" default:"50"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogPretty bool   `envconfig:"LOG_PRETTY" default:"false"`

	OTel otel.Config `envconfig:"OTEL"`

	BigQuery BigQuery `ignored:"true"`
}

// Addr is the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load reads env files, then the environment, and validates the result.
func Load(envFiles ...string) (*Config, error) {
	return load(envFiles, nil)
}

// LoadLocal is Load with the warehouse forced to the local libsql database,
// for commands that only ever touch the sample warehouse.
func LoadLocal(envFiles ...string) (*Config, error) {
	return load(envFiles, func(c *Config) { c.Warehouse = WarehouseLibSQL })
}

func load(envFiles []string, override func(*Config)) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = DefaultEnvFiles
	}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return nil, &Error{Key: f, Err: err}
		}
	}

	var cfg Config
	if err := envconfig.Process("EXECDASH", &cfg); err != nil {
		return nil, envError(err)
	}
	if err := envconfig.Process("", &cfg.BigQuery); err != nil {
		return nil, envError(err)
	}
	if override != nil {
		override(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func envError(err error) error {
	var pe *envconfig.ParseError
	if errors.As(err, &pe) {
		return &Error{Key: pe.KeyName, Err: pe.Err}
	}
	return &Error{Key: "env", Err: err}
}

// Validate checks cross-field rules and expands the credentials path.
func (c *Config) Validate() error {
	switch c.Warehouse {
	case WarehouseBigQuery:
		if c.BigQuery.ProjectID == "" {
			return &Error{Key: "GOOGLE_CLOUD_PROJECT_ID", Err: errors.New("required when EXECDASH_WAREHOUSE=bigquery")}
		}
		if c.BigQuery.CredentialsFile != "" {
			path, err := ExpandPath(c.BigQuery.CredentialsFile)
			if err != nil {
				return &Error{Key: "GOOGLE_APPLICATION_CREDENTIALS", Err: err}
			}
			if _, err := os.Stat(path); err != nil {
				return &Error{Key: "GOOGLE_APPLICATION_CREDENTIALS", Err: err}
			}
			c.BigQuery.CredentialsFile = path
		}
	case WarehouseLibSQL:
		if c.LibSQLURL == "" {
			return &Error{Key: "EXECDASH_LIBSQL_URL", Err: errors.New("required when EXECDASH_WAREHOUSE=libsql")}
		}
	default:
		return &Error{Key: "EXECDASH_WAREHOUSE", Err: fmt.Errorf("unknown warehouse %q", c.Warehouse)}
	}

	if c.QueryTimeout <= 0 {
		return &Error{Key: "EXECDASH_QUERY_TIMEOUT", Err: errors.New("must be positive")}
	}
	if c.GrossMarginPct < 0 || c.GrossMarginPct > 100 {
		return &Error{Key: "EXECDASH_GROSS_MARGIN_PCT", Err: errors.New("must be between 0 and 100")}
	}
	if c.MaxWindowDays <= 0 {
		return &Error{Key: "EXECDASH_MAX_WINDOW_DAYS", Err: errors.New("must be positive")}
	}
	if c.MaxChannels <= 0 {
		return &Error{Key: "EXECDASH_MAX_CHANNELS", Err: errors.New("must be positive")}
	}
	return nil
}

// ExpandPath resolves a leading ~ and any $HOME reference to the user's
// home directory.
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") && !strings.Contains(path, "$HOME") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	if strings.HasPrefix(path, "~/") {
		path = filepath.Join(home, path[2:])
	}
	return strings.ReplaceAll(path, "$HOME", home), nil
}
