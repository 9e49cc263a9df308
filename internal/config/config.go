// Package config loads service configuration from defaults, an optional
// config.yaml, a .env file and the environment, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Dataset and rule sources
const (
	SourceStatic   = "static"
	SourceMemory   = "memory"
	SourcePostgres = "postgres"
)

// Config is the resolved configuration
type Config struct {
	Port           string        `mapstructure:"port"`
	DatabaseURL    string        `mapstructure:"database_url"`
	DatasetSource  string        `mapstructure:"dataset_source"`
	RulesSource    string        `mapstructure:"rules_source"`
	ResponseDelay  time.Duration `mapstructure:"response_delay"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`

	LogLevel        string `mapstructure:"log_level"`
	ErrorSampleRate int    `mapstructure:"error_sample_rate"`
	OTELEnabled     bool   `mapstructure:"otel_enabled"`
	OTELServiceName string `mapstructure:"otel_service_name"`
}

var defaults = map[string]any{
	"port":              "8080",
	"database_url":      "",
	"dataset_source":    SourceStatic,
	"rules_source":      SourceMemory,
	"response_delay":    "1500ms",
	"request_timeout":   "60s",
	"log_level":         "INFO",
	"error_sample_rate": 100,
	"otel_enabled":      false,
	"otel_service_name": "erpassistant",
}

// Load reads .env and config.yaml from the working directory or ./configs
func Load() (*Config, error) {
	return LoadFrom(".env", ".", "./configs")
}

// LoadFrom reads envFile, when it exists, and the first config.yaml found in
// configPaths. Variables already set in the environment win over envFile.
func LoadFrom(envFile string, configPaths ...string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("error reading %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range configPaths {
		v.AddConfigPath(p)
	}

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.DatasetSource = strings.ToLower(cfg.DatasetSource)
	cfg.RulesSource = strings.ToLower(cfg.RulesSource)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for consistency
func (c *Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, errors.New("port is required"))
	}
	if c.DatasetSource != SourceStatic && c.DatasetSource != SourcePostgres {
		errs = append(errs, fmt.Errorf("dataset_source must be %q or %q, got %q", SourceStatic, SourcePostgres, c.DatasetSource))
	}
	if c.RulesSource != SourceMemory && c.RulesSource != SourcePostgres {
		errs = append(errs, fmt.Errorf("rules_source must be %q or %q, got %q", SourceMemory, SourcePostgres, c.RulesSource))
	}
	if c.UsesPostgres() && c.DatabaseURL == "" {
		errs = append(errs, errors.New("database_url is required when a postgres source is selected"))
	}
	if c.ResponseDelay < 0 {
		errs = append(errs, errors.New("response_delay must not be negative"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request_timeout must be positive"))
	} else if c.ResponseDelay >= c.RequestTimeout {
		errs = append(errs, fmt.Errorf("response_delay %s must be shorter than request_timeout %s", c.ResponseDelay, c.RequestTimeout))
	}
	if c.ErrorSampleRate < 1 {
		errs = append(errs, errors.New("error_sample_rate must be at least 1"))
	}

	return errors.Join(errs...)
}

// UsesPostgres reports whether any source reads from the database
func (c *Config) UsesPostgres() bool {
	return c.DatasetSource == SourcePostgres || c.RulesSource == SourcePostgres
}
