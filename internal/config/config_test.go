package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom("", t.TempDir())
	if err != nil {
		t.Fatalf("LoadFrom() failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.DatasetSource != SourceStatic || cfg.RulesSource != SourceMemory {
		t.Errorf("sources = %q/%q, want static/memory", cfg.DatasetSource, cfg.RulesSource)
	}
	if cfg.ResponseDelay != 1500*time.Millisecond {
		t.Errorf("ResponseDelay = %v, want 1.5s", cfg.ResponseDelay)
	}
	if cfg.RequestTimeout != time.Minute {
		t.Errorf("RequestTimeout = %v, want 1m", cfg.RequestTimeout)
	}
	if cfg.ErrorSampleRate != 100 {
		t.Errorf("ErrorSampleRate = %d, want 100", cfg.ErrorSampleRate)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.yaml", "port: \"9090\"\nresponse_delay: 250ms\nlog_level: debug\n")

	cfg, err := LoadFrom("", dir)
	if err != nil {
		t.Fatalf("LoadFrom() failed: %v", err)
	}

	if cfg.Port != "9090" || cfg.ResponseDelay != 250*time.Millisecond || cfg.LogLevel != "debug" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadEnvironmentWins(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.yaml", "port: \"9090\"\n")
	t.Setenv("PORT", "7070")
	t.Setenv("RESPONSE_DELAY", "0s")

	cfg, err := LoadFrom("", dir)
	if err != nil {
		t.Fatalf("LoadFrom() failed: %v", err)
	}

	if cfg.Port != "7070" {
		t.Errorf("Port = %q, want the environment value", cfg.Port)
	}
	if cfg.ResponseDelay != 0 {
		t.Errorf("ResponseDelay = %v, want 0", cfg.ResponseDelay)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := writeFile(t, dir, ".env", "OTEL_SERVICE_NAME=from-dotenv\n")
	t.Cleanup(func() { os.Unsetenv("OTEL_SERVICE_NAME") })

	cfg, err := LoadFrom(envFile, dir)
	if err != nil {
		t.Fatalf("LoadFrom() failed: %v", err)
	}
	if cfg.OTELServiceName != "from-dotenv" {
		t.Errorf("OTELServiceName = %q, want from-dotenv", cfg.OTELServiceName)
	}
}

func TestLoadMissingDotEnvIsFine(t *testing.T) {
	if _, err := LoadFrom(filepath.Join(t.TempDir(), ".env"), t.TempDir()); err != nil {
		t.Errorf("LoadFrom() with a missing .env failed: %v", err)
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Port:            "8080",
			DatasetSource:   SourceStatic,
			RulesSource:     SourceMemory,
			RequestTimeout:  time.Second,
			ErrorSampleRate: 1,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"unknown dataset source", func(c *Config) { c.DatasetSource = "mongo" }, "dataset_source"},
		{"unknown rules source", func(c *Config) { c.RulesSource = "redis" }, "rules_source"},
		{"postgres without url", func(c *Config) { c.DatasetSource = SourcePostgres }, "database_url"},
		{"postgres with url", func(c *Config) { c.RulesSource = SourcePostgres; c.DatabaseURL = "postgres://x" }, ""},
		{"negative delay", func(c *Config) { c.ResponseDelay = -time.Second }, "response_delay"},
		{"zero timeout", func(c *Config) { c.RequestTimeout = 0 }, "request_timeout"},
		{"delay equal to timeout", func(c *Config) { c.ResponseDelay = time.Second }, "shorter than request_timeout"},
		{"delay longer than timeout", func(c *Config) { c.ResponseDelay = 2 * time.Second }, "shorter than request_timeout"},
		{"delay within timeout", func(c *Config) { c.ResponseDelay = 500 * time.Millisecond }, ""},
		{"zero sample rate", func(c *Config) { c.ErrorSampleRate = 0 }, "error_sample_rate"},
		{"missing port", func(c *Config) { c.Port = "" }, "port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error mentioning %q", err, tt.wantErr)
			}
		})
	}
}
