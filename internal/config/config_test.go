package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/revisor/internal/config"
)

const baseConfig = `
shutdown_timeout = "30s"
version = "0.1.0"

[server]
host = "0.0.0.0"
port = 8080

[database]
host = "localhost"
name = "revisor"
user = "revisor"
password = "revisor"

[storage]
container_name = "reviews"
connection_string = "UseDevelopmentStorage=true"

[api]
base_path = "/api"
max_upload_size = "20MB"

[api.pagination]
default_page_size = 25
max_page_size = 50

[oracle]
api_key = "sk-test"
model = "claude-test"
max_tokens = 1500
timeout = "90s"

[review]
workers = 6
max_record_age = 60
`

const overlayConfig = `
[server]
port = 9090

[oracle]
model = "claude-overlay"

[review]
workers = 2
`

func writeConfig(t *testing.T, dir, filename, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", filename, err)
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(orig) })
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"REVISOR_ENV",
		"REVISOR_LOG_LEVEL",
		"ANTHROPIC_API_KEY",
		"REVISOR_ORACLE_MODEL",
		"REVISOR_REVIEW_WORKERS",
		"REVISOR_REVIEW_MAX_RECORD_AGE",
		"REVISOR_SERVER_PORT",
		"REVISOR_VERSION",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"server port", cfg.Server.Port, 8080},
		{"database name", cfg.Database.Name, "revisor"},
		{"database port default", cfg.Database.Port, 5432},
		{"storage container", cfg.Storage.ContainerName, "reviews"},
		{"api base path", cfg.API.BasePath, "/api"},
		{"max upload bytes", cfg.API.MaxUploadSizeBytes(), int64(20 * 1024 * 1024)},
		{"page size", cfg.API.Pagination.DefaultPageSize, 25},
		{"oracle model", cfg.Oracle.Model, "claude-test"},
		{"oracle max tokens", cfg.Oracle.MaxTokens, 1500},
		{"oracle timeout", cfg.Oracle.TimeoutDuration(), 90 * time.Second},
		{"review workers", cfg.Review.Workers, 6},
		{"max record age", cfg.Review.MaxRecordAge, 60},
		{"shutdown timeout", cfg.ShutdownTimeoutDuration(), 30 * time.Second},
		{"log level default", cfg.Level(), slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestLoadWithOverlay(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)
	writeConfig(t, dir, "config.staging.toml", overlayConfig)
	chdir(t, dir)

	t.Setenv(config.EnvRevisorEnv, "staging")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Env() != "staging" {
		t.Errorf("env: got %s, want staging", cfg.Env())
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server port: got %d, want 9090", cfg.Server.Port)
	}
	if cfg.Oracle.Model != "claude-overlay" {
		t.Errorf("oracle model: got %s, want claude-overlay", cfg.Oracle.Model)
	}
	if cfg.Oracle.APIKey != "sk-test" {
		t.Errorf("oracle api key: got %s, want sk-test", cfg.Oracle.APIKey)
	}
	if cfg.Review.Workers != 2 {
		t.Errorf("review workers: got %d, want 2", cfg.Review.Workers)
	}
	if cfg.Review.MaxRecordAge != 60 {
		t.Errorf("max record age: got %d, want 60", cfg.Review.MaxRecordAge)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)
	chdir(t, dir)

	t.Setenv("REVISOR_VERSION", "2.0.0")
	t.Setenv("REVISOR_SERVER_PORT", "3000")
	t.Setenv("ANTHROPIC_API_KEY", "sk-env")
	t.Setenv("REVISOR_REVIEW_MAX_RECORD_AGE", "120")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Version != "2.0.0" {
		t.Errorf("version: got %s, want 2.0.0", cfg.Version)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("server port: got %d, want 3000", cfg.Server.Port)
	}
	if cfg.Oracle.APIKey != "sk-env" {
		t.Errorf("api key: got %s, want sk-env", cfg.Oracle.APIKey)
	}
	if cfg.Review.MaxRecordAge != 120 {
		t.Errorf("max record age: got %d, want 120", cfg.Review.MaxRecordAge)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing api key",
			content: strings.Replace(baseConfig, `api_key = "sk-test"`, "", 1),
			wantErr: "api_key required",
		},
		{
			name:    "invalid workers",
			content: strings.Replace(baseConfig, "workers = 6", "workers = -1", 1),
			wantErr: "workers must be positive",
		},
		{
			name:    "invalid shutdown timeout",
			content: strings.Replace(baseConfig, `shutdown_timeout = "30s"`, `shutdown_timeout = "soon"`, 1),
			wantErr: "shutdown_timeout",
		},
		{
			name:    "invalid log level",
			content: "log_level = \"loud\"\n" + baseConfig,
			wantErr: "invalid log_level",
		},
		{
			name:    "nested base path",
			content: strings.Replace(baseConfig, `base_path = "/api"`, `base_path = "/api/v1"`, 1),
			wantErr: "invalid base_path",
		},
		{
			name:    "invalid upload size",
			content: strings.Replace(baseConfig, `max_upload_size = "20MB"`, `max_upload_size = "lots"`, 1),
			wantErr: "invalid max_upload_size",
		},
		{
			name:    "malformed toml",
			content: "[server\nport = 1",
			wantErr: "parse config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			dir := t.TempDir()
			writeConfig(t, dir, config.BaseConfigFile, tt.content)
			chdir(t, dir)

			_, err := config.Load()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoadOffline(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	chdir(t, dir)

	t.Setenv("ANTHROPIC_API_KEY", "sk-offline")

	cfg, err := config.LoadOffline()
	if err != nil {
		t.Fatalf("load offline: %v", err)
	}

	if cfg.Oracle.APIKey != "sk-offline" {
		t.Errorf("api key: got %s, want sk-offline", cfg.Oracle.APIKey)
	}
	if cfg.Review.Workers != 4 {
		t.Errorf("workers: got %d, want 4", cfg.Review.Workers)
	}
	if cfg.Review.MaxRecordAge != 90 {
		t.Errorf("max record age: got %d, want 90", cfg.Review.MaxRecordAge)
	}
}
