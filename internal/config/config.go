// Package config loads the service configuration from TOML files and the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/revisor/internal/oracle"
	"github.com/JaimeStill/revisor/pkg/database"
	"github.com/JaimeStill/revisor/pkg/envvar"
	"github.com/JaimeStill/revisor/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvRevisorEnv             = "REVISOR_ENV"
	EnvRevisorLogLevel        = "REVISOR_LOG_LEVEL"
	EnvRevisorShutdownTimeout = "REVISOR_SHUTDOWN_TIMEOUT"
	EnvRevisorVersion         = "REVISOR_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "REVISOR_DB_HOST",
	Port:            "REVISOR_DB_PORT",
	Name:            "REVISOR_DB_NAME",
	User:            "REVISOR_DB_USER",
	Password:        "REVISOR_DB_PASSWORD",
	SSLMode:         "REVISOR_DB_SSL_MODE",
	MaxOpenConns:    "REVISOR_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "REVISOR_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "REVISOR_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "REVISOR_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "REVISOR_STORAGE_CONTAINER_NAME",
	ConnectionString: "REVISOR_STORAGE_CONNECTION_STRING",
}

var oracleEnv = &oracle.Env{
	APIKey:     "ANTHROPIC_API_KEY",
	Model:      "REVISOR_ORACLE_MODEL",
	MaxTokens:  "REVISOR_ORACLE_MAX_TOKENS",
	Timeout:    "REVISOR_ORACLE_TIMEOUT",
	BaseURL:    "REVISOR_ORACLE_BASE_URL",
	MaxRetries: "REVISOR_ORACLE_MAX_RETRIES",
}

// Config is the root configuration for the Revisor service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Database        database.Config `toml:"database"`
	Storage         storage.Config  `toml:"storage"`
	API             APIConfig       `toml:"api"`
	Oracle          oracle.Config   `toml:"oracle"`
	Review          ReviewConfig    `toml:"review"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	LogLevel        string          `toml:"log_level"`
	Version         string          `toml:"version"`

	level slog.Level
}

// Level is the parsed log_level. Valid after Load.
func (c *Config) Level() slog.Level {
	return c.level
}

// Env returns the REVISOR_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvRevisorEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes every section. Without a config.toml, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg, err := read()
	if err != nil {
		return nil, err
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// LoadOffline is Load for the batch command: only the oracle and review
// sections are finalized, so no database or storage settings are required.
func LoadOffline() (*Config, error) {
	cfg, err := read()
	if err != nil {
		return nil, err
	}

	if err := cfg.Oracle.Finalize(oracleEnv); err != nil {
		return nil, fmt.Errorf("finalize config: oracle: %w", err)
	}
	if err := cfg.Review.Finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: review: %w", err)
	}

	return cfg, nil
}

// LoadDatabase reads the same files as Load but finalizes only the database
// section, for tools that need nothing else.
func LoadDatabase() (*database.Config, error) {
	cfg, err := read()
	if err != nil {
		return nil, err
	}

	if err := cfg.Database.Finalize(databaseEnv); err != nil {
		return nil, fmt.Errorf("finalize config: database: %w", err)
	}

	return &cfg.Database, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.LogLevel != "" {
		c.LogLevel = overlay.LogLevel
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.API.Merge(&overlay.API)
	c.Oracle.Merge(&overlay.Oracle)
	c.Review.Merge(&overlay.Review)
}

func read() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	return cfg, nil
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Oracle.Finalize(oracleEnv); err != nil {
		return fmt.Errorf("oracle: %w", err)
	}
	if err := c.Review.Finalize(); err != nil {
		return fmt.Errorf("review: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	envvar.String(EnvRevisorShutdownTimeout, &c.ShutdownTimeout)
	envvar.String(EnvRevisorLogLevel, &c.LogLevel)
	envvar.String(EnvRevisorVersion, &c.Version)
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	if err := c.level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvRevisorEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
