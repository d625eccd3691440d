// Package config loads canopy service configuration from TOML files and
// CANOPY_* environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/canopy/pkg/database"
	"github.com/JaimeStill/canopy/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvCanopyEnv             = "CANOPY_ENV"
	EnvCanopyShutdownTimeout = "CANOPY_SHUTDOWN_TIMEOUT"
	EnvCanopyVersion         = "CANOPY_VERSION"
	EnvCanopyLogLevel        = "CANOPY_LOG_LEVEL"
	EnvCanopyLogFormat       = "CANOPY_LOG_FORMAT"
)

var databaseEnv = &database.Env{
	Host:            "CANOPY_DB_HOST",
	Port:            "CANOPY_DB_PORT",
	Name:            "CANOPY_DB_NAME",
	User:            "CANOPY_DB_USER",
	Password:        "CANOPY_DB_PASSWORD",
	SSLMode:         "CANOPY_DB_SSL_MODE",
	MaxOpenConns:    "CANOPY_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "CANOPY_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "CANOPY_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "CANOPY_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "CANOPY_STORAGE_CONTAINER_NAME",
	ConnectionString: "CANOPY_STORAGE_CONNECTION_STRING",
	AccountURL:       "CANOPY_STORAGE_ACCOUNT_URL",
	MaxRetries:       "CANOPY_STORAGE_MAX_RETRIES",
}

// Config is the root configuration for the canopy service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Database        database.Config `toml:"database"`
	Storage         storage.Config  `toml:"storage"`
	API             APIConfig       `toml:"api"`
	Inference       InferenceConfig `toml:"inference"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
	LogLevel        string          `toml:"log_level"`
	LogFormat       string          `toml:"log_format"`
}

// Env returns the CANOPY_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvCanopyEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Level returns LogLevel as a slog.Level. Unknown values map to Info.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
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

// LoadInference reads the same files as Load but finalizes only the
// inference section and logging settings. The operator CLI uses it to run
// classifiers without database or storage settings.
func LoadInference() (*Config, error) {
	cfg, err := read()
	if err != nil {
		return nil, err
	}

	cfg.loadDefaults()
	cfg.loadEnv()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}
	if err := cfg.Inference.Finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: inference: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	if overlay.LogLevel != "" {
		c.LogLevel = overlay.LogLevel
	}
	if overlay.LogFormat != "" {
		c.LogFormat = overlay.LogFormat
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.API.Merge(&overlay.API)
	c.Inference.Merge(&overlay.Inference)
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
	if err := c.Inference.Finalize(); err != nil {
		return fmt.Errorf("inference: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvCanopyShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvCanopyVersion); v != "" {
		c.Version = v
	}
	if v := os.Getenv(EnvCanopyLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvCanopyLogFormat); v != "" {
		c.LogFormat = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log_format %q: want text or json", c.LogFormat)
	}
	return nil
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
	if env := os.Getenv(EnvCanopyEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
