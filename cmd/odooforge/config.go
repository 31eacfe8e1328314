package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/odooforge/odooforge/internal/core/domain"
	"github.com/odooforge/odooforge/internal/core/secret"
)

// =============================================================================
// Config Types
// =============================================================================

// Config holds all application configuration.
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Data     DataConfig     `mapstructure:"data"`
	Output   OutputConfig   `mapstructure:"output"`
	Defaults DefaultsConfig `mapstructure:"defaults"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DataConfig holds profile storage configuration.
type DataConfig struct {
	// Dir is the base directory for application state.
	Dir string `mapstructure:"dir"`

	// DSN is the profile database path. Derived from Dir when empty.
	DSN string `mapstructure:"dsn"`

	// Passphrase seals profile credentials at rest. When empty, a key file
	// under Dir is used, generated on first run.
	Passphrase string `mapstructure:"passphrase"`
}

// OutputConfig holds bundle output configuration.
type OutputConfig struct {
	Dir string `mapstructure:"dir"`
}

// DefaultsConfig holds the deployment parameters applied when a generate
// flag is not set on the command line.
type DefaultsConfig struct {
	OdooVersion   string `mapstructure:"odoo_version"`
	HTTPPort      int    `mapstructure:"http_port"`
	ChatPort      int    `mapstructure:"chat_port"`
	DBName        string `mapstructure:"db_name"`
	DBUser        string `mapstructure:"db_user"`
	Workers       int    `mapstructure:"workers"`
	CronThreads   int    `mapstructure:"cron_threads"`
	MemoryLimitGB int    `mapstructure:"memory_limit_gb"`
	LogLevel      string `mapstructure:"log_level"`
}

// StackConfig returns a StackConfig seeded with the configured defaults.
// Identity fields (project name, domain, credentials) stay empty.
func (c DefaultsConfig) StackConfig() domain.StackConfig {
	cfg := domain.NewStackConfig()
	if c.OdooVersion != "" {
		cfg.OdooVersion = c.OdooVersion
	}
	if c.HTTPPort != 0 {
		cfg.HTTPPort = c.HTTPPort
	}
	if c.ChatPort != 0 {
		cfg.ChatPort = c.ChatPort
	}
	if c.DBName != "" {
		cfg.DBName = c.DBName
	}
	if c.DBUser != "" {
		cfg.DBUser = c.DBUser
	}
	cfg.Workers = c.Workers
	cfg.CronThreads = c.CronThreads
	if c.MemoryLimitGB != 0 {
		cfg.MemoryLimitGB = c.MemoryLimitGB
	}
	if c.LogLevel != "" {
		cfg.LogLevel = domain.LogLevel(c.LogLevel)
	}
	return cfg
}

// =============================================================================
// Config Loading
// =============================================================================

// LoadConfig loads configuration from file and environment.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("data.dir", "./data")
	v.SetDefault("data.dsn", "")
	v.SetDefault("data.passphrase", "")
	v.SetDefault("output.dir", ".")
	v.SetDefault("defaults.odoo_version", "17.0")
	v.SetDefault("defaults.http_port", 8069)
	v.SetDefault("defaults.chat_port", 8072)
	v.SetDefault("defaults.db_name", "odoo")
	v.SetDefault("defaults.db_user", "odoo")
	v.SetDefault("defaults.workers", 2)
	v.SetDefault("defaults.cron_threads", 2)
	v.SetDefault("defaults.memory_limit_gb", 2)
	v.SetDefault("defaults.log_level", "info")

	// Load from file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			// Only return error if file was explicitly specified and is invalid
			if _, ok := err.(viper.ConfigParseError); ok {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
			// File not found is OK, we'll use defaults
		}
	}

	// Enable environment variable overrides
	v.SetEnvPrefix("ODOOFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Derive the profile database path from the data dir unless set
	if cfg.Data.DSN == "" {
		cfg.Data.DSN = filepath.Join(cfg.Data.Dir, "profiles.db")
	}

	return &cfg, nil
}

// ResolvePassphrase returns the sealing passphrase for the profile store:
// the configured value, or the key file under the data dir. A missing key
// file is generated with a fresh random key on first use.
func (c DataConfig) ResolvePassphrase() (string, error) {
	if c.Passphrase != "" {
		return c.Passphrase, nil
	}

	keyPath := filepath.Join(c.Dir, "profiles.key")
	data, err := os.ReadFile(keyPath)
	if err == nil {
		return strings.TrimSpace(string(data)), nil
	}
	if !os.IsNotExist(err) {
		return "", fmt.Errorf("reading key file %s: %w", keyPath, err)
	}

	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return "", fmt.Errorf("creating data dir %s: %w", c.Dir, err)
	}
	key := secret.New().Generate(48)
	if err := os.WriteFile(keyPath, []byte(key+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("writing key file %s: %w", keyPath, err)
	}
	return key, nil
}

// =============================================================================
// Logger Setup
// =============================================================================

// SetupLogger creates a logger with the configured level and format. CLI
// logs go to stderr so printed artifacts stay clean on stdout.
func SetupLogger(cfg *Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if strings.ToLower(cfg.Log.Format) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}
