// Package config provides configuration management for the kundli application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Storage    StorageConfig    `mapstructure:"storage"`
	Server     ServerConfig     `mapstructure:"server"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Ephemeris  EphemerisConfig  `mapstructure:"ephemeris"`
	Batch      BatchConfig      `mapstructure:"batch"`
	Validation ValidationConfig `mapstructure:"validation"`
	UI         UIConfig         `mapstructure:"ui"`
}

// StorageConfig holds persistence configuration.
type StorageConfig struct {
	Path string `mapstructure:"path"`
}

// ServerConfig holds HTTP API configuration.
type ServerConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Console    bool   `mapstructure:"console"`
	File       bool   `mapstructure:"file"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"` // megabytes
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
}

// EphemerisConfig selects the position provider.
type EphemerisConfig struct {
	Provider  string `mapstructure:"provider"` // mock, file
	ChartFile string `mapstructure:"chart_file"`
}

// BatchConfig holds batch generation configuration.
type BatchConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

// ValidationConfig holds input validation configuration.
type ValidationConfig struct {
	Strict bool `mapstructure:"strict"`
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	DateFormat   string `mapstructure:"date_format"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/kundli"
	}
	return filepath.Join(home, ".config", "kundli")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	// A missing .env is normal.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := loadConfigFile(configDir, "config", cfg); err != nil {
		return nil, fmt.Errorf("loading config.toml: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, configDir string) {
	v.SetDefault("storage.path", filepath.Join(configDir, "kundli.db"))

	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
	v.SetDefault("logging.file", true)
	v.SetDefault("logging.file_path", filepath.Join(configDir, "logs", "kundli.log"))
	v.SetDefault("logging.max_size", 100)
	v.SetDefault("logging.max_backups", 7)
	v.SetDefault("logging.max_age", 30)

	v.SetDefault("ephemeris.provider", "mock")
	v.SetDefault("ephemeris.chart_file", "")

	v.SetDefault("batch.concurrency", 4)
	v.SetDefault("validation.strict", true)

	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.date_format", "02-Jan-2006 15:04 MST")
}

func loadConfigFile(configDir, name string, target interface{}) error {
	v := viper.New()
	v.SetConfigName(name)
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	setDefaults(v, configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
		// First run: leave a commented template behind and carry on with defaults.
		if err := createTemplateConfig(configDir, name); err != nil {
			return err
		}
	}

	return v.Unmarshal(target)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("KUNDLI_DB_PATH"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("KUNDLI_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("KUNDLI_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("KUNDLI_EPHEMERIS"); v != "" {
		cfg.Ephemeris.Provider = v
	}
	if v := os.Getenv("KUNDLI_CHART_FILE"); v != "" {
		cfg.Ephemeris.ChartFile = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Storage.Path == "" {
		return fmt.Errorf("storage.path must be set")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		return fmt.Errorf("server timeouts must be non-negative")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn or error)", c.Logging.Level)
	}

	switch c.Ephemeris.Provider {
	case "mock":
	case "file":
		if c.Ephemeris.ChartFile == "" {
			return fmt.Errorf("ephemeris.chart_file must be set for the file provider")
		}
	default:
		return fmt.Errorf("invalid ephemeris provider: %s (must be 'mock' or 'file')", c.Ephemeris.Provider)
	}

	if c.Batch.Concurrency < 1 {
		return fmt.Errorf("batch.concurrency must be at least 1")
	}

	return nil
}
