// Package config provides Viper-based configuration loading for bedrockctl.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// StorageConfig holds SQLite database settings.
type StorageConfig struct {
	// Path is the SQLite database file path.
	Path string `mapstructure:"path"`
}

// DSN returns the SQLite connection string for the database/sql driver.
//
// Precondition: Path must be non-empty.
// Postcondition: Returns a non-empty driver DSN string.
func (s StorageConfig) DSN() string {
	return s.Path
}

// SessionConfig holds tmux session transport settings.
type SessionConfig struct {
	// Name is the tmux session the server console runs in.
	Name string `mapstructure:"name"`
	// Mode selects the transport: "tmux", "log", or "auto".
	// "auto" picks tmux where tmux exists and log-only elsewhere.
	Mode string `mapstructure:"mode"`
	// CommandDelay is the settle delay after each relayed command.
	CommandDelay time.Duration `mapstructure:"command_delay"`
}

// ConsoleConfig holds interactive console settings.
type ConsoleConfig struct {
	// Prompt is the interactive prompt string.
	Prompt string `mapstructure:"prompt"`
	// SuggestionLimit caps how many near-miss suggestions are shown.
	SuggestionLimit int `mapstructure:"suggestion_limit"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// File is the log file path. Empty means stderr; stdout is never used
	// because it is the interactive console surface.
	File string `mapstructure:"file"`
	// MaxSizeMB is the rotation size threshold for the log file.
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of rotated log files to keep.
	MaxBackups int `mapstructure:"max_backups"`
	// MaxAgeDays is the maximum age of rotated log files.
	MaxAgeDays int `mapstructure:"max_age_days"`
}

// Config is the top-level application configuration.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Session SessionConfig `mapstructure:"session"`
	Console ConsoleConfig `mapstructure:"console"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateStorage(c.Storage); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateSession(c.Session); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateConsole(c.Console); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateStorage(s StorageConfig) error {
	if s.Path == "" {
		return fmt.Errorf("storage.path must not be empty")
	}
	return nil
}

func validateSession(s SessionConfig) error {
	var errs []string
	if s.Name == "" {
		errs = append(errs, "session.name must not be empty")
	}
	validModes := map[string]bool{"tmux": true, "log": true, "auto": true}
	if !validModes[s.Mode] {
		errs = append(errs, fmt.Sprintf("session.mode must be one of [tmux, log, auto], got %q", s.Mode))
	}
	if s.CommandDelay < 0 {
		errs = append(errs, "session.command_delay must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateConsole(c ConsoleConfig) error {
	var errs []string
	if c.Prompt == "" {
		errs = append(errs, "console.prompt must not be empty")
	}
	if c.SuggestionLimit < 1 {
		errs = append(errs, fmt.Sprintf("console.suggestion_limit must be >= 1, got %d", c.SuggestionLimit))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	var errs []string
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		errs = append(errs, fmt.Sprintf("logging.level must be one of [debug, info, warn, error], got %q", l.Level))
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		errs = append(errs, fmt.Sprintf("logging.format must be one of [json, console], got %q", l.Format))
	}
	if l.MaxSizeMB < 0 {
		errs = append(errs, fmt.Sprintf("logging.max_size_mb must be >= 0, got %d", l.MaxSizeMB))
	}
	if l.MaxBackups < 0 {
		errs = append(errs, fmt.Sprintf("logging.max_backups must be >= 0, got %d", l.MaxBackups))
	}
	if l.MaxAgeDays < 0 {
		errs = append(errs, fmt.Sprintf("logging.max_age_days must be >= 0, got %d", l.MaxAgeDays))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with BEDROCKCTL_ prefix
	v.SetEnvPrefix("BEDROCKCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.path", "data.sqlite")

	v.SetDefault("session.name", "minecraft")
	v.SetDefault("session.mode", "auto")
	v.SetDefault("session.command_delay", "100ms")

	v.SetDefault("console.prompt", "mc> ")
	v.SetDefault("console.suggestion_limit", 5)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.file", "bedrockctl.log")
	v.SetDefault("logging.max_size_mb", 10)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age_days", 28)
}
