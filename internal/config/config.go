// Package config loads chorechart settings from a YAML file, CHORECHART_*
// environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/mmynk/chorechart/internal/validation"
	"github.com/mmynk/chorechart/pkg/logging"
)

const (
	// EnvPrefix is prepended to upper-cased keys, e.g. CHORECHART_DB_PATH.
	EnvPrefix = "CHORECHART"

	configName = "config"
	dbFileName = "chore_chart.db"
)

// Config holds all configuration options for chorechart.
type Config struct {
	DBPath      string            `mapstructure:"db_path"`
	LogLevel    string            `mapstructure:"log_level"`
	MetricsFile string            `mapstructure:"metrics_file"`
	Limits      validation.Limits `mapstructure:"limits"`
}

// DefaultDir returns the directory holding the config file and database,
// $HOME/.chorechart.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".chorechart"
	}
	return filepath.Join(home, ".chorechart")
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()

	limits := validation.DefaultLimits()
	v.SetDefault("db_path", filepath.Join(DefaultDir(), dbFileName))
	v.SetDefault("log_level", "warn")
	v.SetDefault("metrics_file", "")
	v.SetDefault("limits.min_name_length", limits.MinNameLength)
	v.SetDefault("limits.max_name_length", limits.MaxNameLength)
	v.SetDefault("limits.max_chore_name_length", limits.MaxChoreNameLength)
	v.SetDefault("limits.max_frequency", limits.MaxFrequency)
	v.SetDefault("limits.min_participants", limits.MinParticipants)
	v.SetDefault("limits.max_participants", limits.MaxParticipants)
	v.SetDefault("limits.min_chores", limits.MinChores)
	v.SetDefault("limits.max_chores", limits.MaxChores)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// plain LOG_LEVEL is honoured when the prefixed variable is unset
	_ = v.BindEnv("log_level", EnvPrefix+"_LOG_LEVEL", "LOG_LEVEL")
	return v
}

// Load reads configuration into a Config. With an empty path it looks for
// config.yaml in DefaultDir and silently falls back to defaults when the
// file does not exist; an explicit path must exist.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(DefaultDir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the application cannot run with.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return errors.New("db_path must not be empty")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if err := c.Limits.Check(); err != nil {
		return fmt.Errorf("limits: %w", err)
	}
	return nil
}
