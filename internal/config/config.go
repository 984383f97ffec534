// Package config resolves runtime settings for the vsl command: where the
// scenario book lives, which scenario to run, where outputs go, chart size,
// server port, and logging. Settings come from flags, VSL_* environment
// variables (optionally seeded from a .env file), an optional settings file,
// and defaults, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. VSL_OUTPUT_DIR.
const EnvPrefix = "VSL"

// Config represents the complete runtime configuration
type Config struct {
	ConfigPath string        `mapstructure:"config_path"`
	Scenario   string        `mapstructure:"scenario"`
	OutputDir  string        `mapstructure:"output_dir"`
	Chart      ChartConfig   `mapstructure:"chart"`
	Server     ServerConfig  `mapstructure:"server"`
	Logging    LoggingConfig `mapstructure:"logging"`
}

// ChartConfig holds chart rendering configuration
type ChartConfig struct {
	Enabled  bool    `mapstructure:"enabled"`
	WidthIn  float64 `mapstructure:"width_in"`
	HeightIn float64 `mapstructure:"height_in"`
}

// ServerConfig holds HTTP API configuration
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Options tells Load where to look besides the defaults.
type Options struct {
	// SettingsFile is an optional YAML/TOML/JSON settings file.
	SettingsFile string
	// EnvFile is loaded into the process environment when it exists.
	EnvFile string
	// Flags are bound by name: config, scenario, output-dir, port, log-level,
	// and no-chart.
	Flags *pflag.FlagSet
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"config":     "config_path",
	"scenario":   "scenario",
	"output-dir": "output_dir",
	"port":       "server.port",
	"log-level":  "logging.level",
}

// Load resolves configuration from all sources.
func Load(opts Options) (*Config, error) {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file: %w", err)
		}
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.SettingsFile != "" {
		v.SetConfigFile(opts.SettingsFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read settings file: %w", err)
		}
	}

	if opts.Flags != nil {
		for name, key := range flagKeys {
			f := opts.Flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
		if f := opts.Flags.Lookup("no-chart"); f != nil && f.Changed && f.Value.String() == "true" {
			v.Set("chart.enabled", false)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// setDefaults configures default values for all configuration options
func setDefaults(v *viper.Viper) {
	v.SetDefault("config_path", "config.yaml")
	v.SetDefault("scenario", "base")
	v.SetDefault("output_dir", "data/outputs")

	v.SetDefault("chart.enabled", true)
	v.SetDefault("chart.width_in", 10.0)
	v.SetDefault("chart.height_in", 6.0)

	v.SetDefault("server.port", 3000)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	if c.ConfigPath == "" {
		return fmt.Errorf("config_path is required")
	}
	if c.Scenario == "" {
		return fmt.Errorf("scenario is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}

	if c.Chart.WidthIn <= 0 || c.Chart.HeightIn <= 0 {
		return fmt.Errorf("chart.width_in and chart.height_in must be positive")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}
