// Package config loads the settings of a simulation run.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables that override settings, for
// example PDPSIM_RUN_TICK_BUDGET overrides run.tick_budget.
const EnvPrefix = "PDPSIM"

// Config is the main configuration struct combining all sub-configs
type Config struct {
	Run       RunConfig       `mapstructure:"run"`
	Stats     StatsConfig     `mapstructure:"stats"`
	Monitor   MonitorConfig   `mapstructure:"monitor"`
	Recording RecordingConfig `mapstructure:"recording"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// RunConfig holds the settings of the engine and the scenario controller.
type RunConfig struct {
	// Number of ticks after which the engine is stopped, -1 for no limit
	TickBudget int64 `mapstructure:"tick_budget" validate:"min=-1"`

	// Length of one tick, in time units
	TickLength int64 `mapstructure:"tick_length" validate:"min=1"`

	// Name of the time unit
	TimeUnit string `mapstructure:"time_unit" validate:"required"`
}

// StatsConfig holds the settings of the statistics tracker.
type StatsConfig struct {
	// Distance under which a vehicle counts as being at its depot
	DepotThreshold float64 `mapstructure:"depot_threshold" validate:"gt=0"`
}

// MonitorConfig holds the settings of the web monitor.
type MonitorConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Port to listen on, 0 picks a free port
	Port int `mapstructure:"port" validate:"min=0,max=65535"`

	// Open the monitor in a browser once it is up
	OpenBrowser bool `mapstructure:"open_browser"`
}

// RecordingConfig holds the settings of the run recorder.
type RecordingConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Database path without the .sqlite3 extension, empty for a generated
	// name
	Path string `mapstructure:"path"`
}

// Load loads configuration from multiple sources with priority:
// 1. Environment variables (highest priority)
// 2. Config file
// 3. Defaults (lowest priority)
//
// A .env file in the working directory is loaded into the environment first.
// Without a path, a pdpsim.yaml file is looked up in the working directory and
// in ./configs. A missing file is not an error.
func Load(path string) (*Config, error) {
	// Load .env file if it exists (doesn't error if missing)
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("pdpsim")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// MustLoad loads configuration and panics on error (for use in main.go)
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	return cfg
}
