package config

import "github.com/spf13/viper"

var defaults = map[string]any{
	"run.tick_budget":       -1,
	"run.tick_length":       1000,
	"run.time_unit":         "ms",
	"stats.depot_threshold": 0.0001,
	"monitor.enabled":       false,
	"monitor.port":          0,
	"monitor.open_browser":  false,
	"recording.enabled":     false,
	"recording.path":        "",
	"logging.level":         "info",
	"logging.format":        "text",
}

func setDefaults(v *viper.Viper) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Run: RunConfig{
			TickBudget: -1,
			TickLength: 1000,
			TimeUnit:   "ms",
		},
		Stats: StatsConfig{
			DepotThreshold: 0.0001,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
