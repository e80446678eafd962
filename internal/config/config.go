package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. CAREERFIT_TOP_N.
const EnvPrefix = "CAREERFIT"

// Config holds process configuration. Scoring weights, thresholds and bands
// live in the catalog, not here.
type Config struct {
	// DB is the SQLite path. Empty selects the default data directory.
	DB string `mapstructure:"db"`
	// Catalog is an optional YAML or JSON catalog file. Empty uses the
	// built-in seed.
	Catalog string `mapstructure:"catalog"`
	// CacheSize bounds the catalog read-through cache.
	CacheSize int `mapstructure:"cache_size"`
	// TopN is the default number of careers returned by a report.
	TopN int `mapstructure:"top_n"`

	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// LogConfig configures the slog logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // text, json
}

// MetricsConfig configures Prometheus collectors.
type MetricsConfig struct {
	Namespace string `mapstructure:"namespace"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		CacheSize: 128,
		TopN:      10,
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Namespace: "careerfit",
		},
	}
}

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"db":        "db",
	"catalog":   "catalog",
	"top":       "top_n",
	"log-level": "log.level",
}

// Load resolves configuration from defaults, then the optional file at
// path, then CAREERFIT_* environment variables, then any of flags that
// were set explicitly.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	def := DefaultConfig()
	v.SetDefault("db", def.DB)
	v.SetDefault("catalog", def.Catalog)
	v.SetDefault("cache_size", def.CacheSize)
	v.SetDefault("top_n", def.TopN)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
	v.SetDefault("metrics.namespace", def.Metrics.Namespace)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	var errs []error
	if c.CacheSize <= 0 {
		errs = append(errs, fmt.Errorf("cache_size must be positive, got %d", c.CacheSize))
	}
	if c.TopN <= 0 {
		errs = append(errs, fmt.Errorf("top_n must be positive, got %d", c.TopN))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log level %q", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Log.Format))
	}
	return errors.Join(errs...)
}
