package configloader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string `yaml:"port"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// StateConfig points at the on-disk controller-state snapshots.
type StateConfig struct {
	Dir string `yaml:"dir"`
	// MaxRefreshPerSecond caps how often the snapshot provider re-reads the
	// state directory.
	MaxRefreshPerSecond float64 `yaml:"maxRefreshPerSecond"`
}

// CacheConfig controls the aggregate-result cache.
type CacheConfig struct {
	TTLSeconds int `yaml:"ttlSeconds"`
}

// RatesFeedConfig configures the optional live currency-rate feed. An empty
// BaseURL disables the feed and the rates from the state directory are used
// as-is.
type RatesFeedConfig struct {
	BaseURL              string `yaml:"baseURL"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
	State     StateConfig     `yaml:"state"`
	Cache     CacheConfig     `yaml:"cache"`
	RatesFeed RatesFeedConfig `yaml:"ratesFeed"`
}

// Load reads the YAML configuration file from the given path, unmarshals it
// and applies defaults for unset values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "INFO"
	}
	if cfg.State.Dir == "" {
		cfg.State.Dir = "data/state"
	}
	if cfg.State.MaxRefreshPerSecond <= 0 {
		cfg.State.MaxRefreshPerSecond = 1
	}
	if cfg.Cache.TTLSeconds <= 0 {
		cfg.Cache.TTLSeconds = 15
	}
	if cfg.RatesFeed.RequestTimeoutMillis <= 0 {
		cfg.RatesFeed.RequestTimeoutMillis = 5000
	}
}
