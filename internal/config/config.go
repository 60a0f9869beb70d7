// Package config provides application configuration loaded from an
// optional YAML file overlaid with environment variables. Environment
// variables win, so deployments can override a checked-in file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DatasetConfig describes where the node and edge tables live. Local
// paths take precedence over URLs.
type DatasetConfig struct {
	NodesPath     string        `yaml:"nodes_path"`
	EdgesPath     string        `yaml:"edges_path"`
	NodesURL      string        `yaml:"nodes_url"`
	EdgesURL      string        `yaml:"edges_url"`
	MEPLookupPath string        `yaml:"mep_lookup_path"`
	CacheTTL      time.Duration `yaml:"cache_ttl"`
	WatchFiles    bool          `yaml:"watch_files"`
}

// Config holds all application configuration
type Config struct {
	ServerAddress string `yaml:"server_address"`
	Environment   string `yaml:"environment"`
	LogLevel      string `yaml:"log_level"`

	EnableMetrics bool `yaml:"enable_metrics"`
	EnableCORS    bool `yaml:"enable_cors"`

	Dataset DatasetConfig `yaml:"dataset"`
}

// Load builds the configuration: defaults, then the YAML file named
// by CONFIG_FILE (if any), then environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		ServerAddress: ":8080",
		Environment:   "development",
		LogLevel:      "info",
		EnableMetrics: true,
		EnableCORS:    true,
		Dataset: DatasetConfig{
			CacheTTL:   time.Hour,
			WatchFiles: true,
		},
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	cfg.ServerAddress = getEnv("SERVER_ADDRESS", cfg.ServerAddress)
	cfg.Environment = getEnv("ENVIRONMENT", cfg.Environment)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.EnableMetrics = getEnvBool("ENABLE_METRICS", cfg.EnableMetrics)
	cfg.EnableCORS = getEnvBool("ENABLE_CORS", cfg.EnableCORS)

	cfg.Dataset.NodesPath = getEnv("NODES_PATH", cfg.Dataset.NodesPath)
	cfg.Dataset.EdgesPath = getEnv("EDGES_PATH", cfg.Dataset.EdgesPath)
	cfg.Dataset.NodesURL = getEnv("NODES_URL", cfg.Dataset.NodesURL)
	cfg.Dataset.EdgesURL = getEnv("EDGES_URL", cfg.Dataset.EdgesURL)
	cfg.Dataset.MEPLookupPath = getEnv("MEP_LOOKUP_PATH", cfg.Dataset.MEPLookupPath)
	cfg.Dataset.CacheTTL = getEnvDuration("DATASET_CACHE_TTL", cfg.Dataset.CacheTTL)
	cfg.Dataset.WatchFiles = getEnvBool("WATCH_DATASET", cfg.Dataset.WatchFiles)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values that cannot work.
// A missing dataset source is deliberately allowed: the service then
// serves an empty graph rather than refusing to start.
func (c *Config) Validate() error {
	if c.ServerAddress == "" {
		return fmt.Errorf("SERVER_ADDRESS must not be empty")
	}
	if c.Dataset.CacheTTL < 0 {
		return fmt.Errorf("DATASET_CACHE_TTL must not be negative, got %s", c.Dataset.CacheTTL)
	}
	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
