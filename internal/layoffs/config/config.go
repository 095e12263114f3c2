// Package config loads the LayoffLens service configuration from YAML,
// applying defaults and a small set of environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the service looks for its configuration file.
var DefaultPath = filepath.Join("internal", "layoffs", "config", "config.yaml")

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config struct for YAML configuration
type Config struct {
	GRPCPort      int      `yaml:"GRPC_PORT"`
	HTTPPort      int      `yaml:"HTTP_PORT"`
	DBDriver      string   `yaml:"DB_DRIVER"`
	DBHost        string   `yaml:"DB_HOST"`
	DBPort        int      `yaml:"DB_PORT"`
	DBUser        string   `yaml:"DB_USER"`
	DBPassword    string   `yaml:"DB_PASSWORD"`
	DBName        string   `yaml:"DB_NAME"`
	DBSSLMode     string   `yaml:"DB_SSLMODE"`
	DBPath        string   `yaml:"DB_PATH"`
	KafkaBrokers  []string `yaml:"KAFKA_BROKERS"`
	Topic         string   `yaml:"TOPIC"`
	ConsumerGroup string   `yaml:"CONSUMER_GROUP"`
	BatchSize     int      `yaml:"BATCH_SIZE"`
	BatchDelayMS  int      `yaml:"BATCH_DELAY_MS"`
	CSVPath       string   `yaml:"CSV_PATH"`
}

// Default returns the configuration used when a key is absent from the file.
func Default() *Config {
	return &Config{
		GRPCPort:      50051,
		HTTPPort:      8080,
		DBDriver:      DriverPostgres,
		DBHost:        "localhost",
		DBPort:        5432,
		DBSSLMode:     "disable",
		DBPath:        "layofflens.sqlite",
		Topic:         "layofflens.events",
		ConsumerGroup: "layofflens-api",
		BatchSize:     100,
		BatchDelayMS:  100,
		CSVPath:       "layoffs.csv",
	}
}

// Load reads the YAML file at path on top of Default and applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(file, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv("DB_HOST"); v != "" {
		c.DBHost = v
	}
	if v := getenv("DB_PASSWORD"); v != "" {
		c.DBPassword = v
	}
	if v := getenv("KAFKA_BROKERS"); v != "" {
		var brokers []string
		for _, b := range strings.Split(v, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
		c.KafkaBrokers = brokers
	}
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("BATCH_SIZE must be positive, got %d", c.BatchSize)
	}
	if c.BatchDelayMS < 0 {
		return fmt.Errorf("BATCH_DELAY_MS must not be negative, got %d", c.BatchDelayMS)
	}
	return nil
}

// BatchDelay is the pause between loader batches.
func (c *Config) BatchDelay() time.Duration {
	return time.Duration(c.BatchDelayMS) * time.Millisecond
}

// KafkaEnabled reports whether events should be published.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0 && c.Topic != ""
}
