package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Rxriddqd/iddqd/app/observability"
)

// Config struct to hold the configuration settings
type Config struct {
	Redis         RedisConfig          `yaml:"redis"`
	Storage       StorageConfig        `yaml:"storage"`
	NATS          NATSConfig           `yaml:"nats"`
	HTTP          HTTPConfig           `yaml:"http"`
	Session       SessionConfig        `yaml:"session"`
	Observability observability.Config `yaml:"observability"`
}

// RedisConfig holds the key-value store connection settings.
type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	TLS      bool   `yaml:"tls"`
}

// Addr returns the host:port address for the client.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// StorageConfig holds the durable file store settings.
type StorageConfig struct {
	DataDir string `yaml:"data_dir"`
}

// NATSConfig holds NATS configuration.
type NATSConfig struct {
	URL string `yaml:"url"`
}

// HTTPConfig holds the ops/dashboard HTTP server settings.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// SessionConfig holds dashboard session token configuration.
type SessionConfig struct {
	Secret     string        `yaml:"secret"`
	DefaultTTL time.Duration `yaml:"-"`
}

// UnmarshalYAML accepts default_ttl as a Go duration string ("30m", "1h").
func (s *SessionConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Secret     string `yaml:"secret"`
		DefaultTTL string `yaml:"default_ttl"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw.Secret != "" {
		s.Secret = raw.Secret
	}
	if raw.DefaultTTL != "" {
		d, err := time.ParseDuration(raw.DefaultTTL)
		if err != nil {
			return fmt.Errorf("invalid session.default_ttl: %w", err)
		}
		s.DefaultTTL = d
	}
	return nil
}

// LoadConfig loads the configuration from a YAML file, falling back to
// environment variables when the file is absent. Environment variables
// override file values either way.
func LoadConfig(filename string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(filename)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if cfg.Storage.DataDir == "" {
		return nil, fmt.Errorf("storage.data_dir must be set")
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Redis: RedisConfig{
			Host: "localhost",
			Port: 6379,
		},
		Storage: StorageConfig{
			DataDir: "./data",
		},
		NATS: NATSConfig{
			URL: "nats://localhost:4222",
		},
		HTTP: HTTPConfig{
			Addr: ":8080",
		},
		Session: SessionConfig{
			DefaultTTL: time.Hour,
		},
		Observability: observability.Config{
			Environment: "development",
			LogLevel:    "info",
		},
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("REDIS_HOST"); v != "" {
		cfg.Redis.Host = v
	}
	if v := os.Getenv("REDIS_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Redis.Port = p
		}
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			cfg.Redis.DB = db
		}
	}
	if v := os.Getenv("REDIS_TLS"); v != "" {
		cfg.Redis.TLS = v == "true"
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("SESSION_SECRET"); v != "" {
		cfg.Session.Secret = v
	}
	if v := os.Getenv("SESSION_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Session.DefaultTTL = d
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
}
