// Package config loads application configuration from YAML with
// {{.VAR}} environment expansion.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/openhouselabs/porchlight/pkg/crm"
	"github.com/openhouselabs/porchlight/pkg/database"
	"github.com/openhouselabs/porchlight/pkg/llm"
)

// HTTPConfig holds listener settings.
type HTTPConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// RedisConfig holds the optional Redis connection settings. When Addr is
// empty the application falls back to in-memory caching and deduplication.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// ReviewsConfig holds external review source settings.
type ReviewsConfig struct {
	APIKey   string
	PlaceID  string
	BaseURL  string
	CacheTTL time.Duration
}

// Config is the complete application configuration.
type Config struct {
	HTTP     HTTPConfig
	Database database.Config
	Redis    RedisConfig
	LLM      llm.Config
	CRM      crm.SMTPConfig
	Reviews  ReviewsConfig
}

// yamlConfig mirrors the on-disk file. Durations are strings like "30s"
// and are parsed during resolution.
type yamlConfig struct {
	HTTP struct {
		Addr            string `yaml:"addr"`
		ShutdownTimeout string `yaml:"shutdown_timeout"`
	} `yaml:"http"`
	Database struct {
		Host            string `yaml:"host"`
		Port            int    `yaml:"port"`
		User            string `yaml:"user"`
		Password        string `yaml:"password"`
		Name            string `yaml:"name"`
		SSLMode         string `yaml:"ssl_mode"`
		MaxOpenConns    int    `yaml:"max_open_conns"`
		MaxIdleConns    int    `yaml:"max_idle_conns"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime"`
	} `yaml:"database"`
	Redis RedisConfig `yaml:"redis"`
	LLM   llm.Config  `yaml:"llm"`
	CRM   struct {
		Host          string `yaml:"host"`
		Port          int    `yaml:"port"`
		Username      string `yaml:"username"`
		Password      string `yaml:"password"`
		From          string `yaml:"from"`
		IntakeAddress string `yaml:"intake_address"`
	} `yaml:"crm"`
	Reviews struct {
		APIKey   string `yaml:"api_key"`
		PlaceID  string `yaml:"place_id"`
		BaseURL  string `yaml:"base_url"`
		CacheTTL string `yaml:"cache_ttl"`
	} `yaml:"reviews"`
}

// Load reads the YAML file at path, expands environment variables, applies
// defaults, and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	data = ExpandEnv(data)

	var raw yamlConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg, err := resolve(&raw)
	if err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func resolve(raw *yamlConfig) (*Config, error) {
	cfg := &Config{
		HTTP: HTTPConfig{
			Addr:            raw.HTTP.Addr,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: database.Config{
			Host:            raw.Database.Host,
			Port:            raw.Database.Port,
			User:            raw.Database.User,
			Password:        raw.Database.Password,
			Name:            raw.Database.Name,
			SSLMode:         raw.Database.SSLMode,
			MaxOpenConns:    raw.Database.MaxOpenConns,
			MaxIdleConns:    raw.Database.MaxIdleConns,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Redis: raw.Redis,
		LLM:   raw.LLM,
		CRM: crm.SMTPConfig{
			Host:          raw.CRM.Host,
			Port:          raw.CRM.Port,
			Username:      raw.CRM.Username,
			Password:      raw.CRM.Password,
			From:          raw.CRM.From,
			IntakeAddress: raw.CRM.IntakeAddress,
		},
		Reviews: ReviewsConfig{
			APIKey:   raw.Reviews.APIKey,
			PlaceID:  raw.Reviews.PlaceID,
			BaseURL:  raw.Reviews.BaseURL,
			CacheTTL: 15 * time.Minute,
		},
	}

	if raw.HTTP.ShutdownTimeout != "" {
		d, err := time.ParseDuration(raw.HTTP.ShutdownTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid http.shutdown_timeout: %w", err)
		}
		cfg.HTTP.ShutdownTimeout = d
	}
	if raw.Database.ConnMaxLifetime != "" {
		d, err := time.ParseDuration(raw.Database.ConnMaxLifetime)
		if err != nil {
			return nil, fmt.Errorf("invalid database.conn_max_lifetime: %w", err)
		}
		cfg.Database.ConnMaxLifetime = d
	}
	if raw.Reviews.CacheTTL != "" {
		d, err := time.ParseDuration(raw.Reviews.CacheTTL)
		if err != nil {
			return nil, fmt.Errorf("invalid reviews.cache_ttl: %w", err)
		}
		cfg.Reviews.CacheTTL = d
	}

	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.CRM.Port == 0 {
		cfg.CRM.Port = 587
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Database.User == "" {
		return errors.New("database.user is required")
	}
	if c.Database.Name == "" {
		return errors.New("database.name is required")
	}
	if c.LLM.APIKey == "" {
		return errors.New("llm.api_key is required")
	}
	if c.CRM.Host != "" && c.CRM.IntakeAddress == "" {
		return errors.New("crm.intake_address is required when crm.host is set")
	}
	return nil
}
