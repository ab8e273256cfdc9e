package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Service   ServiceConfig   `yaml:"service"`
	Database  DatabaseConfig  `yaml:"database"`
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Redis     RedisConfig     `yaml:"redis"`
}

func LoadConfig() (*Config, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./configs/payment.yaml"
	}

	// Ensure absolute path
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	// Read config file
	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyEnvOverrides maps the deployment environment variables onto the
// config. Environment always wins over the YAML file.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("STRIPE_SECRET_KEY"); v != "" {
		c.Service.StripeSecretKey = v
	}
	if v := os.Getenv("SUPABASE_URL"); v != "" {
		c.Service.Supabase.ProjectURL = v
	}
	if v := os.Getenv("SUPABASE_SERVICE_ROLE_KEY"); v != "" {
		c.Service.Supabase.ServiceRoleKey = v
	}
	if v := os.Getenv("SUPABASE_ANON_KEY"); v != "" {
		c.Service.Supabase.AnonKey = v
	}
	if v := os.Getenv("SUPABASE_JWT_SECRET"); v != "" {
		c.Service.Supabase.JWTSecret = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.URL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
}

// Validate checks startup-time requirements. A missing Stripe key is a hard
// failure for every binary in this service.
func (c *Config) Validate() error {
	if c.Service.StripeSecretKey == "" {
		return fmt.Errorf("STRIPE_SECRET_KEY is not configured")
	}
	if c.Service.Supabase.JWTSecret == "" {
		return fmt.Errorf("supabase JWT secret is not configured")
	}
	return nil
}
