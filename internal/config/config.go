// Package config provides environment-driven configuration for the server.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// Defaults applied when the corresponding variable is unset.
const (
	DefaultPort               = 8080
	DefaultSessionTTL         = 1 * time.Hour
	DefaultEligibilityTimeout = 15 * time.Second
)

// Config holds runtime configuration. DatabaseURL is optional: without it
// the server runs with post-export persistence disabled (uploads are
// skipped, local downloads still work).
type Config struct {
	Port               int    `validate:"min=1,max=65535"`
	DatabaseURL        string
	EligibilityURL     string        `validate:"omitempty,url"`
	EligibilityTimeout time.Duration `validate:"min=0"`
	SessionTTL         time.Duration `validate:"min=0"`
}

// FromEnv loads configuration from the environment, applying defaults for
// anything unset.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:               DefaultPort,
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		EligibilityURL:     os.Getenv("ELIGIBILITY_URL"),
		EligibilityTimeout: DefaultEligibilityTimeout,
		SessionTTL:         DefaultSessionTTL,
	}

	if raw := os.Getenv("PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", raw, err)
		}
		cfg.Port = port
	}

	if raw := os.Getenv("ELIGIBILITY_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid ELIGIBILITY_TIMEOUT %q: %w", raw, err)
		}
		cfg.EligibilityTimeout = timeout
	}

	if raw := os.Getenv("SESSION_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_TTL %q: %w", raw, err)
		}
		cfg.SessionTTL = ttl
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration using the validator.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}
