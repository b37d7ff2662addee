package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// SecretKey signs the session cookie, the CSRF tokens and the API
	// tokens. Required.
	SecretKey string `env:"SECRET_KEY"`

	// AdminPassword is the operator-configured secret for the reserved
	// admin account. Required.
	AdminPassword string `env:"ADMIN_PASSWORD"`

	Database DatabaseConfig
}

type DatabaseConfig struct {
	Path string `env:"DATABASE_PATH, default=tagblog.sqlite"`
}

var (
	ErrMissingSecretKey     = errors.New("config: SECRET_KEY is required")
	ErrMissingAdminPassword = errors.New("config: ADMIN_PASSWORD is required")
)

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// Validate rejects configurations that would silently disable security
// checks. Missing secrets are fatal at startup, never per-request.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return ErrMissingSecretKey
	}
	if c.AdminPassword == "" {
		return ErrMissingAdminPassword
	}
	return nil
}
