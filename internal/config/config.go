// Package config resolves process configuration once at startup.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Environment distinguishes a production deployment from local
// development. It drives the session cookie's Secure flag.
type Environment string

const (
	// Production enables secure-only cookies.
	Production Environment = "production"
	// Development relaxes cookie security so plain-HTTP localhost works.
	Development Environment = "development"
)

// Config holds runtime settings for the motors server. It is resolved
// once in main and read-only afterwards.
type Config struct {
	Addr          string
	DatabaseURL   string
	SessionSecret string
	Environment   Environment
}

// Load reads an optional .env file and then the process environment.
// A missing SESSION_SECRET or DATABASE_URL is a fatal misconfiguration:
// the process must not begin serving requests without them.
func Load() (*Config, error) {
	// .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		Addr:          env("ADDR", ":8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("config: DATABASE_URL is required")
	}
	if cfg.SessionSecret == "" {
		return nil, errors.New("config: SESSION_SECRET is required")
	}

	switch e := Environment(env("ENVIRONMENT", string(Development))); e {
	case Production, Development:
		cfg.Environment = e
	default:
		return nil, fmt.Errorf("config: unknown ENVIRONMENT %q", e)
	}

	return cfg, nil
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
