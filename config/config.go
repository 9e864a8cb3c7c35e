// Package config loads server configuration from the environment, with a
// .env file picked up when one is present.
package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      struct {
		Port            string `env:"PORT" envDefault:"8080"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
	} `envPrefix:"SERVER_"`
	Database struct {
		Path string `env:"PATH" envDefault:"robopay.db"`
	} `envPrefix:"DATABASE_"`
	Log struct {
		Level   string `env:"LEVEL" envDefault:"info"`
		Concise bool   `env:"CONCISE" envDefault:"true"`
	} `envPrefix:"LOG_"`
}

// Load reads .env if present and parses the environment into a Config.
func Load() (*Config, error) {
	// Missing .env is fine, the environment may already be populated.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if errors.As(err, &aggErr) {
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}
	return cfg, nil
}
