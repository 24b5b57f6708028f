// Package config loads service configuration from an optional YAML file
// with environment variable overrides.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/robofleet/robofleet/pkg/domain"
)

// SeedRobot describes a robot provisioned at startup.
type SeedRobot struct {
	ID       string          `yaml:"id"`
	Position domain.Position `yaml:"position"`
	Energy   int             `yaml:"energy"`
}

// Config is the full service configuration. Precedence, lowest to highest:
// defaults, YAML file, environment.
type Config struct {
	// Listen is the HTTP bind address.
	Listen string `yaml:"listen" env:"LISTEN"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`

	// RedisAddr enables the distributed item-claim locker when non-empty.
	RedisAddr string `yaml:"redis_addr" env:"REDIS_ADDR"`

	// Tuning holds the movement and combat constants.
	Tuning domain.Tuning `yaml:"tuning" envPrefix:"TUNING_"`

	// Seed lists robots created before the server starts accepting requests.
	Seed []SeedRobot `yaml:"seed"`
}

// Default returns the built-in configuration: two seed robots and the
// default tuning constants.
func Default() Config {
	return Config{
		Listen:   ":8080",
		LogLevel: "info",
		Tuning:   domain.DefaultTuning(),
		Seed: []SeedRobot{
			{ID: "r1", Position: domain.Position{X: 0, Y: 0}, Energy: 100},
			{ID: "r2", Position: domain.Position{X: 1, Y: 0}, Energy: 100},
		},
	}
}

// Load builds the configuration. An empty path skips the YAML layer.
// Environment variables use the ROBOFLEET_ prefix.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "ROBOFLEET_"}); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}

	if err := cfg.Tuning.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid tuning: %w", err)
	}
	return cfg, nil
}
