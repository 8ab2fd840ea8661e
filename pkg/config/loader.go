package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Load parses environment variables into cfg according to its `env` and
// `envDefault` struct tags:
//
//	type Config struct {
//	    HTTPPort      int    `env:"HTTP_PORT" envDefault:"8080"`
//	    SessionSecret string `env:"SESSION_SECRET"`
//	}
func Load(cfg any) error {
	return LoadWithPrefix(cfg, "")
}

// LoadWithPrefix behaves like Load but prepends prefix to every variable
// name, so one struct can be reused by tools with their own namespace
// (SEED_ADMIN_EMAIL for the prefix "SEED_" and the tag "ADMIN_EMAIL").
func LoadWithPrefix(cfg any, prefix string) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: prefix}); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}
