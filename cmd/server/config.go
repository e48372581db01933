package main

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// serverConfig is loaded from the environment.
type serverConfig struct {
	Addr          string        `env:"QUACKSIM_ADDR" envDefault:":8080"`
	ConfigDir     string        `env:"QUACKSIM_CONFIG_DIR" envDefault:"configs"`
	Scenario      string        `env:"QUACKSIM_SCENARIO" envDefault:"default"`
	WatchInterval time.Duration `env:"QUACKSIM_WATCH_INTERVAL" envDefault:"5s"`
}

func loadServerConfig() (serverConfig, error) {
	var cfg serverConfig
	if err := env.Parse(&cfg); err != nil {
		return serverConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
