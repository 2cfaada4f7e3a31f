package main

import "github.com/kelseyhightower/envconfig"

// Config holds the environment defaults; command line flags override
// them.
type Config struct {
	OverrideDir string `envconfig:"OVERRIDE_DIR" default:"/var/lib/raidcheck"`
	Smartctl    string `envconfig:"SMARTCTL" default:""`
	Trace       bool   `envconfig:"TRACE" default:"false"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"warn"`
}

func loadConfig() (Config, error) {
	var cfg Config

	err := envconfig.Process("raidcheck", &cfg)

	return cfg, err
}
