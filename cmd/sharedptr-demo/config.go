package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

type demoConfig struct {
	// Value goes into the first allocation and into the handle passed
	// across the call boundary.
	Value int
	// ResetValue goes into the reset-with-value step.
	ResetValue int
	// Verbose surfaces destructor runs in the output.
	Verbose bool
}

func defaultConfig() demoConfig {
	return demoConfig{
		Value:      100,
		ResetValue: 1,
		Verbose:    false,
	}
}

type fileConfig struct {
	Value      int  `toml:"value"`
	ResetValue int  `toml:"reset_value"`
	Verbose    bool `toml:"verbose"`
}

func loadConfig(path string) (demoConfig, error) {
	cfg := defaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return demoConfig{}, fmt.Errorf("load demo config: %w", err)
	}

	if meta.IsDefined("value") {
		cfg.Value = raw.Value
	}
	if meta.IsDefined("reset_value") {
		cfg.ResetValue = raw.ResetValue
	}
	if meta.IsDefined("verbose") {
		cfg.Verbose = raw.Verbose
	}

	return cfg, nil
}
