package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level postguard.yaml configuration.
type Config struct {
	Tolerances TolerancesConfig `yaml:"tolerances"`
	FX         FXConfig         `yaml:"fx"`
	Rules      RulesConfig      `yaml:"rules"`
}

// TolerancesConfig sets the per-currency balance tolerances. The balance
// tolerance is the general double-entry check; the FX tolerance is the
// stricter compliance check reported separately.
type TolerancesConfig struct {
	Balance float64 `yaml:"balance"`
	FX      float64 `yaml:"fx"`
}

// FXConfig controls multi-currency conventions.
type FXConfig struct {
	EquityPrefix string `yaml:"equity_prefix"`
}

// RulesConfig controls which business rules an engine starts with.
type RulesConfig struct {
	RevenueCycle bool     `yaml:"revenue_cycle"`
	Disabled     []string `yaml:"disabled,omitempty"`
}

// Load reads a postguard.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with the standard tolerances and conventions.
func Default() *Config {
	return &Config{
		Tolerances: TolerancesConfig{
			Balance: 0.01,
			FX:      0.001,
		},
		FX: FXConfig{
			EquityPrefix: "3200",
		},
		Rules: RulesConfig{
			RevenueCycle: true,
		},
	}
}
