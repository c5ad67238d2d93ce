// Package config loads tenant credentials from a YAML file.
//
// Values support environment variable expansion (${VAR} or $VAR syntax) so
// API keys can be injected at runtime instead of written to disk:
//
//	api_key: ${CHARGIFY_API_KEY}
//	sub_domain: acme
//	timeout_seconds: 30
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the credentials file structure.
type Config struct {
	APIKey    string `yaml:"api_key"`
	SubDomain string `yaml:"sub_domain"`

	// BaseHost overrides the default API host suffix. Optional.
	BaseHost string `yaml:"base_host"`

	// TimeoutSeconds bounds each API call. Optional, zero keeps the
	// transport default.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// Load reads and validates a credentials file, expanding environment
// variable references first.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("config: %s: api_key is required", path)
	}
	if cfg.SubDomain == "" {
		return nil, fmt.Errorf("config: %s: sub_domain is required", path)
	}
	return &cfg, nil
}
