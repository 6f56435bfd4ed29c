// Package config loads go-cart configuration from YAML with defaults matching
// the stock cart behavior: one 15% taxes line, reconcile-on-login enabled, and
// a sqlite durable store.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LineKind selects one of the built-in pricing line implementations.
type LineKind string

const (
	// LineTax applies Rate to the running total at the line's position.
	LineTax LineKind = "tax"
	// LineSubtotalTax applies Rate to the cart subtotal regardless of position.
	LineSubtotalTax LineKind = "subtotal_tax"
	// LineFlat adds a fixed Amount.
	LineFlat LineKind = "flat"
)

// LineConfig declares one seeded pricing line. Lines are applied in the order
// they appear in the configuration.
type LineConfig struct {
	Name   string   `yaml:"name"`
	Kind   LineKind `yaml:"kind"`
	Rate   float64  `yaml:"rate,omitempty"`
	Amount float64  `yaml:"amount,omitempty"`
}

// StorageConfig selects and parameterizes the durable cart store.
type StorageConfig struct {
	// Driver is "sqlite", "postgres", or "memory".
	Driver string `yaml:"driver"`

	// Path is the sqlite database file.
	Path string `yaml:"path,omitempty"`

	// DSN is the postgres connection string.
	DSN string `yaml:"dsn,omitempty"`
}

// SessionConfig parameterizes the session-scoped store.
type SessionConfig struct {
	// Dir is where file-backed session carts live.
	Dir string `yaml:"dir"`
}

// Config is the full go-cart configuration.
type Config struct {
	// Lines seeds the cart's pricing pipeline at construction.
	Lines []LineConfig `yaml:"lines"`

	// UpdateOnLogin controls whether the session/durable reconciliation runs
	// when an identity attaches.
	UpdateOnLogin bool `yaml:"update_on_login"`

	Storage StorageConfig `yaml:"storage"`
	Session SessionConfig `yaml:"session"`
}

// DefaultConfig returns the stock configuration: a single "taxes" line at 15%
// of the running total, reconciliation on login, and a local sqlite store.
func DefaultConfig() *Config {
	return &Config{
		Lines: []LineConfig{
			{Name: "taxes", Kind: LineTax, Rate: 0.15},
		},
		UpdateOnLogin: true,
		Storage: StorageConfig{
			Driver: "sqlite",
			Path:   ".cartctl/carts.db",
		},
		Session: SessionConfig{
			Dir: ".cartctl/sessions",
		},
	}
}

// Load reads a YAML config file, layering it over the defaults. A missing
// file is not an error; the defaults apply.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the cart cannot run with.
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Lines))
	for _, l := range c.Lines {
		if l.Name == "" {
			return fmt.Errorf("pricing line with empty name")
		}
		if seen[l.Name] {
			return fmt.Errorf("duplicate pricing line %q", l.Name)
		}
		seen[l.Name] = true
		switch l.Kind {
		case LineTax, LineSubtotalTax, LineFlat:
		default:
			return fmt.Errorf("pricing line %q: unknown kind %q", l.Name, l.Kind)
		}
	}

	switch c.Storage.Driver {
	case "sqlite":
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for the sqlite driver")
		}
	case "postgres":
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage.dsn is required for the postgres driver")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	return nil
}
