package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if TRACKMIX_CONFIG is set
//  3. env (prefix TRACKMIX_)
func Load(_ context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("TRACKMIX_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: TRACKMIX_ADDR, TRACKMIX_DATA_DIR, ...
	// Map env keys like TRACKMIX_DATA_DIR -> data_dir (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("TRACKMIX_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "trackmix_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MaxCount < 1:
		return fmt.Errorf("%w: max_count must be positive", ErrInvalidConfig)
	case c.DefaultCount < 1 || c.DefaultCount > c.MaxCount:
		return fmt.Errorf("%w: default_count must be within [1, max_count]", ErrInvalidConfig)
	case c.DataSource != "local" && c.DataSource != "s3":
		return fmt.Errorf("%w: data_source must be local or s3", ErrInvalidConfig)
	case c.HistoryBackend != "memory" && c.HistoryBackend != "redis":
		return fmt.Errorf("%w: history_backend must be memory or redis", ErrInvalidConfig)
	}
	return nil
}
