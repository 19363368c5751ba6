// Package config loads the platesim configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/talgya/plategraph/internal/tectonics"
	"github.com/talgya/plategraph/internal/world"
)

// PlateSim holds all configuration for the platesim command.
type PlateSim struct {
	// Mesh
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Generation
	Seed      int64             `yaml:"seed"`
	Crust     world.CrustConfig `yaml:"crust"`
	Tectonics tectonics.Config  `yaml:"tectonics"`

	// Trials run consecutive seeds starting at Seed; Workers bounds parallelism.
	Trials  int `yaml:"trials"`
	Workers int `yaml:"workers"`

	// Storage; empty disables saving.
	DatabasePath string `yaml:"database_path"`

	// APIPort serves stored runs after generation when non-zero.
	APIPort int `yaml:"api_port"`

	LogLevel string `yaml:"log_level"`
}

// Default returns PlateSim config with sensible defaults for an 80x50 map.
func Default() PlateSim {
	return PlateSim{
		Width:        80,
		Height:       50,
		Seed:         42,
		Crust:        world.DefaultCrustConfig(),
		Tectonics:    tectonics.DefaultConfig(),
		Trials:       1,
		Workers:      4,
		DatabasePath: "data/plates.db",
		LogLevel:     "info",
	}
}

// Load loads config from a YAML file over the defaults.
// If the file doesn't exist, returns defaults.
func Load(path string) (PlateSim, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the fields the command itself interprets. Tectonics
// parameters are validated by the engine against the mesh.
func (c PlateSim) Validate() error {
	if c.Width < 3 || c.Height < 1 {
		return fmt.Errorf("mesh %dx%d is too small", c.Width, c.Height)
	}
	if c.Trials < 1 {
		return fmt.Errorf("trials must be at least 1, got %d", c.Trials)
	}
	if c.APIPort < 0 || c.APIPort > 65535 {
		return fmt.Errorf("api_port %d out of range", c.APIPort)
	}
	if c.APIPort != 0 && c.DatabasePath == "" {
		return fmt.Errorf("api_port requires database_path")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}
