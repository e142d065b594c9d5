package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const defaultMinWordLength = 3

// Config is the optional YAML generation profile for the gen command.
type Config struct {
	// MinWordLength filters the hostname word list.
	MinWordLength int `yaml:"minWordLength"`
	// Seed for the shuffle; 0 seeds from the clock.
	Seed int64 `yaml:"seed"`
}

// DefaultConfig returns the values used when no profile is given.
func DefaultConfig() *Config {
	return &Config{MinWordLength: defaultMinWordLength}
}

// LoadConfig reads and unmarshals a generation profile, filling in defaults
// for missing values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config file %s: %w", path, err)
	}

	if cfg.MinWordLength == 0 {
		cfg.MinWordLength = defaultMinWordLength
	}
	return &cfg, nil
}
