// Package config loads the Linux host runner's YAML configuration
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config describes how the host is wired to the panel
type Config struct {
	// I2C bus name as known to periph ("" picks the first bus, "1" is
	// /dev/i2c-1 on a Raspberry Pi)
	Bus string `yaml:"bus"`

	// Expander address on the bus
	Address uint8 `yaml:"address"`

	// GPIO carrying the expander's INT line, e.g. "GPIO4". Empty polls
	// the interrupt flags over the bus instead.
	Interrupt string `yaml:"interrupt"`

	// Optional serial device mirroring the log stream
	Console ConsoleConfig `yaml:"console"`

	// Log level: debug or info
	LogLevel string `yaml:"log_level"`
}

// ConsoleConfig selects the serial log mirror
type ConsoleConfig struct {
	Device string `yaml:"device"`
	Baud   int    `yaml:"baud"`
}

// Load reads and parses the file at path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open config file: %w", err)
	}
	return LoadConfig(data)
}

// LoadConfig parses YAML configuration. Unknown keys are an error.
func LoadConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("could not parse config: %w", err)
	}
	applyDefaults(&cfg)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultConfig matches the reference wiring on a Raspberry Pi
func DefaultConfig() *Config {
	cfg := &Config{Interrupt: "GPIO4"}
	applyDefaults(cfg)
	return cfg
}

// Debug reports whether debug logging is requested
func (c *Config) Debug() bool {
	return c.LogLevel == "debug"
}

// applyDefaults fills in missing configuration values
func applyDefaults(cfg *Config) {
	if cfg.Address == 0 {
		cfg.Address = 0x20
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Console.Device != "" && cfg.Console.Baud == 0 {
		cfg.Console.Baud = 115200
	}
}

func (c *Config) validate() error {
	if c.Address < 0x08 || c.Address > 0x77 {
		return fmt.Errorf("address %#02x is outside the 7-bit I2C range", c.Address)
	}
	switch c.LogLevel {
	case "debug", "info":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}
