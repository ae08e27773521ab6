// Package config loads the code-generation settings that the core's
// language-neutral public API (spec §6) leaves to the caller: which
// package name to emit under, how to indent, which Format to drive, and
// whether to emit the convenience "default receiver" sum type.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FormatName selects one of the format package's Format implementations.
type FormatName string

const (
	FormatBinary FormatName = "binary"
	FormatJSON   FormatName = "json"
)

// Config is the YAML-decodable settings document for a generation run.
type Config struct {
	Package         string     `yaml:"package"`
	Indent          int        `yaml:"indent"`
	Format          FormatName `yaml:"format"`
	DefaultReceiver bool       `yaml:"default_receiver"`
}

// Default returns the settings used when no config file is supplied.
func Default() Config {
	return Config{
		Package:         "protocol",
		Indent:          2,
		Format:          FormatBinary,
		DefaultReceiver: true,
	}
}

// Load reads and parses a YAML config file at path, filling in any field
// the file omits with Default's value.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports whether cfg names a known format and a sane indent.
func (cfg Config) Validate() error {
	switch cfg.Format {
	case FormatBinary, FormatJSON:
	default:
		return fmt.Errorf("config: unknown format %q", cfg.Format)
	}
	if cfg.Indent < 0 {
		return fmt.Errorf("config: indent must be >= 0, got %d", cfg.Indent)
	}
	return nil
}
