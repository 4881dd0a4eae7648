// Package config loads renderer settings from YAML and provides the
// defaults used when no file is present.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration.
type Config struct {
	Render struct {
		// Scale is the default color ramp: grayscale, bd, color2 or
		// wvnrl (or the numeric codes 0-3).
		Scale string `yaml:"scale"`

		// Merge controls automatic discovery and stitching of
		// sibling scene segments.
		Merge bool `yaml:"merge"`

		// Enhance applies the cosmetic post-processing pass to
		// rendered output.
		Enhance bool `yaml:"enhance"`

		// Workers bounds concurrent segment decoding.
		Workers int `yaml:"workers"`

		// Palette quantizes output to a 256-color PNG.
		Palette bool `yaml:"palette"`
	} `yaml:"render"`

	Composite struct {
		// Gamma is the correction applied when normalizing visible
		// bands for RGB composites.
		Gamma float64 `yaml:"gamma"`
	} `yaml:"composite"`

	Enhance struct {
		LevelGamma float64 `yaml:"levelGamma"`
		Saturation float64 `yaml:"saturation"`
		Hue        float64 `yaml:"hue"`
		Contrast   bool    `yaml:"contrast"`
	} `yaml:"enhance"`
}

// Default returns the configuration used when no file overrides it.
func Default() *Config {
	cfg := &Config{}

	cfg.Render.Scale = "grayscale"
	cfg.Render.Merge = true
	cfg.Render.Enhance = false
	cfg.Render.Workers = runtime.NumCPU()

	cfg.Composite.Gamma = 2.2

	cfg.Enhance.LevelGamma = 1.5
	cfg.Enhance.Saturation = 250
	cfg.Enhance.Hue = 102
	cfg.Enhance.Contrast = true

	return cfg
}

// Load reads configuration from a YAML file, falling back to Default when
// the file does not exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to a YAML file, creating the directory if
// needed.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}
