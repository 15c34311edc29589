// Package config provides configuration loading and management for CropSense.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete CropSense configuration
type Config struct {
	Synthesis SynthesisConfig `yaml:"synthesis"`
	Training  TrainingConfig  `yaml:"training"`
	Watch     WatchConfig     `yaml:"watch"`
	NATS      NATSConfig      `yaml:"nats"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// SynthesisConfig configures dataset correction runs
type SynthesisConfig struct {
	// Seed for the random draws (0 = derive from the clock per run)
	Seed int64 `yaml:"seed"`
	// Catalog is an optional YAML file of crop profile overrides
	Catalog string `yaml:"catalog"`
	// OutputDir receives corrected copies (empty = next to each input)
	OutputDir string `yaml:"output_dir"`
}

// TrainingConfig configures classifier training
type TrainingConfig struct {
	// Trees is the forest size
	Trees int `yaml:"trees"`
	// TestFraction is the held-out share of rows per crop (0-1)
	TestFraction float64 `yaml:"test_fraction"`
	// Seed drives the train/test split
	Seed int64 `yaml:"seed"`
	// ModelsDir is where trained artifacts are written and loaded from
	ModelsDir string `yaml:"models_dir"`
}

// WatchConfig configures the dataset watcher
type WatchConfig struct {
	// Dir is the directory to watch for dataset files
	Dir string `yaml:"dir"`
	// Debounce is how long to collect changes before correcting
	Debounce time.Duration `yaml:"debounce"`
}

// NATSConfig configures run event publishing
type NATSConfig struct {
	// URL is the NATS server URL (empty = events disabled)
	URL string `yaml:"url"`
	// Subject is the subject run events are published on
	Subject string `yaml:"subject"`
}

// MetricsConfig configures the Prometheus endpoint
type MetricsConfig struct {
	// Addr is the listen address for /metrics (empty = disabled)
	Addr string `yaml:"addr"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Synthesis: SynthesisConfig{
			Seed:      0, // Time-based
			Catalog:   "",
			OutputDir: "",
		},
		Training: TrainingConfig{
			Trees:        100,
			TestFraction: 0.2,
			Seed:         42,
			ModelsDir:    "models",
		},
		Watch: WatchConfig{
			Dir:      "",
			Debounce: 500 * time.Millisecond,
		},
		NATS: NATSConfig{
			URL:     "",
			Subject: "cropsense.runs",
		},
		Metrics: MetricsConfig{
			Addr: "",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Training.Trees <= 0 {
		return fmt.Errorf("training.trees must be positive")
	}
	if c.Training.TestFraction <= 0 || c.Training.TestFraction >= 1 {
		return fmt.Errorf("training.test_fraction must be between 0 and 1")
	}
	if c.Training.ModelsDir == "" {
		return fmt.Errorf("training.models_dir is required")
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file. Environment
// variables in the file are expanded before parsing ($VAR and ${VAR}).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Synthesis
	if other.Synthesis.Seed != 0 {
		c.Synthesis.Seed = other.Synthesis.Seed
	}
	if other.Synthesis.Catalog != "" {
		c.Synthesis.Catalog = other.Synthesis.Catalog
	}
	if other.Synthesis.OutputDir != "" {
		c.Synthesis.OutputDir = other.Synthesis.OutputDir
	}

	// Training
	if other.Training.Trees != 0 {
		c.Training.Trees = other.Training.Trees
	}
	if other.Training.TestFraction != 0 {
		c.Training.TestFraction = other.Training.TestFraction
	}
	if other.Training.Seed != 0 {
		c.Training.Seed = other.Training.Seed
	}
	if other.Training.ModelsDir != "" {
		c.Training.ModelsDir = other.Training.ModelsDir
	}

	// Watch
	if other.Watch.Dir != "" {
		c.Watch.Dir = other.Watch.Dir
	}
	if other.Watch.Debounce != 0 {
		c.Watch.Debounce = other.Watch.Debounce
	}

	// NATS
	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}
	if other.NATS.Subject != "" {
		c.NATS.Subject = other.NATS.Subject
	}

	// Metrics
	if other.Metrics.Addr != "" {
		c.Metrics.Addr = other.Metrics.Addr
	}
}
