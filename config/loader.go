package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	// ProjectConfigFile is the name of the project-level config file
	ProjectConfigFile = "cropsense.yaml"
	// UserConfigDir is the directory for user-level config
	UserConfigDir = ".config/cropsense"
	// UserConfigFile is the name of the user-level config file
	UserConfigFile = "config.yaml"
)

// Loader handles configuration loading with layered precedence
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a new configuration loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load loads configuration with layered precedence:
// 1. Default config
// 2. User config (~/.config/cropsense/config.yaml)
// 3. Project config (cropsense.yaml in current or parent directories)
// 4. Environment variables (CROPSENSE_*, with .env support)
func (l *Loader) Load() (*Config, error) {
	// Start with defaults
	config := DefaultConfig()

	// Load user config
	userConfigPath := l.userConfigPath()
	if userConfig, err := LoadFromFile(userConfigPath); err == nil {
		l.logger.Debug("Loaded user config", slog.String("path", userConfigPath))
		config.Merge(userConfig)
	} else if !errors.Is(err, os.ErrNotExist) {
		l.logger.Warn("Failed to load user config", slog.String("path", userConfigPath), slog.String("error", err.Error()))
	}

	// Load project config
	projectConfigPath := l.findProjectConfig()
	if projectConfigPath != "" {
		if projectConfig, err := LoadFromFile(projectConfigPath); err == nil {
			l.logger.Debug("Loaded project config", slog.String("path", projectConfigPath))
			config.Merge(projectConfig)
		} else {
			l.logger.Warn("Failed to load project config", slog.String("path", projectConfigPath), slog.String("error", err.Error()))
		}
	} else {
		l.logger.Debug("No project config found")
	}

	// Apply environment overrides
	l.applyEnv(config)

	// Validate final config
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnv overrides config fields from the environment. A .env file in
// the current directory is folded in first, without clobbering variables
// that are already set.
func (l *Loader) applyEnv(config *Config) {
	if err := godotenv.Load(); err == nil {
		l.logger.Debug("Loaded .env file")
	}

	if v := os.Getenv("CROPSENSE_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.Synthesis.Seed = seed
		} else {
			l.logger.Warn("Ignoring invalid CROPSENSE_SEED", slog.String("value", v))
		}
	}
	if v := os.Getenv("CROPSENSE_MODELS_DIR"); v != "" {
		config.Training.ModelsDir = v
	}
	if v := os.Getenv("CROPSENSE_NATS_URL"); v != "" {
		config.NATS.URL = v
	}
	if v := os.Getenv("CROPSENSE_NATS_SUBJECT"); v != "" {
		config.NATS.Subject = v
	}
	if v := os.Getenv("CROPSENSE_METRICS_ADDR"); v != "" {
		config.Metrics.Addr = v
	}
}

// EnsureUserConfig creates the user config file with defaults if it doesn't exist
func (l *Loader) EnsureUserConfig() error {
	userConfigPath := l.userConfigPath()

	// Check if it already exists
	if _, err := os.Stat(userConfigPath); err == nil {
		return nil // Already exists
	}

	// Create default config
	config := DefaultConfig()
	if err := config.SaveToFile(userConfigPath); err != nil {
		return err
	}

	l.logger.Info("Created default user config", slog.String("path", userConfigPath))
	return nil
}

// userConfigPath returns the path to the user config file
func (l *Loader) userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}

// findProjectConfig searches for cropsense.yaml in current and parent directories
func (l *Loader) findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		configPath := filepath.Join(dir, ProjectConfigFile)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			break
		}
		dir = parent
	}

	return ""
}
