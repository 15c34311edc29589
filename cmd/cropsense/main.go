// Package main provides the cropsense binary entry point.
// CropSense corrects crop datasets against agronomic parameter profiles
// and trains a crop recommendation model on the corrected data.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agrofield/cropsense/catalog"
	"github.com/agrofield/cropsense/config"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "cropsense"
)

var (
	configPath string
	logLevel   string
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cropsense",
		Short: "Crop dataset correction and recommendation toolchain",
		Long: `CropSense synthesizes agronomically plausible feature values for crop
datasets and recommends crops from soil and climate readings.

It provides:
- Profile-driven correction of soil/climate feature columns
- Random forest training on corrected datasets
- Top-3 crop recommendations from a 12-feature reading
- Quality checks over corrected datasets
- A watch mode that corrects datasets as files change`,
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	// Version command
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	cmd.AddCommand(correctCmd())
	cmd.AddCommand(trainCmd())
	cmd.AddCommand(predictCmd())
	cmd.AddCommand(checkCmd())
	cmd.AddCommand(watchCmd())

	return cmd
}

// setup configures logging and loads configuration for a subcommand run.
func setup() (*config.Config, *slog.Logger, error) {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if configPath != "" {
		cfg, err := config.LoadFromFile(configPath)
		if err != nil {
			return nil, nil, fmt.Errorf("load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return nil, nil, fmt.Errorf("invalid configuration: %w", err)
		}
		return cfg, logger, nil
	}

	cfg, err := config.NewLoader(logger).Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, logger, nil
}

// loadCatalog builds the profile catalog, merging an overrides file over
// the built-ins when one is configured. An explicit path wins over the
// configured one.
func loadCatalog(cfg *config.Config, overridesPath string) (*catalog.Catalog, error) {
	path := overridesPath
	if path == "" {
		path = cfg.Synthesis.Catalog
	}

	cat := catalog.Builtin()
	if path == "" {
		return cat, nil
	}

	overrides, err := catalog.LoadOverrides(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog overrides: %w", err)
	}
	merged, err := cat.Merge(overrides)
	if err != nil {
		return nil, fmt.Errorf("apply catalog overrides: %w", err)
	}
	return merged, nil
}
