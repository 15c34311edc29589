package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/agrofield/cropsense/pipeline"
)

func watchCmd() *cobra.Command {
	var (
		dir         string
		outputDir   string
		debounce    time.Duration
		seed        int64
		catalogPath string
		natsURL     string
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Correct datasets as files change in a directory",
		Long: `Watch monitors a directory for dataset files and corrects each one as
it appears or changes, after a debounce window. Corrected copies never
trigger further runs.

While watching, run outcomes can be published to NATS and Prometheus
metrics served on --metrics-addr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}

			if dir == "" {
				dir = cfg.Watch.Dir
			}
			if dir == "" {
				return fmt.Errorf("watch directory is required (--dir or watch.dir in config)")
			}
			info, err := os.Stat(dir)
			if err != nil {
				return fmt.Errorf("stat watch directory: %w", err)
			}
			if !info.IsDir() {
				return fmt.Errorf("not a directory: %s", dir)
			}

			if outputDir == "" {
				outputDir = cfg.Synthesis.OutputDir
			}
			if debounce == 0 {
				debounce = cfg.Watch.Debounce
			}
			if seed == 0 {
				seed = cfg.Synthesis.Seed
			}
			if natsURL == "" {
				natsURL = cfg.NATS.URL
			}
			if metricsAddr == "" {
				metricsAddr = cfg.Metrics.Addr
			}

			cat, err := loadCatalog(cfg, catalogPath)
			if err != nil {
				return err
			}

			printBanner()

			// Metrics endpoint
			var (
				metrics    *pipeline.Metrics
				metricsSrv *http.Server
			)
			if metricsAddr != "" {
				registry := prometheus.NewRegistry()
				metrics = pipeline.NewMetrics(registry)

				mux := http.NewServeMux()
				mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
				metricsSrv = &http.Server{Addr: metricsAddr, Handler: mux}
				go func() {
					logger.Info("metrics endpoint listening", "addr", metricsAddr)
					if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						logger.Error("metrics server failed", "error", err)
					}
				}()
			}

			// Run event publisher
			publisher, err := pipeline.ConnectPublisher(natsURL, cfg.NATS.Subject)
			if err != nil {
				return err
			}
			defer publisher.Close()
			if publisher != nil {
				logger.Info("publishing run events", "url", natsURL, "subject", cfg.NATS.Subject)
			}

			runner := pipeline.NewRunner(pipeline.Options{
				Catalog:   cat,
				Seed:      seed,
				Logger:    logger,
				Metrics:   metrics,
				Publisher: publisher,
			})
			watcher, err := pipeline.NewWatcher(runner, pipeline.WatchConfig{
				Dir:       dir,
				OutputDir: outputDir,
				Debounce:  debounce,
				Logger:    logger,
			})
			if err != nil {
				return fmt.Errorf("create watcher: %w", err)
			}

			// Setup signal handling
			signalCtx, signalCancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer signalCancel()

			if err := watcher.Start(signalCtx); err != nil {
				return fmt.Errorf("start watcher: %w", err)
			}

			go func() {
				for event := range watcher.Events() {
					if event.Err != nil {
						continue
					}
					fmt.Printf("corrected %s -> %s (%d rows)\n",
						event.Input, event.Report.Output, event.Report.Rows)
				}
			}()

			// Block until shutdown signal
			<-signalCtx.Done()
			logger.Info("Received shutdown signal")

			if err := watcher.Stop(); err != nil {
				logger.Error("Error stopping watcher", "error", err)
			}
			if metricsSrv != nil {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
					logger.Error("Error stopping metrics server", "error", err)
				}
			}

			logger.Info("CropSense watch shutdown complete")
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Directory to watch (default from config)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for corrected copies (default: next to each input)")
	cmd.Flags().DurationVar(&debounce, "debounce", 0, "How long to collect changes before correcting (default from config)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (0 = time-based per run)")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "YAML file of crop profile overrides")
	cmd.Flags().StringVar(&natsURL, "nats-url", "", "NATS server URL for run events (default from config)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Listen address for Prometheus metrics (default from config)")

	return cmd
}

func printBanner() {
	fmt.Println("╔═══════════════════════════════════════════════╗")
	fmt.Println("║            CropSense v" + Version + "                   ║")
	fmt.Println("║     Crop Dataset Correction Pipeline          ║")
	fmt.Println("╚═══════════════════════════════════════════════╝")
}
