package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/agrofield/cropsense/dataset"
)

// WatchConfig configures the dataset watcher.
type WatchConfig struct {
	// Dir is the directory to watch for dataset files.
	Dir string

	// OutputDir receives corrected copies. Empty writes them next to
	// their inputs; either way the watcher never re-corrects its own
	// outputs.
	OutputDir string

	// Debounce is how long to wait for more changes before correcting.
	Debounce time.Duration

	// Logger for watcher events.
	Logger *slog.Logger
}

// WatchEvent is one watcher-triggered correction attempt.
type WatchEvent struct {
	// Input is the dataset file that changed.
	Input string

	// Report is the finished run (nil when the run failed).
	Report *Report

	// Err is why the run failed.
	Err error
}

// Watcher corrects dataset files as they appear or change in a directory.
type Watcher struct {
	config  WatchConfig
	runner  *Runner
	watcher *fsnotify.Watcher
	logger  *slog.Logger

	// Debouncing: collect changes before processing.
	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op

	// Content hashes to suppress events that changed nothing.
	hashMu sync.RWMutex
	hashes map[string]string

	events chan WatchEvent
}

// NewWatcher creates a watcher that feeds changed datasets to the runner.
func NewWatcher(runner *Runner, config WatchConfig) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if config.Debounce == 0 {
		config.Debounce = 500 * time.Millisecond
	}

	return &Watcher{
		config:  config,
		runner:  runner,
		watcher: fsw,
		logger:  logger,
		pending: make(map[string]fsnotify.Op),
		hashes:  make(map[string]string),
		events:  make(chan WatchEvent, 100),
	}, nil
}

// Events returns the channel of correction outcomes.
func (w *Watcher) Events() <-chan WatchEvent {
	return w.events
}

// Start begins watching the directory.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.addWatchesRecursive(w.config.Dir); err != nil {
		return err
	}

	go w.processEvents(ctx)

	w.logger.Info("dataset watcher started",
		"dir", w.config.Dir,
		"debounce", w.config.Debounce)
	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	close(w.events)
	return w.watcher.Close()
}

func (w *Watcher) addWatchesRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if strings.HasPrefix(filepath.Base(path), ".") && path != root {
			return filepath.SkipDir
		}
		if w.isOutputPath(path) && path != root {
			return filepath.SkipDir
		}

		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("failed to watch directory", "path", path, "error", err)
		} else {
			w.logger.Debug("watching directory", "path", path)
		}
		return nil
	})
}

// processEvents handles fsnotify events with debouncing.
func (w *Watcher) processEvents(ctx context.Context) {
	ticker := time.NewTicker(w.config.Debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watcher error", "error", err)

		case <-ticker.C:
			w.flushPending(ctx)
		}
	}
}

// handleFSEvent queues a single fsnotify event.
func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	path := event.Name

	if _, err := dataset.FormatFor(path); err != nil {
		// Watch newly created subdirectories.
		if event.Has(fsnotify.Create) {
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				w.handleNewDirectory(path)
			}
		}
		return
	}

	if w.isOwnOutput(path) {
		return
	}

	w.pendingMu.Lock()
	w.pending[path] = event.Op
	w.pendingMu.Unlock()

	w.logger.Debug("dataset change detected", "path", path, "op", event.Op.String())
}

func (w *Watcher) handleNewDirectory(path string) {
	if strings.HasPrefix(filepath.Base(path), ".") || w.isOutputPath(path) {
		return
	}
	if err := w.watcher.Add(path); err != nil {
		w.logger.Warn("failed to watch new directory", "path", path, "error", err)
	} else {
		w.logger.Debug("watching new directory", "path", path)
	}
}

// isOwnOutput reports whether path is something the watcher itself wrote.
func (w *Watcher) isOwnOutput(path string) bool {
	if strings.HasPrefix(filepath.Base(path), CorrectedPrefix) {
		return true
	}
	return w.isOutputPath(path)
}

func (w *Watcher) isOutputPath(path string) bool {
	return w.config.OutputDir != "" && isUnder(path, w.config.OutputDir)
}

// flushPending corrects the accumulated changes.
func (w *Watcher) flushPending(ctx context.Context) {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}
	toProcess := w.pending
	w.pending = make(map[string]fsnotify.Op)
	w.pendingMu.Unlock()

	for path, op := range toProcess {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if op.Has(fsnotify.Remove) || op.Has(fsnotify.Rename) {
			w.forgetHash(path)
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			w.forgetHash(path)
			continue
		}

		hash, err := hashFile(path)
		if err != nil {
			w.logger.Warn("failed to hash dataset", "path", path, "error", err)
		} else if old, ok := w.getHash(path); ok && old == hash {
			w.logger.Debug("dataset content unchanged, skipping", "path", path)
			continue
		}

		w.runner.metrics.RecordWatchEvent()
		report, runErr := w.runner.CorrectFile(ctx, path, OutputPath(path, w.config.OutputDir))
		if runErr == nil && hash != "" {
			w.setHash(path, hash)
		}
		w.sendEvent(WatchEvent{Input: path, Report: report, Err: runErr})
	}
}

func (w *Watcher) sendEvent(event WatchEvent) {
	select {
	case w.events <- event:
	default:
		w.logger.Warn("event channel full, dropping event", "path", event.Input)
	}
}

func (w *Watcher) getHash(path string) (string, bool) {
	w.hashMu.RLock()
	defer w.hashMu.RUnlock()
	hash, ok := w.hashes[path]
	return hash, ok
}

func (w *Watcher) setHash(path, hash string) {
	w.hashMu.Lock()
	defer w.hashMu.Unlock()
	w.hashes[path] = hash
}

func (w *Watcher) forgetHash(path string) {
	w.hashMu.Lock()
	defer w.hashMu.Unlock()
	delete(w.hashes, path)
}

func hashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
