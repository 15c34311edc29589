package pipeline

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWatcher(t *testing.T, dir, outDir string) *Watcher {
	t.Helper()
	runner := NewRunner(Options{
		Seed:   42,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	w, err := NewWatcher(runner, WatchConfig{
		Dir:       dir,
		OutputDir: outDir,
		Debounce:  50 * time.Millisecond,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	return w
}

func waitForEvent(t *testing.T, w *Watcher) WatchEvent {
	t.Helper()
	select {
	case event := <-w.Events():
		return event
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watch event")
		return WatchEvent{}
	}
}

func assertNoEvent(t *testing.T, w *Watcher) {
	t.Helper()
	select {
	case event := <-w.Events():
		t.Fatalf("unexpected watch event for %s", event.Input)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcherCorrectsNewDataset(t *testing.T) {
	tmpDir := t.TempDir()
	outDir := filepath.Join(tmpDir, "out")

	w := newTestWatcher(t, tmpDir, outDir)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	input := filepath.Join(tmpDir, "crops.csv")
	require.NoError(t, os.WriteFile(input, []byte(runnerInput), 0644))

	event := waitForEvent(t, w)
	require.NoError(t, event.Err)
	assert.Equal(t, input, event.Input)
	require.NotNil(t, event.Report)
	assert.Equal(t, 3, event.Report.Rows)

	_, err := os.Stat(filepath.Join(outDir, "corrected_crops.csv"))
	assert.NoError(t, err)
}

func TestWatcherSkipsUnchangedContent(t *testing.T) {
	tmpDir := t.TempDir()
	w := newTestWatcher(t, tmpDir, filepath.Join(tmpDir, "out"))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	input := filepath.Join(tmpDir, "crops.csv")
	require.NoError(t, os.WriteFile(input, []byte(runnerInput), 0644))
	first := waitForEvent(t, w)
	require.NoError(t, first.Err)

	// Rewriting identical bytes must not trigger another run.
	require.NoError(t, os.WriteFile(input, []byte(runnerInput), 0644))
	assertNoEvent(t, w)

	// Changed bytes must.
	require.NoError(t, os.WriteFile(input, []byte(runnerInput+"Maize,west\n"), 0644))
	second := waitForEvent(t, w)
	require.NoError(t, second.Err)
	assert.Equal(t, 4, second.Report.Rows)
}

func TestWatcherIgnoresOwnOutputs(t *testing.T) {
	tmpDir := t.TempDir()
	// No output directory: corrected copies land next to their inputs
	// and must not feed back into the watcher.
	w := newTestWatcher(t, tmpDir, "")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	input := filepath.Join(tmpDir, "crops.csv")
	require.NoError(t, os.WriteFile(input, []byte(runnerInput), 0644))

	event := waitForEvent(t, w)
	require.NoError(t, event.Err)
	assert.Equal(t, input, event.Input)

	// The corrected copy was just written into the watched directory;
	// nothing further may happen.
	assertNoEvent(t, w)
}

func TestWatcherIgnoresUnknownFormats(t *testing.T) {
	tmpDir := t.TempDir()
	w := newTestWatcher(t, tmpDir, "")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "notes.txt"), []byte("x"), 0644))
	assertNoEvent(t, w)
}

func TestWatcherReportsFailedRuns(t *testing.T) {
	tmpDir := t.TempDir()
	w := newTestWatcher(t, tmpDir, "")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	input := filepath.Join(tmpDir, "broken.csv")
	require.NoError(t, os.WriteFile(input, []byte("region\nnorth\n"), 0644))

	event := waitForEvent(t, w)
	require.Error(t, event.Err)
	assert.Equal(t, input, event.Input)
	assert.Nil(t, event.Report)
}

func TestWatcherWatchesNewSubdirectories(t *testing.T) {
	tmpDir := t.TempDir()
	w := newTestWatcher(t, tmpDir, filepath.Join(tmpDir, "out"))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	subDir := filepath.Join(tmpDir, "incoming")
	require.NoError(t, os.Mkdir(subDir, 0755))
	// Give the watcher a moment to pick up the new directory.
	time.Sleep(200 * time.Millisecond)

	input := filepath.Join(subDir, "crops.csv")
	require.NoError(t, os.WriteFile(input, []byte(runnerInput), 0644))

	event := waitForEvent(t, w)
	require.NoError(t, event.Err)
	assert.Equal(t, input, event.Input)
}

func TestWatcherStop(t *testing.T) {
	tmpDir := t.TempDir()
	w := newTestWatcher(t, tmpDir, "")
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx))

	cancel()
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, w.Stop())

	_, open := <-w.Events()
	assert.False(t, open)
}
