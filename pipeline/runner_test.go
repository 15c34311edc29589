package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrofield/cropsense/dataset"
)

const runnerInput = "crop,region\n" +
	"Rice,north\n" +
	"Wheat,south\n" +
	"unknown_crop,east\n"

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCorrectFileWritesCorrectedCopy(t *testing.T) {
	tmpDir := t.TempDir()
	input := writeInput(t, tmpDir, "crops.csv", runnerInput)
	output := filepath.Join(tmpDir, "out", "corrected_crops.csv")

	runner := NewRunner(Options{Seed: 42})
	report, err := runner.CorrectFile(context.Background(), input, output)
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, input, report.Input)
	assert.Equal(t, output, report.Output)
	assert.Equal(t, 3, report.Rows)
	assert.Equal(t, int64(42), report.Seed)
	assert.Equal(t, map[string]int{"unknown_crop": 1}, report.UnknownCrops)
	assert.Equal(t, 1, report.FallbackRows)

	corrected, err := dataset.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, 3, corrected.Len())
	assert.Equal(t, "Rice", corrected.Records[0][dataset.ColCrop])
	assert.Equal(t, "north", corrected.Records[0]["region"])
	for _, col := range dataset.FeatureColumns {
		assert.True(t, corrected.HasColumn(col), "missing column %s", col)
		assert.NotEmpty(t, corrected.Records[0][col])
	}
}

func TestCorrectFilePicksSeedWhenUnset(t *testing.T) {
	tmpDir := t.TempDir()
	input := writeInput(t, tmpDir, "crops.csv", runnerInput)

	runner := NewRunner(Options{})
	report, err := runner.CorrectFile(context.Background(), input, OutputPath(input, ""))
	require.NoError(t, err)
	assert.NotZero(t, report.Seed)
}

func TestCorrectFileSameSeedSameOutput(t *testing.T) {
	tmpDir := t.TempDir()
	input := writeInput(t, tmpDir, "crops.csv", runnerInput)

	runner := NewRunner(Options{Seed: 7})
	first := filepath.Join(tmpDir, "first.csv")
	second := filepath.Join(tmpDir, "second.csv")

	_, err := runner.CorrectFile(context.Background(), input, first)
	require.NoError(t, err)
	_, err = runner.CorrectFile(context.Background(), input, second)
	require.NoError(t, err)

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCorrectFileMissingInput(t *testing.T) {
	tmpDir := t.TempDir()
	output := filepath.Join(tmpDir, "corrected_absent.csv")

	runner := NewRunner(Options{})
	_, err := runner.CorrectFile(context.Background(), filepath.Join(tmpDir, "absent.csv"), output)
	require.ErrorIs(t, err, dataset.ErrMissingInput)

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr), "failed run must not leave an output file")
}

func TestCorrectFileNoCropColumn(t *testing.T) {
	tmpDir := t.TempDir()
	input := writeInput(t, tmpDir, "crops.csv", "region,yield\nnorth,12\n")
	output := filepath.Join(tmpDir, "corrected_crops.csv")

	runner := NewRunner(Options{})
	_, err := runner.CorrectFile(context.Background(), input, output)
	require.ErrorIs(t, err, dataset.ErrNoCropColumn)

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestCorrectFileRecordsMetrics(t *testing.T) {
	tmpDir := t.TempDir()
	input := writeInput(t, tmpDir, "crops.csv", runnerInput)

	metrics := NewMetrics(prometheus.NewRegistry())
	runner := NewRunner(Options{Seed: 1, Metrics: metrics})
	_, err := runner.CorrectFile(context.Background(), input, OutputPath(input, ""))
	require.NoError(t, err)
}

func TestCorrectGlob(t *testing.T) {
	tmpDir := t.TempDir()
	writeInput(t, tmpDir, "a.csv", runnerInput)
	writeInput(t, tmpDir, "b.csv", runnerInput)
	outDir := filepath.Join(tmpDir, "out")

	runner := NewRunner(Options{Seed: 42})
	reports, err := runner.CorrectGlob(context.Background(), []string{filepath.Join(tmpDir, "*.csv")}, outDir)
	require.NoError(t, err)
	require.Len(t, reports, 2)

	for _, name := range []string{"corrected_a.csv", "corrected_b.csv"} {
		_, statErr := os.Stat(filepath.Join(outDir, name))
		assert.NoError(t, statErr)
	}
}

func TestCorrectGlobStopsAtFirstFailure(t *testing.T) {
	tmpDir := t.TempDir()
	writeInput(t, tmpDir, "a.csv", runnerInput)
	writeInput(t, tmpDir, "b.csv", "region\nnorth\n")

	runner := NewRunner(Options{Seed: 42})
	reports, err := runner.CorrectGlob(context.Background(), []string{filepath.Join(tmpDir, "*.csv")}, "")
	require.ErrorIs(t, err, dataset.ErrNoCropColumn)
	assert.Len(t, reports, 1, "files before the failure still complete")
}

func TestCorrectGlobBadPattern(t *testing.T) {
	runner := NewRunner(Options{})
	_, err := runner.CorrectGlob(context.Background(), []string{filepath.Join(t.TempDir(), "absent.csv")}, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, dataset.ErrMissingInput))
}
