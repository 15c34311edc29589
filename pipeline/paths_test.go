package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/agrofield/cropsense/dataset"
)

func writeDataset(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("crop\nRice\n"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestResolveInputs_SingleFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "crops.csv")
	writeDataset(t, path)

	inputs, err := ResolveInputs([]string{path})
	if err != nil {
		t.Fatalf("ResolveInputs failed: %v", err)
	}
	if len(inputs) != 1 || inputs[0] != path {
		t.Errorf("expected [%q], got %v", path, inputs)
	}
}

func TestResolveInputs_MissingFile(t *testing.T) {
	_, err := ResolveInputs([]string{filepath.Join(t.TempDir(), "absent.csv")})
	if !errors.Is(err, dataset.ErrMissingInput) {
		t.Errorf("expected ErrMissingInput, got %v", err)
	}
}

func TestResolveInputs_DirectoryRejected(t *testing.T) {
	_, err := ResolveInputs([]string{t.TempDir()})
	if err == nil {
		t.Error("expected error for directory path")
	}
}

func TestResolveInputs_Glob(t *testing.T) {
	// Create test structure:
	// tmpDir/
	//   a.csv
	//   b.tsv
	//   notes.txt
	//   nested/c.csv
	tmpDir := t.TempDir()
	writeDataset(t, filepath.Join(tmpDir, "a.csv"))
	writeDataset(t, filepath.Join(tmpDir, "b.tsv"))
	if err := os.WriteFile(filepath.Join(tmpDir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(tmpDir, "nested"), 0755); err != nil {
		t.Fatal(err)
	}
	writeDataset(t, filepath.Join(tmpDir, "nested", "c.csv"))

	inputs, err := ResolveInputs([]string{filepath.Join(tmpDir, "*")})
	if err != nil {
		t.Fatalf("ResolveInputs failed: %v", err)
	}

	// Only dataset formats directly under tmpDir; notes.txt and the
	// nested directory are skipped.
	if len(inputs) != 2 {
		t.Fatalf("expected 2 inputs, got %d: %v", len(inputs), inputs)
	}
	if filepath.Base(inputs[0]) != "a.csv" || filepath.Base(inputs[1]) != "b.tsv" {
		t.Errorf("unexpected inputs: %v", inputs)
	}
}

func TestResolveInputs_DoubleStarGlob(t *testing.T) {
	tmpDir := t.TempDir()
	writeDataset(t, filepath.Join(tmpDir, "a.csv"))
	if err := os.MkdirAll(filepath.Join(tmpDir, "x", "y"), 0755); err != nil {
		t.Fatal(err)
	}
	writeDataset(t, filepath.Join(tmpDir, "x", "y", "deep.csv"))

	inputs, err := ResolveInputs([]string{filepath.Join(tmpDir, "**", "*.csv")})
	if err != nil {
		t.Fatalf("ResolveInputs failed: %v", err)
	}
	if len(inputs) != 2 {
		t.Fatalf("expected 2 inputs, got %d: %v", len(inputs), inputs)
	}
}

func TestResolveInputs_GlobNoMatches(t *testing.T) {
	_, err := ResolveInputs([]string{filepath.Join(t.TempDir(), "*.csv")})
	if err == nil {
		t.Error("expected error for pattern with no matches")
	}
}

func TestResolveInputs_Dedupes(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "a.csv")
	writeDataset(t, path)

	inputs, err := ResolveInputs([]string{path, filepath.Join(tmpDir, "*.csv"), path})
	if err != nil {
		t.Fatalf("ResolveInputs failed: %v", err)
	}
	if len(inputs) != 1 {
		t.Errorf("expected 1 deduplicated input, got %d: %v", len(inputs), inputs)
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		outDir string
		want   string
	}{
		{
			name:  "next to input",
			input: filepath.Join("data", "crops.csv"),
			want:  filepath.Join("data", "corrected_crops.csv"),
		},
		{
			name:   "into output dir",
			input:  filepath.Join("data", "crops.csv"),
			outDir: "out",
			want:   filepath.Join("out", "corrected_crops.csv"),
		},
		{
			name:  "bare file name",
			input: "crops.tsv",
			want:  "corrected_crops.tsv",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OutputPath(tt.input, tt.outDir); got != tt.want {
				t.Errorf("OutputPath(%q, %q) = %q, want %q", tt.input, tt.outDir, got, tt.want)
			}
		})
	}
}

func TestIsUnder(t *testing.T) {
	tests := []struct {
		path string
		dir  string
		want bool
	}{
		{filepath.Join("out", "a.csv"), "out", true},
		{filepath.Join("out", "deep", "a.csv"), "out", true},
		{"out", "out", true},
		{filepath.Join("data", "a.csv"), "out", false},
		{"outlier.csv", "out", false},
		{filepath.Join("a.csv"), "", false},
	}

	for _, tt := range tests {
		if got := isUnder(tt.path, tt.dir); got != tt.want {
			t.Errorf("isUnder(%q, %q) = %v, want %v", tt.path, tt.dir, got, tt.want)
		}
	}
}
