package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/agrofield/cropsense/dataset"
)

// ResolveInputs expands glob patterns to concrete dataset files. Supports
// single-level (*) and recursive (**) wildcards:
//
//   - "data/*.csv"    → every CSV directly under data/
//   - "data/**/*.csv" → every CSV under data/ recursively
//   - "crops.csv"     → the file itself, which must exist
//
// Matches are deduplicated, limited to known dataset formats, and
// returned sorted.
func ResolveInputs(patterns []string) ([]string, error) {
	var resolved []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		paths, err := resolvePattern(pattern)
		if err != nil {
			return nil, fmt.Errorf("resolve pattern %q: %w", pattern, err)
		}
		for _, p := range paths {
			if !seen[p] {
				seen[p] = true
				resolved = append(resolved, p)
			}
		}
	}

	sort.Strings(resolved)
	return resolved, nil
}

func resolvePattern(pattern string) ([]string, error) {
	if !containsGlob(pattern) {
		info, err := os.Stat(pattern)
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", dataset.ErrMissingInput, pattern)
		}
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			return nil, fmt.Errorf("path is a directory, not a dataset file: %s", pattern)
		}
		return []string{pattern}, nil
	}

	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob error: %w", err)
	}

	var files []string
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || info.IsDir() {
			continue
		}
		if _, err := dataset.FormatFor(match); err != nil {
			continue
		}
		files = append(files, match)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no dataset files match pattern: %s", pattern)
	}
	return files, nil
}

func containsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[")
}

// isUnder reports whether path sits inside dir (or is dir itself).
func isUnder(path, dir string) bool {
	if dir == "" {
		return false
	}
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (!strings.HasPrefix(rel, ".."+string(filepath.Separator)) && rel != "..")
}
