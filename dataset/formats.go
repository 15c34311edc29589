package dataset

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format describes one on-disk table flavor.
type Format struct {
	Name  string
	Comma rune
}

var formats = map[string]Format{
	".csv": {Name: "csv", Comma: ','},
	".tsv": {Name: "tsv", Comma: '\t'},
}

// RegisterFormat maps a file extension (with leading dot) to a format.
// Later registrations replace earlier ones.
func RegisterFormat(ext string, f Format) {
	formats[strings.ToLower(ext)] = f
}

// FormatFor picks the format for a path by extension, case-insensitively.
func FormatFor(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	f, ok := formats[ext]
	if !ok {
		return Format{}, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	return f, nil
}
