package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Read parses a table from r using the given delimiter. The first row is
// the header; a leading UTF-8 BOM is stripped. Every data row must have as
// many cells as the header.
func Read(r io.Reader, comma rune) (*Dataset, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	raw = bytes.TrimPrefix(raw, utf8BOM)

	cr := csv.NewReader(bytes.NewReader(raw))
	cr.Comma = comma

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	d := New(header)
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		rec := make(Record, len(header))
		for i, col := range header {
			rec[col] = row[i]
		}
		d.Append(rec)
	}
	return d, nil
}

// ReadFile loads a dataset from path, choosing the delimiter from the file
// extension. A missing file reports ErrMissingInput so callers can tell
// "no such input" from a malformed one.
func ReadFile(path string) (*Dataset, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrMissingInput, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	d, err := Read(f, format.Comma)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Write renders the dataset to w using the given delimiter. Cells for
// columns a record lacks are written empty.
func (d *Dataset) Write(w io.Writer, comma rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma

	if err := cw.Write(d.Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	row := make([]string, len(d.Header))
	for _, rec := range d.Records {
		for i, col := range d.Header {
			row[i] = rec[col]
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile saves the dataset to path, choosing the delimiter from the
// file extension and creating parent directories as needed.
func (d *Dataset) WriteFile(path string) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	if dir := dirOf(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := d.Write(f, format.Comma); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func dirOf(path string) string {
	if dir := filepath.Dir(path); dir != "." {
		return dir
	}
	return ""
}
