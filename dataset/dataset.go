package dataset

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Record is one dataset row, keyed by column name. Cells hold the raw text
// from the file; feature cells are rewritten as formatted numbers by the
// corrector.
type Record map[string]string

// Crop returns the row's crop label with surrounding whitespace stripped.
func (r Record) Crop() string {
	return strings.TrimSpace(r[ColCrop])
}

// Clone returns an independent copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Float parses the named cell as a number. Empty cells and missing columns
// are not numbers.
func (r Record) Float(col string) (float64, error) {
	raw := strings.TrimSpace(r[col])
	if raw == "" {
		return 0, fmt.Errorf("column %q is empty", col)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("column %q: %w", col, err)
	}
	return v, nil
}

// SetFloat writes a number into the named cell with the given number of
// decimals, fixed-point, so 90 renders as "90.0" rather than "90".
func (r Record) SetFloat(col string, v float64, decimals int) {
	r[col] = strconv.FormatFloat(v, 'f', decimals, 64)
}

// Dataset is an ordered table: the header as read, and one Record per data
// row. Columns outside the known schema ride along untouched.
type Dataset struct {
	Header  []string
	Records []Record
}

// New returns an empty dataset with the given header.
func New(header []string) *Dataset {
	return &Dataset{Header: slices.Clone(header)}
}

// Len returns the number of data rows.
func (d *Dataset) Len() int {
	return len(d.Records)
}

// HasColumn reports whether the header contains the named column.
func (d *Dataset) HasColumn(name string) bool {
	return slices.Contains(d.Header, name)
}

// MissingColumns returns which of the named columns are absent from the
// header, in the order given.
func (d *Dataset) MissingColumns(names []string) []string {
	var missing []string
	for _, name := range names {
		if !d.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// EnsureColumns appends any of the named columns missing from the header,
// preserving the order of both. Existing rows gain empty cells implicitly.
func (d *Dataset) EnsureColumns(names []string) {
	for _, name := range names {
		if !d.HasColumn(name) {
			d.Header = append(d.Header, name)
		}
	}
}

// Append adds a row to the dataset.
func (d *Dataset) Append(r Record) {
	d.Records = append(d.Records, r)
}

// Crops returns the distinct crop labels in first-seen order.
func (d *Dataset) Crops() []string {
	seen := make(map[string]bool)
	var crops []string
	for _, r := range d.Records {
		crop := r.Crop()
		if !seen[crop] {
			seen[crop] = true
			crops = append(crops, crop)
		}
	}
	return crops
}
