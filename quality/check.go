package quality

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/agrofield/cropsense/dataset"
)

// CropMeans carries the column means for one crop's rows.
type CropMeans struct {
	Crop  string
	Rows  int
	Means map[string]float64 // column → mean over its parsable cells
}

// Finding is one evaluated expectation.
type Finding struct {
	Crop    string
	Column  string
	Value   float64
	Want    string
	OK      bool
	Skipped bool // crop or column absent, nothing to judge
}

// Report is the outcome of a quality check.
type Report struct {
	Rows           int
	Nulls          map[string]int // column → empty cells
	BadCells       map[string]int // column → non-numeric cells in mean columns
	MissingColumns []string       // mean columns absent from the header
	Means          []CropMeans    // sorted by crop
	Findings       []Finding
}

// TotalNulls sums empty cells across all columns.
func (r *Report) TotalNulls() int {
	var n int
	for _, c := range r.Nulls {
		n += c
	}
	return n
}

// Healthy reports whether the dataset passed: no empty cells, no
// unparsable feature cells, and no failed expectation.
func (r *Report) Healthy() bool {
	if r.TotalNulls() > 0 || len(r.BadCells) > 0 {
		return false
	}
	for _, f := range r.Findings {
		if !f.Skipped && !f.OK {
			return false
		}
	}
	return true
}

// Check inspects a corrected dataset. The crop column is required; mean
// columns missing from the header are reported rather than fatal.
func Check(d *dataset.Dataset) (*Report, error) {
	if !d.HasColumn(dataset.ColCrop) {
		return nil, fmt.Errorf("%w: columns are %v", dataset.ErrNoCropColumn, d.Header)
	}

	r := &Report{
		Rows:     d.Len(),
		Nulls:    make(map[string]int),
		BadCells: make(map[string]int),
	}

	for _, col := range d.Header {
		for _, rec := range d.Records {
			if strings.TrimSpace(rec[col]) == "" {
				r.Nulls[col]++
			}
		}
	}

	r.MissingColumns = d.MissingColumns(MeanColumns)
	present := make([]string, 0, len(MeanColumns))
	for _, col := range MeanColumns {
		if d.HasColumn(col) {
			present = append(present, col)
		}
	}

	// column values per crop, in first-seen crop order
	values := make(map[string]map[string][]float64)
	rows := make(map[string]int)
	for _, rec := range d.Records {
		crop := rec.Crop()
		rows[crop]++
		byCol := values[crop]
		if byCol == nil {
			byCol = make(map[string][]float64, len(present))
			values[crop] = byCol
		}
		for _, col := range present {
			if strings.TrimSpace(rec[col]) == "" {
				continue // already counted as a null
			}
			v, err := rec.Float(col)
			if err != nil {
				r.BadCells[col]++
				continue
			}
			byCol[col] = append(byCol[col], v)
		}
	}

	crops := make([]string, 0, len(values))
	for crop := range values {
		crops = append(crops, crop)
	}
	sort.Strings(crops)

	meansByCrop := make(map[string]map[string]float64, len(crops))
	for _, crop := range crops {
		means := make(map[string]float64, len(present))
		for col, vals := range values[crop] {
			if len(vals) > 0 {
				means[col] = stat.Mean(vals, nil)
			}
		}
		meansByCrop[crop] = means
		r.Means = append(r.Means, CropMeans{Crop: crop, Rows: rows[crop], Means: means})
	}

	for _, e := range Expectations {
		f := Finding{Crop: e.Crop, Column: e.Column, Want: e.Want}
		mean, ok := meansByCrop[e.Crop][e.Column]
		if !ok {
			f.Skipped = true
		} else {
			f.Value = mean
			f.OK = e.Pass(mean)
		}
		r.Findings = append(r.Findings, f)
	}

	return r, nil
}

// String renders the report for terminal output.
func (r *Report) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "rows: %d\n", r.Rows)
	if n := r.TotalNulls(); n == 0 {
		b.WriteString("empty cells: none\n")
	} else {
		fmt.Fprintf(&b, "empty cells: %d\n", n)
		cols := make([]string, 0, len(r.Nulls))
		for col := range r.Nulls {
			cols = append(cols, col)
		}
		sort.Strings(cols)
		for _, col := range cols {
			fmt.Fprintf(&b, "  %s: %d\n", col, r.Nulls[col])
		}
	}
	if len(r.BadCells) > 0 {
		cols := make([]string, 0, len(r.BadCells))
		for col := range r.BadCells {
			cols = append(cols, col)
		}
		sort.Strings(cols)
		for _, col := range cols {
			fmt.Fprintf(&b, "non-numeric cells in %s: %d\n", col, r.BadCells[col])
		}
	}
	if len(r.MissingColumns) > 0 {
		fmt.Fprintf(&b, "missing columns: %s\n", strings.Join(r.MissingColumns, ", "))
	}

	if len(r.Means) > 0 {
		fmt.Fprintf(&b, "\ncrop means (%s):\n", strings.Join(MeanColumns, ", "))
		for _, cm := range r.Means {
			fmt.Fprintf(&b, "  %-14s", cm.Crop)
			for _, col := range MeanColumns {
				if mean, ok := cm.Means[col]; ok {
					fmt.Fprintf(&b, " %s=%.2f", col, mean)
				}
			}
			fmt.Fprintf(&b, "  (%d rows)\n", cm.Rows)
		}
	}

	b.WriteString("\nchecks:\n")
	for _, f := range r.Findings {
		switch {
		case f.Skipped:
			fmt.Fprintf(&b, "  skip %s %s (no rows to judge)\n", f.Crop, f.Column)
		case f.OK:
			fmt.Fprintf(&b, "  ok   %s %s = %.2f, want %s\n", f.Crop, f.Column, f.Value, f.Want)
		default:
			fmt.Fprintf(&b, "  FAIL %s %s = %.2f, want %s\n", f.Crop, f.Column, f.Value, f.Want)
		}
	}
	return b.String()
}
