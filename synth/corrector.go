package synth

import (
	"fmt"

	"github.com/agrofield/cropsense/dataset"
)

// Stats summarizes one correction pass.
type Stats struct {
	Rows            int
	UnknownProfiles map[string]int // trimmed label → rows on the default profile
	UnmappedSeasons map[string]int // trimmed label → rows on the default season
}

// FallbackRows returns how many rows drew from the default profile.
func (s *Stats) FallbackRows() int {
	var n int
	for _, count := range s.UnknownProfiles {
		n += count
	}
	return n
}

// Corrector rewrites the feature cells of every dataset row with
// synthesized values.
type Corrector struct {
	synth *Synthesizer
}

// NewCorrector returns a Corrector drawing from the given synthesizer.
func NewCorrector(synth *Synthesizer) *Corrector {
	return &Corrector{synth: synth}
}

// Correct builds a corrected copy of the dataset: same rows in the same
// order, with every feature cell replaced by a synthesized value. Identity
// and unrecognized columns keep their cells byte for byte; feature columns
// missing from the input header are appended to the output's. The input
// is never modified, and it must carry a crop column.
func (c *Corrector) Correct(src *dataset.Dataset) (*dataset.Dataset, *Stats, error) {
	if !src.HasColumn(dataset.ColCrop) {
		return nil, nil, fmt.Errorf("%w: columns are %v", dataset.ErrNoCropColumn, src.Header)
	}

	out := dataset.New(src.Header)
	out.EnsureColumns(dataset.FeatureColumns)

	stats := &Stats{
		Rows:            src.Len(),
		UnknownProfiles: make(map[string]int),
		UnmappedSeasons: make(map[string]int),
	}
	for _, rec := range src.Records {
		f, res := c.synth.Synthesize(rec[dataset.ColCrop])
		corrected := rec.Clone()
		f.Apply(corrected)
		out.Append(corrected)

		if !res.ProfileKnown {
			stats.UnknownProfiles[res.Crop]++
		}
		if !res.SeasonKnown {
			stats.UnmappedSeasons[res.Crop]++
		}
	}
	return out, stats, nil
}
