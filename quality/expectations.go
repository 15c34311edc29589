package quality

import "github.com/agrofield/cropsense/dataset"

// Expectation is one sanity threshold on a per-crop column mean.
type Expectation struct {
	Crop   string
	Column string
	Want   string // human description of the passing range
	Pass   func(mean float64) bool
}

// MeanColumns are the feature columns whose per-crop means the checker
// reports.
var MeanColumns = []string{
	dataset.ColRainfall,
	dataset.ColN,
	dataset.ColWindSpeed,
	dataset.ColSolarRadiation,
}

// Expectations are the built-in sanity checks. Crops missing from the
// dataset skip their checks instead of failing them.
var Expectations = []Expectation{
	{
		Crop:   "Rice",
		Column: dataset.ColRainfall,
		Want:   "> 180 mm (monsoon crop)",
		Pass:   func(mean float64) bool { return mean > 180 },
	},
	{
		Crop:   "Rice",
		Column: dataset.ColWindSpeed,
		Want:   "~4.0 m/s (within the Kharif range 2.5 to 5.5)",
		Pass:   func(mean float64) bool { return mean >= 2.5 && mean <= 5.5 },
	},
	{
		Crop:   "Cotton",
		Column: dataset.ColN,
		Want:   "> 100 (nitrogen-hungry crop)",
		Pass:   func(mean float64) bool { return mean > 100 },
	},
	{
		Crop:   "Wheat",
		Column: dataset.ColWindSpeed,
		Want:   "< 2.5 m/s (winter crop)",
		Pass:   func(mean float64) bool { return mean < 2.5 },
	},
}
