package synth

import (
	"math"
	"strings"

	"github.com/agrofield/cropsense/catalog"
)

// Organic carbon is not crop-specific; every row draws from the same
// agronomic range. Soil moisture is derived from humidity rather than
// drawn.
var organicCarbonRange = catalog.Interval{Min: 0.3, Max: 0.8}

const soilMoistureFactor = 0.45

// Resolution records how a crop label resolved against the catalogs, so
// callers can count fallbacks.
type Resolution struct {
	Crop         string // trimmed label used for lookups
	ProfileKnown bool
	Season       catalog.Season
	SeasonKnown  bool
}

// Synthesizer draws feature vectors for crop labels from catalog ranges.
type Synthesizer struct {
	cat *catalog.Catalog
	rng Rand
}

// New returns a Synthesizer over the given catalog and random source.
func New(cat *catalog.Catalog, rng Rand) *Synthesizer {
	return &Synthesizer{cat: cat, rng: rng}
}

// Synthesize draws a full feature vector for the crop label. The label is
// trimmed before lookup; unknown crops draw from the default profile, and
// crops without a season assignment draw weather from the default season.
// Draw order is fixed, so a seeded source replays identical vectors.
func (s *Synthesizer) Synthesize(label string) (Features, Resolution) {
	crop := strings.TrimSpace(label)

	profile, profileKnown := s.cat.Profile(crop)
	season, seasonKnown := s.cat.Season(crop)
	weather, _ := s.cat.Weather(season)

	var f Features
	f.N = s.draw(profile.N, 1)
	f.P = s.draw(profile.P, 1)
	f.K = s.draw(profile.K, 1)
	f.Temperature = s.draw(profile.Temperature, 1)
	f.Humidity = s.draw(profile.Humidity, 1)
	f.PH = s.draw(profile.PH, 2)
	f.Rainfall = s.draw(profile.Rainfall, 1)
	f.OrganicCarbon = s.draw(organicCarbonRange, 2)
	// Derived from the rounded humidity, not a fresh draw.
	f.SoilMoisture = roundTo(f.Humidity*soilMoistureFactor, 1)
	f.WindSpeed = s.draw(weather.WindSpeed, 2)
	f.SolarRadiation = s.draw(weather.SolarRadiation, 2)
	f.Evapotranspiration = s.draw(weather.Evapotranspiration, 2)

	return f, Resolution{
		Crop:         crop,
		ProfileKnown: profileKnown,
		Season:       season,
		SeasonKnown:  seasonKnown,
	}
}

func (s *Synthesizer) draw(iv catalog.Interval, decimals int) float64 {
	v := iv.Min + s.rng.Float64()*iv.Width()
	return roundTo(v, decimals)
}

// roundTo rounds half away from zero at the given number of decimals.
func roundTo(v float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Round(v*p) / p
}
