package catalog

import "fmt"

// Season identifies an Indian cropping season.
type Season string

// The built-in seasons. SeasonDefault is not a real season; it tags crops
// whose growing season is unknown and carries the fallback weather ranges.
const (
	SeasonKharif  Season = "Kharif"
	SeasonRabi    Season = "Rabi"
	SeasonZaid    Season = "Zaid"
	SeasonDefault Season = "Default"
)

// SeasonProfile bounds the weather features shared by every crop grown in
// the same season.
type SeasonProfile struct {
	WindSpeed          Interval // m/s
	SolarRadiation     Interval // W/m²
	Evapotranspiration Interval // mm/day
}

// Validate checks every interval of the profile.
func (p SeasonProfile) Validate() error {
	fields := []struct {
		name string
		iv   Interval
	}{
		{"wind_speed_ms", p.WindSpeed},
		{"solar_radiation_wm2", p.SolarRadiation},
		{"evapotranspiration_mm", p.Evapotranspiration},
	}
	for _, f := range fields {
		if err := f.iv.Validate(); err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
	}
	return nil
}

// CropSeasons assigns each crop to its growing season. Lookups are exact:
// a crop listed here under a different spelling than in CropProfiles is
// treated as unknown and lands on SeasonDefault.
var CropSeasons = map[string]Season{
	"Rice":      SeasonKharif,
	"Cotton":    SeasonKharif,
	"Maize":     SeasonKharif,
	"Sugarcane": SeasonKharif,
	"Bajra":     SeasonKharif,
	"Soybean":   SeasonKharif,
	"Urad":      SeasonKharif,
	"Moong":     SeasonKharif,
	"Groundnut": SeasonKharif,
	"Toor":      SeasonKharif,
	"Ragi":      SeasonKharif,
	"Jute":      SeasonKharif,

	"Wheat":       SeasonRabi,
	"Mustard":     SeasonRabi,
	"Bengal Gram": SeasonRabi,
	"Potato":      SeasonRabi,
	"Tobacco":     SeasonRabi,
	"Tomato":      SeasonRabi,
	"Onion":       SeasonRabi,

	"Sunflower": SeasonZaid,
	"Banana":    SeasonZaid,
	"Coconut":   SeasonZaid,
	"Mirchi":    SeasonZaid,
}

// SeasonWeather maps each season to its weather ranges. SeasonDefault rows
// cover crops without a season assignment.
var SeasonWeather = map[Season]SeasonProfile{
	SeasonKharif:  {WindSpeed: iv(2.5, 5.5), SolarRadiation: iv(180, 220), Evapotranspiration: iv(4.0, 6.0)},
	SeasonRabi:    {WindSpeed: iv(1.0, 2.5), SolarRadiation: iv(150, 190), Evapotranspiration: iv(2.5, 4.0)},
	SeasonZaid:    {WindSpeed: iv(3.0, 6.5), SolarRadiation: iv(230, 280), Evapotranspiration: iv(6.0, 8.5)},
	SeasonDefault: {WindSpeed: iv(2.0, 4.0), SolarRadiation: iv(180, 200), Evapotranspiration: iv(4.0, 5.0)},
}
