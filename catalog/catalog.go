package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// Catalog answers profile, season, and weather lookups for the corrector.
// Every lookup is total: misses fall back to the default profile or season
// instead of returning an error. A Catalog is immutable once built; Merge
// produces a new one.
type Catalog struct {
	profiles map[string]CropProfile
	lower    map[string]string // lowercased crop name → canonical key
	def      CropProfile
	seasons  map[string]Season
	weather  map[Season]SeasonProfile
}

// New builds a Catalog from the given tables, validating every interval.
// The weather table must carry a SeasonDefault entry, since that row backs
// the fallback for unmapped seasons.
func New(profiles map[string]CropProfile, def CropProfile, seasons map[string]Season, weather map[Season]SeasonProfile) (*Catalog, error) {
	c := &Catalog{
		profiles: make(map[string]CropProfile, len(profiles)),
		lower:    make(map[string]string, len(profiles)),
		def:      def,
		seasons:  make(map[string]Season, len(seasons)),
		weather:  make(map[Season]SeasonProfile, len(weather)),
	}

	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		p := profiles[name]
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("profile %q: %w", name, err)
		}
		c.profiles[name] = p
		// First canonical key in sorted order wins a case collision.
		key := strings.ToLower(name)
		if _, taken := c.lower[key]; !taken {
			c.lower[key] = name
		}
	}

	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("default profile: %w", err)
	}

	for crop, season := range seasons {
		c.seasons[crop] = season
	}

	for season, p := range weather {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("weather %q: %w", season, err)
		}
		c.weather[season] = p
	}
	if _, ok := c.weather[SeasonDefault]; !ok {
		return nil, fmt.Errorf("weather table has no %q entry", SeasonDefault)
	}

	return c, nil
}

// MustNew is New, panicking on invalid tables. Reserved for the built-ins,
// which are compile-time constants.
func MustNew(profiles map[string]CropProfile, def CropProfile, seasons map[string]Season, weather map[Season]SeasonProfile) *Catalog {
	c, err := New(profiles, def, seasons, weather)
	if err != nil {
		panic(fmt.Sprintf("catalog: %v", err))
	}
	return c
}

// Builtin returns a Catalog over the built-in tables.
func Builtin() *Catalog {
	return MustNew(CropProfiles, DefaultProfile, CropSeasons, SeasonWeather)
}

// Profile returns the cultivation profile for crop. Matching tries the
// exact name first, then a case-insensitive match; anything else gets the
// default profile. The second return reports whether a profile matched, so
// callers can count fallbacks.
func (c *Catalog) Profile(crop string) (CropProfile, bool) {
	if p, ok := c.profiles[crop]; ok {
		return p, true
	}
	if name, ok := c.lower[strings.ToLower(crop)]; ok {
		return c.profiles[name], true
	}
	return c.def, false
}

// DefaultProfile returns the fallback cultivation profile.
func (c *Catalog) DefaultProfile() CropProfile {
	return c.def
}

// Season returns the growing season for crop. Matching is exact, so the
// season table deliberately recognizes a different set of names than the
// profile table (Jute has a season but no profile). Unmapped crops get
// SeasonDefault with ok=false.
func (c *Catalog) Season(crop string) (Season, bool) {
	if s, ok := c.seasons[crop]; ok {
		return s, true
	}
	return SeasonDefault, false
}

// Weather returns the weather ranges for a season, falling back to the
// SeasonDefault row for tags without one.
func (c *Catalog) Weather(season Season) (SeasonProfile, bool) {
	if p, ok := c.weather[season]; ok {
		return p, true
	}
	return c.weather[SeasonDefault], false
}

// Crops returns the profiled crop names in sorted order.
func (c *Catalog) Crops() []string {
	names := make([]string, 0, len(c.profiles))
	for name := range c.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
