package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Overrides extends or replaces catalog entries from a YAML document:
//
//	profiles:
//	  Quinoa:
//	    n: [20, 40]
//	    p: [30, 50]
//	    k: [20, 35]
//	    temperature_c: [15, 22]
//	    humidity_pct: [40, 60]
//	    ph: [6.0, 7.5]
//	    rainfall_mm: [40, 80]
//	seasons:
//	  Quinoa: Rabi
//	weather:
//	  Monsoon:
//	    wind_speed_ms: [2.0, 5.0]
//	    solar_radiation_wm2: [160, 210]
//	    evapotranspiration_mm: [3.0, 5.5]
type Overrides struct {
	Profiles map[string]ProfileOverride `yaml:"profiles"`
	Default  *ProfileOverride           `yaml:"default"`
	Seasons  map[string]Season          `yaml:"seasons"`
	Weather  map[Season]WeatherOverride `yaml:"weather"`
}

// ProfileOverride is a crop profile with every interval required, pointers
// so that an omitted field is distinguishable from [0, 0].
type ProfileOverride struct {
	N           *Interval `yaml:"n"`
	P           *Interval `yaml:"p"`
	K           *Interval `yaml:"k"`
	Temperature *Interval `yaml:"temperature_c"`
	Humidity    *Interval `yaml:"humidity_pct"`
	PH          *Interval `yaml:"ph"`
	Rainfall    *Interval `yaml:"rainfall_mm"`
}

func (o ProfileOverride) toProfile() (CropProfile, error) {
	fields := []struct {
		name string
		iv   *Interval
	}{
		{"n", o.N},
		{"p", o.P},
		{"k", o.K},
		{"temperature_c", o.Temperature},
		{"humidity_pct", o.Humidity},
		{"ph", o.PH},
		{"rainfall_mm", o.Rainfall},
	}
	var p CropProfile
	dst := []*Interval{&p.N, &p.P, &p.K, &p.Temperature, &p.Humidity, &p.PH, &p.Rainfall}
	for i, f := range fields {
		if f.iv == nil {
			return CropProfile{}, fmt.Errorf("missing interval %q", f.name)
		}
		*dst[i] = *f.iv
	}
	return p, nil
}

// WeatherOverride is a season profile with every interval required.
type WeatherOverride struct {
	WindSpeed          *Interval `yaml:"wind_speed_ms"`
	SolarRadiation     *Interval `yaml:"solar_radiation_wm2"`
	Evapotranspiration *Interval `yaml:"evapotranspiration_mm"`
}

func (o WeatherOverride) toProfile() (SeasonProfile, error) {
	fields := []struct {
		name string
		iv   *Interval
	}{
		{"wind_speed_ms", o.WindSpeed},
		{"solar_radiation_wm2", o.SolarRadiation},
		{"evapotranspiration_mm", o.Evapotranspiration},
	}
	var p SeasonProfile
	dst := []*Interval{&p.WindSpeed, &p.SolarRadiation, &p.Evapotranspiration}
	for i, f := range fields {
		if f.iv == nil {
			return SeasonProfile{}, fmt.Errorf("missing interval %q", f.name)
		}
		*dst[i] = *f.iv
	}
	return p, nil
}

// LoadOverrides reads an overrides document from a YAML file.
func LoadOverrides(path string) (*Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read overrides file: %w", err)
	}
	var o Overrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("failed to parse overrides file: %w", err)
	}
	return &o, nil
}

// Merge returns a new Catalog with o applied on top of c. Entries for
// existing names replace the built-ins; new names extend the tables. The
// receiver is never modified.
func (c *Catalog) Merge(o *Overrides) (*Catalog, error) {
	if o == nil {
		return c, nil
	}

	profiles := make(map[string]CropProfile, len(c.profiles)+len(o.Profiles))
	for name, p := range c.profiles {
		profiles[name] = p
	}
	for name, op := range o.Profiles {
		p, err := op.toProfile()
		if err != nil {
			return nil, fmt.Errorf("profile %q: %w", name, err)
		}
		profiles[name] = p
	}

	def := c.def
	if o.Default != nil {
		p, err := o.Default.toProfile()
		if err != nil {
			return nil, fmt.Errorf("default profile: %w", err)
		}
		def = p
	}

	seasons := make(map[string]Season, len(c.seasons)+len(o.Seasons))
	for crop, s := range c.seasons {
		seasons[crop] = s
	}
	for crop, s := range o.Seasons {
		seasons[crop] = s
	}

	weather := make(map[Season]SeasonProfile, len(c.weather)+len(o.Weather))
	for season, p := range c.weather {
		weather[season] = p
	}
	for season, ow := range o.Weather {
		p, err := ow.toProfile()
		if err != nil {
			return nil, fmt.Errorf("weather %q: %w", season, err)
		}
		weather[season] = p
	}

	return New(profiles, def, seasons, weather)
}
