package catalog

import "fmt"

// CropProfile bounds the soil and climate features of a single crop. Each
// interval is the agronomically plausible range the synthesizer draws from.
type CropProfile struct {
	N           Interval // nitrogen, kg/ha
	P           Interval // phosphorus, kg/ha
	K           Interval // potassium, kg/ha
	Temperature Interval // °C
	Humidity    Interval // relative humidity, percent
	PH          Interval // soil pH
	Rainfall    Interval // mm per season
}

// Validate checks every interval of the profile.
func (p CropProfile) Validate() error {
	fields := []struct {
		name string
		iv   Interval
	}{
		{"n", p.N},
		{"p", p.P},
		{"k", p.K},
		{"temperature_c", p.Temperature},
		{"humidity_pct", p.Humidity},
		{"ph", p.PH},
		{"rainfall_mm", p.Rainfall},
	}
	for _, f := range fields {
		if err := f.iv.Validate(); err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
	}
	return nil
}

// CropProfiles maps crop names to their cultivation profiles. Ranges follow
// published agronomic recommendations for Indian field crops.
var CropProfiles = map[string]CropProfile{
	"Rice":        {N: iv(60, 90), P: iv(35, 60), K: iv(35, 45), Temperature: iv(20, 27), Humidity: iv(80, 89), PH: iv(5.5, 7.0), Rainfall: iv(180, 300)},
	"Coconut":     {N: iv(20, 40), P: iv(15, 30), K: iv(25, 35), Temperature: iv(25, 29), Humidity: iv(90, 99), PH: iv(5.0, 6.5), Rainfall: iv(130, 230)},
	"Sugarcane":   {N: iv(90, 120), P: iv(50, 70), K: iv(40, 60), Temperature: iv(25, 35), Humidity: iv(80, 90), PH: iv(6.0, 7.5), Rainfall: iv(150, 220)},
	"Cotton":      {N: iv(100, 140), P: iv(40, 60), K: iv(20, 30), Temperature: iv(22, 29), Humidity: iv(70, 85), PH: iv(6.0, 7.5), Rainfall: iv(60, 110)},
	"Maize":       {N: iv(60, 90), P: iv(40, 60), K: iv(18, 25), Temperature: iv(18, 27), Humidity: iv(55, 70), PH: iv(5.5, 7.0), Rainfall: iv(60, 100)},
	"Banana":      {N: iv(90, 110), P: iv(70, 90), K: iv(45, 55), Temperature: iv(25, 30), Humidity: iv(75, 85), PH: iv(5.8, 6.8), Rainfall: iv(90, 120)},
	"Wheat":       {N: iv(30, 50), P: iv(50, 70), K: iv(30, 45), Temperature: iv(15, 23), Humidity: iv(50, 70), PH: iv(6.0, 7.0), Rainfall: iv(40, 80)},
	"Mustard":     {N: iv(20, 40), P: iv(45, 60), K: iv(20, 30), Temperature: iv(10, 20), Humidity: iv(30, 50), PH: iv(5.5, 7.0), Rainfall: iv(30, 60)},
	"Potato":      {N: iv(50, 70), P: iv(40, 60), K: iv(40, 55), Temperature: iv(12, 22), Humidity: iv(50, 65), PH: iv(5.0, 6.0), Rainfall: iv(40, 70)},
	"Bengal Gram": {N: iv(20, 40), P: iv(55, 75), K: iv(35, 45), Temperature: iv(18, 25), Humidity: iv(20, 40), PH: iv(6.0, 7.5), Rainfall: iv(30, 60)},
	"Toor":        {N: iv(25, 45), P: iv(55, 75), K: iv(25, 35), Temperature: iv(25, 30), Humidity: iv(40, 60), PH: iv(5.5, 7.0), Rainfall: iv(60, 90)},
	"Moong":       {N: iv(15, 30), P: iv(45, 65), K: iv(20, 30), Temperature: iv(25, 32), Humidity: iv(50, 70), PH: iv(6.0, 7.2), Rainfall: iv(40, 70)},
	"Urad":        {N: iv(15, 30), P: iv(50, 70), K: iv(20, 30), Temperature: iv(25, 32), Humidity: iv(55, 75), PH: iv(6.0, 7.5), Rainfall: iv(40, 75)},
	"Soybean":     {N: iv(30, 50), P: iv(60, 80), K: iv(35, 45), Temperature: iv(20, 30), Humidity: iv(40, 70), PH: iv(6.0, 7.0), Rainfall: iv(50, 100)},
	"Bajra":       {N: iv(10, 30), P: iv(20, 40), K: iv(10, 20), Temperature: iv(25, 35), Humidity: iv(20, 40), PH: iv(6.0, 7.5), Rainfall: iv(20, 45)},
	"Sorghum":     {N: iv(30, 50), P: iv(30, 50), K: iv(25, 35), Temperature: iv(26, 34), Humidity: iv(30, 50), PH: iv(6.0, 7.0), Rainfall: iv(35, 65)},
	"Ragi":        {N: iv(10, 30), P: iv(20, 40), K: iv(15, 25), Temperature: iv(26, 34), Humidity: iv(20, 40), PH: iv(5.0, 7.0), Rainfall: iv(30, 60)},
	"Groundnut":   {N: iv(30, 50), P: iv(40, 60), K: iv(40, 50), Temperature: iv(24, 32), Humidity: iv(40, 60), PH: iv(5.5, 7.0), Rainfall: iv(50, 90)},
	"Tobacco":     {N: iv(40, 60), P: iv(30, 50), K: iv(30, 50), Temperature: iv(22, 28), Humidity: iv(50, 70), PH: iv(5.5, 6.5), Rainfall: iv(60, 90)},
	"Mirchi":      {N: iv(35, 55), P: iv(50, 70), K: iv(40, 60), Temperature: iv(20, 30), Humidity: iv(40, 65), PH: iv(5.5, 6.8), Rainfall: iv(50, 90)},
	"Tomato":      {N: iv(40, 60), P: iv(45, 65), K: iv(50, 70), Temperature: iv(18, 26), Humidity: iv(60, 80), PH: iv(6.0, 7.0), Rainfall: iv(40, 90)},
	"Onion":       {N: iv(50, 70), P: iv(40, 60), K: iv(50, 70), Temperature: iv(15, 25), Humidity: iv(50, 70), PH: iv(6.0, 7.0), Rainfall: iv(30, 60)},
	"Sunflower":   {N: iv(50, 70), P: iv(50, 70), K: iv(35, 45), Temperature: iv(25, 30), Humidity: iv(40, 60), PH: iv(6.0, 7.5), Rainfall: iv(40, 75)},
}

// DefaultProfile is the fallback for crops absent from CropProfiles, so a
// dataset with an unrecognized crop still corrects instead of failing.
var DefaultProfile = CropProfile{
	N:           iv(40, 60),
	P:           iv(40, 60),
	K:           iv(40, 60),
	Temperature: iv(20, 30),
	Humidity:    iv(50, 70),
	PH:          iv(6.0, 7.0),
	Rainfall:    iv(100, 200),
}
