package synth

import "github.com/agrofield/cropsense/dataset"

// Features holds one synthesized feature vector, already rounded to its
// output precision.
type Features struct {
	N                  float64
	P                  float64
	K                  float64
	Temperature        float64
	Humidity           float64
	PH                 float64
	Rainfall           float64
	OrganicCarbon      float64
	SoilMoisture       float64
	WindSpeed          float64
	SolarRadiation     float64
	Evapotranspiration float64
}

// Apply writes the features into a record's cells at their column
// precision: two decimals for pH, organic carbon, and weather, one for the
// rest.
func (f Features) Apply(rec dataset.Record) {
	rec.SetFloat(dataset.ColN, f.N, 1)
	rec.SetFloat(dataset.ColP, f.P, 1)
	rec.SetFloat(dataset.ColK, f.K, 1)
	rec.SetFloat(dataset.ColTemperature, f.Temperature, 1)
	rec.SetFloat(dataset.ColHumidity, f.Humidity, 1)
	rec.SetFloat(dataset.ColPH, f.PH, 2)
	rec.SetFloat(dataset.ColRainfall, f.Rainfall, 1)
	rec.SetFloat(dataset.ColOrganicCarbon, f.OrganicCarbon, 2)
	rec.SetFloat(dataset.ColSoilMoisture, f.SoilMoisture, 1)
	rec.SetFloat(dataset.ColWindSpeed, f.WindSpeed, 2)
	rec.SetFloat(dataset.ColSolarRadiation, f.SolarRadiation, 2)
	rec.SetFloat(dataset.ColEvapotranspiration, f.Evapotranspiration, 2)
}
