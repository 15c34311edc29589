package dataset

// Column names of the crop dataset schema.
const (
	ColCrop               = "crop"
	ColN                  = "N"
	ColP                  = "P"
	ColK                  = "K"
	ColTemperature        = "temperature_c"
	ColHumidity           = "humidity_pct"
	ColPH                 = "pH"
	ColRainfall           = "rainfall_mm"
	ColOrganicCarbon      = "organic_carbon"
	ColSoilMoisture       = "soil_moisture"
	ColWindSpeed          = "wind_speed_ms"
	ColSolarRadiation     = "solar_radiation_wm2"
	ColEvapotranspiration = "evapotranspiration_mm"
)

// FeatureColumns lists every synthesized feature column, in the order the
// corrector fills them.
var FeatureColumns = []string{
	ColN,
	ColP,
	ColK,
	ColTemperature,
	ColHumidity,
	ColPH,
	ColRainfall,
	ColOrganicCarbon,
	ColSoilMoisture,
	ColWindSpeed,
	ColSolarRadiation,
	ColEvapotranspiration,
}

// TrainingColumns lists the feature columns the classifier trains on, in
// model input order. Weather columns are deliberately excluded.
var TrainingColumns = []string{
	ColN,
	ColP,
	ColK,
	ColPH,
	ColOrganicCarbon,
	ColSoilMoisture,
	ColTemperature,
	ColHumidity,
	ColRainfall,
}
