package main

import (
	"bufio"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agrofield/cropsense/classifier"
	"github.com/agrofield/cropsense/dataset"
)

type promptField struct {
	column string
	label  string
	hint   string
}

// Prompt order and range hints follow the trained feature vector.
var promptSections = []struct {
	title  string
	fields []promptField
}{
	{"Soil nutrients", []promptField{
		{dataset.ColN, "Nitrogen (N)", "10-140"},
		{dataset.ColP, "Phosphorus (P)", "10-100"},
		{dataset.ColK, "Potassium (K)", "10-100"},
	}},
	{"Basic weather and soil", []promptField{
		{dataset.ColTemperature, "Temperature (C)", "10-40"},
		{dataset.ColHumidity, "Humidity (%)", "10-100"},
		{dataset.ColPH, "pH level", "4.0-9.0"},
		{dataset.ColRainfall, "Rainfall (mm)", "20-300"},
	}},
	{"Advanced features", []promptField{
		{dataset.ColOrganicCarbon, "Organic carbon", "0.1-1.0"},
		{dataset.ColSoilMoisture, "Soil moisture (%)", "10-90"},
		{dataset.ColWindSpeed, "Wind speed (m/s)", "1.0-10.0"},
		{dataset.ColSolarRadiation, "Solar radiation (W/m2)", "150-350"},
		{dataset.ColEvapotranspiration, "Evapotranspiration (mm)", "2.0-10.0"},
	}},
}

func predictCmd() *cobra.Command {
	var (
		modelsDir string
		features  string
		topK      int
	)

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Recommend crops from a soil/climate reading",
		Long: `Predict loads the trained model and ranks crops for one reading of the
twelve feature values. Without --features the values are prompted for
interactively.

The --features list follows the prompt order:

  N, P, K, temperature_c, humidity_pct, pH, rainfall_mm, organic_carbon,
  soil_moisture, wind_speed_ms, solar_radiation_wm2, evapotranspiration_mm

Example:

  cropsense predict --features 90,42,43,23.5,82.1,6.5,220,0.65,37.0,4.2,200,5.1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup()
			if err != nil {
				return err
			}
			if modelsDir == "" {
				modelsDir = cfg.Training.ModelsDir
			}

			predictor, err := classifier.LoadPredictor(
				filepath.Join(modelsDir, classifier.ModelFileName),
				filepath.Join(modelsDir, classifier.EncoderFileName),
			)
			if errors.Is(err, classifier.ErrMissingModel) {
				return fmt.Errorf("no trained model in %s (run 'cropsense train' first)", modelsDir)
			}
			if err != nil {
				return err
			}

			var sample map[string]float64
			if features != "" {
				sample, err = parseFeatureList(features)
			} else {
				sample, err = promptFeatures(cmd)
			}
			if err != nil {
				return err
			}

			predictions, err := predictor.TopK(sample, topK)
			if err != nil {
				return err
			}

			fmt.Printf("\nTop %d crop recommendations:\n\n", len(predictions))
			for i, p := range predictions {
				name := p.Crop
				if i == 0 {
					name = strings.ToUpper(name)
				}
				fmt.Printf("  %d. %-20s (confidence: %.2f%%)\n", i+1, name, p.Confidence*100)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&modelsDir, "models-dir", "", "Directory holding model artifacts (default from config)")
	cmd.Flags().StringVar(&features, "features", "", "Comma-separated list of the 12 feature values")
	cmd.Flags().IntVar(&topK, "top", classifier.DefaultTopK, "How many crops to rank")

	return cmd
}

// parseFeatureList decodes the --features value into a sample keyed by
// column name.
func parseFeatureList(list string) (map[string]float64, error) {
	parts := strings.Split(list, ",")
	if len(parts) != len(dataset.FeatureColumns) {
		return nil, fmt.Errorf("--features needs %d comma-separated values, got %d",
			len(dataset.FeatureColumns), len(parts))
	}

	sample := make(map[string]float64, len(parts))
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("feature %s: invalid value %q", dataset.FeatureColumns[i], part)
		}
		sample[dataset.FeatureColumns[i]] = v
	}
	return sample, nil
}

// promptFeatures collects the sample interactively, one numbered prompt
// per feature with its expected range.
func promptFeatures(cmd *cobra.Command) (map[string]float64, error) {
	scanner := bufio.NewScanner(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Crop predictor (full input mode)")

	sample := make(map[string]float64, len(dataset.FeatureColumns))
	n := 0
	for _, section := range promptSections {
		fmt.Fprintf(out, "\n--- %s ---\n", section.title)
		for _, field := range section.fields {
			n++
			fmt.Fprintf(out, "%d. %s [%s]: ", n, field.label, field.hint)
			if !scanner.Scan() {
				if err := scanner.Err(); err != nil {
					return nil, err
				}
				return nil, fmt.Errorf("input ended before %s", field.column)
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(scanner.Text()), 64)
			if err != nil {
				return nil, fmt.Errorf("invalid input %q: enter a numeric value", scanner.Text())
			}
			sample[field.column] = v
		}
	}
	return sample, nil
}
