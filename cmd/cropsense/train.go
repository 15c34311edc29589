package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/agrofield/cropsense/classifier"
	"github.com/agrofield/cropsense/dataset"
)

func trainCmd() *cobra.Command {
	var (
		trees        int
		testFraction float64
		seed         int64
		modelsDir    string
	)

	cmd := &cobra.Command{
		Use:   "train <dataset>",
		Short: "Train the crop recommendation model on a corrected dataset",
		Long: `Train fits a random forest to the dataset's nine soil/climate feature
columns with the crop column as label, evaluates it on a stratified
held-out split, and writes the model and label encoder artifacts into the
models directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}

			if trees == 0 {
				trees = cfg.Training.Trees
			}
			if testFraction == 0 {
				testFraction = cfg.Training.TestFraction
			}
			if seed == 0 {
				seed = cfg.Training.Seed
			}
			if modelsDir == "" {
				modelsDir = cfg.Training.ModelsDir
			}

			ds, err := dataset.ReadFile(args[0])
			if err != nil {
				return err
			}

			logger.Info("training crop model",
				"input", args[0],
				"rows", ds.Len(),
				"trees", trees,
				"test_fraction", testFraction,
				"seed", seed)

			result, err := classifier.Train(ds, classifier.TrainOptions{
				Trees:        trees,
				TestFraction: testFraction,
				Seed:         seed,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Trained on %d rows, evaluated on %d held-out rows\n\n",
				result.TrainRows, result.TestRows)
			fmt.Println(result.Report.String())

			if err := os.MkdirAll(modelsDir, 0755); err != nil {
				return fmt.Errorf("create models directory: %w", err)
			}
			modelPath := filepath.Join(modelsDir, classifier.ModelFileName)
			encoderPath := filepath.Join(modelsDir, classifier.EncoderFileName)
			if err := result.Model.SaveFile(modelPath); err != nil {
				return err
			}
			if err := result.Encoder.SaveFile(encoderPath); err != nil {
				return err
			}

			logger.Info("artifacts saved", "model", modelPath, "encoder", encoderPath)
			fmt.Printf("Saved %s and %s\n", modelPath, encoderPath)
			return nil
		},
	}

	cmd.Flags().IntVar(&trees, "trees", 0, "Forest size (default from config)")
	cmd.Flags().Float64Var(&testFraction, "test-fraction", 0, "Held-out share of rows per crop (default from config)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Split seed (default from config)")
	cmd.Flags().StringVar(&modelsDir, "models-dir", "", "Directory for model artifacts (default from config)")

	return cmd
}
