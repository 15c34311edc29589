package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agrofield/cropsense/pipeline"
)

func correctCmd() *cobra.Command {
	var (
		outputDir   string
		seed        int64
		catalogPath string
	)

	cmd := &cobra.Command{
		Use:   "correct <dataset>...",
		Short: "Rewrite a dataset's feature columns with profile-bounded values",
		Long: `Correct reads one or more delimited datasets, replaces every soil and
climate feature cell with a value drawn from the crop's parameter profile,
and writes each result as corrected_<name> alongside the input or into
--output-dir.

Inputs may be files or glob patterns (** matches recursively):

  cropsense correct crops.csv
  cropsense correct 'data/**/*.csv' --output-dir corrected/
  cropsense correct crops.csv --seed 42`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}

			cat, err := loadCatalog(cfg, catalogPath)
			if err != nil {
				return err
			}

			if seed == 0 {
				seed = cfg.Synthesis.Seed
			}
			if outputDir == "" {
				outputDir = cfg.Synthesis.OutputDir
			}

			runner := pipeline.NewRunner(pipeline.Options{
				Catalog: cat,
				Seed:    seed,
				Logger:  logger,
			})

			reports, err := runner.CorrectGlob(cmd.Context(), args, outputDir)
			for _, report := range reports {
				fmt.Printf("%s -> %s (%d rows", report.Input, report.Output, report.Rows)
				if report.FallbackRows > 0 {
					fmt.Printf(", %d on default profile", report.FallbackRows)
				}
				fmt.Println(")")
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for corrected copies (default: next to each input)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (0 = time-based)")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "YAML file of crop profile overrides")

	return cmd
}
