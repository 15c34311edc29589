package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agrofield/cropsense/dataset"
	"github.com/agrofield/cropsense/quality"
)

func checkCmd() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "check <dataset>",
		Short: "Run quality checks over a corrected dataset",
		Long: `Check counts empty cells per column and compares per-crop means of
rainfall, nitrogen, wind speed, and solar radiation against agronomic
expectations.

Findings are diagnostic: the command fails only when the dataset cannot
be read, or with --strict when any expectation fails.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, err := setup()
			if err != nil {
				return err
			}

			ds, err := dataset.ReadFile(args[0])
			if err != nil {
				return err
			}

			report, err := quality.Check(ds)
			if err != nil {
				return err
			}

			fmt.Print(report.String())

			if !report.Healthy() {
				logger.Warn("quality checks found problems", "input", args[0])
				if strict {
					return fmt.Errorf("quality checks failed for %s", args[0])
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when a check fails")

	return cmd
}
