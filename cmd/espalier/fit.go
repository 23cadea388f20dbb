package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/espalier"
)

var fitCmd = &cobra.Command{
	Use:   "fit <recipe.yaml> <train.csv>",
	Short: "Fit a recipe against training data",
	Long: `Estimates every step of the recipe in order against the training CSV
and writes the fitted recipe (captured statistics included) as JSON.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("output")
		return runFit(cmd, args[0], args[1], out)
	},
}

func init() {
	fitCmd.Flags().StringP("output", "o", "fitted.json", "Output path for the fitted recipe")
	rootCmd.AddCommand(fitCmd)
}

func runFit(cmd *cobra.Command, recipePath, trainPath, outPath string) error {
	logger := newLogger(cmd)

	train, err := espalier.LoadCSV(trainPath, loadOptions(cmd)...)
	if err != nil {
		return fmt.Errorf("load training data: %w", err)
	}
	r, err := espalier.LoadRecipe(recipePath, train.Schema(), loadOptions(cmd)...)
	if err != nil {
		return fmt.Errorf("load recipe: %w", err)
	}

	fitted, err := r.Fit(train)
	if err != nil {
		return fmt.Errorf("fit: %w", err)
	}

	payload, err := json.MarshalIndent(fitted, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, payload, 0o644); err != nil {
		return err
	}
	logger.Info("recipe fitted",
		"recipe", recipePath,
		"rows", train.Rows(),
		"steps", len(fitted.Steps()),
		"output", outPath)
	return nil
}
