package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/pkg/loader"
	"github.com/aretw0/espalier/pkg/recipe"
)

var applyCmd = &cobra.Command{
	Use:   "apply <fitted.json> <data.csv>",
	Short: "Apply a fitted recipe to new data",
	Long: `Replays the fitted recipe's steps, using only the statistics captured
at fit time, and writes the transformed dataset as CSV (stdout by
default).`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("output")
		return runApply(cmd, args[0], args[1], out)
	},
}

func init() {
	applyCmd.Flags().StringP("output", "o", "", "Output CSV path (default stdout)")
	rootCmd.AddCommand(applyCmd)
}

func loadFitted(path string) (*recipe.Fitted, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fitted recipe.Fitted
	if err := json.Unmarshal(payload, &fitted); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &fitted, nil
}

func runApply(cmd *cobra.Command, fittedPath, dataPath, outPath string) error {
	logger := newLogger(cmd)

	fitted, err := loadFitted(fittedPath)
	if err != nil {
		return fmt.Errorf("load fitted recipe: %w", err)
	}
	ds, err := espalier.LoadCSV(dataPath, loadOptions(cmd)...)
	if err != nil {
		return fmt.Errorf("load data: %w", err)
	}

	out, err := fitted.Apply(ds)
	if err != nil {
		return fmt.Errorf("apply: %w", err)
	}
	logger.Info("recipe applied", "rows", out.Rows(), "columns", out.Cols())

	if outPath == "" {
		return loader.Write(cmd.OutOrStdout(), out)
	}
	return loader.WriteFile(outPath, out)
}
