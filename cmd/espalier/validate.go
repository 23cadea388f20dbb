package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/espalier"
)

var validateCmd = &cobra.Command{
	Use:   "validate <recipe.yaml> <data.csv>",
	Short: "Check a recipe definition against a dataset schema",
	Long: `Parses the recipe definition and resolves its roles against the CSV
header, reporting problems (missing outcome, unknown predictors,
malformed steps) without fitting anything.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := espalier.LoadCSV(args[1], loadOptions(cmd)...)
		if err != nil {
			return fmt.Errorf("load data: %w", err)
		}
		r, err := espalier.LoadRecipe(args[0], ds.Schema(), loadOptions(cmd)...)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Recipe is valid: %d step(s), outcome %q\n",
			len(r.Steps()), r.Roles().Outcome)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
