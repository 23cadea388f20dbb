package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/internal/presentation"
)

var describeCmd = &cobra.Command{
	Use:   "describe <recipe.yaml|fitted.json> [data.csv]",
	Short: "Render a readable summary of a recipe",
	Long: `Prints a summary of a recipe's roles and steps. For a YAML definition
a dataset CSV is required to resolve the roles; for a fitted recipe the
captured statistics are summarized too.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		md, err := summarize(cmd, args)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), presentation.Render(md))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}

func summarize(cmd *cobra.Command, args []string) (string, error) {
	if strings.HasSuffix(args[0], ".json") {
		fitted, err := loadFitted(args[0])
		if err != nil {
			return "", err
		}
		return presentation.FittedMarkdown(fitted), nil
	}
	if len(args) < 2 {
		return "", fmt.Errorf("describing a YAML definition requires a dataset CSV for the schema")
	}
	ds, err := espalier.LoadCSV(args[1], loadOptions(cmd)...)
	if err != nil {
		return "", err
	}
	r, err := espalier.LoadRecipe(args[0], ds.Schema(), loadOptions(cmd)...)
	if err != nil {
		return "", err
	}
	return presentation.RecipeMarkdown(r), nil
}
