package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "espalier",
	Short: "Espalier fits and applies feature-engineering recipes",
	Long: `Espalier turns declarative recipe definitions (YAML) into fitted
transformations: statistics are learned once from training data and
replayed unchanged on any compatible dataset.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Emit logs as JSON")
	rootCmd.PersistentFlags().StringSlice("na", nil, "CSV values treated as NA (default \"\" and \"NA\")")
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	asJSON, _ := cmd.Flags().GetBool("log-json")
	return logging.New(logging.ParseLevel(level), asJSON)
}

func loadOptions(cmd *cobra.Command) []espalier.Option {
	opts := []espalier.Option{espalier.WithLogger(newLogger(cmd))}
	if na, _ := cmd.Flags().GetStringSlice("na"); len(na) > 0 {
		opts = append(opts, espalier.WithNAStrings(na...))
	}
	return opts
}
