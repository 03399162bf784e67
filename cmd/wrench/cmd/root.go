package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "wrench",
	Short: "Wrench interpreter",
	Long: `wrench is a tree-walking interpreter for the Wrench data-pipeline
scripting language: static typing with Int/Double widening, Array/Row/Table
values, and a concurrent pipe engine for map/filter/reduce stages over
tables.`,
	Version: Version,
	Args:    cobra.RangeArgs(1, 2),
	RunE:    runScript,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("wrench version %%s\nCommit: %s\n", GitCommit))
}

func exitWithError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
