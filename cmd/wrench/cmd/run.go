package cmd

import (
	"fmt"
	"os"

	"github.com/AAUP4-Projekt/wrench/internal/evaluator"
	"github.com/AAUP4-Projekt/wrench/internal/parser"
	"github.com/AAUP4-Projekt/wrench/internal/semantic"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <source_file> [debug=true]",
	Short: "Run a Wrench source file",
	Long: `Run executes a Wrench program from a file.

Takes a source file path, optionally followed by the literal argument
"debug=true", which dumps the parsed AST and traces execution to stderr.

Examples:
  wrench run program.wrench
  wrench run program.wrench debug=true`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runScript(_ *cobra.Command, args []string) error {
	filename := args[0]
	debug := len(args) == 2 && args[1] == "debug=true"

	source, err := os.ReadFile(filename)
	if err != nil {
		exitWithError("failed to read %s: %v", filename, err)
	}

	program, err := parser.Parse(string(source))
	if err != nil {
		exitWithError("%s", err)
	}

	if err := semantic.Analyze(program); err != nil {
		exitWithError("%s", err)
	}

	if debug {
		fmt.Fprintln(os.Stderr, "AST:")
		fmt.Fprintln(os.Stderr, program.String())
		fmt.Fprintln(os.Stderr)
	}

	ev := evaluator.New(os.Stdout)
	if debug {
		ev.Trace = func(format string, a ...any) {
			fmt.Fprintf(os.Stderr, "[trace] "+format+"\n", a...)
		}
	}

	if err := ev.Run(program); err != nil {
		exitWithError("%s", err)
	}
	return nil
}
