// Command wrench runs Wrench source files.
package main

import (
	"os"

	"github.com/AAUP4-Projekt/wrench/cmd/wrench/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
