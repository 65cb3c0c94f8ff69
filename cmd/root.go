// Package cmd defines the command line interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "eulerfv",
	Short: "Finite volume solver for the compressible Euler equations",
	Long: `
A cell centered finite volume solver for the compressible inviscid
Euler equations on unstructured polyhedral meshes, supporting 1D, 2D,
axisymmetric and 3D simulations.

eulerfv run -i config.yaml`,
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
