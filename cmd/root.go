// Package cmd wires the CLI: a serve command for the HTTP service and a
// config command for managing the settings file.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "sheetprep",
	Short: "Spreadsheet cleanup and statistics service",
	Long: `sheetprep is an HTTP service for spreadsheet preprocessing:
upload a CSV/XLSX file, apply cleaning, normalization and statistical
operations, then download the transformed file together with a generated
script that reproduces the applied steps.`,
}

// Execute is the entry point called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
