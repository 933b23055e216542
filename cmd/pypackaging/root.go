package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Version is the CLI version, overridable at link time.
var Version = "0.1.0"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "pypackaging",
	Short: "Decide what gets embedded into a standalone Python binary",
	Long: `Pypackaging evaluates a packaging policy against a manifest of Python
distribution resources and extension module variants.

The policy controls resource placement, inclusion of sources, package
resources and test modules, extension module filtering (minimal, all,
no-libraries, no-gpl), preferred extension variants, and per-target
denylists of broken extensions.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// newLogger builds the CLI logger. Debug level when --verbose is set.
func newLogger() *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: false,
	})
}
