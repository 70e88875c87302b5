// =============================================================================
// Sales Analytics - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that the other commands ('process', 'version') are
// attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (salescli)
//   ├── processCmd (salescli process)
//   └── versionCmd (salescli version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Handing the configuration path and log verbosity to subcommands
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables verbose logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
// This is the entry point for the CLI application.
var rootCmd = &cobra.Command{
	Use: "salescli",

	Short: "Sales Analytics - Clean, enrich and analyze pipe-delimited sales logs",

	Long: `Sales Analytics is a CLI tool that processes pipe-delimited sales
transaction logs into business reports and cleaned data exports.

Pipeline stages:
  - Parse the raw log, skipping malformed lines
  - Validate business rules, collecting every rejection reason
  - Optionally filter by region and transaction amount
  - Enrich records from the external product catalog
  - Convert revenue using live exchange rates (with offline fallbacks)
  - Aggregate revenue, regional, product, customer and daily statistics

Example Usage:
  salescli process                          # Process the configured input file
  salescli process --input ./sales.txt      # Process a specific file
  salescli process --region North           # Keep only one region
  salescli process --min-amount 1000        # Keep only large transactions`,

	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print the help message.
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global flags shared by every subcommand.
func init() {
	// --config flag: Allows the user to specify a custom configuration file.
	// Default is "config.yaml" in the current directory.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file (default is config.yaml)",
	)

	// --verbose flag: Enables verbose/debug logging.
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
