// =============================================================================
// Manager.io Check Printer - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands (like 'process', 'watch') are
// attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (checkprint)
//   ├── processCmd   (checkprint process)
//   ├── calibrateCmd (checkprint calibrate)
//   ├── registerCmd  (checkprint register)
//   ├── watchCmd     (checkprint watch)
//   └── versionCmd   (checkprint version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Loading the YAML configuration for the subcommands
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pmantos/managerio-check-print/internal/config"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
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
	// Use is the one-line usage message.
	Use: "checkprint",

	// Short is a short description shown in the 'help' output.
	Short: "Manager.io Check Printer - Print voucher checks on a dot-matrix printer",

	// Long is a longer description shown in the 'help <command>' output.
	Long: `Manager.io Check Printer turns the text dump of Manager.io's "Printable
Checks" custom report into voucher checks on an Epson ESC/P dot-matrix
printer. Print the report to a Generic/Text-Only driver, point this tool
at the resulting file, and it parses the payment records and lays each
one onto QuickBooks-style check stock: check face on top, two tear-off
stubs below.

Key Features:
  - Parses pipe-delimited and older report dumps, with a block-mode fallback
  - Fixed character-grid rendering tuned for 10 CPI / 6 LPI check stock
  - Amount-in-words, envelope-window address placement, duplicated stubs
  - Plain-text preview written next to the input before anything prints
  - Raw ESC/P transmission through lp or straight to the device node
  - XLSX check-register export for reconciliation

Example Usage:
  checkprint process                   # Print the default report dump
  checkprint process checks_aug.txt    # Print a specific dump
  checkprint process --no-print        # Preview only, printer untouched
  checkprint calibrate                 # Print the alignment grid on plain paper
  checkprint watch                     # Watch a directory and print new dumps`,

	// Errors out of the subcommands are runtime failures (a dump that did
	// not parse, a printer that did not answer), not usage mistakes.
	SilenceUsage: true,

	// Run is the function that will be executed when the root command is
	// called without any subcommands. In this case, we just print the help.
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Execute the root command. If there's an error, print it and exit.
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// CONFIGURATION LOADING
// =============================================================================

// loadConfig loads the configuration honoring the global flags.
// --verbose forces debug logging regardless of the configured level.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	if verbose {
		cfg.LogLevel = "debug"
	}

	return cfg, nil
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init is called automatically when the package is loaded.
// It sets up the global flags shared by every subcommand.
func init() {
	// ==========================================================================
	// PERSISTENT FLAGS
	// ==========================================================================
	// Persistent flags are available to this command and all subcommands.

	// --config flag: Allows the user to specify a custom configuration file.
	// Default is "config.yaml" in the current directory; a missing default
	// file falls back to the built-in configuration.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		config.DefaultConfigPath,
		"Path to the configuration file",
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
