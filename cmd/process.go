// =============================================================================
// Manager.io Check Printer - Process Command
// =============================================================================
//
// This file defines the 'process' command, which is the main command for
// printing a report dump as checks. It hands each input file to the
// processing pipeline and reports a summary.
//
// COMMAND USAGE:
//   checkprint process [file...] [flags]
//
// FLAGS:
//   --input     : Report file to process when none are given as arguments
//   --no-print  : Render and write the preview but skip the printer
//   --dry-run   : Parse and validate only; write nothing
//   --rename    : Rename the input after a successful print
//   --register  : Export the XLSX check register
//   --printer   : Override the spool queue name
//   --device    : Write straight to a device node instead of spooling
//   --encoding  : Override the device code page (cp437, cp850, ...)
//   --charset   : Override the ESC/P character table (437, 850, ...)
//
// INPUT SELECTION:
//   Files named on the command line win; otherwise --input; otherwise the
//   input_file from the configuration.
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/pmantos/managerio-check-print/internal/config"
	"github.com/pmantos/managerio-check-print/internal/pipeline"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// inputFile is the report file to process when none are given as arguments.
var inputFile string

// noPrint renders and writes the preview but skips the printer.
var noPrint bool

// dryRun stops after parsing and validation; nothing is written.
var dryRun bool

// renameInput renames the input after a successful print.
var renameInput bool

// exportRegister enables the XLSX check-register export.
var exportRegister bool

// printerName overrides the configured spool queue.
var printerName string

// printerDevice overrides the configured device node.
var printerDevice string

// printerEncoding overrides the configured device code page.
var printerEncoding string

// printerCharset overrides the configured ESC/P character table.
var printerCharset int

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process [file...]",
	Short: "Parse report dumps and print them as voucher checks",
	Long: `The process command reads one or more "Printable Checks" report dumps,
parses the payment records out of them, renders one check page per record
and sends the ESC/P payload to the printer.

Before anything reaches the printer a plain-text preview (<stem>_print.txt)
is written next to each input, so the run can be inspected after the fact.
When a dump yields no records a debug dump (<stem>_debug.txt) is written
instead and the file is reported as failed.

Files are processed concurrently up to the configured max_concurrency.
Errors in one file do not affect the processing of others.`,

	Args: cobra.ArbitraryArgs,

	// RunE is like Run but returns an error. This is preferred for commands
	// that can fail, as it allows Cobra to handle the error gracefully.
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd, args)
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the process command with the root command and sets up flags.
func init() {
	// Add the process command to the root command.
	rootCmd.AddCommand(processCmd)

	// ==========================================================================
	// LOCAL FLAGS
	// ==========================================================================
	// Local flags are only available to this command.

	processCmd.Flags().StringVarP(
		&inputFile,
		"input",
		"i",
		"",
		"Report file to process when none are given as arguments",
	)

	processCmd.Flags().BoolVar(
		&noPrint,
		"no-print",
		false,
		"Render and write the preview but skip the printer",
	)

	processCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Parse and validate only; write nothing",
	)

	processCmd.Flags().BoolVar(
		&renameInput,
		"rename",
		false,
		"Rename the input after a successful print",
	)

	processCmd.Flags().BoolVar(
		&exportRegister,
		"register",
		false,
		"Export the XLSX check register",
	)

	processCmd.Flags().StringVar(
		&printerName,
		"printer",
		"",
		"Spool queue name (overrides printer.name)",
	)

	processCmd.Flags().StringVar(
		&printerDevice,
		"device",
		"",
		"Device node to write to directly (overrides printer.device)",
	)

	processCmd.Flags().StringVar(
		&printerEncoding,
		"encoding",
		"",
		"Device code page (overrides printer.encoding)",
	)

	processCmd.Flags().IntVar(
		&printerCharset,
		"charset",
		0,
		"ESC/P character table (overrides printer.charset)",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess is the main function that orchestrates the print run.
func runProcess(cmd *cobra.Command, args []string) error {
	startTime := time.Now()

	// =========================================================================
	// STEP 1: LOAD CONFIGURATION
	// =========================================================================
	// Load the YAML configuration and fold the command-line overrides in,
	// then re-validate so a bad --encoding fails before any file is touched.

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	applyPrinterOverrides(cmd, cfg)

	if err := cfg.Validate(); err != nil {
		return err
	}

	// =========================================================================
	// STEP 2: RESOLVE INPUT FILES
	// =========================================================================

	files := resolveInputFiles(args, cfg)

	fmt.Println("=== Manager.io Check Printer ===")
	fmt.Printf("Processing %d file(s)\n", len(files))

	// =========================================================================
	// STEP 3: PROCESS FILES CONCURRENTLY
	// =========================================================================
	// Each file runs in its own goroutine, bounded by max_concurrency.
	// Results are collected over a buffered channel.

	opts := pipeline.Options{
		NoPrint: noPrint,
		DryRun:  dryRun,
	}

	var wg sync.WaitGroup
	results := make(chan pipeline.Result, len(files))
	sem := make(chan struct{}, cfg.MaxConcurrency)

	for _, file := range files {
		wg.Add(1)

		go func(path string) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			p := pipeline.New(path, cfg, opts)
			results <- p.Run()
		}(file)
	}

	// Close the results channel when all goroutines are done.
	go func() {
		wg.Wait()
		close(results)
	}()

	// =========================================================================
	// STEP 4: COLLECT RESULTS
	// =========================================================================

	var successCount, errorCount, checksRendered int

	for result := range results {
		if result.Success {
			successCount++
			checksRendered += result.Stats.Pages

			status := "rendered"
			if result.Printed {
				status = "printed"
			}
			fmt.Printf("  ✓ %s: %d check(s) %s\n",
				filepath.Base(result.FilePath), result.Stats.Pages, status)
		} else {
			errorCount++
			fmt.Printf("  ✗ %s: %v\n", filepath.Base(result.FilePath), result.Error)
		}
	}

	// =========================================================================
	// STEP 5: PRINT SUMMARY
	// =========================================================================

	elapsed := time.Since(startTime)
	fmt.Println("\n=== Processing Complete ===")
	fmt.Printf("Total files:     %d\n", len(files))
	fmt.Printf("Successful:      %d\n", successCount)
	fmt.Printf("Errors:          %d\n", errorCount)
	fmt.Printf("Checks:          %d\n", checksRendered)
	fmt.Printf("Time elapsed:    %s\n", elapsed)

	if errorCount > 0 {
		return fmt.Errorf("%d of %d file(s) failed", errorCount, len(files))
	}

	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// resolveInputFiles picks the files to process: command-line arguments win,
// then --input, then the configured input file.
func resolveInputFiles(args []string, cfg *config.Config) []string {
	if len(args) > 0 {
		return args
	}
	if inputFile != "" {
		return []string{inputFile}
	}
	return []string{cfg.InputFile}
}

// applyPrinterOverrides folds the transport flags into the configuration.
// Only flags the user actually set are applied, so an empty --printer does
// not clobber a configured queue name.
func applyPrinterOverrides(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("printer") {
		cfg.Printer.Name = printerName
	}
	if cmd.Flags().Changed("device") {
		cfg.Printer.Device = printerDevice
	}
	if cmd.Flags().Changed("encoding") {
		cfg.Printer.Encoding = printerEncoding
	}
	if cmd.Flags().Changed("charset") {
		cfg.Printer.Charset = printerCharset
	}
	if renameInput {
		cfg.Output.RenameOnPrint = true
	}
	if exportRegister {
		cfg.Output.Register = true
	}
}
