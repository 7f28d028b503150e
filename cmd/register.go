// =============================================================================
// Manager.io Check Printer - Register Command
// =============================================================================
//
// This file defines the 'register' command, which exports the XLSX check
// register from a report dump without printing anything. Useful when the
// checks already went out and only the reconciliation sheet is missing.
//
// COMMAND USAGE:
//   checkprint register [file...] [flags]
//
// FLAGS:
//   --output : Explicit path for the register (single input only)
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pmantos/managerio-check-print/internal/register"
	"github.com/pmantos/managerio-check-print/internal/report"
	"github.com/pmantos/managerio-check-print/internal/textio"
	"github.com/pmantos/managerio-check-print/pkg/utils"
)

// registerOutput, when set, is the explicit register path.
var registerOutput string

// =============================================================================
// REGISTER COMMAND DEFINITION
// =============================================================================

// registerCmd represents the 'register' command.
var registerCmd = &cobra.Command{
	Use:   "register [file...]",
	Short: "Export the XLSX check register without printing",
	Long: `The register command parses report dumps exactly like 'process' does, but
only writes the XLSX check register next to each input. The printer is
never touched and the inputs are never renamed.

The register file name comes from output.register_file in the
configuration; --output overrides it for a single input.`,

	Args: cobra.ArbitraryArgs,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runRegister(args)
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the register command with the root command.
func init() {
	rootCmd.AddCommand(registerCmd)

	registerCmd.Flags().StringVarP(
		&registerOutput,
		"output",
		"o",
		"",
		"Explicit path for the register (single input only)",
	)
}

// =============================================================================
// EXPORT FUNCTION
// =============================================================================

// runRegister parses each input and writes its register.
func runRegister(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	files := resolveInputFiles(args, cfg)

	if registerOutput != "" && len(files) > 1 {
		return fmt.Errorf("--output only applies to a single input, got %d", len(files))
	}

	var errorCount int

	for _, file := range files {
		lines, err := textio.ReadLines(file)
		if err != nil {
			errorCount++
			fmt.Printf("  ✗ %s: %v\n", filepath.Base(file), err)
			continue
		}

		records, err := report.Extract(lines)
		if err != nil {
			errorCount++
			fmt.Printf("  ✗ %s: %v\n", filepath.Base(file), err)
			continue
		}

		path := registerOutput
		if path == "" {
			name := utils.ExpandName(cfg.Output.RegisterFile, utils.Stem(file))
			path = filepath.Join(filepath.Dir(file), name)
		}

		if err := register.Write(path, records); err != nil {
			errorCount++
			fmt.Printf("  ✗ %s: %v\n", filepath.Base(file), err)
			continue
		}

		fmt.Printf("  ✓ %s -> %s (%d record(s))\n",
			filepath.Base(file), filepath.Base(path), len(records))
	}

	if errorCount > 0 {
		return fmt.Errorf("%d of %d file(s) failed", errorCount, len(files))
	}

	return nil
}
