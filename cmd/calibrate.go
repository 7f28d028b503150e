// =============================================================================
// Manager.io Check Printer - Calibrate Command
// =============================================================================
//
// This file defines the 'calibrate' command, which prints a full-page
// alignment grid. Load plain paper, print the grid, hold a blank check over
// it against a light, and read off the row and column each field should land
// on. Those numbers go straight into the layout section of config.yaml.
//
// COMMAND USAGE:
//   checkprint calibrate [flags]
//
// FLAGS:
//   --output : Write the raw ESC/P payload to a file instead of printing
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pmantos/managerio-check-print/internal/escp"
	"github.com/pmantos/managerio-check-print/internal/pipeline"
	"github.com/pmantos/managerio-check-print/internal/render"
)

// calibrateOutput, when set, receives the raw payload instead of the printer.
var calibrateOutput string

// =============================================================================
// CALIBRATE COMMAND DEFINITION
// =============================================================================

// calibrateCmd represents the 'calibrate' command.
var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Print the alignment grid for dialing in the check stock",
	Long: `The calibrate command prints a page-sized grid: the column digits repeat
across every row and each row starts with its own number. Print it on plain
paper, lay a blank check over it, and read the coordinates for each field
off the grid. The layout section of the configuration takes those numbers
directly.

Use --output to capture the raw ESC/P payload in a file instead of sending
it to the printer, for example to inspect it or to copy it to the printer
host by hand.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runCalibrate()
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the calibrate command with the root command.
func init() {
	rootCmd.AddCommand(calibrateCmd)

	calibrateCmd.Flags().StringVarP(
		&calibrateOutput,
		"output",
		"o",
		"",
		"Write the raw ESC/P payload to this file instead of printing",
	)
}

// =============================================================================
// CALIBRATION FUNCTION
// =============================================================================

// runCalibrate builds the grid page and ships it like a regular print job.
func runCalibrate() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	layout := render.ResolveLayout(cfg.Layout)
	page := render.CalibrationPage(layout)

	deviceText := escp.DeviceText([][]string{page})
	payload := escp.BuildPayload(deviceText, cfg.Printer.Charset)

	cm, err := escp.CharmapByName(cfg.Printer.Encoding)
	if err != nil {
		return fmt.Errorf("failed to resolve encoding: %w", err)
	}
	encoded := escp.Encode(payload, cm)

	if calibrateOutput != "" {
		if err := os.WriteFile(calibrateOutput, encoded, 0644); err != nil {
			return fmt.Errorf("failed to write payload: %w", err)
		}
		fmt.Printf("Calibration payload written to: %s\n", calibrateOutput)
		return nil
	}

	sender := pipeline.SenderFromConfig(cfg)
	if err := sender.Send(encoded); err != nil {
		return fmt.Errorf("failed to print calibration page: %w", err)
	}

	fmt.Printf("Calibration page sent (%dx%d grid)\n", layout.Columns, layout.Lines)
	return nil
}
