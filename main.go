// =============================================================================
// Manager.io Check Printer - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Manager.io Check Printer CLI
// application. It initializes the Cobra CLI framework and delegates command
// execution to the cmd package.
//
// USAGE:
//   checkprint process       - Parse report dumps and print them as checks
//   checkprint calibrate     - Print the alignment grid for the check stock
//   checkprint register      - Export the XLSX check register without printing
//   checkprint watch         - Watch a directory and print new dumps
//   checkprint version       - Display the application version
//
// ARCHITECTURE:
//   This application follows a modular design where:
//   - cmd/           : Contains all CLI command definitions (Cobra)
//   - internal/      : Contains core business logic (not for external import)
//   - pkg/           : Contains shared utilities
//
// =============================================================================

package main

import (
	"github.com/pmantos/managerio-check-print/cmd"
)

// main is the entry point of the application.
// It simply calls the Execute function from the cmd package, which
// initializes and runs the Cobra CLI.
func main() {
	cmd.Execute()
}
