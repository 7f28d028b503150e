// =============================================================================
// Manager.io Check Printer - Processing Pipeline
// =============================================================================
//
// This module contains the core processing logic. It orchestrates the entire
// print pipeline for a single report file, from text decoding to the printer.
//
// PROCESSING PIPELINE:
//   1. Derive the output paths next to the input file
//   2. Read and decode the report dump
//   3. Parse the payment records (debug dump on failure)
//   4. Validate the records (warnings only, never fatal)
//   5. Render one check page per record
//   6. Write the plain-text preview
//   7. Export the XLSX check register (optional)
//   8. Encode and transmit the ESC/P payload
//   9. Rename the input so it cannot print twice (optional)
//
// CONCURRENCY:
//   Each file is processed in its own goroutine. The pipeline holds no
//   shared state and can run many files concurrently.
//
// =============================================================================

package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/pmantos/managerio-check-print/internal/config"
	"github.com/pmantos/managerio-check-print/internal/escp"
	"github.com/pmantos/managerio-check-print/internal/register"
	"github.com/pmantos/managerio-check-print/internal/render"
	"github.com/pmantos/managerio-check-print/internal/report"
	"github.com/pmantos/managerio-check-print/internal/textio"
	"github.com/pmantos/managerio-check-print/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of processing a single report file.
type Result struct {
	// FilePath is the path to the input file that was processed.
	FilePath string

	// JobID identifies this run in the logs.
	JobID string

	// PreviewFile is the path to the written preview file.
	// This is empty if the preview was not written.
	PreviewFile string

	// DebugFile is the path to the debug dump.
	// This is only set when parsing found no records.
	DebugFile string

	// RegisterFile is the path to the exported XLSX check register.
	// This is empty unless the register export is enabled.
	RegisterFile string

	// Printed indicates whether the payload reached the printer.
	Printed bool

	// Success indicates whether the processing was successful.
	Success bool

	// Error contains the error if processing failed.
	// This is nil if processing was successful.
	Error error

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// Records is the number of payment records parsed.
	Records int

	// Pages is the number of check pages rendered.
	Pages int

	// Warnings is the number of validation warnings encountered.
	// Warnings never stop a run; a suspect check is still printed.
	Warnings int

	// ProcessingTime is the time taken to process the file.
	ProcessingTime time.Duration
}

// =============================================================================
// PIPELINE STRUCTURE
// =============================================================================

// Pipeline processes a single report file into printed checks.
type Pipeline struct {
	// inputPath is the path to the report dump.
	inputPath string

	// cfg is the application configuration.
	cfg *config.Config

	// opts adjusts this particular run.
	opts Options

	// sender is the printer transport.
	sender escp.Sender

	// logger is used for logging (can be replaced with SetLogger).
	logger Logger
}

// Options adjusts a single run.
type Options struct {
	// NoPrint renders the pages and writes the preview but never touches
	// the printer.
	NoPrint bool

	// DryRun stops after parsing and validation; nothing is written.
	DryRun bool
}

// Logger is an interface for logging.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// =============================================================================
// CONSTRUCTOR
// =============================================================================

// New creates a new Pipeline instance.
//
// PARAMETERS:
//   - inputPath: The path to the report dump.
//   - cfg: The application configuration.
//   - opts: Per-run options.
//
// RETURNS:
//   - A new Pipeline instance with the transport and logger the
//     configuration asks for.
func New(inputPath string, cfg *config.Config, opts Options) *Pipeline {
	return &Pipeline{
		inputPath: inputPath,
		cfg:       cfg,
		opts:      opts,
		sender:    SenderFromConfig(cfg),
		logger:    newLogger(cfg.LogLevel),
	}
}

// SetLogger replaces the default logger.
func (p *Pipeline) SetLogger(l Logger) {
	p.logger = l
}

// SetSender replaces the printer transport.
func (p *Pipeline) SetSender(s escp.Sender) {
	p.sender = s
}

// SenderFromConfig builds the transport the configuration asks for: a raw
// device write when printer.device is set, the spool command otherwise.
func SenderFromConfig(cfg *config.Config) escp.Sender {
	if cfg.Printer.Device != "" {
		return &escp.DeviceSender{Path: cfg.Printer.Device}
	}
	return escp.NewCommandSender(
		cfg.Printer.Command,
		cfg.Printer.Name,
		time.Duration(cfg.Printer.TimeoutSeconds)*time.Second,
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the print pipeline for the file.
//
// RETURNS:
//   - A Result struct containing the outcome of the processing.
//
// PROCESSING STEPS:
//   1. Derive the output paths
//   2. Read and decode the report
//   3. Parse the payment records
//   4. Validate the records
//   5. Render the check pages
//   6. Write the preview
//   7. Export the check register
//   8. Transmit to the printer
//   9. Rename the processed input
func (p *Pipeline) Run() Result {
	startTime := time.Now()
	result := Result{
		FilePath: p.inputPath,
		JobID:    uuid.New().String(),
		Success:  false,
	}

	// =========================================================================
	// STEP 1: DERIVE OUTPUT PATHS
	// =========================================================================
	// The preview, debug dump and printed-rename all land next to the
	// input file, named after its stem.

	p.logger.Info("Processing file: %s (job %s)", p.inputPath, result.JobID)

	previewPath, debugPath, printedPath := utils.DerivePaths(p.inputPath)

	// =========================================================================
	// STEP 2: READ AND DECODE REPORT
	// =========================================================================
	// The dump arrives in whatever encoding the Windows print driver felt
	// like using; ReadLines sorts that out and hands back clean lines.

	lines, err := textio.ReadLines(p.inputPath)
	if err != nil {
		result.Error = fmt.Errorf("failed to read report: %w", err)
		result.Stats.ProcessingTime = time.Since(startTime)
		return result
	}

	p.logger.Debug("Read %d lines", len(lines))

	// =========================================================================
	// STEP 3: PARSE PAYMENT RECORDS
	// =========================================================================
	// Extract one record per check. When nothing parses, the raw lines go
	// to a debug dump so the report format drift can be diagnosed from the
	// field without re-running anything.

	records, err := report.Extract(lines)
	if err != nil {
		if errors.Is(err, report.ErrNoRecords) {
			if dumpErr := textio.WriteDebugDump(debugPath, lines, p.cfg.Output.DebugLines); dumpErr != nil {
				p.logger.Warn("Failed to write debug dump: %v", dumpErr)
			} else {
				result.DebugFile = debugPath
				p.logger.Error("No records parsed. Debug dump written to: %s", debugPath)
				err = fmt.Errorf("%w (debug dump written to %s)", report.ErrNoRecords, debugPath)
			}
		}
		result.Error = err
		result.Stats.ProcessingTime = time.Since(startTime)
		return result
	}

	result.Stats.Records = len(records)
	p.logger.Info("Parsed %d payment record(s)", len(records))

	// =========================================================================
	// STEP 4: VALIDATE RECORDS
	// =========================================================================
	// Validation only warns. A malformed date or an empty payee still
	// prints; the operator reads the warnings and pulls the page if it
	// matters.

	issues := report.Validate(records)
	result.Stats.Warnings = len(issues)
	for _, issue := range issues {
		p.logger.Warn("%s", issue.Error())
	}

	// =========================================================================
	// STEP 5: RENDER CHECK PAGES
	// =========================================================================
	// One fixed-grid page per record: check face on top, two stubs below.

	layout := render.ResolveLayout(p.cfg.Layout)
	pages := render.RenderAll(records, layout)
	result.Stats.Pages = len(pages)
	p.logger.Debug("Rendered %d page(s) at %dx%d", len(pages), layout.Columns, layout.Lines)

	if p.opts.DryRun {
		p.logger.Info("Dry run: stopping before any output is written")
		result.Success = true
		result.Stats.ProcessingTime = time.Since(startTime)
		return result
	}

	// =========================================================================
	// STEP 6: WRITE PREVIEW
	// =========================================================================
	// The preview is the exact page text with form feeds between pages, so
	// the operator can eyeball the alignment before committing check stock.
	// A failed preview is not fatal; the print still goes ahead.

	previewText := render.PreviewText(pages)
	if err := os.WriteFile(previewPath, []byte(previewText), 0644); err != nil {
		p.logger.Warn("Failed to write preview: %v", err)
	} else {
		result.PreviewFile = previewPath
		p.logger.Info("Preview written to: %s", previewPath)
	}

	// =========================================================================
	// STEP 7: EXPORT CHECK REGISTER
	// =========================================================================
	// Optionally write the parsed records to an XLSX register for
	// reconciliation. Also not fatal: the register can be regenerated, the
	// print run cannot.

	if p.cfg.Output.Register {
		name := utils.ExpandName(p.cfg.Output.RegisterFile, utils.Stem(p.inputPath))
		registerPath := filepath.Join(filepath.Dir(p.inputPath), name)

		if err := register.Write(registerPath, records); err != nil {
			p.logger.Warn("Failed to export register: %v", err)
		} else {
			result.RegisterFile = registerPath
			p.logger.Info("Register exported to: %s", registerPath)
		}
	}

	// =========================================================================
	// STEP 8: TRANSMIT TO PRINTER
	// =========================================================================
	// Serialize the pages with CRLF line ends and form feeds, wrap them in
	// the ESC/P prologue, encode to the device code page and ship.

	if p.opts.NoPrint {
		p.logger.Info("Transmission skipped (no-print)")
	} else {
		deviceText := escp.DeviceText(pages)
		payload := escp.BuildPayload(deviceText, p.cfg.Printer.Charset)

		cm, err := escp.CharmapByName(p.cfg.Printer.Encoding)
		if err != nil {
			result.Error = fmt.Errorf("failed to resolve encoding: %w", err)
			result.Stats.ProcessingTime = time.Since(startTime)
			return result
		}

		encoded := escp.Encode(payload, cm)
		if err := p.sender.Send(encoded); err != nil {
			result.Error = fmt.Errorf("failed to print: %w", err)
			result.Stats.ProcessingTime = time.Since(startTime)
			return result
		}

		result.Printed = true
		p.logger.Info("Sent %d byte(s) to printer", len(encoded))
	}

	// =========================================================================
	// STEP 9: RENAME PROCESSED INPUT
	// =========================================================================
	// After a successful transmission the input is renamed with a printed
	// timestamp, so the same batch cannot feed the printer twice. A failed
	// rename is only a warning; the checks are already on paper.

	if p.cfg.Output.RenameOnPrint && result.Printed {
		target := utils.UniquePath(printedPath)
		if err := utils.MoveFile(p.inputPath, target); err != nil {
			p.logger.Warn("Failed to rename processed input: %v", err)
		} else {
			p.logger.Info("Input renamed to: %s", target)
		}
	}

	// =========================================================================
	// COMPLETE
	// =========================================================================

	result.Success = true
	result.Stats.ProcessingTime = time.Since(startTime)

	return result
}

// =============================================================================
// DEFAULT LOGGER
// =============================================================================

// levelRank orders the log levels for filtering.
var levelRank = map[string]int{
	"debug": 0,
	"info":  1,
	"warn":  2,
	"error": 3,
}

// defaultLogger is a simple leveled logger that prints to stdout.
type defaultLogger struct {
	min int
}

// newLogger builds the default logger for a configured level. Unknown
// levels fall back to "info".
func newLogger(level string) Logger {
	min, ok := levelRank[level]
	if !ok {
		min = levelRank["info"]
	}
	return &defaultLogger{min: min}
}

func (l *defaultLogger) Debug(msg string, args ...interface{}) {
	if l.min <= levelRank["debug"] {
		fmt.Printf("[DEBUG] "+msg+"\n", args...)
	}
}

func (l *defaultLogger) Info(msg string, args ...interface{}) {
	if l.min <= levelRank["info"] {
		fmt.Printf("[INFO] "+msg+"\n", args...)
	}
}

func (l *defaultLogger) Warn(msg string, args ...interface{}) {
	if l.min <= levelRank["warn"] {
		fmt.Printf("[WARN] "+msg+"\n", args...)
	}
}

func (l *defaultLogger) Error(msg string, args ...interface{}) {
	fmt.Printf("[ERROR] "+msg+"\n", args...)
}
