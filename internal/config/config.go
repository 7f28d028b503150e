// =============================================================================
// Manager.io Check Printer - Configuration Module
// =============================================================================
//
// This module loads and validates the application configuration. Everything
// has a working default: running without a config file prints on the stock
// this tool was built around (QuickBooks-style voucher checks, one check +
// two stubs per US Letter page) through the system's default lp queue.
//
// CONFIGURATION FILE (config.yaml):
//   - runtime settings (input file, logging, concurrency)
//   - printer transport (spool command or device node, code page)
//   - output behavior (rename-on-print, register export, debug dump size)
//   - watch mode (directory, pattern, debounce)
//   - check-stock layout (the geometry lives in data, not code, so new
//     stock means a YAML edit, not a rebuild)
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pmantos/managerio-check-print/internal/escp"
)

// DefaultConfigPath is where the CLI looks when --config is not given.
// A missing file at this path is not an error; defaults apply.
const DefaultConfigPath = "config.yaml"

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the full application configuration.
type Config struct {
	// InputFile is the report dump processed when no files are named on
	// the command line.
	// Default: "print_voucher_checks.txt"
	InputFile string `yaml:"input_file"`

	// LogLevel controls logging verbosity.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info" (--verbose forces "debug")
	LogLevel string `yaml:"log_level"`

	// MaxConcurrency caps how many report files are processed in
	// parallel when several are given. Set to 1 for sequential runs.
	// Default: 4
	MaxConcurrency int `yaml:"max_concurrency"`

	// Printer configures the device transport.
	Printer PrinterConfig `yaml:"printer"`

	// Output configures what gets written besides the print job.
	Output OutputConfig `yaml:"output"`

	// Watch configures watch mode.
	Watch WatchConfig `yaml:"watch"`

	// Layout describes the check-stock geometry.
	Layout LayoutConfig `yaml:"layout"`
}

// PrinterConfig describes how payloads reach the printer.
type PrinterConfig struct {
	// Name is the spool queue name (lp -d <name>). Empty submits to the
	// system default queue.
	Name string `yaml:"name"`

	// Command is the spooler binary.
	// Default: "lp"
	Command string `yaml:"command"`

	// Device, when set, bypasses the spooler entirely and writes the raw
	// payload to this device node or file (e.g. /dev/usb/lp0).
	Device string `yaml:"device"`

	// Encoding is the single-byte code page the device text is encoded
	// with: cp437, cp850, cp860, cp863, cp865, cp1252 or latin-1.
	// Default: "cp437"
	Encoding string `yaml:"encoding"`

	// Charset is the ESC/P character table selected on the printer and
	// should agree with Encoding: 437, 850, 860, 863 or 865.
	// Default: 437
	Charset int `yaml:"charset"`

	// TimeoutSeconds bounds one spool submission.
	// Default: 30
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// OutputConfig describes the files written around a print run.
type OutputConfig struct {
	// RenameOnPrint renames the input to *_printed_YYYYMMDD_HH_MM.txt
	// after a successful transmission, so the same dump cannot be printed
	// twice by accident. A failed print leaves the input untouched.
	// Default: false (also enabled per run with --rename)
	RenameOnPrint bool `yaml:"rename_on_print"`

	// Register enables the XLSX check-register export on every run.
	// Default: false (also enabled per run with --register)
	Register bool `yaml:"register"`

	// RegisterFile is the register file-name template, expanded next to
	// the input.
	// Placeholders:
	//   {stem}      - the input file's stem
	//   {uuid}      - a random UUID
	//   {timestamp} - current timestamp (YYYYMMDD_HHMMSS)
	//   {date}      - current date (YYYY-MM-DD)
	//   {time}      - current time (HHMMSS)
	// Default: "{stem}_register_{timestamp}.xlsx"
	RegisterFile string `yaml:"register_file"`

	// DebugLines caps the parse-failure debug dump.
	// Default: 400
	DebugLines int `yaml:"debug_lines"`
}

// WatchConfig describes watch mode.
type WatchConfig struct {
	// Dir is the directory watched for new report dumps.
	// Default: "."
	Dir string `yaml:"dir"`

	// Pattern filters the files picked up; the tool's own outputs are
	// always excluded on top of this.
	// Default: "*.txt"
	Pattern string `yaml:"pattern"`

	// DebounceMillis is how long a file must sit quiet before it is
	// processed. The printer driver writes the dump in several bursts,
	// so reacting to the first event would read a torso.
	// Default: 300
	DebounceMillis int `yaml:"debounce_ms"`
}

// =============================================================================
// LAYOUT STRUCTURE
// =============================================================================

// LayoutConfig describes the check stock. Check-face positions are the
// 1-based row/column coordinates printed on the stock's layout sheet; stub
// positions are inches from the page origin.
type LayoutConfig struct {
	Page    PageLayout   `yaml:"page"`
	Margins MarginLayout `yaml:"margins"`
	Check   CheckLayout  `yaml:"check"`
	Stub    StubLayout   `yaml:"stub"`
}

// PageLayout is the printable character grid.
type PageLayout struct {
	// Columns and Lines define the grid. 80x54 is US Letter at 10 CPI
	// and 6 LPI inside half-inch margins.
	Columns int `yaml:"columns"`
	Lines   int `yaml:"lines"`

	// CPI and LPI are the character and line pitch used to convert the
	// inch-based stub positions to grid coordinates.
	CPI float64 `yaml:"cpi"`
	LPI float64 `yaml:"lpi"`
}

// MarginLayout is the unprintable border the driver imposes.
type MarginLayout struct {
	LeftInches float64 `yaml:"left_in"`
	TopInches  float64 `yaml:"top_in"`
}

// CheckLayout positions the check-face fields (1-based design coordinates).
type CheckLayout struct {
	DateRow  int `yaml:"date_row"`
	DateCol  int `yaml:"date_col"`
	PayeeRow int `yaml:"payee_row"`
	PayeeCol int `yaml:"payee_col"`

	// AmountRightCol is the column the amount's last digit lands in,
	// right-aligned clear of the pre-printed dollar box.
	AmountRow      int `yaml:"amount_row"`
	AmountRightCol int `yaml:"amount_right_col"`

	WordsRow int `yaml:"words_row"`
	WordsCol int `yaml:"words_col"`

	// Address lines start here and run downward one row per line, capped
	// at AddressMaxLines to stay inside the envelope window.
	AddressRow      int `yaml:"address_row"`
	AddressCol      int `yaml:"address_col"`
	AddressMaxLines int `yaml:"address_max_lines"`

	MemoRow int `yaml:"memo_row"`
	MemoCol int `yaml:"memo_col"`
}

// StubLayout positions the two tear-off stubs.
type StubLayout struct {
	// HeightInches is the height of the check face and of each stub; the
	// first stub starts one height down the page, the second two.
	HeightInches float64 `yaml:"height_in"`

	// LabelIndentInches and ValueIndentInches are the x positions of the
	// stub label and value columns.
	LabelIndentInches float64 `yaml:"label_x_in"`
	ValueIndentInches float64 `yaml:"value_x_in"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads, defaults and validates the configuration.
//
// PARAMETERS:
//   - configPath: the YAML file to load. A missing file at the default
//     path yields the built-in defaults; a missing file anywhere else is
//     an error, since the caller asked for it explicitly.
//
// RETURNS:
//   - The ready-to-use configuration.
//   - An error if the file cannot be read, parsed or validated.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) && configPath == DefaultConfigPath {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Validate re-checks a configuration after the caller has modified it,
// typically to apply command-line overrides.
func (c *Config) Validate() error {
	if err := validate(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// applyDefaults sets default values for any unset options.
func applyDefaults(cfg *Config) {
	if cfg.InputFile == "" {
		cfg.InputFile = "print_voucher_checks.txt"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.MaxConcurrency == 0 {
		cfg.MaxConcurrency = 4
	}

	if cfg.Printer.Command == "" {
		cfg.Printer.Command = "lp"
	}
	if cfg.Printer.Encoding == "" {
		cfg.Printer.Encoding = "cp437"
	}
	if cfg.Printer.Charset == 0 {
		cfg.Printer.Charset = 437
	}
	if cfg.Printer.TimeoutSeconds == 0 {
		cfg.Printer.TimeoutSeconds = 30
	}

	if cfg.Output.RegisterFile == "" {
		cfg.Output.RegisterFile = "{stem}_register_{timestamp}.xlsx"
	}
	if cfg.Output.DebugLines == 0 {
		cfg.Output.DebugLines = 400
	}

	if cfg.Watch.Dir == "" {
		cfg.Watch.Dir = "."
	}
	if cfg.Watch.Pattern == "" {
		cfg.Watch.Pattern = "*.txt"
	}
	if cfg.Watch.DebounceMillis == 0 {
		cfg.Watch.DebounceMillis = 300
	}

	applyLayoutDefaults(&cfg.Layout)
}

// applyLayoutDefaults fills in the QuickBooks-style voucher stock: check
// face in the top 3.5 inches, two 3.5-inch stubs below it, the address
// positioned for a #24539 double-window envelope.
func applyLayoutDefaults(layout *LayoutConfig) {
	if layout.Page.Columns == 0 {
		layout.Page.Columns = 80
	}
	if layout.Page.Lines == 0 {
		layout.Page.Lines = 54
	}
	if layout.Page.CPI == 0 {
		layout.Page.CPI = 10.0
	}
	if layout.Page.LPI == 0 {
		layout.Page.LPI = 6.0
	}

	if layout.Margins.LeftInches == 0 {
		layout.Margins.LeftInches = 0.5
	}
	if layout.Margins.TopInches == 0 {
		layout.Margins.TopInches = 0.5
	}

	check := &layout.Check
	if check.DateRow == 0 {
		check.DateRow = 6
	}
	if check.DateCol == 0 {
		check.DateCol = 50
	}
	if check.PayeeRow == 0 {
		check.PayeeRow = 6
	}
	if check.PayeeCol == 0 {
		check.PayeeCol = 9
	}
	if check.AmountRow == 0 {
		check.AmountRow = 7
	}
	if check.AmountRightCol == 0 {
		check.AmountRightCol = 73
	}
	if check.WordsRow == 0 {
		check.WordsRow = 9
	}
	if check.WordsCol == 0 {
		check.WordsCol = 7
	}
	if check.AddressRow == 0 {
		check.AddressRow = 12
	}
	if check.AddressCol == 0 {
		check.AddressCol = 6
	}
	if check.AddressMaxLines == 0 {
		check.AddressMaxLines = 4
	}
	if check.MemoRow == 0 {
		check.MemoRow = 17
	}
	if check.MemoCol == 0 {
		check.MemoCol = 7
	}

	if layout.Stub.HeightInches == 0 {
		layout.Stub.HeightInches = 3.5
	}
	if layout.Stub.LabelIndentInches == 0 {
		layout.Stub.LabelIndentInches = 0.20
	}
	if layout.Stub.ValueIndentInches == 0 {
		layout.Stub.ValueIndentInches = 1.20
	}
}

// validate rejects configurations that could not render or print.
func validate(cfg *Config) error {
	if cfg.Layout.Page.Columns < 10 {
		return fmt.Errorf("layout.page.columns must be at least 10, got %d", cfg.Layout.Page.Columns)
	}
	if cfg.Layout.Page.Lines < 10 {
		return fmt.Errorf("layout.page.lines must be at least 10, got %d", cfg.Layout.Page.Lines)
	}
	if cfg.Layout.Page.CPI <= 0 || cfg.Layout.Page.LPI <= 0 {
		return fmt.Errorf("layout.page.cpi and layout.page.lpi must be positive")
	}
	if cfg.Layout.Stub.HeightInches <= 0 {
		return fmt.Errorf("layout.stub.height_in must be positive")
	}

	if _, err := escp.CharmapByName(cfg.Printer.Encoding); err != nil {
		return fmt.Errorf("printer.encoding: %w", err)
	}
	if !knownCharset(cfg.Printer.Charset) {
		return fmt.Errorf("printer.charset must be one of %v, got %d",
			escp.KnownCharsets(), cfg.Printer.Charset)
	}
	if cfg.Printer.TimeoutSeconds <= 0 {
		return fmt.Errorf("printer.timeout_seconds must be positive")
	}

	if cfg.Output.DebugLines <= 0 {
		return fmt.Errorf("output.debug_lines must be positive")
	}
	if cfg.Watch.DebounceMillis <= 0 {
		return fmt.Errorf("watch.debounce_ms must be positive")
	}
	if cfg.MaxConcurrency <= 0 {
		return fmt.Errorf("max_concurrency must be positive")
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn or error, got %q", cfg.LogLevel)
	}

	return nil
}

func knownCharset(n int) bool {
	for _, c := range escp.KnownCharsets() {
		if c == n {
			return true
		}
	}
	return false
}
