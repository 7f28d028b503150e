// =============================================================================
// Manager.io Check Printer - Payment Records
// =============================================================================
//
// This package extracts structured payment records from the text dump of a
// Manager.io "Printable Checks" custom report. The dump is produced by
// printing the report through a Generic / Text Only driver, so it arrives
// with no reliable column separators: fields run together on one line, spill
// across several, or show up pipe-delimited depending on which Manager
// version produced it.
//
// The package is split by concern:
//   - record.go  - the record model shared with rendering and export
//   - amount.go  - the dollar-amount lexer
//   - address.go - address line normalization
//   - extract.go - the header scan and the three extraction strategies
//   - validate.go - post-extraction sanity checks
//
// =============================================================================

package report

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// RECORD TYPES
// =============================================================================

// PaymentRecord is one check to be printed.
type PaymentRecord struct {
	// Date is the check date exactly as it appeared in the report
	// (MM/DD/YYYY). It is carried verbatim and never reformatted.
	Date string

	// Payee is the "Contact" column value, printed on the pay-to line
	// and on both voucher stubs.
	Payee string

	// Memo is the "Description" column value, printed on the memo line.
	Memo string

	// Address holds up to four display lines for the windowed envelope.
	Address []string

	// Amount is the check amount, always with two fraction digits.
	// Parsing can produce a negative value (reversals show up in the
	// report with a sign); rendering always displays the absolute value.
	Amount decimal.Decimal
}
