// =============================================================================
// Manager.io Check Printer - Record Validation
// =============================================================================
//
// Post-extraction sanity checks. Extraction is heuristic, so a structurally
// successful parse can still carry records worth flagging before ink hits
// pre-printed check stock (a blank payee, a zero amount, a date that is not
// really a date).
//
// ERROR HANDLING:
//   - Issues are collected, not thrown; none of them stop the run.
//   - Every issue carries the record index and field for troubleshooting.
//   - The pipeline logs each issue as a warning before rendering.
//
// =============================================================================

package report

import (
	"fmt"
	"regexp"
	"strings"
)

// =============================================================================
// ISSUE TYPE
// =============================================================================

// Issue is a single validation finding on an extracted record.
type Issue struct {
	// Severity is "warning" for everything this validator produces;
	// extraction either succeeds or fails wholesale upstream.
	Severity string

	// RecordIndex is the zero-based position of the record in the report.
	RecordIndex int

	// Field is the record field the finding concerns.
	Field string

	// Value is the offending value, for the log line.
	Value string

	// Message is the human-readable description.
	Message string
}

// Error implements the error interface.
func (e *Issue) Error() string {
	return fmt.Sprintf("[%s] record %d, field '%s': %s (value: '%s')",
		strings.ToUpper(e.Severity),
		e.RecordIndex+1,
		e.Field,
		e.Message,
		e.Value,
	)
}

var strictDate = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)

// =============================================================================
// VALIDATION
// =============================================================================

// Validate runs the per-record checks and returns every finding. An empty
// result means the batch looks printable.
func Validate(records []PaymentRecord) []*Issue {
	var issues []*Issue

	add := func(idx int, field, value, message string) {
		issues = append(issues, &Issue{
			Severity:    "warning",
			RecordIndex: idx,
			Field:       field,
			Value:       value,
			Message:     message,
		})
	}

	for idx, rec := range records {
		if !strictDate.MatchString(rec.Date) {
			add(idx, "date", rec.Date, "date is not MM/DD/YYYY")
		}
		if strings.TrimSpace(rec.Payee) == "" {
			add(idx, "payee", rec.Payee, "payee is empty")
		}
		if len(rec.Address) > maxAddressLines {
			add(idx, "address", strings.Join(rec.Address, " | "),
				fmt.Sprintf("address has %d lines; only %d fit the window", len(rec.Address), maxAddressLines))
		}
		if rec.Amount.IsZero() {
			add(idx, "amount", rec.Amount.String(), "amount is zero")
		}
		if rec.Amount.IsNegative() {
			add(idx, "amount", rec.Amount.String(), "amount is negative; the check prints its absolute value")
		}
	}

	return issues
}
