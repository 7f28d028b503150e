// =============================================================================
// Manager.io Check Printer - Amount Lexer
// =============================================================================
//
// Dollar amounts in the report dump are frequently jammed directly against
// the text that follows them ("41.79P.O. Box 2961"), so the lexer cannot
// rely on whitespace. An amount is:
//   - an optional leading minus sign,
//   - an integer part, either comma-grouped (1,234,567) or a plain digit run,
//   - a decimal point and exactly two fraction digits,
// and the characters immediately before and after the match must not be
// digits. That last constraint keeps "123.456" from yielding "123.45" and
// keeps "3212.99" from being read out of a longer serial number.
//
// =============================================================================

package report

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// amountToken matches the body of an amount. The grouped alternative is
// listed first so "1,234.56" is read as one token rather than stopping at
// the comma. The digit-adjacency constraint is enforced in findAmount;
// RE2 has no lookaround.
var amountToken = regexp.MustCompile(`-?(?:\d{1,3}(?:,\d{3})*|\d+)\.\d{2}`)

// amountLine matches a line that is exactly one amount (allowing surrounding
// whitespace). Used by the block-fallback strategy, which keys on amount-only
// lines. The sign may also be a leading plus there.
var amountLine = regexp.MustCompile(`^\s*[-+]?\d{1,3}(?:,\d{3})*(?:\.\d{2})\s*$`)

// findAmount returns the first amount token in s, the byte offset just past
// it, and whether one was found.
//
// Candidate matches are scanned left to right; a candidate is rejected when
// the character before its start or after its end is a digit, and the scan
// resumes one byte past the rejected start. At any given start position the
// grammar admits exactly one match end, so this is equivalent to a
// lookaround-guarded search.
func findAmount(s string) (token string, end int, ok bool) {
	from := 0
	for from <= len(s) {
		loc := amountToken.FindStringIndex(s[from:])
		if loc == nil {
			return "", 0, false
		}
		start := from + loc[0]
		stop := from + loc[1]

		beforeOK := start == 0 || !isASCIIDigit(s[start-1])
		afterOK := stop == len(s) || !isASCIIDigit(s[stop])
		if beforeOK && afterOK {
			return s[start:stop], stop, true
		}

		from = start + 1
	}
	return "", 0, false
}

// containsAmount reports whether s holds any amount token. Used by the
// address collectors to stop at a line that begins the next record's figures.
func containsAmount(s string) bool {
	_, _, ok := findAmount(s)
	return ok
}

// parseAmount converts an amount token to a decimal, dropping the comma
// grouping first.
func parseAmount(token string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(token, ",", ""))
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("bad amount %q: %w", token, err)
	}
	return d, nil
}

func isASCIIDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
