// =============================================================================
// Manager.io Check Printer - Record Extraction
// =============================================================================
//
// The report dump has no stable column structure, so extraction runs a chain
// of strategies in priority order:
//
//   1. PIPE-DELIMITED FAST PATH
//      The report's description field was set up to terminate fields with
//      "|" ("Contact| Memo| Amount Addr|Addr|Addr|"). Cheap and reliable
//      when present.
//
//   2. LEGACY MULTI-LINE HEURISTIC
//      Older dumps wrap fields across lines with nothing but position to go
//      on: payee/memo lines accumulate until a line that starts with an
//      amount, then address lines until a blank or the next record.
//
//   3. BLOCK FALLBACK
//      When the report header row never shows up (or the tabular pass comes
//      back empty), lines are grouped into blocks between date-only lines
//      and each block is mined for an amount-only line.
//
// A date line whose pipe payload cannot produce an amount falls through to
// strategy 2 for that same record. Strategy 3 runs only when the whole
// tabular pass yields nothing.
//
// =============================================================================

package report

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// ErrNoRecords is returned when every extraction strategy comes back empty.
// Callers treat this as a hard parse failure and dump the raw input for
// inspection instead of producing output.
var ErrNoRecords = errors.New("no records found")

// maxPayeeLines bounds how many leading body lines the block fallback
// treats as the payee; the rest become the memo.
const maxPayeeLines = 2

// headerNeedle identifies the report's column header row after lowercasing
// and removing all whitespace. The dump renders "Date Contact Description
// Credit" with arbitrary spacing, so matching collapses it first.
const headerNeedle = "datecontactdescriptioncredit"

var (
	// dateAtStart captures a leading MM/DD/YYYY date and everything after it.
	// Payloads are usually jammed straight against the date.
	dateAtStart = regexp.MustCompile(`^\s*(\d{2}/\d{2}/\d{4})(.*)$`)

	// amountAtStart captures a leading comma-grouped amount and its tail.
	amountAtStart = regexp.MustCompile(`^\s*(-?\d{1,3}(?:,\d{3})*(?:\.\d{2}))(.*)$`)

	// dateOnly matches a line that is nothing but a date.
	dateOnly = regexp.MustCompile(`^\s*\d{2}/\d{2}/\d{4}\s*$`)

	whitespaceRun = regexp.MustCompile(`\s+`)
)

// footerMarkers end the report body; anything at or past one of these lines
// is boilerplate (period banner, report-view URL fragment).
var footerMarkers = []string{
	"Printable Checks - For the period",
	"custom-report-view",
}

func isFooter(s string) bool {
	for _, marker := range footerMarkers {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}

// =============================================================================
// ENTRY POINT
// =============================================================================

// Extract parses normalized report lines into payment records.
//
// PARAMETERS:
//   - lines: the decoded, cleaned report lines (see the textio package).
//
// RETURNS:
//   - The extracted records in report order.
//   - ErrNoRecords if every strategy produced nothing.
func Extract(lines []string) ([]PaymentRecord, error) {
	records := extractTabular(lines)
	if len(records) == 0 {
		records = extractBlocks(lines)
	}
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	return records, nil
}

// =============================================================================
// TABULAR PASS (STRATEGIES 1 + 2)
// =============================================================================

// extractTabular walks the report body after the header row. Each record
// starts at a line with a leading date; the pipe fast path is tried first
// and the legacy accumulator picks up whatever it declines.
func extractTabular(lines []string) []PaymentRecord {
	hdr := -1
	for i, ln := range lines {
		s := whitespaceRun.ReplaceAllString(strings.ToLower(ln), "")
		if strings.HasPrefix(s, headerNeedle) {
			hdr = i
			break
		}
	}
	if hdr < 0 {
		return nil
	}

	var out []PaymentRecord
	i, n := hdr+1, len(lines)
	for i < n {
		// Scan for the next line that starts with a date. A footer line
		// before that ends the whole report.
		var m []string
		for i < n {
			m = dateAtStart.FindStringSubmatch(lines[i])
			if m != nil {
				break
			}
			if isFooter(lines[i]) {
				return out
			}
			i++
		}
		if i >= n {
			break
		}

		date := strings.TrimSpace(m[1])
		firstPayload := strings.TrimSpace(m[2])
		i++

		if strings.Contains(firstPayload, "|") {
			if rec, consumed, ok := parsePipePayload(firstPayload, lines[i:]); ok {
				i += consumed
				out = append(out, PaymentRecord{
					Date:    date,
					Payee:   rec.payee,
					Memo:    rec.memo,
					Address: rec.addr,
					Amount:  rec.amount,
				})
				continue
			}
		}

		// Legacy path: accumulate payee/memo lines until the amount line.
		// Blank lines are skipped, not terminators.
		var pre []string
		if firstPayload != "" {
			pre = append(pre, firstPayload)
		}
		for i < n {
			s := strings.TrimRightFunc(lines[i], unicode.IsSpace)
			if strings.TrimSpace(s) == "" {
				i++
				continue
			}
			if amountAtStart.MatchString(s) {
				break
			}
			if isFooter(s) {
				break
			}
			pre = append(pre, strings.TrimSpace(s))
			i++
		}
		if i >= n {
			break
		}
		mm := amountAtStart.FindStringSubmatch(strings.TrimSpace(lines[i]))
		if mm == nil {
			// Footer or stray text where the amount should be; the tabular
			// pass cannot recover its position, so it stops here.
			break
		}
		i++
		amount, err := parseAmount(mm[1])
		if err != nil {
			break
		}

		// Address: the amount line's tail first, then following lines until
		// a blank (consumed) or the start of the next record (left in place).
		var addrLines []string
		if tail := strings.TrimSpace(mm[2]); tail != "" {
			addrLines = append(addrLines, tail)
		}
		for i < n {
			s := strings.TrimSpace(lines[i])
			if s == "" {
				i++
				break
			}
			if dateAtStart.MatchString(s) || amountAtStart.MatchString(s) || isFooter(s) {
				break
			}
			addrLines = append(addrLines, s)
			i++
		}

		payee, memo := splitPayeeMemo(pre)
		out = append(out, PaymentRecord{
			Date:    date,
			Payee:   payee,
			Memo:    memo,
			Address: normalizeAddress(addrLines),
			Amount:  amount,
		})
	}
	return out
}

// splitPayeeMemo divides the accumulated pre-amount lines by arity. The
// report gives no marker between payee and memo, so the split is fixed:
// with four or more fragments the first two are the payee (long company
// names wrap), otherwise the first alone is.
func splitPayeeMemo(pre []string) (payee, memo string) {
	switch {
	case len(pre) >= 4:
		return strings.Join(pre[:2], " "), strings.Join(pre[2:], " ")
	case len(pre) == 3:
		return pre[0], strings.Join(pre[1:], " ")
	case len(pre) == 2:
		return pre[0], pre[1]
	case len(pre) == 1:
		return pre[0], ""
	}
	return "", ""
}

// =============================================================================
// PIPE-DELIMITED FAST PATH
// =============================================================================

type pipeRecord struct {
	payee  string
	memo   string
	addr   []string
	amount decimal.Decimal
}

// parsePipePayload parses one record whose first payload carries "|" field
// terminators: token 0 is the payee, token 1 the memo, and the rejoined
// remainder holds the amount with the address head jammed against it.
//
// When the remainder has no amount, the next non-blank follow line is
// tested; if the amount lives there, that line (and the blanks before it)
// is consumed. Address lines collected after that are NOT consumed - they
// fail the outer date scan and are skipped there, which keeps the two
// paths from double-reading a record boundary.
//
// Returns ok=false when no amount can be found or converted, letting the
// caller fall back to the legacy path for this record.
func parsePipePayload(firstPayload string, follow []string) (rec pipeRecord, consumed int, ok bool) {
	tokens := splitPipeFields(firstPayload)

	if len(tokens) > 0 {
		rec.payee = strings.TrimSpace(tokens[0])
	}
	if len(tokens) >= 2 {
		rec.memo = strings.TrimSpace(tokens[1])
	}

	remainder := ""
	if len(tokens) >= 3 {
		remainder = strings.TrimSpace(strings.Join(tokens[2:], "|"))
	}

	token, end, found := findAmount(remainder)
	if !found {
		j := 0
		for j < len(follow) && strings.TrimSpace(follow[j]) == "" {
			j++
		}
		if j < len(follow) {
			if t, e, ok2 := findAmount(follow[j]); ok2 {
				remainder, token, end = follow[j], t, e
				found = true
				consumed = j + 1
			}
		}
	}
	if !found {
		return pipeRecord{}, 0, false
	}

	amount, err := parseAmount(token)
	if err != nil {
		return pipeRecord{}, 0, false
	}
	rec.amount = amount

	var addrLines []string
	if head := strings.TrimSpace(remainder[end:]); head != "" {
		addrLines = append(addrLines, head)
	}
	for _, ln := range follow[consumed:] {
		s := strings.TrimSpace(ln)
		if s == "" {
			break
		}
		if dateOnly.MatchString(s) || containsAmount(s) {
			break
		}
		addrLines = append(addrLines, s)
	}
	rec.addr = normalizeAddress(addrLines)
	return rec, consumed, true
}

// splitPipeFields splits on "|" trimming each piece. A payload that ends
// with "|" keeps its trailing empty token (the delimiter was deliberate);
// otherwise trailing empties are dropped.
func splitPipeFields(s string) []string {
	parts := strings.Split(s, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if strings.HasSuffix(s, "|") {
		return parts
	}
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

// =============================================================================
// BLOCK FALLBACK (STRATEGY 3)
// =============================================================================

// extractBlocks groups lines into blocks delimited by date-only lines and
// mines each block: the last amount-only line is the amount, the body above
// it splits into payee (first two lines) and memo, and only post-amount
// lines containing "|" are trusted as address material. Deliberately
// conservative - this path runs on dumps whose shape is already suspect.
func extractBlocks(lines []string) []PaymentRecord {
	i := 0
	for i < len(lines) && !dateOnly.MatchString(lines[i]) {
		i++
	}

	var out []PaymentRecord
	for i < len(lines) {
		if !dateOnly.MatchString(lines[i]) {
			i++
			continue
		}
		date := strings.TrimSpace(lines[i])
		i++

		var chunk []string
		for i < len(lines) && !dateOnly.MatchString(lines[i]) {
			if strings.TrimSpace(lines[i]) != "" {
				chunk = append(chunk, strings.TrimRightFunc(lines[i], unicode.IsSpace))
			}
			i++
		}
		if len(chunk) == 0 {
			continue
		}

		amtIdx := -1
		for idx := len(chunk) - 1; idx >= 0; idx-- {
			if amountLine.MatchString(chunk[idx]) {
				amtIdx = idx
				break
			}
		}
		if amtIdx < 0 {
			continue
		}
		amount, err := parseAmount(chunk[amtIdx])
		if err != nil {
			continue
		}

		var addrRaw []string
		for _, ln := range chunk[amtIdx+1:] {
			if strings.Contains(ln, "|") {
				addrRaw = append(addrRaw, ln)
			}
		}

		body := chunk[:amtIdx]
		payeeLines := body
		if len(payeeLines) > maxPayeeLines {
			payeeLines = payeeLines[:maxPayeeLines]
		}
		out = append(out, PaymentRecord{
			Date:    date,
			Payee:   joinNonEmpty(payeeLines),
			Memo:    joinNonEmpty(body[len(payeeLines):]),
			Address: normalizeAddress(addrRaw),
			Amount:  amount,
		})
	}
	return out
}

func joinNonEmpty(lines []string) string {
	var parts []string
	for _, ln := range lines {
		if s := strings.TrimSpace(ln); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}
