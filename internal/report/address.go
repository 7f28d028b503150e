// =============================================================================
// Manager.io Check Printer - Address Normalization
// =============================================================================

package report

import (
	"regexp"
	"strings"
)

// maxAddressLines caps a normalized address at what fits the envelope window.
const maxAddressLines = 4

// zipCode matches a US ZIP or ZIP+4 anywhere in a line.
var zipCode = regexp.MustCompile(`\b\d{5}(?:-\d{4})?\b`)

// normalizeAddress turns raw captured address lines into display lines.
//
// Manager emits addresses two ways. Newer dumps pipe-delimit the parts
// ("P.O. Box 2961|Phoenix, AZ|85062-2961|"); older ones run the whole
// address onto one line ("P.O. Box 2961 Phoenix, AZ 85062-2961"). Rules,
// in order:
//  1. Any line containing "|" is split on it; trimmed non-empty pieces
//     each become a line. Pipes always win.
//  2. Other non-empty lines are kept as-is (trimmed).
//  3. If exactly one line came out, try to break it into street and
//     "city, ST ZIP": find a ZIP, then the last comma before it. Without
//     both, the line stays whole.
//
// The result is capped at four lines.
func normalizeAddress(raw []string) []string {
	var lines []string
	for _, ln := range raw {
		s := strings.TrimSpace(ln)
		if s == "" {
			continue
		}
		if strings.Contains(s, "|") {
			for _, part := range strings.Split(s, "|") {
				if p := strings.TrimSpace(part); p != "" {
					lines = append(lines, p)
				}
			}
			continue
		}
		lines = append(lines, s)
	}

	if len(lines) == 1 {
		lines = splitSingleLine(lines[0])
	}

	if len(lines) > maxAddressLines {
		lines = lines[:maxAddressLines]
	}
	return lines
}

// splitSingleLine breaks a run-on one-line address at the last comma before
// the ZIP code: everything before that comma becomes the first line, and the
// comma's remainder plus the ZIP tail becomes the second.
//
//	"P.O. Box 2961 Phoenix, AZ 85062-2961"
//	  -> "P.O. Box 2961 Phoenix"
//	     "AZ 85062-2961"
//
// Best effort only: without a ZIP or a comma the line stays whole.
func splitSingleLine(s string) []string {
	m := zipCode.FindStringIndex(s)
	if m == nil {
		return []string{s}
	}
	left := strings.TrimRight(s[:m[0]], " \t")
	right := strings.TrimLeft(s[m[0]:], " \t")

	k := strings.LastIndex(left, ",")
	if k < 0 {
		return []string{s}
	}
	line1 := strings.TrimSpace(left[:k])
	line2 := strings.TrimSpace(strings.TrimSpace(left[k+1:]) + " " + right)
	return []string{line1, line2}
}
