// =============================================================================
// Manager.io Check Printer - ESC/P Device Output
// =============================================================================
//
// Generic/Text printer queues hand the bytes straight to the device, so the
// program speaks a minimal ESC/P dialect itself: reset, 10 CPI, 1/6-inch
// line spacing, character table select, then the page text with CRLF line
// ends and form feeds between pages. That trio of pitch settings is what
// makes the 80x54 grid land on the physical page.
//
// The device is a single-byte world. Page text is encoded through the
// configured code page; a rune the code page cannot carry is decomposed
// (NFKD) and its ASCII skeleton used instead, and whatever still does not
// fit becomes '?'. "José" prints verbatim on cp850 and as "Jose" on a bare
// cp437 table rather than corrupting the column alignment.
//
// =============================================================================

package escp

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

// =============================================================================
// CONTROL SEQUENCES
// =============================================================================

const (
	// ESC introduces every control sequence.
	ESC = "\x1b"

	// Init resets the printer to its power-on state.
	Init = ESC + "@"

	// Pitch10 selects 10 characters per inch.
	Pitch10 = ESC + "P"

	// Spacing6 selects 1/6-inch line spacing (6 lines per inch).
	Spacing6 = ESC + "2"

	// FormFeed ejects to the top of the next page.
	FormFeed = "\x0c"

	// CRLF is the line terminator ESC/P devices expect.
	CRLF = "\r\n"
)

// charsetTables maps IBM code page numbers onto the ESC t table selector
// of the Epson character sets that ship in these printers.
var charsetTables = map[int]byte{
	437: 0, // USA
	850: 2, // Multilingual
	860: 3, // Portugal
	863: 4, // Canada-French
	865: 5, // Norway
}

// CharsetTable returns the ESC t selector for a code page, falling back to
// table 0 (cp437) for anything unrecognized.
func CharsetTable(codePage int) byte {
	if n, ok := charsetTables[codePage]; ok {
		return n
	}
	return 0
}

// KnownCharsets lists the code pages with an ESC t selector, for
// validation and usage text.
func KnownCharsets() []int {
	return []int{437, 850, 860, 863, 865}
}

// =============================================================================
// PAYLOAD ASSEMBLY
// =============================================================================

// DeviceText joins rendered pages into the printer-facing text stream:
// CRLF line ends, each page right-trimmed, form feeds between pages and
// one after the last so the final check ejects.
func DeviceText(pages [][]string) string {
	pageStrs := make([]string, len(pages))
	for i, page := range pages {
		pageStrs[i] = strings.TrimRightFunc(strings.Join(page, CRLF), unicode.IsSpace)
	}
	return strings.Join(pageStrs, FormFeed) + FormFeed
}

// BuildPayload prefixes the device text with the initialization sequence:
// reset, 10 CPI, 1/6-inch spacing, and the character table for the given
// code page.
func BuildPayload(text string, codePage int) string {
	return Init + Pitch10 + Spacing6 + ESC + "t" + string(rune(CharsetTable(codePage))) + text
}

// =============================================================================
// CODE-PAGE ENCODING
// =============================================================================

// CharmapByName resolves a configured encoding name to its character map.
// Accepts the bare code page number as well ("cp437" and "437").
func CharmapByName(name string) (*charmap.Charmap, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "cp437", "437", "ibm437":
		return charmap.CodePage437, nil
	case "cp850", "850", "ibm850":
		return charmap.CodePage850, nil
	case "cp860", "860", "ibm860":
		return charmap.CodePage860, nil
	case "cp863", "863", "ibm863":
		return charmap.CodePage863, nil
	case "cp865", "865", "ibm865":
		return charmap.CodePage865, nil
	case "cp1252", "windows-1252", "1252":
		return charmap.Windows1252, nil
	case "latin-1", "latin1", "iso-8859-1":
		return charmap.ISO8859_1, nil
	}
	return nil, fmt.Errorf("unsupported device encoding %q", name)
}

// Encode converts a payload to device bytes through the code page. Runes
// outside the code page are NFKD-folded to their ASCII skeleton first;
// runes that still cannot be represented become '?'.
func Encode(payload string, cm *charmap.Charmap) []byte {
	out := make([]byte, 0, len(payload))
	for _, r := range payload {
		if b, ok := cm.EncodeRune(r); ok {
			out = append(out, b)
			continue
		}
		folded := asciiFold(r)
		if folded == "" {
			out = append(out, '?')
			continue
		}
		for _, fr := range folded {
			if b, ok := cm.EncodeRune(fr); ok {
				out = append(out, b)
			} else {
				out = append(out, '?')
			}
		}
	}
	return out
}

// asciiFold decomposes a rune and keeps the ASCII part ('é' -> "e").
// Returns "" when nothing ASCII survives.
func asciiFold(r rune) string {
	decomposed := norm.NFKD.String(string(r))
	var b strings.Builder
	for _, d := range decomposed {
		if d < utf8.RuneSelf {
			b.WriteRune(d)
		}
	}
	return b.String()
}
