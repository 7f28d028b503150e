// =============================================================================
// Manager.io Check Printer - Report Text Input
// =============================================================================
//
// The report dump comes from whatever the Windows "print to file" path felt
// like producing: usually Windows-1252, sometimes UTF-8 with a BOM, and
// UTF-16 has been seen from at least one driver. This module turns those
// bytes into clean lines:
//
//   1. Decode with the first candidate encoding that accepts every byte
//      (Windows-1252, UTF-8, UTF-16-LE, UTF-16-BE); when none does, fall
//      back to Latin-1, which is total and cannot fail.
//   2. Remove BOM characters and embedded control characters, convert
//      non-breaking spaces to plain spaces.
//   3. Split on CR, LF or CRLF with terminators removed.
//
// Decoding never fails on content; only real I/O errors surface to callers.
//
// =============================================================================

package textio

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// controlChars is the class of control bytes stripped after decoding.
// Tab, CR and LF survive; form feeds and vertical tabs embedded by the
// driver do not.
var controlChars = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f]`)

// =============================================================================
// READING
// =============================================================================

// ReadLines reads a report dump and returns its cleaned lines.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	return CleanLines(Decode(data)), nil
}

// Decode converts raw report bytes to a string, trying candidate encodings
// in a fixed order and accepting the first that decodes every byte. The
// Latin-1 fallback maps all 256 byte values, so Decode always succeeds.
func Decode(data []byte) string {
	if s, ok := decodeCharmapStrict(data, charmap.Windows1252); ok {
		return s
	}
	if utf8.Valid(data) {
		return string(data)
	}
	if s, ok := decodeUTF16(data, unicode.LittleEndian); ok {
		return s
	}
	if s, ok := decodeUTF16(data, unicode.BigEndian); ok {
		return s
	}

	var b strings.Builder
	b.Grow(len(data))
	for _, c := range data {
		b.WriteRune(charmap.ISO8859_1.DecodeByte(c))
	}
	return b.String()
}

// CleanLines removes BOMs, converts NBSP to space, strips embedded control
// characters and splits the text into lines. A trailing newline does not
// produce a trailing empty line.
func CleanLines(text string) []string {
	text = strings.ReplaceAll(text, "\ufeff", "")
	text = strings.ReplaceAll(text, "\u00a0", " ")
	text = controlChars.ReplaceAllString(text, "")

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// decodeCharmapStrict decodes through a single-byte character map,
// rejecting the input if any byte has no real assignment. Unassigned
// positions come back as U+FFFD or, in the WHATWG-derived Windows tables,
// as C1 controls (Windows-1252 fills its five holes with U+0081 and
// friends); report text never legitimately contains either, so both mean
// "wrong encoding, try the next one".
func decodeCharmapStrict(data []byte, cm *charmap.Charmap) (string, bool) {
	var b strings.Builder
	b.Grow(len(data))
	for _, c := range data {
		r := cm.DecodeByte(c)
		if r == utf8.RuneError || (r >= 0x80 && r <= 0x9f) {
			return "", false
		}
		b.WriteRune(r)
	}
	return b.String(), true
}

// decodeUTF16 decodes with the given endianness, rejecting input with
// unpaired surrogates or an odd trailing byte (both surface as U+FFFD).
// A BOM, if present, decodes to U+FEFF and is removed by CleanLines.
func decodeUTF16(data []byte, endianness unicode.Endianness) (string, bool) {
	dec := unicode.UTF16(endianness, unicode.IgnoreBOM).NewDecoder()
	out, err := dec.Bytes(data)
	if err != nil {
		return "", false
	}
	s := string(out)
	if strings.ContainsRune(s, utf8.RuneError) {
		return "", false
	}
	return s, true
}

// =============================================================================
// DEBUG DUMP
// =============================================================================

// WriteDebugDump writes numbered, quoted report lines for inspection when
// extraction fails. Quoting makes stray control characters and encoding
// artifacts visible; maxLines > 0 caps the dump.
func WriteDebugDump(path string, lines []string, maxLines int) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create debug dump: %w", err)
	}
	defer file.Close()

	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}

	w := bufio.NewWriter(file)
	for i, ln := range lines {
		fmt.Fprintf(w, "%04d: %q\n", i, ln)
	}
	return w.Flush()
}
