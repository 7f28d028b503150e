// =============================================================================
// Manager.io Check Printer - Text Sanitization
// =============================================================================

package render

import "strings"

// smartPunct maps typographic punctuation that Manager's web editor loves
// to paste in onto the plain equivalents the check stock expects. Only
// punctuation is mapped; letters keep their diacritics so "José" prints as
// written wherever the device encoding allows it.
var smartPunct = map[rune]rune{
	'‘':      '\'', // left single quote
	'’':      '\'', // right single quote
	'“':      '"',  // left double quote
	'”':      '"',  // right double quote
	'–':      '-',  // en dash
	'—':      '-',  // em dash
	'\u00a0': ' ',  // no-break space
}

// Sanitize replaces typographic punctuation with its plain form. All other
// runes pass through unchanged.
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if repl, ok := smartPunct[r]; ok {
			return repl
		}
		return r
	}, s)
}
