// =============================================================================
// Manager.io Check Printer - Legal Amount Words
// =============================================================================
//
// The legal amount line spells the dollars in English short-scale words
// with the cents as a NN/100 fraction, the way US banks expect:
//
//   1234.56 -> "One thousand two hundred thirty four dollars and 56/100"
//
// Only the first letter is capitalized and compounds are not hyphenated;
// that matches the pre-printed stock this grew up on.
//
// =============================================================================

package render

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var smallNumbers = []string{
	"zero", "one", "two", "three", "four", "five", "six", "seven", "eight",
	"nine", "ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen",
	"sixteen", "seventeen", "eighteen", "nineteen",
}

var tensNumbers = []string{
	"", "ten", "twenty", "thirty", "forty", "fifty", "sixty", "seventy",
	"eighty", "ninety",
}

// MoneyWords converts a non-negative amount with two fraction digits into
// its legal-line phrase. "dollar" is singular only for exactly one dollar;
// a zero integer part still reads "Zero dollars". Exact through the
// billions.
func MoneyWords(amount decimal.Decimal) string {
	n := amount.IntPart()
	cents := amount.Sub(decimal.NewFromInt(n)).Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	words := scaleWords(n)
	if n == 1 {
		words += " dollar"
	} else {
		words += " dollars"
	}
	words += fmt.Sprintf(" and %02d/100", cents)
	return strings.ToUpper(words[:1]) + words[1:]
}

// scaleWords spells an integer using the thousand/million/billion scales.
func scaleWords(x int64) string {
	scales := []struct {
		value int64
		name  string
	}{
		{1_000_000_000, "billion"},
		{1_000_000, "million"},
		{1_000, "thousand"},
	}

	var out []string
	for _, sc := range scales {
		if x >= sc.value {
			out = append(out, upTo999(x/sc.value), sc.name)
			x %= sc.value
		}
	}
	if x > 0 {
		out = append(out, upTo999(x))
	}
	if len(out) == 0 {
		return "zero"
	}
	return strings.Join(out, " ")
}

// upTo999 spells 0..999.
func upTo999(x int64) string {
	var parts []string
	if x >= 100 {
		parts = append(parts, smallNumbers[x/100], "hundred")
		x %= 100
	}
	switch {
	case x >= 20:
		parts = append(parts, tensNumbers[x/10])
		if x%10 > 0 {
			parts = append(parts, smallNumbers[x%10])
		}
	case x > 0:
		parts = append(parts, smallNumbers[x])
	default:
		if len(parts) == 0 {
			parts = append(parts, "zero")
		}
	}
	return strings.Join(parts, " ")
}
