package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindAmount(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		token string
		end   int
		ok    bool
	}{
		{name: "bare amount", in: "41.79", token: "41.79", end: 5, ok: true},
		{name: "comma grouped", in: "Payment 1,234.56 due", token: "1,234.56", end: 16, ok: true},
		{name: "address jammed against amount", in: "41.79P.O. Box 2961", token: "41.79", end: 5, ok: true},
		{name: "plain digit run", in: "12345.67", token: "12345.67", end: 8, ok: true},
		{name: "grouped between letters", in: "a1,234,567.89b", token: "1,234,567.89", end: 13, ok: true},
		{name: "negative", in: "-212.99", token: "-212.99", end: 7, ok: true},
		{name: "embedded in identifier", in: "id3212.99x", token: "3212.99", end: 9, ok: true},
		{name: "three fraction digits", in: "123.456", ok: false},
		{name: "three fraction digits in text", in: "Invoice 123.456 due", ok: false},
		{name: "digit after fraction", in: "123456.789", ok: false},
		{name: "no decimal point", in: "100", ok: false},
		{name: "one fraction digit", in: "1.5", ok: false},
		{name: "empty", in: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, end, ok := findAmount(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.token, token)
				assert.Equal(t, tt.end, end)
			}
		})
	}
}

func TestContainsAmount(t *testing.T) {
	assert.True(t, containsAmount("total 54.00 due"))
	assert.True(t, containsAmount("1,234.56"))
	assert.False(t, containsAmount("P.O. Box 2961| Phoenix, AZ| 85062-2961|"))
	assert.False(t, containsAmount("414 Silver Ave SW"))
}

func TestParseAmount(t *testing.T) {
	d, err := parseAmount("1,234.56")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("1234.56")))

	d, err = parseAmount("-41.79")
	require.NoError(t, err)
	assert.True(t, d.IsNegative())
	assert.True(t, d.Equal(decimal.RequireFromString("-41.79")))

	_, err = parseAmount("no amount")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad amount")
}

func TestAmountLine(t *testing.T) {
	matching := []string{"41.79", "  1,234.56  ", "-41.79", "+41.79", "212.99"}
	for _, s := range matching {
		assert.True(t, amountLine.MatchString(s), "expected %q to match", s)
	}

	// No plain-run alternative: a four-digit integer part needs its comma.
	nonMatching := []string{"1234.56", "41.79 extra", "$41.79", "41", ""}
	for _, s := range nonMatching {
		assert.False(t, amountLine.MatchString(s), "expected %q not to match", s)
	}
}
