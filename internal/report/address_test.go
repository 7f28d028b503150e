package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAddress_PipeDelimited(t *testing.T) {
	got := normalizeAddress([]string{"P.O. Box 2961| Phoenix, AZ| 85062-2961|"})
	assert.Equal(t, []string{"P.O. Box 2961", "Phoenix, AZ", "85062-2961"}, got)
}

func TestNormalizeAddress_MultiLine(t *testing.T) {
	got := normalizeAddress([]string{"  414 Silver Ave SW  ", "", "Albuquerque, NM 87102"})
	assert.Equal(t, []string{"414 Silver Ave SW", "Albuquerque, NM 87102"}, got)
}

func TestNormalizeAddress_MixedPipeAndPlain(t *testing.T) {
	got := normalizeAddress([]string{"Suite 5|Building 2", "Attn: Bob"})
	assert.Equal(t, []string{"Suite 5", "Building 2", "Attn: Bob"}, got)
}

func TestNormalizeAddress_SingleRunOnLine(t *testing.T) {
	got := normalizeAddress([]string{"1625 Rio Bravo Blvd SW Albuquerque, NM 87105"})
	assert.Equal(t, []string{"1625 Rio Bravo Blvd SW Albuquerque", "NM 87105"}, got)
}

func TestNormalizeAddress_CapsAtFourLines(t *testing.T) {
	got := normalizeAddress([]string{
		"Attn: Accounts", "Suite 400", "100 Main St", "Phoenix, AZ", "85001",
	})
	assert.Equal(t, []string{"Attn: Accounts", "Suite 400", "100 Main St", "Phoenix, AZ"}, got)
}

func TestNormalizeAddress_Empty(t *testing.T) {
	assert.Empty(t, normalizeAddress(nil))
	assert.Empty(t, normalizeAddress([]string{"", "   "}))
}

func TestSplitSingleLine(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "street comma state zip",
			in:   "P.O. Box 2961 Phoenix, AZ 85062-2961",
			want: []string{"P.O. Box 2961 Phoenix", "AZ 85062-2961"},
		},
		{
			// The five-digit box number is found before the real ZIP and
			// there is no comma to its left, so the line stays whole.
			name: "five digit box number",
			in:   "P.O. Box 27885 Albuquerque, NM 87125-7885",
			want: []string{"P.O. Box 27885 Albuquerque, NM 87125-7885"},
		},
		{
			name: "no comma before zip",
			in:   "1426 Broadway Phoenix AZ 85062",
			want: []string{"1426 Broadway Phoenix AZ 85062"},
		},
		{
			name: "no zip",
			in:   "General Delivery",
			want: []string{"General Delivery"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitSingleLine(tt.in))
		})
	}
}
