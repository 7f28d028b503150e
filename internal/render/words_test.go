package render

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMoneyWords(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"0.00", "Zero dollars and 00/100"},
		{"0.05", "Zero dollars and 05/100"},
		{"1.00", "One dollar and 00/100"},
		{"2.00", "Two dollars and 00/100"},
		{"20.00", "Twenty dollars and 00/100"},
		{"21.21", "Twenty one dollars and 21/100"},
		{"41.79", "Forty one dollars and 79/100"},
		{"100.00", "One hundred dollars and 00/100"},
		{"115.10", "One hundred fifteen dollars and 10/100"},
		{"212.99", "Two hundred twelve dollars and 99/100"},
		{"1234.56", "One thousand two hundred thirty four dollars and 56/100"},
		{"2500.00", "Two thousand five hundred dollars and 00/100"},
		{"1000000.00", "One million dollars and 00/100"},
		{
			"1234567.89",
			"One million two hundred thirty four thousand five hundred sixty seven dollars and 89/100",
		},
		{"2000000015.00", "Two billion fifteen dollars and 00/100"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			got := MoneyWords(decimal.RequireFromString(tt.amount))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScaleWords(t *testing.T) {
	assert.Equal(t, "zero", scaleWords(0))
	assert.Equal(t, "seven", scaleWords(7))
	assert.Equal(t, "ninety nine", scaleWords(99))
	assert.Equal(t, "one hundred one", scaleWords(101))
	assert.Equal(t, "one thousand", scaleWords(1000))
	assert.Equal(t, "ten thousand five", scaleWords(10005))
}
