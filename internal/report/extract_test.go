package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reportHeader = "Date   Contact   Description   Credit"

func TestExtract_PipeDelimited(t *testing.T) {
	lines := []string{
		"Printable Checks",
		"",
		reportHeader,
		"08/07/2025Century Link|505-291-1047|41.79P.O. Box 2961| Phoenix, AZ| 85062-2961|",
		"",
		"Printable Checks - For the period 08/01/2025 to 08/31/2025",
	}

	records, err := Extract(lines)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "08/07/2025", rec.Date)
	assert.Equal(t, "Century Link", rec.Payee)
	assert.Equal(t, "505-291-1047", rec.Memo)
	assert.True(t, rec.Amount.Equal(decimal.RequireFromString("41.79")))
	assert.Equal(t, []string{"P.O. Box 2961", "Phoenix, AZ", "85062-2961"}, rec.Address)
}

func TestExtract_PipeAmountOnNextLine(t *testing.T) {
	lines := []string{
		reportHeader,
		"08/07/2025PNM|Electric service|",
		"212.99",
		"414 Silver Ave SW| Albuquerque, NM| 87102|",
		"",
	}

	records, err := Extract(lines)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "PNM", rec.Payee)
	assert.Equal(t, "Electric service", rec.Memo)
	assert.True(t, rec.Amount.Equal(decimal.RequireFromString("212.99")))
	assert.Equal(t, []string{"414 Silver Ave SW", "Albuquerque, NM", "87102"}, rec.Address)
}

func TestExtract_LegacyMultiLine(t *testing.T) {
	lines := []string{
		reportHeader,
		"08/07/2025",
		"New Mexico Gas Company",
		"Gas service July",
		"54.37",
		"1625 Rio Bravo Blvd SW Albuquerque, NM 87105",
		"",
	}

	records, err := Extract(lines)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "New Mexico Gas Company", rec.Payee)
	assert.Equal(t, "Gas service July", rec.Memo)
	assert.True(t, rec.Amount.Equal(decimal.RequireFromString("54.37")))
	assert.Equal(t, []string{"1625 Rio Bravo Blvd SW Albuquerque", "NM 87105"}, rec.Address)
}

func TestExtract_LegacyAmountTailIsAddressHead(t *testing.T) {
	lines := []string{
		reportHeader,
		"08/07/2025",
		"Vendor Co",
		"109.58P.O. Box 123| Santa Fe, NM| 87501|",
		"",
	}

	records, err := Extract(lines)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "Vendor Co", rec.Payee)
	assert.Equal(t, "", rec.Memo)
	assert.True(t, rec.Amount.Equal(decimal.RequireFromString("109.58")))
	assert.Equal(t, []string{"P.O. Box 123", "Santa Fe, NM", "87501"}, rec.Address)
}

func TestExtract_TwoRecordsBackToBack(t *testing.T) {
	lines := []string{
		reportHeader,
		"08/07/2025",
		"Alpha Vendor",
		"Memo one",
		"10.00",
		"08/08/2025",
		"Beta Vendor",
		"Memo two",
		"20.00",
		"",
	}

	records, err := Extract(lines)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "08/07/2025", records[0].Date)
	assert.Equal(t, "Alpha Vendor", records[0].Payee)
	assert.Equal(t, "Memo one", records[0].Memo)
	assert.Equal(t, "08/08/2025", records[1].Date)
	assert.Equal(t, "Beta Vendor", records[1].Payee)
	assert.True(t, records[1].Amount.Equal(decimal.RequireFromString("20.00")))
}

func TestExtract_MixedStrategiesInOneReport(t *testing.T) {
	lines := []string{
		reportHeader,
		"08/07/2025Century Link|505-291-1047|41.79P.O. Box 2961| Phoenix, AZ| 85062-2961|",
		"",
		"08/08/2025",
		"New Mexico Gas Company",
		"Gas service",
		"54.37",
		"",
		"Printable Checks - For the period",
	}

	records, err := Extract(lines)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Century Link", records[0].Payee)
	assert.Len(t, records[0].Address, 3)
	assert.Equal(t, "New Mexico Gas Company", records[1].Payee)
	assert.Empty(t, records[1].Address)
}

func TestExtract_FooterStopsScan(t *testing.T) {
	lines := []string{
		reportHeader,
		"08/07/2025Acme Co|August rent|1,500.00Unit 4| Roswell, NM| 88201|",
		"",
		"Printable Checks - For the period 08/01/2025 to 08/31/2025",
		"08/08/2025Ghost Vendor|Never parsed|60.00X|",
	}

	records, err := Extract(lines)
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "Acme Co", records[0].Payee)
	assert.True(t, records[0].Amount.Equal(decimal.RequireFromString("1500.00")))
}

func TestExtract_PipeFallsBackToLegacy(t *testing.T) {
	// The pipe payload never produces an amount, so this record goes
	// through the legacy accumulator with the raw payload intact.
	lines := []string{
		reportHeader,
		"08/07/2025Vendor Name|Some memo|",
		"extra line",
		"41.79",
		"",
	}

	records, err := Extract(lines)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "Vendor Name|Some memo|", rec.Payee)
	assert.Equal(t, "extra line", rec.Memo)
	assert.True(t, rec.Amount.Equal(decimal.RequireFromString("41.79")))
	assert.Empty(t, rec.Address)
}

func TestExtract_HeaderWithExtraColumns(t *testing.T) {
	lines := []string{
		"Date Contact Description Credit Debit Balance",
		"08/07/2025",
		"Acme Supply",
		"Widgets",
		"100.00",
		"",
	}

	records, err := Extract(lines)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Acme Supply", records[0].Payee)
	assert.Equal(t, "Widgets", records[0].Memo)
}

func TestExtract_NoHeaderUsesBlocks(t *testing.T) {
	lines := []string{
		"08/07/2025",
		"Century Link",
		"Phone service",
		"41.79",
		"P.O. Box 2961| Phoenix, AZ| 85062-2961|",
	}

	records, err := Extract(lines)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "08/07/2025", rec.Date)
	assert.Equal(t, "Century Link Phone service", rec.Payee)
	assert.Equal(t, "", rec.Memo)
	assert.True(t, rec.Amount.Equal(decimal.RequireFromString("41.79")))
	assert.Equal(t, []string{"P.O. Box 2961", "Phoenix, AZ", "85062-2961"}, rec.Address)
}

func TestExtract_BlocksSplitPayeeAndMemo(t *testing.T) {
	lines := []string{
		"08/07/2025",
		"Very Long Vendor",
		"Name Continued",
		"Service memo text",
		"99.00",
	}

	records, err := Extract(lines)
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "Very Long Vendor Name Continued", records[0].Payee)
	assert.Equal(t, "Service memo text", records[0].Memo)
}

func TestExtract_NoRecords(t *testing.T) {
	lines := []string{"Printable Checks", reportHeader, "custom-report-view"}

	records, err := Extract(lines)
	assert.Nil(t, records)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoRecords)
}

func TestSplitPayeeMemo(t *testing.T) {
	tests := []struct {
		name  string
		pre   []string
		payee string
		memo  string
	}{
		{name: "empty", pre: nil, payee: "", memo: ""},
		{name: "single", pre: []string{"Acme"}, payee: "Acme", memo: ""},
		{name: "pair", pre: []string{"Acme", "Rent"}, payee: "Acme", memo: "Rent"},
		{name: "triple", pre: []string{"Acme", "Rent", "August"}, payee: "Acme", memo: "Rent August"},
		{
			name:  "four joins wrapped payee",
			pre:   []string{"Very Long", "Vendor Name", "Rent", "August"},
			payee: "Very Long Vendor Name",
			memo:  "Rent August",
		},
		{name: "five", pre: []string{"a", "b", "c", "d", "e"}, payee: "a b", memo: "c d e"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payee, memo := splitPayeeMemo(tt.pre)
			assert.Equal(t, tt.payee, payee)
			assert.Equal(t, tt.memo, memo)
		})
	}
}

func TestSplitPipeFields(t *testing.T) {
	assert.Equal(t, []string{"a", "b", ""}, splitPipeFields("a|b|"))
	assert.Equal(t, []string{"a", "b"}, splitPipeFields("a|b"))
	assert.Equal(t, []string{"a", "b", "c"}, splitPipeFields("a| b |c"))
	assert.Equal(t, []string{"a", "", ""}, splitPipeFields("a||"))
	assert.Equal(t, []string{"a", "", "b"}, splitPipeFields("a||b"))
	assert.Empty(t, splitPipeFields(""))
}

func TestParsePipePayload_NoAmountAnywhere(t *testing.T) {
	_, consumed, ok := parsePipePayload("Vendor|Memo|", []string{"no numbers here"})
	assert.False(t, ok)
	assert.Zero(t, consumed)
}
