package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pmantos/managerio-check-print/internal/config"
)

func TestResolveLayout_DefaultStock(t *testing.T) {
	l := ResolveLayout(config.Default().Layout)

	assert.Equal(t, 80, l.Columns)
	assert.Equal(t, 54, l.Lines)

	// Design coordinates come back zero-based.
	assert.Equal(t, 5, l.DateRow)
	assert.Equal(t, 49, l.DateCol)
	assert.Equal(t, 5, l.PayeeRow)
	assert.Equal(t, 8, l.PayeeCol)
	assert.Equal(t, 6, l.AmountRow)
	assert.Equal(t, 73, l.AmountRightCol)
	assert.Equal(t, 8, l.WordsRow)
	assert.Equal(t, 6, l.WordsCol)
	assert.Equal(t, 11, l.AddrRow)
	assert.Equal(t, 5, l.AddrCol)
	assert.Equal(t, 4, l.AddrMaxLines)
	assert.Equal(t, 16, l.MemoRow)
	assert.Equal(t, 6, l.MemoCol)

	// Stub rows map through the margins at 10 CPI / 6 LPI.
	assert.Equal(t, 24, l.Stub1Row)
	assert.Equal(t, 45, l.Stub2Row)
	assert.Equal(t, 7, l.StubLabelCol)
	assert.Equal(t, 17, l.StubValueCol)
}

func TestResolveLayout_CustomPitch(t *testing.T) {
	lc := config.LayoutConfig{
		Page: config.PageLayout{Columns: 96, Lines: 64, CPI: 12, LPI: 8},
		Stub: config.StubLayout{
			HeightInches:      2.5,
			LabelIndentInches: 0.25,
			ValueIndentInches: 1.0,
		},
	}

	l := ResolveLayout(lc)
	assert.Equal(t, 96, l.Columns)
	assert.Equal(t, 20, l.Stub1Row)
	assert.Equal(t, 40, l.Stub2Row)
	assert.Equal(t, 3, l.StubLabelCol)
	assert.Equal(t, 12, l.StubValueCol)
}

func TestDesign(t *testing.T) {
	assert.Equal(t, 0, design(0))
	assert.Equal(t, 0, design(1))
	assert.Equal(t, 0, design(-2))
	assert.Equal(t, 4, design(5))
}
