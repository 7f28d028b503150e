// =============================================================================
// Manager.io Check Printer - Layout Resolution
// =============================================================================
//
// Check-stock geometry is configuration data, not code: the YAML layout
// section describes the stock in the coordinates printed on its packing
// sheet (1-based rows/columns for the check face, inches for the stub
// positions) and this file resolves it once into the zero-based grid
// coordinates the renderer uses. Swapping stock means editing YAML, not
// rebuilding.
//
// =============================================================================

package render

import (
	"math"

	"github.com/pmantos/managerio-check-print/internal/config"
)

// Layout holds resolved zero-based placement coordinates for one page.
// AmountRightCol is the exception: it stays 1-based because it names the
// design column the amount's last digit occupies (see Page.PutRight).
type Layout struct {
	Columns int
	Lines   int

	DateRow  int
	DateCol  int
	PayeeRow int
	PayeeCol int

	AmountRow      int
	AmountRightCol int

	WordsRow int
	WordsCol int

	AddrRow      int
	AddrCol      int
	AddrMaxLines int

	MemoRow int
	MemoCol int

	Stub1Row     int
	Stub2Row     int
	StubLabelCol int
	StubValueCol int
}

// ResolveLayout converts the configured stock description into grid
// coordinates. Check-face positions are 1-based design coordinates; stub
// positions are inches from the page origin, mapped through the character
// pitch and the unprintable margins. The second stub sits one stub height
// below the first.
func ResolveLayout(lc config.LayoutConfig) Layout {
	colAt := func(inches float64) int {
		return int(math.Round((lc.Margins.LeftInches + inches) * lc.Page.CPI))
	}
	rowAt := func(inches float64) int {
		return int(math.Round((lc.Margins.TopInches + inches) * lc.Page.LPI))
	}

	return Layout{
		Columns: lc.Page.Columns,
		Lines:   lc.Page.Lines,

		DateRow:  design(lc.Check.DateRow),
		DateCol:  design(lc.Check.DateCol),
		PayeeRow: design(lc.Check.PayeeRow),
		PayeeCol: design(lc.Check.PayeeCol),

		AmountRow:      design(lc.Check.AmountRow),
		AmountRightCol: lc.Check.AmountRightCol,

		WordsRow: design(lc.Check.WordsRow),
		WordsCol: design(lc.Check.WordsCol),

		AddrRow:      design(lc.Check.AddressRow),
		AddrCol:      design(lc.Check.AddressCol),
		AddrMaxLines: lc.Check.AddressMaxLines,

		MemoRow: design(lc.Check.MemoRow),
		MemoCol: design(lc.Check.MemoCol),

		Stub1Row:     rowAt(lc.Stub.HeightInches),
		Stub2Row:     rowAt(2 * lc.Stub.HeightInches),
		StubLabelCol: colAt(lc.Stub.LabelIndentInches),
		StubValueCol: colAt(lc.Stub.ValueIndentInches),
	}
}

// design converts a 1-based design coordinate to zero-based, clamping at
// the page origin.
func design(n int) int {
	if n <= 1 {
		return 0
	}
	return n - 1
}
