// =============================================================================
// Manager.io Check Printer - Page Rendering
// =============================================================================
//
// Rendering models the physical page as a fixed character grid (80 columns
// by 54 lines at 10 CPI / 6 LPI on US Letter) because the target is tractor
// or sheet-fed pre-printed check stock driven as a dumb text device. Text is
// placed at absolute coordinates; anything past the right edge is cut, never
// wrapped, since a wrapped line would land on the wrong pre-printed field.
//
// The stock is the QuickBooks-style voucher format: the check face in the
// top 3.5 inches, then two identical tear-off stubs of 3.5 inches each.
//
// =============================================================================

package render

import (
	"strings"
	"unicode/utf8"

	"github.com/pmantos/managerio-check-print/internal/report"
)

// =============================================================================
// PAGE GRID
// =============================================================================

// Page is a mutable character grid. Lines are kept ragged while fields are
// placed and squared off by Finalize.
type Page struct {
	width int
	lines [][]rune
}

// NewPage returns an empty grid of lineCount rows and width columns.
func NewPage(lineCount, width int) *Page {
	return &Page{
		width: width,
		lines: make([][]rune, lineCount),
	}
}

// Put writes text starting at (row, col), both zero-based. Rows outside the
// page are ignored; text runs off the right edge are cut at the page width.
// Put never wraps and never fails.
func (p *Page) Put(row, col int, text string) {
	if row < 0 || row >= len(p.lines) {
		return
	}
	if col < 0 {
		col = 0
	}

	line := p.lines[row]
	for len(line) < col {
		line = append(line, ' ')
	}

	pos := col
	for _, r := range text {
		if pos >= p.width {
			break
		}
		if pos < len(line) {
			line[pos] = r
		} else {
			line = append(line, r)
		}
		pos++
	}
	p.lines[row] = line
}

// PutRight places text so its last character lands in the given 1-based
// design column. Text wider than the space before that column keeps its
// tail cut by the page edge rather than shifting the alignment column.
func (p *Page) PutRight(row, rightCol int, text string) {
	right := rightCol - 1
	if right < 0 {
		right = 0
	}
	start := right - utf8.RuneCountInString(text) + 1
	if start < 0 {
		start = 0
	}
	p.Put(row, start, text)
}

// Finalize squares the grid off: every line is truncated or padded to
// exactly the page width, then trailing all-blank lines are dropped.
func (p *Page) Finalize() []string {
	out := make([]string, len(p.lines))
	for i, ln := range p.lines {
		if len(ln) > p.width {
			ln = ln[:p.width]
		}
		s := string(ln)
		if pad := p.width - len(ln); pad > 0 {
			s += strings.Repeat(" ", pad)
		}
		out[i] = s
	}
	return trimTrailingBlank(out)
}

func trimTrailingBlank(lines []string) []string {
	end := len(lines)
	for end > 0 && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[:end]
}

// =============================================================================
// RECORD RENDERING
// =============================================================================

// RenderRecord lays one payment record onto a check page: the check face
// (date, payee, numeric amount right-aligned over the pre-printed dollar
// box, legal amount words, address for the envelope window, memo), then the
// same payee/date/amount/memo summary on both stubs.
//
// Payee, memo and address text is sanitized first (typographic punctuation
// to its plain form); accented characters pass through untouched and are
// only folded later if the device encoding cannot carry them. The amount
// always renders unsigned.
func RenderRecord(rec report.PaymentRecord, layout Layout) []string {
	page := NewPage(layout.Lines, layout.Columns)

	payee := Sanitize(rec.Payee)
	memo := Sanitize(rec.Memo)

	amount := rec.Amount.Abs()
	numeric := amount.StringFixed(2)

	page.Put(layout.DateRow, layout.DateCol, rec.Date)
	page.PutRight(layout.AmountRow, layout.AmountRightCol, numeric)
	page.Put(layout.PayeeRow, layout.PayeeCol, payee)
	page.Put(layout.WordsRow, layout.WordsCol, MoneyWords(amount))

	row := layout.AddrRow
	remaining := layout.AddrMaxLines
	for _, ln := range rec.Address {
		if remaining <= 0 {
			break
		}
		page.Put(row, layout.AddrCol, Sanitize(ln))
		row++
		remaining--
	}

	page.Put(layout.MemoRow, layout.MemoCol, memo)

	for _, stubRow := range []int{layout.Stub1Row, layout.Stub2Row} {
		page.Put(stubRow, layout.StubLabelCol, "Payee:")
		page.Put(stubRow, layout.StubValueCol, payee)
		page.Put(stubRow+1, layout.StubLabelCol, "Date:")
		page.Put(stubRow+1, layout.StubValueCol, rec.Date)
		page.Put(stubRow+2, layout.StubLabelCol, "Amount:")
		page.Put(stubRow+2, layout.StubValueCol, "$"+numeric)
		page.Put(stubRow+3, layout.StubLabelCol, "Memo:")
		page.Put(stubRow+3, layout.StubValueCol, memo)
	}

	return page.Finalize()
}

// RenderAll renders every record to its own page.
func RenderAll(records []report.PaymentRecord, layout Layout) [][]string {
	pages := make([][]string, 0, len(records))
	for _, rec := range records {
		pages = append(pages, RenderRecord(rec, layout))
	}
	return pages
}

// =============================================================================
// PREVIEW SERIALIZATION
// =============================================================================

// PreviewText joins pages into the on-disk preview format: every line
// newline-terminated, trailing blank lines dropped per page, pages
// separated by a form feed (none after the last page). The preview is plain
// UTF-8 for reading in an editor; the printer-facing format lives in the
// escp package.
func PreviewText(pages [][]string) string {
	var b strings.Builder
	for i, page := range pages {
		if i > 0 {
			b.WriteString("\f")
		}
		for _, ln := range trimTrailingBlank(page) {
			b.WriteString(ln)
			b.WriteString("\n")
		}
	}
	return b.String()
}
