// =============================================================================
// Manager.io Check Printer - Calibration Page
// =============================================================================

package render

import (
	"fmt"
	"strings"
)

// CalibrationPage builds a full-page alignment ruler: the first row counts
// columns by their last digit (1234567890...), every following row starts
// with its two-digit row number and repeats the column ruler after it.
// Print it on plain paper, hold it over the check stock against a light,
// and read the row/column for each field straight off the page.
func CalibrationPage(layout Layout) []string {
	var header strings.Builder
	for i := 1; i <= layout.Columns; i++ {
		header.WriteByte(byte('0' + i%10))
	}

	rows := make([]string, 0, layout.Lines)
	rows = append(rows, header.String())
	for r := 2; r <= layout.Lines; r++ {
		line := fmt.Sprintf("%02d", r) + header.String()[2:]
		if len(line) > layout.Columns {
			line = line[:layout.Columns]
		}
		rows = append(rows, line)
	}
	return rows
}
