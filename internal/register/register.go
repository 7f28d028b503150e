// =============================================================================
// Manager.io Check Printer - Check Register Export
// =============================================================================
//
// This module writes the parsed payment records to an XLSX check register,
// one row per check, so a printed batch can be reconciled in a spreadsheet.
// The register carries:
//   - Date, payee, memo and amount for every record. Amounts keep the sign
//     they had in the report: a refund prints as a positive check but shows
//     up negative in the register.
//   - The payee address flattened to a single cell.
//   - A totals row summing the amount column.
//
// =============================================================================

package register

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/pmantos/managerio-check-print/internal/report"
)

// registerSheet is the sheet the register is written to.
const registerSheet = "Check Register"

// =============================================================================
// COLUMN LAYOUT
// =============================================================================

// registerColumns defines the column order, headers and widths.
var registerColumns = []struct {
	Header string
	Width  float64
}{
	{"Date", 12},
	{"Payee", 32},
	{"Memo", 40},
	{"Amount", 14},
	{"Address", 48},
}

const amountColumn = 4

// =============================================================================
// EXPORT
// =============================================================================

// Write exports the records to an XLSX check register.
//
// PARAMETERS:
//   - path: The output file path (.xlsx).
//   - records: The payment records, in print order.
//
// RETURNS:
//   - An error if the workbook cannot be built or saved.
func Write(path string, records []report.PaymentRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", registerSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	// Built-in number format 4 is "#,##0.00".
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return fmt.Errorf("failed to create amount style: %w", err)
	}

	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		NumFmt: 4,
	})
	if err != nil {
		return fmt.Errorf("failed to create total style: %w", err)
	}

	// Header row.
	for i, col := range registerColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(registerSheet, cell, col.Header)

		name, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(registerSheet, name, name, col.Width)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(registerColumns), 1)
	f.SetCellStyle(registerSheet, "A1", lastHeader, headerStyle)

	// Data rows.
	total := decimal.Zero
	for i, rec := range records {
		row := i + 2
		setCell := func(col int, value interface{}) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			f.SetCellValue(registerSheet, cell, value)
		}

		setCell(1, rec.Date)
		setCell(2, rec.Payee)
		setCell(3, rec.Memo)
		setCell(amountColumn, rec.Amount.InexactFloat64())
		setCell(5, strings.Join(rec.Address, ", "))

		total = total.Add(rec.Amount)
	}

	if len(records) > 0 {
		firstAmount, _ := excelize.CoordinatesToCellName(amountColumn, 2)
		lastAmount, _ := excelize.CoordinatesToCellName(amountColumn, len(records)+1)
		f.SetCellStyle(registerSheet, firstAmount, lastAmount, amountStyle)
	}

	// Totals row.
	totalRow := len(records) + 2
	labelCell, _ := excelize.CoordinatesToCellName(amountColumn-1, totalRow)
	f.SetCellValue(registerSheet, labelCell, "Total")
	f.SetCellStyle(registerSheet, labelCell, labelCell, headerStyle)

	totalCell, _ := excelize.CoordinatesToCellName(amountColumn, totalRow)
	f.SetCellValue(registerSheet, totalCell, total.InexactFloat64())
	f.SetCellStyle(registerSheet, totalCell, totalCell, totalStyle)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save register: %w", err)
	}

	return nil
}
