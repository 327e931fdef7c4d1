package internal

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Expenses"

// Export writes expenses to path. A .xlsx extension produces a workbook in the
// layout ParseExpenseXLSX reads; anything else gets the expense file JSON layout.
func Export(path string, expenses []Expense) error {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return ExportXLSX(path, expenses)
	}
	return writeExpensesFile(path, expenses)
}

// ExportXLSX writes one header row followed by one row per expense
func ExportXLSX(path string, expenses []Expense) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]interface{}, len(xlsxColumns))
	for i, col := range xlsxColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, e := range expenses {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
		row := []interface{}{e.DateString(), e.Description, e.Category, e.Amount.InexactFloat64()}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2}) // 0.00
	if err != nil {
		return fmt.Errorf("creating amount style: %w", err)
	}
	if err := f.SetColStyle(exportSheet, "D", amountStyle); err != nil {
		return fmt.Errorf("styling amount column: %w", err)
	}
	if err := f.SetColWidth(exportSheet, "A", "D", 16); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}
