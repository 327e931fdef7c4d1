package internal

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// xlsxColumns are the header cells of the expense workbook layout, in export order
var xlsxColumns = []string{"Date", "Description", "Category", "Amount"}

// ParseExpenseXLSX reads expenses from the first sheet of a workbook. The
// header row is located by its Date, Description, Category and Amount cells
// (case-insensitive, any order). Rows with an empty date and amount are
// skipped; any other unparseable row fails the import.
func ParseExpenseXLSX(path string) ([]Expense, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in file")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet: %w", err)
	}

	cols := map[string]int{}
	dataStartRow := -1
	for i, row := range rows {
		found := map[string]int{}
		for j, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			for _, col := range xlsxColumns {
				if name == strings.ToLower(col) {
					found[col] = j
				}
			}
		}
		if len(found) == len(xlsxColumns) {
			cols = found
			dataStartRow = i + 1
			break
		}
	}
	if dataStartRow < 0 {
		return nil, fmt.Errorf("could not find required columns (%s)", strings.Join(xlsxColumns, ", "))
	}

	cell := func(row []string, col string) string {
		idx := cols[col]
		if idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var expenses []Expense
	for i := dataStartRow; i < len(rows); i++ {
		row := rows[i]
		dateStr := cell(row, "Date")
		amountStr := cell(row, "Amount")
		if dateStr == "" && amountStr == "" {
			continue
		}

		date, err := ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing date %q: %w", i+1, dateStr, err)
		}
		amount, err := ParseAmount(strings.ReplaceAll(amountStr, ",", "."))
		if err != nil {
			return nil, fmt.Errorf("row %d: amount %q: %w", i+1, amountStr, err)
		}

		expenses = append(expenses, Expense{
			Amount:      amount,
			Description: cell(row, "Description"),
			Category:    cell(row, "Category"),
			Date:        date,
		})
	}

	return expenses, nil
}
