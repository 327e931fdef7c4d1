package internal

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportXLSX_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.xlsx")
	want := sampleExpenses()

	require.NoError(t, Export(path, want))

	got, err := ParseExpenseXLSX(path)
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, want[i].Equal(got[i]), "row %d: want %+v, got %+v", i, want[i], got[i])
	}
}

func TestExportJSON_LoadsAsStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")
	want := sampleExpenses()

	require.NoError(t, Export(path, want))

	store, err := LoadStore(path)
	require.NoError(t, err)
	assert.Equal(t, descriptions(want), descriptions(store.Records()))
}

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}
	path := filepath.Join(t.TempDir(), "import.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestParseExpenseXLSX_HeaderAnywhere(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"Exported from bank"},
		{},
		{"amount", "category", "DATE", "description"},
		{"12,50", "food", "2024-03-01", "lunch"},
		{"", "", "", ""},
		{"3", "travel", "2024-03-02", "bus"},
	})

	got, err := ParseExpenseXLSX(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"lunch", "bus"}, descriptions(got))
	assert.True(t, got[0].Amount.Equal(amount("12.5")))
}

func TestParseExpenseXLSX_Errors(t *testing.T) {
	tests := []struct {
		name    string
		rows    [][]interface{}
		errText string
	}{
		{
			name:    "missing columns",
			rows:    [][]interface{}{{"Date", "Amount"}, {"2024-01-01", "1"}},
			errText: "could not find required columns",
		},
		{
			name:    "bad date",
			rows:    [][]interface{}{{"Date", "Description", "Category", "Amount"}, {"01/02/2024", "x", "y", "1"}},
			errText: "row 2: parsing date",
		},
		{
			name:    "negative amount",
			rows:    [][]interface{}{{"Date", "Description", "Category", "Amount"}, {"2024-01-02", "x", "y", "-1"}},
			errText: "row 2: amount",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseExpenseXLSX(writeWorkbook(t, tt.rows))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}
