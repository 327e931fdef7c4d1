package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gigurra/expense-tracker/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI runs the command against a fresh data file with an empty config so
// the user's own config cannot interfere
func runCLI(t *testing.T, params Params, stdin string) (string, error) {
	t.Helper()

	tmpDir := t.TempDir()
	if params.Config == "" {
		params.Config = filepath.Join(tmpDir, "config.yaml")
	}
	if params.File == "" {
		params.File = filepath.Join(tmpDir, "expenses.json")
	}

	var out bytes.Buffer
	err := run(&params, strings.NewReader(stdin), &out)
	return out.String(), err
}

func seedDataFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "expenses.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const seedExpenses = `[
    {"amount": 300, "description": "flight", "category": "Travel", "date": "2024-01-15"},
    {"amount": 20, "description": "taxi", "category": "travel", "date": "2024-02-01"},
    {"amount": 12.5, "description": "lunch", "category": "food", "date": "2024-02-29"}
]`

func TestCLI_InteractiveSession(t *testing.T) {
	dataFile := filepath.Join(t.TempDir(), "expenses.json")

	out, err := runCLI(t, Params{File: dataFile}, "1\n12.50\nlunch\nfood\n2024-03-01\n2\n5\n")
	require.NoError(t, err)
	assert.Contains(t, out, "1. Amount: 12.50, Description: lunch, Category: food, Date: 2024-03-01")

	data, err := os.ReadFile(dataFile)
	require.NoError(t, err)
	var raw []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Len(t, raw, 1)
}

func TestCLI_MissingDataFileStartsEmpty(t *testing.T) {
	out, err := runCLI(t, Params{}, "2\n5\n")
	require.NoError(t, err)
	assert.Contains(t, out, "No expenses recorded yet.")
}

func TestCLI_CorruptDataFileIsFatal(t *testing.T) {
	dataFile := seedDataFile(t, `[{"amount": "oops"`)

	_, err := runCLI(t, Params{File: dataFile}, "5\n")
	require.Error(t, err)
	assert.ErrorIs(t, err, internal.ErrCorruptStore)

	data, readErr := os.ReadFile(dataFile)
	require.NoError(t, readErr)
	assert.Equal(t, `[{"amount": "oops"`, string(data), "a corrupt file must not be rewritten")
}

func TestCLI_CategoryQuery(t *testing.T) {
	out, err := runCLI(t, Params{File: seedDataFile(t, seedExpenses), Category: "TRAVEL"}, "")
	require.NoError(t, err)
	assert.Contains(t, out, "1. Amount: 300.00, Description: flight, Date: 2024-01-15")
	assert.Contains(t, out, "2. Amount: 20.00, Description: taxi, Date: 2024-02-01")
	assert.NotContains(t, out, "lunch")
}

func TestCLI_DateRangeQuery(t *testing.T) {
	out, err := runCLI(t, Params{File: seedDataFile(t, seedExpenses), From: "2024-01-01", To: "2024-01-31"}, "")
	require.NoError(t, err)
	assert.Contains(t, out, "flight")
	assert.NotContains(t, out, "taxi")

	_, err = runCLI(t, Params{File: seedDataFile(t, seedExpenses), From: "2024-01-01", To: "bad"}, "")
	assert.ErrorIs(t, err, internal.ErrInvalidDate)
}

func TestCLI_MonthQuery(t *testing.T) {
	out, err := runCLI(t, Params{File: seedDataFile(t, seedExpenses), Month: "2024-02", View: "json"}, "")
	require.NoError(t, err)

	var result internal.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, "taxi", result.Expenses[0].Description)
	assert.Equal(t, "lunch", result.Expenses[1].Description)
}

func TestCLI_ConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	dataFile := filepath.Join(tmpDir, "from-config.json")
	require.NoError(t, os.WriteFile(dataFile, []byte(seedExpenses), 0644))

	cfg := &internal.Config{DataFile: dataFile, View: internal.ViewTable, Currency: "USD"}
	configPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, cfg.Save(configPath))

	var out bytes.Buffer
	err := run(&Params{Config: configPath}, strings.NewReader("2\n5\n"), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "$300.00")
}

func TestCLI_InvalidViewFlag(t *testing.T) {
	_, err := runCLI(t, Params{View: "fancy"}, "5\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid view 'fancy'")
}

func TestCLI_ExportImportRoundTrip(t *testing.T) {
	source := seedDataFile(t, seedExpenses)
	workbook := filepath.Join(t.TempDir(), "expenses.xlsx")

	out, err := runCLI(t, Params{File: source, Export: workbook}, "")
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 3 expenses")

	target := filepath.Join(t.TempDir(), "copy.json")
	out, err = runCLI(t, Params{File: target, Import: workbook}, "")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 3 expenses")

	original, err := internal.LoadStore(source)
	require.NoError(t, err)
	copied, err := internal.LoadStore(target)
	require.NoError(t, err)

	want, got := original.Records(), copied.Records()
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, want[i].Equal(got[i]), "record %d differs: %+v vs %+v", i, want[i], got[i])
	}
}
