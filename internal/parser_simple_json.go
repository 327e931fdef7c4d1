package internal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// SimpleJSONFormat is a minimal JSON format for importing expenses
// Example:
//
//	{
//	  "expenses": [
//	    {"date": "2025-01-15", "description": "lunch", "category": "food", "amount": 12.50},
//	    {"date": "2025-01-16", "description": "train", "category": "travel", "amount": 4.20}
//	  ]
//	}
//
// A bare array in the expense file layout is accepted as well, so one
// tracker's data file can be imported into another.
type SimpleJSONFormat struct {
	Expenses []SimpleJSONExpense `json:"expenses"`
}

type SimpleJSONExpense struct {
	Date        string      `json:"date"` // YYYY-MM-DD format
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Amount      json.Number `json:"amount"`
}

// ParseSimpleJSON parses a JSON file in the simple JSON format
func ParseSimpleJSON(path string) ([]Expense, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		return decodeExpenses(trimmed)
	}

	var jsonData SimpleJSONFormat
	if err := json.Unmarshal(data, &jsonData); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	var expenses []Expense
	for i, item := range jsonData.Expenses {
		date, err := ParseDate(item.Date)
		if err != nil {
			return nil, fmt.Errorf("expense %d: parsing date %q: %w", i+1, item.Date, err)
		}
		amount, err := ParseAmount(item.Amount.String())
		if err != nil {
			return nil, fmt.Errorf("expense %d: amount %q: %w", i+1, item.Amount.String(), err)
		}
		expenses = append(expenses, Expense{
			Amount:      amount,
			Description: item.Description,
			Category:    item.Category,
			Date:        date,
		})
	}

	return expenses, nil
}
