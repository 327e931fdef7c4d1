package internal

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// ListOptions controls how a list of expenses is displayed
type ListOptions struct {
	Title        string
	Style        string
	HideCategory bool // category filter results already share one category
	Currency     Currency
}

// JSONOutput is the root JSON output object
type JSONOutput struct {
	Title    string        `json:"title,omitempty"`
	Count    int           `json:"count"`
	Expenses []JSONExpense `json:"expenses"`
}

type JSONExpense struct {
	Amount      json.Number `json:"amount"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Date        string      `json:"date"`
}

// FormatExpenseLine renders one expense as a 1-based numbered line with the
// amount fixed to two decimals
func FormatExpenseLine(index int, e Expense, hideCategory bool) string {
	if hideCategory {
		return fmt.Sprintf("%d. Amount: %s, Description: %s, Date: %s",
			index, e.Amount.StringFixed(2), e.Description, e.DateString())
	}
	return fmt.Sprintf("%d. Amount: %s, Description: %s, Category: %s, Date: %s",
		index, e.Amount.StringFixed(2), e.Description, e.Category, e.DateString())
}

// PrintExpenses writes expenses in the requested style
func PrintExpenses(w io.Writer, expenses []Expense, opts ListOptions) {
	switch opts.Style {
	case ViewTable:
		PrintExpensesTable(w, expenses, opts)
	case ViewJSON:
		PrintExpensesJSON(w, expenses, opts.Title)
	default:
		PrintExpensesPlain(w, expenses, opts)
	}
}

func PrintExpensesPlain(w io.Writer, expenses []Expense, opts ListOptions) {
	header := fmt.Sprintf("--- %s ---", opts.Title)
	fmt.Fprintf(w, "\n%s\n", header)
	for i, e := range expenses {
		fmt.Fprintln(w, FormatExpenseLine(i+1, e, opts.HideCategory))
	}
	fmt.Fprintln(w, strings.Repeat("-", len(header)))
}

// PrintExpensesJSON outputs expenses in JSON format
func PrintExpensesJSON(w io.Writer, expenses []Expense, title string) {
	out := JSONOutput{
		Title:    title,
		Count:    len(expenses),
		Expenses: make([]JSONExpense, 0, len(expenses)),
	}
	for _, e := range expenses {
		out.Expenses = append(out.Expenses, JSONExpense{
			Amount:      json.Number(e.Amount.StringFixed(2)),
			Description: e.Description,
			Category:    e.Category,
			Date:        e.DateString(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(out)
}

// PrintExpensesTable outputs expenses as a formatted table
func PrintExpensesTable(w io.Writer, expenses []Expense, opts ListOptions) {
	if opts.Title != "" {
		fmt.Fprintf(w, "\n%s\n", text.Bold.Sprint(opts.Title))
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)

	header := table.Row{"#", "Date"}
	if !opts.HideCategory {
		header = append(header, "Category")
	}
	header = append(header, "Description", "Amount")
	t.AppendHeader(header)

	for i, e := range expenses {
		row := table.Row{i + 1, e.DateString()}
		if !opts.HideCategory {
			row = append(row, e.Category)
		}
		row = append(row, e.Description, opts.Currency.Format(e.Amount))
		t.AppendRow(row)
	}

	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: len(header), Align: text.AlignRight},
	})
	t.Render()
}
