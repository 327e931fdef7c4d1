package internal

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Menu is the interactive five-option loop over a Store
type Menu struct {
	store *Store
	in    *bufio.Reader
	out   io.Writer
	opts  ListOptions
	err   error
}

// NewMenu creates a menu reading answers from in and writing to out.
// opts.Style and opts.Currency control how lists are rendered.
func NewMenu(store *Store, in io.Reader, out io.Writer, opts ListOptions) *Menu {
	return &Menu{
		store: store,
		in:    bufio.NewReader(in),
		out:   out,
		opts:  opts,
	}
}

// Run shows the menu until Exit is chosen or input ends
func (m *Menu) Run() error {
	for {
		fmt.Fprintln(m.out, "\nExpense Tracker Menu:")
		fmt.Fprintln(m.out, "1. Add Expense")
		fmt.Fprintln(m.out, "2. View All Expenses")
		fmt.Fprintln(m.out, "3. Filter by Category")
		fmt.Fprintln(m.out, "4. Filter by Date Range")
		fmt.Fprintln(m.out, "5. Exit")

		choice, ok := m.prompt("Enter your choice: ")
		if !ok {
			fmt.Fprintln(m.out)
			return m.err
		}

		switch strings.TrimSpace(choice) {
		case "1":
			if !m.addExpense() {
				return m.err
			}
		case "2":
			PrintAll(m.out, m.store.Records(), m.opts)
		case "3":
			category, ok := m.prompt("Enter the category to filter by: ")
			if !ok {
				return m.err
			}
			PrintCategory(m.out, m.store.Records(), category, m.opts)
		case "4":
			start, ok := m.prompt("Enter the start date (YYYY-MM-DD): ")
			if !ok {
				return m.err
			}
			end, ok := m.prompt("Enter the end date (YYYY-MM-DD): ")
			if !ok {
				return m.err
			}
			PrintDateRange(m.out, m.store.Records(), start, end, m.opts)
		case "5":
			fmt.Fprintln(m.out, "Exiting the Expense Tracker. Goodbye!")
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid choice. Please try again.")
		}
	}
}

// prompt prints label and reads one line of any length. ok is false once
// input is exhausted; a final line without a newline still counts.
func (m *Menu) prompt(label string) (string, bool) {
	fmt.Fprint(m.out, label)
	line, err := m.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			m.err = errors.Wrap(err, "reading input")
			return "", false
		}
		if line == "" {
			return "", false
		}
	}
	return strings.TrimRight(line, "\r\n"), true
}

// addExpense returns false only when input ended mid-dialog
func (m *Menu) addExpense() bool {
	amountStr, ok := m.prompt("Enter the expense amount: ")
	if !ok {
		return false
	}
	amount, err := ParseAmount(amountStr)
	switch {
	case errors.Is(err, ErrNonPositiveAmount):
		fmt.Fprintln(m.out, "Amount must be greater than zero.")
		return true
	case err != nil:
		fmt.Fprintln(m.out, "Invalid amount. Please enter a number.")
		return true
	}

	description, ok := m.prompt("Enter a brief description: ")
	if !ok {
		return false
	}
	category, ok := m.prompt("Enter the category (e.g., food, travel, bills): ")
	if !ok {
		return false
	}
	date, ok := m.prompt("Enter the date (YYYY-MM-DD, leave blank for today): ")
	if !ok {
		return false
	}

	result, err := m.store.Add(amount, description, category, date)
	if err != nil {
		fmt.Fprintf(m.out, "Error saving expense: %v\n", err)
		return true
	}
	if result.DateFallback {
		fmt.Fprintln(m.out, "Invalid date format. Using today's date.")
	}
	fmt.Fprintln(m.out, "Expense added successfully!")
	return true
}

// PrintAll lists every expense, or reports that none are recorded
func PrintAll(w io.Writer, records []Expense, opts ListOptions) {
	all := ListAll(records)
	if len(all) == 0 {
		fmt.Fprintln(w, "No expenses recorded yet.")
		return
	}
	opts.Title = "All Expenses"
	PrintExpenses(w, all, opts)
}

// PrintCategory lists expenses in one category, matched case-insensitively
func PrintCategory(w io.Writer, records []Expense, category string, opts ListOptions) {
	matched := FilterByCategory(records, category)
	if len(matched) == 0 {
		fmt.Fprintf(w, "No expenses found in the category '%s'.\n", category)
		return
	}
	opts.Title = fmt.Sprintf("Expenses in '%s'", category)
	opts.HideCategory = true
	PrintExpenses(w, matched, opts)
}

// PrintDateRange lists expenses between two inclusive dates. It returns
// ErrInvalidDate (after telling the user) when either bound is unparseable.
func PrintDateRange(w io.Writer, records []Expense, start, end string, opts ListOptions) error {
	matched, err := FilterByDateRange(records, start, end)
	if err != nil {
		fmt.Fprintln(w, "Invalid date format.")
		return err
	}
	if len(matched) == 0 {
		fmt.Fprintf(w, "No expenses found between %s and %s.\n", start, end)
		return nil
	}
	opts.Title = fmt.Sprintf("Expenses between %s and %s", start, end)
	PrintExpenses(w, matched, opts)
	return nil
}
