package internal

import (
	"strings"
	"time"

	"github.com/jinzhu/now"
	"github.com/pkg/errors"
)

// ListAll returns every expense in insertion order. An empty result means no
// expenses have been recorded at all.
func ListAll(records []Expense) []Expense {
	out := make([]Expense, len(records))
	copy(out, records)
	return out
}

// FilterByCategory returns expenses whose category matches case-insensitively
func FilterByCategory(records []Expense, category string) []Expense {
	var result []Expense
	for _, e := range records {
		if strings.EqualFold(e.Category, category) {
			result = append(result, e)
		}
	}
	return result
}

// FilterByDateRange returns expenses dated within [start, end], both inclusive.
// Unparseable bounds return ErrInvalidDate. An inverted range matches nothing.
func FilterByDateRange(records []Expense, start, end string) ([]Expense, error) {
	from, err := ParseDate(start)
	if err != nil {
		return nil, errors.Wrapf(err, "start date %q", start)
	}
	to, err := ParseDate(end)
	if err != nil {
		return nil, errors.Wrapf(err, "end date %q", end)
	}
	return filterBetween(records, from, to), nil
}

func filterBetween(records []Expense, from, to time.Time) []Expense {
	var result []Expense
	if to.Before(from) {
		return result
	}
	for _, e := range records {
		if !e.Date.Before(from) && !e.Date.After(to) {
			result = append(result, e)
		}
	}
	return result
}

// MonthRange returns the first and last day of a YYYY-MM month as dates
func MonthRange(month string) (start, end string, err error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(month))
	if err != nil {
		return "", "", errors.Wrapf(ErrInvalidDate, "month %q", month)
	}
	n := now.With(t)
	return n.BeginningOfMonth().Format(DateLayout), n.EndOfMonth().Format(DateLayout), nil
}
