package internal

import (
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// DateLayout is the ISO 8601 calendar date format used on disk and in prompts
const DateLayout = "2006-01-02"

var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrNonPositiveAmount = errors.New("amount must be greater than zero")
	ErrInvalidDate       = errors.New("invalid date format")
	ErrCorruptStore      = errors.New("corrupt expense store")
)

// Expense is one recorded spending event. Values are never mutated after creation.
type Expense struct {
	Amount      decimal.Decimal
	Description string
	Category    string
	Date        time.Time // midnight UTC, no time component
}

// DateString returns the date in YYYY-MM-DD form
func (e Expense) DateString() string {
	return e.Date.Format(DateLayout)
}

// Equal compares field by field, treating 12.5 and 12.50 as the same amount
func (e Expense) Equal(other Expense) bool {
	return e.Amount.Equal(other.Amount) &&
		e.Description == other.Description &&
		e.Category == other.Category &&
		e.Date.Equal(other.Date)
}

// inputDateLayout accepts YYYY-MM-DD with or without zero padding
const inputDateLayout = "2006-1-2"

// ParseDate parses a YYYY-MM-DD calendar date. Month and day may omit their
// leading zero ("2024-3-1"); surrounding whitespace is rejected.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(inputDateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// truncateToDay drops the time component and location of t
func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
