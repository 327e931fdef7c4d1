package internal

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultDataFile is the expense file used when neither config nor flags name one
const DefaultDataFile = "expenses.json"

// Store owns the ordered, append-only expense sequence and its backing JSON file
type Store struct {
	path    string
	records []Expense
	now     func() time.Time
	log     *zap.Logger
}

type StoreOption func(*Store)

// WithClock overrides the time source used for date defaulting
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

func WithLogger(log *zap.Logger) StoreOption {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// AddResult describes a successful add. DateFallback is set when the supplied
// date could not be parsed and today's date was used instead.
type AddResult struct {
	Expense      Expense
	DateFallback bool
}

// storedExpense is the on-disk shape. Pointer fields let the loader tell a
// missing field apart from a zero value.
type storedExpense struct {
	Amount      *json.Number `json:"amount"`
	Description *string      `json:"description"`
	Category    *string      `json:"category"`
	Date        *string      `json:"date"`
}

// LoadStore reads the expense file at path. A missing file yields an empty
// store. Malformed content yields an error wrapping ErrCorruptStore.
func LoadStore(path string, opts ...StoreOption) (*Store, error) {
	s := &Store{
		path: path,
		now:  time.Now,
		log:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.log.Debug("expense file not found, starting empty", zap.String("path", path))
			return s, nil
		}
		return nil, errors.Wrap(err, "reading expense file")
	}

	records, err := decodeExpenses(data)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	s.records = records
	s.log.Debug("loaded expenses", zap.String("path", path), zap.Int("count", len(records)))
	return s, nil
}

func decodeExpenses(data []byte) ([]Expense, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] != '[' {
		return nil, errors.Wrap(ErrCorruptStore, "expected a JSON array")
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()
	dec.UseNumber()

	var raw []storedExpense
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.Wrapf(ErrCorruptStore, "parsing JSON: %v", err)
	}
	if dec.More() {
		return nil, errors.Wrap(ErrCorruptStore, "trailing data after expense list")
	}

	records := make([]Expense, 0, len(raw))
	for i, r := range raw {
		e, err := r.toExpense()
		if err != nil {
			return nil, errors.Wrapf(err, "record %d", i+1)
		}
		records = append(records, e)
	}
	return records, nil
}

func (r storedExpense) toExpense() (Expense, error) {
	switch {
	case r.Amount == nil:
		return Expense{}, errors.Wrap(ErrCorruptStore, "missing amount")
	case r.Description == nil:
		return Expense{}, errors.Wrap(ErrCorruptStore, "missing description")
	case r.Category == nil:
		return Expense{}, errors.Wrap(ErrCorruptStore, "missing category")
	case r.Date == nil:
		return Expense{}, errors.Wrap(ErrCorruptStore, "missing date")
	}

	amount, err := decimal.NewFromString(r.Amount.String())
	if err != nil {
		return Expense{}, errors.Wrapf(ErrCorruptStore, "invalid amount %q", r.Amount.String())
	}
	if !amount.IsPositive() {
		return Expense{}, errors.Wrapf(ErrCorruptStore, "non-positive amount %s", amount)
	}
	date, err := ParseDate(*r.Date)
	if err != nil {
		return Expense{}, errors.Wrapf(ErrCorruptStore, "invalid date %q", *r.Date)
	}

	return Expense{
		Amount:      amount,
		Description: *r.Description,
		Category:    *r.Category,
		Date:        date,
	}, nil
}

// Path returns the backing file path
func (s *Store) Path() string {
	return s.path
}

// Records returns a copy of the current sequence in insertion order
func (s *Store) Records() []Expense {
	out := make([]Expense, len(s.records))
	copy(out, s.records)
	return out
}

func (s *Store) Len() int {
	return len(s.records)
}

// Save overwrites the backing file with the full sequence
func (s *Store) Save() error {
	if err := writeExpensesFile(s.path, s.records); err != nil {
		return err
	}
	s.log.Debug("saved expenses", zap.String("path", s.path), zap.Int("count", len(s.records)))
	return nil
}

// Add validates and appends one expense, then saves. An empty date means
// today; an unparseable date also means today and sets DateFallback.
func (s *Store) Add(amount decimal.Decimal, description, category, date string) (AddResult, error) {
	if !amount.IsPositive() {
		return AddResult{}, ErrNonPositiveAmount
	}

	day, fallback := s.resolveDate(date)
	e := Expense{
		Amount:      amount,
		Description: description,
		Category:    category,
		Date:        day,
	}
	if err := s.AddMany([]Expense{e}); err != nil {
		return AddResult{}, err
	}
	s.log.Info("expense added",
		zap.String("amount", amount.String()),
		zap.String("category", category),
		zap.String("date", e.DateString()))
	return AddResult{Expense: e, DateFallback: fallback}, nil
}

// AddMany appends a batch with a single save. One invalid entry rejects the
// whole batch. A failed save leaves the in-memory sequence unchanged.
func (s *Store) AddMany(expenses []Expense) error {
	for i, e := range expenses {
		if !e.Amount.IsPositive() {
			return errors.Wrapf(ErrNonPositiveAmount, "expense %d", i+1)
		}
		if e.Date.IsZero() {
			return errors.Wrapf(ErrInvalidDate, "expense %d", i+1)
		}
	}
	if len(expenses) == 0 {
		return nil
	}

	prev := len(s.records)
	for _, e := range expenses {
		e.Date = truncateToDay(e.Date)
		s.records = append(s.records, e)
	}
	if err := s.Save(); err != nil {
		s.records = s.records[:prev]
		return err
	}
	return nil
}

func (s *Store) resolveDate(raw string) (time.Time, bool) {
	today := truncateToDay(s.now())
	if raw == "" {
		return today, false
	}
	d, err := ParseDate(raw)
	if err != nil {
		s.log.Debug("invalid date, using today", zap.String("input", raw))
		return today, true
	}
	return d, false
}

// ParseAmount turns user input into a positive decimal amount
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if !d.IsPositive() {
		return decimal.Zero, ErrNonPositiveAmount
	}
	return d, nil
}

type fileExpense struct {
	Amount      json.Number `json:"amount"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Date        string      `json:"date"`
}

func encodeExpenses(records []Expense) ([]byte, error) {
	out := make([]fileExpense, 0, len(records))
	for _, e := range records {
		out = append(out, fileExpense{
			Amount:      json.Number(e.Amount.String()),
			Description: e.Description,
			Category:    e.Category,
			Date:        e.DateString(),
		})
	}
	data, err := json.MarshalIndent(out, "", "    ")
	if err != nil {
		return nil, errors.Wrap(err, "marshaling expenses")
	}
	return append(data, '\n'), nil
}

func writeExpensesFile(path string, records []Expense) error {
	data, err := encodeExpenses(records)
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data, 0644)
}

// writeFileAtomic writes to a temp file in the target directory and renames
// it over path, so readers only ever see the old or the new content.
func writeFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "creating directory %s", dir)
		}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "writing temp file")
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrap(err, "syncing temp file")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}
	if err = os.Chmod(tmpName, perm); err != nil {
		return errors.Wrap(err, "setting file mode")
	}
	if err = os.Rename(tmpName, path); err != nil {
		return errors.Wrapf(err, "replacing %s", path)
	}
	return nil
}
