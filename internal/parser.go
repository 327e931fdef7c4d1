package internal

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Parser reads expenses from an import file
type Parser interface {
	Parse(path string) ([]Expense, error)
}

// ParserFunc is a function that implements Parser
type ParserFunc func(path string) ([]Expense, error)

func (f ParserFunc) Parse(path string) ([]Expense, error) {
	return f(path)
}

// parsers is the registry of available import formats
var parsers = map[string]Parser{}

// RegisterParser registers a parser with the given name
func RegisterParser(name string, p Parser) {
	parsers[name] = p
}

// GetParser returns the parser for the given format
func GetParser(format string) (Parser, error) {
	p, ok := parsers[format]
	if !ok {
		return nil, fmt.Errorf("unknown import format: %s (available: %v)", format, AvailableFormats())
	}
	return p, nil
}

// AvailableFormats returns the registered format names, sorted
func AvailableFormats() []string {
	var formats []string
	for name := range parsers {
		formats = append(formats, name)
	}
	sort.Strings(formats)
	return formats
}

// IsKnownParser returns true if the name is a registered parser
func IsKnownParser(name string) bool {
	_, ok := parsers[name]
	return ok
}

// ParseFileArg parses a file argument that may have a format prefix.
// Example: "simple-json:data.json" → ("simple-json", "data.json")
// Example: "C:\path\file.xlsx" → ("", "C:\path\file.xlsx")
func ParseFileArg(arg string) (format, path string) {
	idx := strings.Index(arg, ":")
	if idx == -1 {
		return "", arg
	}
	prefix := arg[:idx]
	if IsKnownParser(prefix) {
		return prefix, arg[idx+1:]
	}
	return "", arg
}

// FormatForPath guesses the import format from a file extension
func FormatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return "expense-xlsx"
	default:
		return "simple-json"
	}
}

// ImportFile parses arg ("[format:]path") and appends every expense to the
// store in one batch. Returns the number of imported expenses.
func ImportFile(store *Store, arg string) (int, error) {
	format, path := ParseFileArg(arg)
	if format == "" {
		format = FormatForPath(path)
	}
	p, err := GetParser(format)
	if err != nil {
		return 0, err
	}

	expenses, err := p.Parse(path)
	if err != nil {
		return 0, fmt.Errorf("importing %s: %w", path, err)
	}
	if err := store.AddMany(expenses); err != nil {
		return 0, fmt.Errorf("saving imported expenses: %w", err)
	}
	return len(expenses), nil
}

func init() {
	RegisterParser("simple-json", ParserFunc(ParseSimpleJSON))
	RegisterParser("expense-xlsx", ParserFunc(ParseExpenseXLSX))
}
