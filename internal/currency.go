package internal

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Currency formats amounts for display. The zero-code Currency prints bare
// two-decimal numbers with no symbol.
type Currency struct {
	Code    string // "SEK", "USD", "EUR", or empty
	unit    currency.Unit
	known   bool
	printer *message.Printer
}

// symbolOverrides provides custom symbols where x/text defaults aren't ideal
var symbolOverrides = map[string]string{
	"SEK": "kr",
	"NOK": "kr",
	"DKK": "kr",
	"ISK": "kr",
}

// homeLocale is the formatting locale used when a currency is chosen
// explicitly rather than detected from the system locale
var homeLocale = map[string]language.Tag{
	"SEK": language.Swedish,
	"USD": language.AmericanEnglish,
	"EUR": language.German,
	"GBP": language.BritishEnglish,
	"NOK": language.Norwegian,
	"DKK": language.Danish,
	"CHF": language.German,
	"JPY": language.Japanese,
	"CAD": language.CanadianFrench,
	"AUD": language.MustParse("en-AU"),
	"BRL": language.BrazilianPortuguese,
	"INR": language.MustParse("en-IN"),
	"PLN": language.Polish,
}

// GetCurrency returns the Currency for a code, formatted in that currency's home locale
func GetCurrency(code string) Currency {
	code = strings.ToUpper(strings.TrimSpace(code))
	tag, ok := homeLocale[code]
	if !ok {
		tag = language.English
	}
	return GetCurrencyWithLocale(code, tag)
}

// GetCurrencyWithLocale returns a Currency with a specific locale for formatting
func GetCurrencyWithLocale(code string, tag language.Tag) Currency {
	code = strings.ToUpper(strings.TrimSpace(code))
	c := Currency{
		Code:    code,
		printer: message.NewPrinter(tag),
	}
	if code == "" {
		return c
	}
	if unit, err := currency.ParseISO(code); err == nil {
		c.unit = unit
		c.known = true
	}
	return c
}

// DetectSystemCurrency derives a currency from the OS locale, e.g. sv_SE.UTF-8 -> SEK.
// Returns the zero Currency when nothing usable is found.
func DetectSystemCurrency() Currency {
	locale := detectSystemLocale()
	if locale == "" {
		return Currency{printer: message.NewPrinter(language.English)}
	}
	code, tag := parseCurrencyFromLocale(locale)
	if code == "" {
		return Currency{printer: message.NewPrinter(language.English)}
	}
	return GetCurrencyWithLocale(code, tag)
}

// parseCurrencyFromLocale extracts currency code and language tag from a locale string.
// Examples: "sv_SE.UTF-8" -> ("SEK", sv-SE), "pt_BR.UTF-8" -> ("BRL", pt-BR)
func parseCurrencyFromLocale(locale string) (string, language.Tag) {
	base := locale
	if idx := strings.Index(base, "."); idx != -1 {
		base = base[:idx]
	}
	if idx := strings.Index(base, "@"); idx != -1 {
		base = base[:idx]
	}

	tag, err := language.Parse(strings.Replace(base, "_", "-", 1))
	if err != nil {
		return "", language.Und
	}

	_, _, region := tag.Raw()
	if region.String() == "" || region.String() == "ZZ" {
		return "", language.Und
	}

	unit, ok := currency.FromRegion(region)
	if !ok {
		return "", language.Und
	}
	return unit.String(), tag
}

func (c Currency) symbol() string {
	if sym, ok := symbolOverrides[c.Code]; ok {
		return sym
	}
	if !c.known {
		return c.Code
	}
	return c.printer.Sprint(currency.NarrowSymbol(c.unit))
}

// isPrefix reports whether the symbol goes before the amount. x/text does not
// expose CLDR symbol placement, so the prefix currencies are listed by hand.
func (c Currency) isPrefix() bool {
	switch c.Code {
	case "USD", "GBP", "JPY", "CAD", "AUD", "HKD", "SGD", "NZD", "INR":
		return true
	default:
		return false
	}
}

// Format renders an amount with exactly two fraction digits and, when a
// currency code is set, its symbol
func (c Currency) Format(amount decimal.Decimal) string {
	if c.printer == nil {
		return amount.StringFixed(2)
	}
	formatted := c.formatNumber(amount)
	if c.Code == "" {
		return formatted
	}
	if c.isPrefix() {
		return c.symbol() + formatted
	}
	return formatted + " " + c.symbol()
}

// formatNumber groups the integer part with the locale's separators and
// appends exactly two fraction digits, without going through float64
func (c Currency) formatNumber(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	abs := rounded.Abs()
	whole := abs.Truncate(0)
	if whole.GreaterThan(decimal.NewFromInt(math.MaxInt64)) {
		return rounded.StringFixed(2)
	}

	cents := abs.Sub(whole).Shift(2).IntPart()
	formatted := c.printer.Sprint(number.Decimal(whole.IntPart())) +
		c.decimalSeparator() + fmt.Sprintf("%02d", cents)
	if rounded.IsNegative() {
		return "-" + formatted
	}
	return formatted
}

func (c Currency) decimalSeparator() string {
	sample := c.printer.Sprint(number.Decimal(1.5, number.MinFractionDigits(1), number.MaxFractionDigits(1)))
	return strings.TrimSuffix(strings.TrimPrefix(sample, "1"), "5")
}

// localeFromEnv returns the first usable locale among the given env vars
func localeFromEnv(vars ...string) string {
	for _, v := range vars {
		locale := os.Getenv(v)
		if locale != "" && locale != "C" && locale != "POSIX" {
			return locale
		}
	}
	return ""
}
