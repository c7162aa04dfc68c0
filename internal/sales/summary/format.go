package summary

import (
	"fmt"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders a money amount for display.
type Formatter interface {
	FormatCurrency(amount float64) string
}

// CurrencyFormatter prefixes an ISO currency code to a locale grouped amount
// with two decimals, e.g. "THB 2,140.00".
type CurrencyFormatter struct {
	unit    currency.Unit
	printer *message.Printer
}

// NewCurrencyFormatter validates the ISO 4217 code. An unparseable locale
// falls back to English.
func NewCurrencyFormatter(code, locale string) (*CurrencyFormatter, error) {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, fmt.Errorf("summary: currency %q: %w", code, err)
	}
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		tag = language.English
	}
	return &CurrencyFormatter{unit: unit, printer: message.NewPrinter(tag)}, nil
}

// Code returns the ISO code the formatter prints.
func (f *CurrencyFormatter) Code() string {
	return f.unit.String()
}

func (f *CurrencyFormatter) FormatCurrency(amount float64) string {
	return f.unit.String() + " " + f.printer.Sprint(number.Decimal(amount, number.Scale(2)))
}
