package core

import (
	"fmt"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders amounts and timestamps as localized display text.
// Locale and currency are fixed configuration (pt-BR / BRL by default),
// validated once at startup; they are display-only and never influence
// filtering or aggregation.
type Formatter struct {
	printer *message.Printer
	unit    currency.Unit
}

// NewFormatter builds a formatter for the given BCP 47 locale and ISO 4217
// currency code. Unrecognized options are rejected.
func NewFormatter(locale, currencyCode string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return nil, fmt.Errorf("parse currency %q: %w", currencyCode, err)
	}
	return &Formatter{
		printer: message.NewPrinter(tag),
		unit:    unit,
	}, nil
}

// NewDefaultFormatter returns the application default (Brazilian Portuguese,
// Brazilian Real).
func NewDefaultFormatter() *Formatter {
	f, err := NewFormatter("pt-BR", "BRL")
	if err != nil {
		// Both options are compiled-in constants; failure means a broken build.
		panic(err)
	}
	return f
}

// Currency renders m as localized currency text, e.g. "R$ 1.234,56".
func (f *Formatter) Currency(m Money) string {
	return f.printer.Sprintf("%v", currency.Symbol(f.unit.Amount(m.Reais())))
}

// Date renders t as a localized calendar date (dd/mm/yyyy for pt-BR).
func (f *Formatter) Date(t time.Time) string {
	return t.Format("02/01/2006")
}

// Time renders the time-of-day component of t (hh:mm).
func (f *Formatter) Time(t time.Time) string {
	return t.Format("15:04")
}
