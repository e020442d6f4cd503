// Package locale holds the display locale and currency used by formatting
// collaborators. A Locale is built once at startup and never changes.
package locale

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/five82/opsview/internal/config"
)

// builtinLabels translates the default status tokens.
var builtinLabels = map[string]map[string]string{
	"pt": {
		"Pending":   "Pendente",
		"Completed": "Concluída",
		"Failed":    "Falhou",
		"Cancelled": "Cancelada",
		"Unknown":   "Desconhecido",
	},
}

// Locale formats amounts, dates and labels for one language and currency.
type Locale struct {
	tag      language.Tag
	currency currency.Unit
	symbol   string
	printer  *message.Printer

	groupSep   string
	decimalSep string
}

// New validates the locale and currency settings and builds a Locale.
// labels extends or overrides the built-in translations for the tag.
func New(tag, currencyCode, symbol string, labels map[string]string) (*Locale, error) {
	t, err := language.Parse(strings.TrimSpace(tag))
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", tag, err)
	}
	unit, err := currency.ParseISO(strings.TrimSpace(currencyCode))
	if err != nil {
		return nil, fmt.Errorf("parse currency %q: %w", currencyCode, err)
	}
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		symbol = unit.String()
	}

	translations := make(map[string]string)
	base, _ := t.Base()
	for token, text := range builtinLabels[base.String()] {
		translations[token] = text
	}
	for token, text := range labels {
		translations[token] = text
	}

	builder := catalog.NewBuilder()
	for token, text := range translations {
		if err := builder.SetString(t, token, text); err != nil {
			return nil, fmt.Errorf("register label %q: %w", token, err)
		}
	}

	printer := message.NewPrinter(t, message.Catalog(builder))
	group, dec := separators(printer)
	return &Locale{
		tag:        t,
		currency:   unit,
		symbol:     symbol,
		printer:    printer,
		groupSep:   group,
		decimalSep: dec,
	}, nil
}

// separators reads the grouping and decimal separators off a formatted
// sample, so amounts can be laid out exactly without going through float64.
func separators(p *message.Printer) (group, dec string) {
	var seps []string
	for _, r := range p.Sprintf("%.2f", 1234.5) {
		if !unicode.IsDigit(r) {
			seps = append(seps, string(r))
		}
	}
	switch len(seps) {
	case 0:
		return "", "."
	case 1:
		return "", seps[0]
	default:
		return seps[0], seps[len(seps)-1]
	}
}

// FromConfig builds a Locale from the loaded configuration.
func FromConfig(cfg config.Config) (*Locale, error) {
	return New(cfg.Locale, cfg.Currency, cfg.CurrencySymbol, cfg.Labels)
}

// Tag returns the BCP 47 language tag, e.g. "pt-BR".
func (l *Locale) Tag() string {
	return l.tag.String()
}

// Currency returns the ISO 4217 code, e.g. "BRL".
func (l *Locale) Currency() string {
	return l.currency.String()
}

// Symbol returns the currency symbol used by FormatAmount.
func (l *Locale) Symbol() string {
	return l.symbol
}

// FormatAmount renders v with the currency symbol and two decimals using the
// locale's separators, e.g. "R$ 1.234,50".
func (l *Locale) FormatAmount(v decimal.Decimal) string {
	v = v.Round(2)
	sign := ""
	if v.Sign() < 0 {
		sign = "-"
		v = v.Neg()
	}
	whole, frac, _ := strings.Cut(v.StringFixed(2), ".")
	return sign + l.symbol + " " + groupThousands(whole, l.groupSep) + l.decimalSep + frac
}

func groupThousands(digits, sep string) string {
	if sep == "" || len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatDate renders t as a short date. Zero times render as "".
func (l *Locale) FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	base, _ := l.tag.Base()
	switch base.String() {
	case "pt", "es", "fr", "it", "de":
		return t.Format("02/01/2006")
	case "en":
		if region, _ := l.tag.Region(); region.String() == "US" {
			return t.Format("01/02/2006")
		}
	}
	return t.Format(time.DateOnly)
}

// Translate returns the display text for a label token, or the token itself
// when no translation exists.
func (l *Locale) Translate(token string) string {
	if token == "" || strings.Contains(token, "%") {
		return token
	}
	return l.printer.Sprintf(token)
}
