// Package money formats Argentine peso amounts for display.
package money

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printers = map[string]*message.Printer{
	"es": message.NewPrinter(language.MustParse("es-AR")),
	"en": message.NewPrinter(language.MustParse("en-US")),
}

// FormatARS renders a peso amount with locale-appropriate digit grouping and
// no decimals: "$ 12.500" for Spanish, "ARS 12,500" for English.
func FormatARS(value float64, lang string) string {
	p, ok := printers[lang]
	if !ok {
		p = printers["es"]
		lang = "es"
	}
	rounded := int64(math.Round(value))
	if lang == "en" {
		return p.Sprintf("ARS %d", rounded)
	}
	return p.Sprintf("$ %d", rounded)
}
