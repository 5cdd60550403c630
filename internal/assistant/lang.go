package assistant

import (
	"regexp"
	"strings"
)

// Lang is a supported response language
type Lang string

const (
	LangES Lang = "es"
	LangEN Lang = "en"
)

// Small keyword lexicons for best-effort language detection. This is a
// heuristic over common greeting and ordering words, not a language
// identification model.
var (
	spanishWords = regexp.MustCompile(`\b(hola|por favor|gracias|quiero|una|dos|tres|buenas|limonada)\b`)
	englishWords = regexp.MustCompile(`\b(please|thanks|hi|hello|water|lemonade)\b`)
)

// DetectLanguage picks the response language. An explicit locale prefix
// wins; otherwise the message is scanned against the keyword lexicons;
// otherwise Spanish.
func DetectLanguage(locale, text string) Lang {
	lc := Normalize(locale)
	if strings.HasPrefix(lc, "es") {
		return LangES
	}
	if strings.HasPrefix(lc, "en") {
		return LangEN
	}
	t := Normalize(text)
	if spanishWords.MatchString(t) {
		return LangES
	}
	if englishWords.MatchString(t) {
		return LangEN
	}
	return LangES
}
