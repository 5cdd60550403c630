package assistant

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD and drops combining marks, so accented and
// unaccented spellings compare equal.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

// Normalize canonicalizes text for matching: lower-case, then strip
// diacritical marks. "Limonada", "limonáda" and "LIMONADA" all normalize to
// "limonada".
func Normalize(s string) string {
	lowered := strings.ToLower(s)
	out, _, err := transform.String(stripMarks, lowered)
	if err != nil {
		return lowered
	}
	return out
}
