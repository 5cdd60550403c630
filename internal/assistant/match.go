package assistant

import (
	"sort"
	"strings"

	"parolaccia/internal/models"
)

// Match is a resolved menu hit: the item plus the category it was found in
type Match struct {
	Item       models.MenuItem
	CategoryID string
	Kind       models.CategoryKind
}

// maxRetryTokens caps the per-token retry after a whole-message miss
const maxRetryTokens = 6

// FindItem resolves a free-text query to a catalog item. The normalized
// query matches an item whose normalized sku is equal to it, or whose
// normalized name contains it as a substring. Categories and items are
// scanned in menu order and the first hit wins; there is no scoring and no
// fuzzy matching.
func FindItem(menu *models.Menu, query string) (Match, bool) {
	q := Normalize(query)
	if q == "" {
		return Match{}, false
	}
	for _, cat := range menu.Categories {
		for _, it := range cat.Items {
			if Normalize(it.SKU) == q || strings.Contains(Normalize(it.Name), q) {
				return Match{Item: it, CategoryID: cat.ID, Kind: cat.Kind}, true
			}
		}
	}
	return Match{}, false
}

// ResolveItem tries the whole message first, then retries per token: the
// message is split on commas, periods and whitespace, empty tokens are
// dropped, and the remaining tokens are tried longest-first (at most six).
// The length bias favors distinctive words like "limonada" over filler like
// "una" or "por favor".
func ResolveItem(menu *models.Menu, message string) (Match, bool) {
	if m, ok := FindItem(menu, message); ok {
		return m, true
	}
	tokens := splitTokens(message)
	sort.SliceStable(tokens, func(i, j int) bool {
		return len(tokens[i]) > len(tokens[j])
	})
	if len(tokens) > maxRetryTokens {
		tokens = tokens[:maxRetryTokens]
	}
	for _, tok := range tokens {
		if m, ok := FindItem(menu, tok); ok {
			return m, true
		}
		// Spanish plural fallback: "limonadas" should still hit "Limonada"
		if strings.HasSuffix(tok, "s") && len(tok) > 3 {
			if m, ok := FindItem(menu, tok[:len(tok)-1]); ok {
				return m, true
			}
		}
	}
	return Match{}, false
}

func splitTokens(message string) []string {
	return strings.FieldsFunc(message, func(r rune) bool {
		return r == ',' || r == '.' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
}
