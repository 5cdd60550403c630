package models

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// MenuItem represents a single orderable product on the menu
type MenuItem struct {
	SKU   string  `json:"sku"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Category groups menu items under a stable identifier. The identifier
// doubles as the semantic tag the dialogue policy consults, so its Kind is
// resolved once when the menu is loaded instead of being re-derived from the
// raw string at every check.
type Category struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Items []MenuItem   `json:"items"`
	Kind  CategoryKind `json:"-"`
}

// Menu is the read-only catalog for one ordering session
type Menu struct {
	Currency   string     `json:"currency"`
	Categories []Category `json:"categories"`
}

// CategoryKind classifies a category for dialogue-policy purposes
type CategoryKind string

const (
	KindBeverage CategoryKind = "beverage"
	KindMain     CategoryKind = "main"
	KindOther    CategoryKind = "other"
)

var beverageCategories = map[string]bool{
	"bebidas":     true,
	"cerveza":     true,
	"aperitivo":   true,
	"caffetteria": true,
	// spelling variant seen in older menu exports
	"caffeteria": true,
}

var mainCategories = map[string]bool{
	"carni":           true,
	"risotti":         true,
	"pesce":           true,
	"polli":           true,
	"la-nostra-pasta": true,
	"pasta-ripiena":   true,
}

// KindForCategory resolves a category identifier to its kind. Identifiers are
// matched case-insensitively so upstream data paths that emit uppercase ids
// classify the same as lowercase ones.
func KindForCategory(id string) CategoryKind {
	lc := strings.ToLower(id)
	switch {
	case beverageCategories[lc]:
		return KindBeverage
	case mainCategories[lc]:
		return KindMain
	default:
		return KindOther
	}
}

// ResolveKinds stamps each category with its resolved kind
func (m *Menu) ResolveKinds() {
	for i := range m.Categories {
		m.Categories[i].Kind = KindForCategory(m.Categories[i].ID)
	}
}

// FindBySKU returns the item with the given sku and its category, or nil
func (m *Menu) FindBySKU(sku string) (*MenuItem, *Category) {
	for i := range m.Categories {
		cat := &m.Categories[i]
		for j := range cat.Items {
			if cat.Items[j].SKU == sku {
				return &cat.Items[j], cat
			}
		}
	}
	return nil, nil
}

// Validate checks the loaded catalog for structural problems
func (m *Menu) Validate() error {
	if m.Currency == "" {
		return fmt.Errorf("menu currency is required")
	}
	seen := make(map[string]bool)
	for _, cat := range m.Categories {
		if cat.ID == "" {
			return fmt.Errorf("category %q has no id", cat.Name)
		}
		for _, it := range cat.Items {
			if it.SKU == "" {
				return fmt.Errorf("item %q in category %q has no sku", it.Name, cat.ID)
			}
			if seen[it.SKU] {
				return fmt.Errorf("duplicate sku %q", it.SKU)
			}
			seen[it.SKU] = true
			if it.Name == "" {
				return fmt.Errorf("item %q has no name", it.SKU)
			}
			if it.Price < 0 {
				return fmt.Errorf("item %q has negative price", it.SKU)
			}
		}
	}
	return nil
}

// LoadMenu reads the catalog from a JSON file, validates it and resolves
// category kinds
func LoadMenu(path string) (*Menu, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read menu file: %w", err)
	}
	var menu Menu
	if err := json.Unmarshal(data, &menu); err != nil {
		return nil, fmt.Errorf("failed to parse menu file: %w", err)
	}
	if err := menu.Validate(); err != nil {
		return nil, fmt.Errorf("invalid menu: %w", err)
	}
	menu.ResolveKinds()
	return &menu, nil
}
