// Package cart holds the ordering-session line items and computes the
// aggregates the dialogue policy and confirmation summary consume.
package cart

import (
	"encoding/json"

	"parolaccia/internal/models"
)

// Store is the mutable cart for a single ordering session. It is exclusively
// owned by that session and mutated one turn at a time, so it carries no
// locking of its own.
type Store struct {
	items []models.LineItem
}

// New returns an empty cart
func New() *Store {
	return &Store{}
}

// FromItems builds a cart from an existing line-item slice, resolving the
// category kind of every entry
func FromItems(items []models.LineItem) *Store {
	s := &Store{items: make([]models.LineItem, len(items))}
	copy(s.items, items)
	for i := range s.items {
		s.items[i].Kind = models.KindForCategory(s.items[i].CategoryID)
	}
	return s
}

// Add merges an item into the cart. An existing entry for the same sku has
// its quantity incremented; its notes are replaced only when new notes are
// provided. A new sku is appended. Always succeeds.
func (s *Store) Add(item models.LineItem) {
	if item.Qty < 1 {
		item.Qty = 1
	}
	item.Kind = models.KindForCategory(item.CategoryID)
	for i := range s.items {
		if s.items[i].SKU == item.SKU {
			s.items[i].Qty += item.Qty
			if item.Notes != "" {
				s.items[i].Notes = item.Notes
			}
			return
		}
	}
	s.items = append(s.items, item)
}

// Remove deletes or decrements the entry for sku. With qty <= 0, or when the
// entry holds no more than qty units, the entry is deleted outright;
// otherwise its quantity is decremented. Absent skus are a silent no-op.
func (s *Store) Remove(sku string, qty int) {
	for i := range s.items {
		if s.items[i].SKU != sku {
			continue
		}
		if qty > 0 && s.items[i].Qty > qty {
			s.items[i].Qty -= qty
		} else {
			s.items = append(s.items[:i], s.items[i+1:]...)
		}
		return
	}
}

// UpdateQty overwrites the quantity of the entry for sku, clamped at 1.
// Absent skus are a silent no-op.
func (s *Store) UpdateQty(sku string, qty int) {
	if qty < 1 {
		qty = 1
	}
	for i := range s.items {
		if s.items[i].SKU == sku {
			s.items[i].Qty = qty
			return
		}
	}
}

// UpdateNotes overwrites the notes of the entry for sku. Absent skus are a
// silent no-op.
func (s *Store) UpdateNotes(sku, notes string) {
	for i := range s.items {
		if s.items[i].SKU == sku {
			s.items[i].Notes = notes
			return
		}
	}
}

// Clear empties the cart
func (s *Store) Clear() {
	s.items = nil
}

// Apply runs a sequence of assistant-issued cart ops against the store. The
// menu supplies name, price and category for add ops so the assistant only
// has to emit skus.
func (s *Store) Apply(ops []models.CartOp, menu *models.Menu) {
	for _, op := range ops {
		switch op.Type {
		case models.OpAdd:
			item, cat := menu.FindBySKU(op.SKU)
			if item == nil {
				continue
			}
			s.Add(models.LineItem{
				SKU:        item.SKU,
				Name:       item.Name,
				Qty:        op.Qty,
				Price:      item.Price,
				Notes:      op.Notes,
				CategoryID: cat.ID,
			})
		case models.OpRemove:
			s.Remove(op.SKU, op.Qty)
		case models.OpUpdateNotes:
			s.UpdateNotes(op.SKU, op.Notes)
		}
	}
}

// Items returns a copy of the cart rows in insertion order
func (s *Store) Items() []models.LineItem {
	out := make([]models.LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Count is the total number of units in the cart
func (s *Store) Count() int {
	n := 0
	for _, it := range s.items {
		n += it.Qty
	}
	return n
}

// Total is the cart value in menu currency units
func (s *Store) Total() float64 {
	var total float64
	for _, it := range s.items {
		total += float64(it.Qty) * it.Price
	}
	return total
}

// HasBeverages reports whether any entry belongs to a beverage category
func (s *Store) HasBeverages() bool {
	for _, it := range s.items {
		if it.Kind == models.KindBeverage {
			return true
		}
	}
	return false
}

// MainsCount is the number of main-course units in the cart
func (s *Store) MainsCount() int {
	n := 0
	for _, it := range s.items {
		if it.Kind == models.KindMain {
			n += it.Qty
		}
	}
	return n
}

// Snapshot serializes the cart rows for persistence at session boundaries
func (s *Store) Snapshot() ([]byte, error) {
	return json.Marshal(s.items)
}

// Restore replaces the cart contents from a snapshot produced by Snapshot
func (s *Store) Restore(data []byte) error {
	var items []models.LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	for i := range items {
		items[i].Kind = models.KindForCategory(items[i].CategoryID)
	}
	s.items = items
	return nil
}
