package models

// LineItem is one cart row, keyed by catalog sku. Kind is resolved from the
// category id when the item enters the cart so aggregate checks never touch
// the raw category string again.
type LineItem struct {
	SKU        string       `json:"sku"`
	Name       string       `json:"name"`
	Qty        int          `json:"qty"`
	Price      float64      `json:"price"`
	Notes      string       `json:"notes,omitempty"`
	CategoryID string       `json:"categoryId"`
	Kind       CategoryKind `json:"-"`
}

// OpType identifies a cart mutation emitted by the assistant
type OpType string

const (
	OpAdd         OpType = "add"
	OpRemove      OpType = "remove"
	OpUpdateNotes OpType = "updateNotes"
)

// CartOp is one tagged cart instruction. Qty is meaningful for add ops and
// optional for remove ops (zero means remove the whole entry). Notes carry
// the note text for updateNotes and the optional note for add.
type CartOp struct {
	Type  OpType `json:"type"`
	SKU   string `json:"sku"`
	Qty   int    `json:"qty,omitempty"`
	Notes string `json:"notes,omitempty"`
}
