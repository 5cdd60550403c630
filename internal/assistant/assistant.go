// Package assistant implements the rule-based ordering assistant: intent
// detection, menu matching, quantity parsing, bilingual response templating
// and the follow-up dialogue policy. It is pure request/response logic with
// no internal state; the session cart and menu are passed in on every turn.
package assistant

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"parolaccia/internal/cart"
	"parolaccia/internal/models"
	"parolaccia/internal/money"
)

// TurnContext carries everything the assistant may consult during one turn.
// The cart is the pre-turn snapshot; the assistant reads it but never
// mutates it, emitting CartOps for the caller to apply instead.
type TurnContext struct {
	TableID    string
	PartySize  int
	FirstOrder bool
	Locale     string
	Cart       *cart.Store
	Menu       *models.Menu
}

// TurnResult is the outcome of one turn: the message to show, the cart ops
// to apply, and whether the client should enter the confirmation flow.
type TurnResult struct {
	AssistantMessage    string          `json:"assistantMessage"`
	CartOps             []models.CartOp `json:"cartOps,omitempty"`
	RequireConfirmation bool            `json:"requireConfirmation,omitempty"`
}

// Intent labels the branch a turn resolved to, for observability
type Intent string

const (
	IntentConfirm  Intent = "confirm"
	IntentNotFound Intent = "not_found"
	IntentRemove   Intent = "remove"
	IntentAdd      Intent = "add"
)

var (
	confirmPattern = regexp.MustCompile(`\bconfirm(ar)?\b`)
	removePattern  = regexp.MustCompile(`\b(sacar|quitar|remove|sin\b.*\b)\b`)
	notePattern    = regexp.MustCompile(`\bnota|note\b`)
	noteCapture    = regexp.MustCompile(`(?i)(?:nota|notas|note|notes)[-:]?\s*(.+)$`)
	sinCapture     = regexp.MustCompile(`(?i)\bsin\s+(.+)$`)
)

// ProcessTurn runs one utterance through the assistant. It never fails for
// recoverable conditions: an unmatched item yields a notFound message, an
// empty cart confirms to an empty summary, and so on.
func ProcessTurn(message string, ctx *TurnContext) TurnResult {
	result, _ := ProcessTurnIntent(message, ctx)
	return result
}

// ProcessTurnIntent is ProcessTurn plus the resolved intent label, which the
// transport layer records as a metric.
func ProcessTurnIntent(message string, ctx *TurnContext) (TurnResult, Intent) {
	lang := DetectLanguage(ctx.Locale, message)
	msg := strings.TrimSpace(message)
	lower := Normalize(msg)

	// Confirmation short-circuits everything else, so a confirm phrase is
	// never misread as a product query.
	if confirmPattern.MatchString(lower) {
		return TurnResult{
			AssistantMessage: Render(lang, "confirmQ", map[string]string{
				"summary": summarize(ctx.Cart),
				"total":   money.FormatARS(ctx.Cart.Total(), string(lang)),
			}),
			RequireConfirmation: true,
		}, IntentConfirm
	}

	matched, ok := ResolveItem(ctx.Menu, msg)
	if !ok {
		return TurnResult{AssistantMessage: Render(lang, "notFound", nil)}, IntentNotFound
	}

	qty := ParseQuantity(msg)

	if removePattern.MatchString(lower) && !notePattern.MatchString(lower) {
		// The parsed quantity is not forwarded: removal always drops the
		// whole entry. Quantified removal stays available to direct cart
		// callers.
		ops := []models.CartOp{{Type: models.OpRemove, SKU: matched.Item.SKU}}
		return TurnResult{
			AssistantMessage: Render(lang, "removed", map[string]string{
				"name": matched.Item.Name,
				"qty":  strconv.Itoa(qty),
			}),
			CartOps: ops,
		}, IntentRemove
	}

	var ops []models.CartOp
	if notes, found := extractNotes(msg); found {
		ops = append(ops, models.CartOp{Type: models.OpUpdateNotes, SKU: matched.Item.SKU, Notes: notes})
	}
	ops = append(ops, models.CartOp{Type: models.OpAdd, SKU: matched.Item.SKU, Qty: qty})

	response := Render(lang, "added", map[string]string{
		"qty":  strconv.Itoa(qty),
		"name": matched.Item.Name,
	})
	if key := followUpKey(ctx); key != "" {
		response = response + " " + Render(lang, key, nil)
	}
	return TurnResult{AssistantMessage: response, CartOps: ops}, IntentAdd
}

// Greeting is the opening line a transport sends when a session starts
func Greeting(lang Lang) string {
	return Render(lang, "greeting", nil)
}

// extractNotes captures note text from a "nota: ..." tail or a "sin ..."
// construction.
func extractNotes(msg string) (string, bool) {
	m := noteCapture.FindStringSubmatch(msg)
	if m == nil {
		m = sinCapture.FindStringSubmatch(msg)
	}
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

func summarize(c *cart.Store) string {
	items := c.Items()
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%d x %s", it.Qty, it.Name))
	}
	return strings.Join(parts, ", ")
}
