package assistant

// followUpKey decides which follow-up question, if any, is appended after a
// successful add. Exactly one branch fires, evaluated against the cart
// snapshot that was passed into the turn, before the current add is applied.
// That pre-mutation read matches the shipped behavior and must not be
// changed without a product decision.
func followUpKey(ctx *TurnContext) string {
	if ctx.FirstOrder && !ctx.Cart.HasBeverages() {
		return "beverageQ"
	}
	if ctx.Cart.MainsCount() < ctx.PartySize {
		return "shareQ"
	}
	return ""
}
