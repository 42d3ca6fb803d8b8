package domain

// CartLine is one (restaurant, item) entry in the session cart.
// Repeat adds of the same pair bump Quantity instead of appending a line.
type CartLine struct {
	ID         string  `json:"id"`
	Restaurant string  `json:"restaurant"`
	Item       string  `json:"item"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
}
