package cart

const (
	deliveryFee = 2.99
	taxRate     = 0.08875
)

// Totals is the derived order summary for a cart subtotal.
type Totals struct {
	Subtotal    float64 `json:"subtotal" yaml:"subtotal"`
	DeliveryFee float64 `json:"delivery_fee" yaml:"delivery_fee"`
	Tax         float64 `json:"tax" yaml:"tax"`
	Total       float64 `json:"total" yaml:"total"`
}

// Checkout derives the delivery fee, tax, and grand total from a subtotal.
// An empty cart pays no delivery fee. Rounding to cents is left to the
// presentation layer.
func Checkout(subtotal float64) Totals {
	fee := 0.0
	if subtotal > 0 {
		fee = deliveryFee
	}
	tax := subtotal * taxRate
	return Totals{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Tax:         tax,
		Total:       subtotal + fee + tax,
	}
}
