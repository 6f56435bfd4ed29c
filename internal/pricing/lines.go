package pricing

import "github.com/witify/go-cart/internal/types"

// Taxes returns the built-in tax line: rate applied to the running total at
// the point the line executes. When taxes is the first line this is rate times
// the subtotal.
func Taxes(rate float64) LineFunc {
	return func(total, _ float64, _ []*types.LineItem) float64 {
		return total * rate
	}
}

// SubtotalRate returns a line computing rate times the cart subtotal,
// independent of where the line sits in the pipeline.
func SubtotalRate(rate float64) LineFunc {
	return func(_, subtotal float64, _ []*types.LineItem) float64 {
		return subtotal * rate
	}
}

// Flat returns a fixed-amount line (handling fees, flat-rate shipping).
func Flat(amount float64) LineFunc {
	return func(_, _ float64, _ []*types.LineItem) float64 {
		return amount
	}
}
