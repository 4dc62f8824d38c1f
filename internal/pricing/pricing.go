// Package pricing converts a base price and a discount into the price shown to customers.
package pricing

import (
	"errors"
	"math"
)

var (
	ErrNegativePrice     = errors.New("Price cannot be negative")
	ErrNegativeDiscount  = errors.New("Discount cannot be negative")
	ErrDiscountOverLimit = errors.New("Percentage discount cannot exceed 100%")
)

// CalculateFinalPrice applies discount to price. With isPercentage the discount is
// a percentage in [0, 100], otherwise a fixed amount. The result is never negative
// and is rounded to two decimals.
func CalculateFinalPrice(price, discount float64, isPercentage bool) (float64, error) {
	if price < 0 {
		return 0, ErrNegativePrice
	}
	if discount < 0 {
		return 0, ErrNegativeDiscount
	}
	if isPercentage && discount > 100 {
		return 0, ErrDiscountOverLimit
	}

	final := price - discount
	if isPercentage {
		final = price - price*discount/100
	}
	// half-up, matching the storefront's display rounding
	rounded := math.Floor(final*100+0.5) / 100
	return math.Max(0, rounded), nil
}

// DiscountedPrice is CalculateFinalPrice with a percentage discount
func DiscountedPrice(price, percent float64) (float64, error) {
	return CalculateFinalPrice(price, percent, true)
}
