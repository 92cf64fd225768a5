package swapmath

import "github.com/osmosis-labs/osmosis/osmomath"

// highPriceImpactThreshold is a loss greater than 1%.
var highPriceImpactThreshold = osmomath.NewDecWithPrec(-1, 2)

// PriceImpact returns (valueOut - valueIn) / valueIn.
// Positive is a bonus, negative is a cost. Returns zero if valueIn is zero.
func PriceImpact(valueIn, valueOut osmomath.Dec) osmomath.Dec {
	if valueIn.IsNil() || valueOut.IsNil() || valueIn.IsZero() {
		return osmomath.ZeroDec()
	}

	return valueOut.Sub(valueIn).Quo(valueIn)
}

// IsHighPriceImpact returns true if the price impact is a loss of at least 1%.
// It is a soft confirmation gate and never blocks a swap.
func IsHighPriceImpact(priceImpact osmomath.Dec) bool {
	if priceImpact.IsNil() {
		return false
	}
	return priceImpact.LTE(highPriceImpactThreshold)
}
