package swapmath

import (
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/stableswap/sqs/domain"
)

var (
	tenDec = osmomath.NewDec(10)
	// No mutex since we only instantiate this once, and its static content
	precisionScalingFactors []osmomath.Dec
)

func init() {
	precisionScalingFactors = buildPrecisionScalingFactors()
}

func buildPrecisionScalingFactors() []osmomath.Dec {
	precisionScalingFactors := make([]osmomath.Dec, domain.MaxTokenDecimals+1)
	for i := 0; i <= domain.MaxTokenDecimals; i++ {
		precisionScalingFactors[i] = tenDec.Power(uint64(i))
	}
	return precisionScalingFactors
}

// getPrecisionScalingFactorMut returns 10^precision.
// The returned decimal is shared and must not be mutated.
func getPrecisionScalingFactorMut(precision int) (osmomath.Dec, error) {
	if precision < 0 || precision >= len(precisionScalingFactors) {
		return osmomath.Dec{}, domain.ConfigurationError{
			Field:  "decimals",
			Reason: "must be in [0, 18]",
		}
	}
	return precisionScalingFactors[precision], nil
}

// NormalizeAmount converts a token-native amount into the 18-decimal fixed point space.
func NormalizeAmount(amount osmomath.Int, decimals int) (osmomath.Dec, error) {
	scalingFactor, err := getPrecisionScalingFactorMut(decimals)
	if err != nil {
		return osmomath.Dec{}, err
	}

	return osmomath.NewDecFromInt(amount).QuoTruncate(scalingFactor), nil
}

// ExchangeRate returns how many units of token out are received per unit of token in,
// both normalized to 18 decimals. Returns zero if amountIn is not positive.
func ExchangeRate(amountIn osmomath.Int, decimalsIn int, amountOut osmomath.Int, decimalsOut int) (osmomath.Dec, error) {
	if amountIn.IsNil() || !amountIn.IsPositive() {
		return osmomath.ZeroDec(), nil
	}

	normalizedIn, err := NormalizeAmount(amountIn, decimalsIn)
	if err != nil {
		return osmomath.Dec{}, err
	}

	normalizedOut, err := NormalizeAmount(amountOut, decimalsOut)
	if err != nil {
		return osmomath.Dec{}, err
	}

	if normalizedIn.IsZero() {
		return osmomath.ZeroDec(), nil
	}

	return normalizedOut.Quo(normalizedIn), nil
}

// ValueUSD returns the USD value of a token-native amount at the given price.
func ValueUSD(amount osmomath.Int, decimals int, price osmomath.Dec) (osmomath.Dec, error) {
	normalized, err := NormalizeAmount(amount, decimals)
	if err != nil {
		return osmomath.Dec{}, err
	}

	return normalized.MulTruncate(price), nil
}
