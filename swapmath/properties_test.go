package swapmath_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/osmosis-labs/osmosis/osmomath"
	"pgregory.net/rapid"

	"github.com/stableswap/sqs/swapmath"
)

// maxSlippagePrec is 1 - 10^-18.
const maxSlippagePrec = 999_999_999_999_999_999

func TestSlippageRoundTripNeverExceedsAmount(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		amount := sdkmath.NewIntFromUint64(rapid.Uint64().Draw(t, "amount"))
		slippage := osmomath.NewDecWithPrec(rapid.Int64Range(0, maxSlippagePrec).Draw(t, "slippage"), 18)

		roundTrip := swapmath.SubtractSlippage(swapmath.AddSlippage(amount, slippage), slippage)
		if roundTrip.GT(amount) {
			t.Fatalf("subtract(add(%s, %s)) = %s exceeds amount", amount, slippage, roundTrip)
		}
	})
}

func TestSubtractSlippageNeverExceedsAmount(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		amount := sdkmath.NewIntFromUint64(rapid.Uint64().Draw(t, "amount"))
		slippage := osmomath.NewDecWithPrec(rapid.Int64Range(0, maxSlippagePrec).Draw(t, "slippage"), 18)

		minOut := swapmath.SubtractSlippage(amount, slippage)
		if minOut.GT(amount) || minOut.IsNegative() {
			t.Fatalf("subtract(%s, %s) = %s is out of [0, amount]", amount, slippage, minOut)
		}
	})
}

func TestPriceImpactOfEqualValuesIsZero(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		value := osmomath.NewDecWithPrec(rapid.Int64Range(1, 1<<62).Draw(t, "value"), rapid.Int64Range(0, 18).Draw(t, "prec"))

		if priceImpact := swapmath.PriceImpact(value, value); !priceImpact.IsZero() {
			t.Fatalf("price impact of (%s, %s) = %s", value, value, priceImpact)
		}
	})
}

func TestTruncateDecimalStringIsIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.StringMatching(`[0-9]{1,12}(\.[0-9]{0,24})?`).Draw(t, "raw")
		decimals := rapid.IntRange(0, 18).Draw(t, "decimals")

		once := swapmath.TruncateDecimalString(raw, decimals)
		twice := swapmath.TruncateDecimalString(once, decimals)
		if once != twice {
			t.Fatalf("truncate(%q, %d) = %q, truncated again = %q", raw, decimals, once, twice)
		}

		if swapmath.FractionalDigits(once) > decimals {
			t.Fatalf("truncate(%q, %d) = %q keeps too many digits", raw, decimals, once)
		}
	})
}

func TestTruncateDecimalStringNeverRoundsUp(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.StringMatching(`[0-9]{1,12}\.[0-9]{1,18}`).Draw(t, "raw")
		decimals := rapid.IntRange(0, 18).Draw(t, "decimals")

		original, err := swapmath.ParseAmount(raw, 18)
		if err != nil {
			t.Fatalf("parse(%q): %v", raw, err)
		}

		truncated, err := swapmath.ParseAmount(swapmath.TruncateDecimalString(raw, decimals), 18)
		if err != nil {
			t.Fatalf("parse truncated(%q): %v", raw, err)
		}

		if truncated.GT(original) {
			t.Fatalf("truncate(%q, %d) rounded up", raw, decimals)
		}
	})
}

func TestFormatAmountParsesBack(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		amount := sdkmath.NewIntFromUint64(rapid.Uint64().Draw(t, "amount"))
		decimals := rapid.IntRange(0, 18).Draw(t, "decimals")

		parsed, err := swapmath.ParseAmount(swapmath.FormatAmount(amount, decimals), decimals)
		if err != nil {
			t.Fatalf("parse(format(%s, %d)): %v", amount, decimals, err)
		}

		if !parsed.Equal(amount) {
			t.Fatalf("parse(format(%s, %d)) = %s", amount, decimals, parsed)
		}
	})
}
