package swapmath

import (
	"strings"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/stableswap/sqs/domain"
)

// SlippageSelector selects a slippage preset or a custom value.
type SlippageSelector int

const (
	// SlippageOneTenth is a 0.1% tolerance.
	SlippageOneTenth SlippageSelector = iota
	// SlippageOne is a 1% tolerance.
	SlippageOne
	// SlippageCustom uses the user supplied fraction.
	SlippageCustom
)

var (
	oneTenthPercent = osmomath.NewDecWithPrec(1, 3)
	onePercent      = osmomath.NewDecWithPrec(1, 2)
)

// Slippage is the user tolerated deviation between a quoted amount and the execution guard.
type Slippage struct {
	Selected SlippageSelector
	// Custom is a fraction in [0, 1). Only read when Selected is SlippageCustom.
	Custom osmomath.Dec
}

// DefaultSlippage is the 0.1% preset.
var DefaultSlippage = Slippage{Selected: SlippageOneTenth}

// NewCustomSlippage returns a custom slippage after validating the fraction.
func NewCustomSlippage(fraction osmomath.Dec) (Slippage, error) {
	slippage := Slippage{Selected: SlippageCustom, Custom: fraction}
	if _, err := slippage.Fraction(); err != nil {
		return Slippage{}, err
	}
	return slippage, nil
}

// ParseSlippage parses "0.1%", "1%" or a custom fraction such as "0.005".
// An empty string resolves to the default preset.
func ParseSlippage(raw string) (Slippage, error) {
	switch strings.TrimSpace(raw) {
	case "", "0.1%":
		return Slippage{Selected: SlippageOneTenth}, nil
	case "1%":
		return Slippage{Selected: SlippageOne}, nil
	}

	fraction, err := osmomath.NewDecFromStr(strings.TrimSpace(raw))
	if err != nil {
		return Slippage{}, domain.ConfigurationError{Field: "slippage", Reason: err.Error()}
	}

	return NewCustomSlippage(fraction)
}

// Fraction resolves the slippage to a fixed point fraction.
func (s Slippage) Fraction() (osmomath.Dec, error) {
	switch s.Selected {
	case SlippageOneTenth:
		return oneTenthPercent, nil
	case SlippageOne:
		return onePercent, nil
	case SlippageCustom:
		if s.Custom.IsNil() || s.Custom.IsNegative() || s.Custom.GTE(osmomath.OneDec()) {
			return osmomath.Dec{}, domain.ConfigurationError{Field: "slippage", Reason: "custom slippage must be in [0, 1)"}
		}
		return s.Custom, nil
	default:
		return osmomath.Dec{}, domain.ConfigurationError{Field: "slippage", Reason: "unknown slippage selector"}
	}
}

// SubtractSlippage returns amount * (1 - slippage) truncated toward zero.
// It builds minimum received guards.
func SubtractSlippage(amount osmomath.Int, slippage osmomath.Dec) osmomath.Int {
	return applyFactor(amount, osmomath.OneDec().Sub(slippage))
}

// AddSlippage returns amount * (1 + slippage) truncated toward zero.
// It builds maximum spent guards.
func AddSlippage(amount osmomath.Int, slippage osmomath.Dec) osmomath.Int {
	return applyFactor(amount, osmomath.OneDec().Add(slippage))
}

func applyFactor(amount osmomath.Int, factor osmomath.Dec) osmomath.Int {
	if amount.IsNil() {
		return osmomath.ZeroInt()
	}
	return sdkmath.LegacyNewDecFromInt(amount).MulTruncate(factor).TruncateInt()
}

// Deadline returns the execute deadline the given number of minutes after now.
func Deadline(now time.Time, minutes int) time.Time {
	return now.Add(time.Duration(minutes) * time.Minute)
}
