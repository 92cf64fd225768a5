package swapmath

import (
	"math/big"
	"strings"

	sdkmath "cosmossdk.io/math"
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/stableswap/sqs/domain"
)

// ParseAmount converts a decimal string into token-native units.
// Fractional digits beyond the token precision are truncated toward zero.
func ParseAmount(raw string, decimals int) (osmomath.Int, error) {
	if decimals < 0 || decimals > domain.MaxTokenDecimals {
		return osmomath.Int{}, domain.ConfigurationError{Field: "decimals", Reason: "must be in [0, 18]"}
	}

	integerPart, fractionalPart, err := splitDecimalString(raw)
	if err != nil {
		return osmomath.Int{}, err
	}

	if len(fractionalPart) > decimals {
		fractionalPart = fractionalPart[:decimals]
	}
	fractionalPart += strings.Repeat("0", decimals-len(fractionalPart))

	// Base 10 explicitly: a leading zero must not be read as an octal prefix.
	amount, ok := new(big.Int).SetString(integerPart+fractionalPart, 10)
	if !ok || amount.BitLen() > sdkmath.MaxBitLen {
		return osmomath.Int{}, domain.InvalidAmountError{Amount: raw, Reason: "out of bounds"}
	}

	return sdkmath.NewIntFromBigInt(amount), nil
}

// FormatAmount converts a token-native amount into an exact decimal string
// with trailing fractional zeros trimmed.
func FormatAmount(amount osmomath.Int, decimals int) string {
	if amount.IsNil() {
		return "0"
	}

	digits := amount.BigInt().String()
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}

	if decimals <= 0 {
		return sign + digits
	}

	if len(digits) <= decimals {
		digits = strings.Repeat("0", decimals-len(digits)+1) + digits
	}

	integerPart := digits[:len(digits)-decimals]
	fractionalPart := strings.TrimRight(digits[len(digits)-decimals:], "0")
	if fractionalPart == "" {
		return sign + integerPart
	}

	return sign + integerPart + "." + fractionalPart
}

// TruncateDecimalString drops fractional digits beyond decimals, rounding toward zero.
// The integer part is kept as typed. Repeated truncation is a no-op.
func TruncateDecimalString(raw string, decimals int) string {
	pointIndex := strings.IndexByte(raw, '.')
	if pointIndex < 0 {
		return raw
	}

	if decimals <= 0 {
		return raw[:pointIndex]
	}

	if len(raw)-pointIndex-1 <= decimals {
		return raw
	}

	return raw[:pointIndex+1+decimals]
}

// FractionalDigits returns the number of digits after the decimal point.
func FractionalDigits(raw string) int {
	pointIndex := strings.IndexByte(raw, '.')
	if pointIndex < 0 {
		return 0
	}
	return len(raw) - pointIndex - 1
}

// IsZeroOrInvalidAmount returns true if the string does not parse to a positive amount.
func IsZeroOrInvalidAmount(raw string, decimals int) bool {
	amount, err := ParseAmount(raw, decimals)
	return err != nil || !amount.IsPositive()
}

func splitDecimalString(raw string) (string, string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", "", domain.InvalidAmountError{Amount: raw, Reason: "empty"}
	}

	integerPart, fractionalPart, hasPoint := strings.Cut(trimmed, ".")
	if hasPoint && strings.Contains(fractionalPart, ".") {
		return "", "", domain.InvalidAmountError{Amount: raw, Reason: "more than one decimal point"}
	}

	if integerPart == "" && fractionalPart == "" {
		return "", "", domain.InvalidAmountError{Amount: raw, Reason: "no digits"}
	}

	if !isDigits(integerPart) || !isDigits(fractionalPart) {
		return "", "", domain.InvalidAmountError{Amount: raw, Reason: "must be a non-negative decimal number"}
	}

	if integerPart == "" {
		integerPart = "0"
	}

	return integerPart, fractionalPart, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
