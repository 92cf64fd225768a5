package swapmath_test

import (
	"testing"

	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/stretchr/testify/require"

	"github.com/stableswap/sqs/domain"
	"github.com/stableswap/sqs/swapmath"
)

func TestParseAmount(t *testing.T) {
	oneEth, ok := osmomath.NewIntFromString("1000000000000000000")
	require.True(t, ok)
	tenthEth, ok := osmomath.NewIntFromString("100000000000000000")
	require.True(t, ok)
	maxUint256, ok := osmomath.NewIntFromString("115792089237316195423570985008687907853269984665640564039457584007913129639935")
	require.True(t, ok)

	tests := []struct {
		name     string
		raw      string
		decimals int

		expectedAmount osmomath.Int
		expectErr      bool
	}{
		{name: "truncates extra fractional digits", raw: "12.3456789", decimals: 6, expectedAmount: osmomath.NewInt(12345678)},
		{name: "integer with 18 decimals", raw: "1", decimals: 18, expectedAmount: oneEth},
		{name: "leading point", raw: ".5", decimals: 6, expectedAmount: osmomath.NewInt(500000)},
		{name: "trailing point", raw: "5.", decimals: 6, expectedAmount: osmomath.NewInt(5000000)},
		{name: "zero", raw: "0", decimals: 6, expectedAmount: osmomath.ZeroInt()},
		{name: "zero decimals token", raw: "12.5", decimals: 0, expectedAmount: osmomath.NewInt(12)},
		{name: "surrounding spaces", raw: " 1.25 ", decimals: 2, expectedAmount: osmomath.NewInt(125)},
		{name: "below one", raw: "0.5", decimals: 6, expectedAmount: osmomath.NewInt(500000)},
		{name: "below one with 18 decimals", raw: "0.1", decimals: 18, expectedAmount: tenthEth},
		{name: "below one with 2 decimals", raw: "0.25", decimals: 2, expectedAmount: osmomath.NewInt(25)},
		{name: "fraction with digit 8", raw: "0.08", decimals: 6, expectedAmount: osmomath.NewInt(80000)},
		{name: "fraction with digit 9", raw: "0.9", decimals: 6, expectedAmount: osmomath.NewInt(900000)},
		{name: "leading zero integer", raw: "012", decimals: 0, expectedAmount: osmomath.NewInt(12)},
		{name: "leading zeros with fraction", raw: "007.5", decimals: 1, expectedAmount: osmomath.NewInt(75)},
		{name: "max uint256", raw: maxUint256.String(), decimals: 0, expectedAmount: maxUint256},
		{name: "above uint256", raw: "115792089237316195423570985008687907853269984665640564039457584007913129639936", decimals: 0, expectErr: true},
		{name: "empty", raw: "", decimals: 6, expectErr: true},
		{name: "letters", raw: "abc", decimals: 6, expectErr: true},
		{name: "negative", raw: "-1", decimals: 6, expectErr: true},
		{name: "two points", raw: "1.2.3", decimals: 6, expectErr: true},
		{name: "exponent", raw: "1e5", decimals: 6, expectErr: true},
		{name: "lone point", raw: ".", decimals: 6, expectErr: true},
		{name: "precision above 18", raw: "1", decimals: 19, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, err := swapmath.ParseAmount(tt.raw, tt.decimals)
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expectedAmount.String(), amount.String())
		})
	}
}

func TestParseAmount_ErrorTypes(t *testing.T) {
	_, err := swapmath.ParseAmount("abc", 6)
	require.ErrorAs(t, err, &domain.InvalidAmountError{})

	_, err = swapmath.ParseAmount("1000000000000000000000000000000000000000000000000000000000000000000000000000000", 18)
	require.ErrorAs(t, err, &domain.InvalidAmountError{})

	_, err = swapmath.ParseAmount("1", 42)
	require.ErrorAs(t, err, &domain.ConfigurationError{})
}

func TestFormatAmount(t *testing.T) {
	quoted, ok := osmomath.NewIntFromString("12345678000000000000")
	require.True(t, ok)

	tests := []struct {
		name     string
		amount   osmomath.Int
		decimals int
		expected string
	}{
		{name: "6 decimals", amount: osmomath.NewInt(12345678), decimals: 6, expected: "12.345678"},
		{name: "18 decimals with trailing zeros", amount: quoted, decimals: 18, expected: "12.345678"},
		{name: "below one", amount: osmomath.NewInt(5), decimals: 6, expected: "0.000005"},
		{name: "whole amount", amount: osmomath.NewInt(1000000), decimals: 6, expected: "1"},
		{name: "zero", amount: osmomath.ZeroInt(), decimals: 6, expected: "0"},
		{name: "zero decimals", amount: osmomath.NewInt(123), decimals: 0, expected: "123"},
		{name: "nil", amount: osmomath.Int{}, decimals: 6, expected: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, swapmath.FormatAmount(tt.amount, tt.decimals))
		})
	}
}

func TestTruncateDecimalString(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		decimals int
		expected string
	}{
		{name: "truncates to lower precision", raw: "12.3456789", decimals: 6, expected: "12.345678"},
		{name: "never rounds up", raw: "0.9999999", decimals: 6, expected: "0.999999"},
		{name: "already within precision", raw: "12.34", decimals: 6, expected: "12.34"},
		{name: "zero decimals drops point", raw: "12.9", decimals: 0, expected: "12"},
		{name: "no point", raw: "12", decimals: 2, expected: "12"},
		{name: "trailing point kept", raw: "12.", decimals: 2, expected: "12."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, swapmath.TruncateDecimalString(tt.raw, tt.decimals))
		})
	}
}

func TestFractionalDigits(t *testing.T) {
	require.Equal(t, 0, swapmath.FractionalDigits("12"))
	require.Equal(t, 0, swapmath.FractionalDigits("12."))
	require.Equal(t, 7, swapmath.FractionalDigits("12.3456789"))
}

func TestIsZeroOrInvalidAmount(t *testing.T) {
	require.True(t, swapmath.IsZeroOrInvalidAmount("", 6))
	require.True(t, swapmath.IsZeroOrInvalidAmount("0.0", 6))
	require.True(t, swapmath.IsZeroOrInvalidAmount("0.0000001", 6))
	require.True(t, swapmath.IsZeroOrInvalidAmount("abc", 6))
	require.False(t, swapmath.IsZeroOrInvalidAmount("0.000001", 6))
}
