package usecase_test

import (
	"context"
	"math/big"

	sdkmath "cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/stableswap/sqs/domain"
	"github.com/stableswap/sqs/domain/mocks"
	"github.com/stableswap/sqs/router/usecase/routertesting"
)

var (
	tokenDecimals = map[common.Address]int{
		routertesting.DAIAddress:   18,
		routertesting.USDCAddress:  6,
		routertesting.USDTAddress:  6,
		routertesting.FRAXAddress:  18,
		routertesting.ALUSDAddress: 18,
	}

	// Stables pool index order.
	stablesDecimals = []int{18, 6, 6}
	// FRAX underlying index order: FRAX, DAI, USDC, USDT.
	fraxUnderlyingDecimals = []int{18, 18, 6, 6}
)

// rescale converts an amount between token precisions at a 1:1 rate.
func rescale(amount osmomath.Int, fromDecimals, toDecimals int) osmomath.Int {
	if fromDecimals == toDecimals {
		return amount
	}

	if fromDecimals > toDecimals {
		factor := sdkmath.NewIntFromBigInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(fromDecimals-toDecimals)), nil))
		return amount.Quo(factor)
	}

	factor := sdkmath.NewIntFromBigInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(toDecimals-fromDecimals)), nil))
	return amount.Mul(factor)
}

// newParityLedger returns a ledger quoting every swap 1:1 in normalized units.
func newParityLedger() *mocks.LedgerMock {
	return &mocks.LedgerMock{
		QuoteDirectFunc: func(ctx context.Context, pool common.Address, i, j int, amountIn osmomath.Int) (osmomath.Int, error) {
			// The FRAX meta swap deposit quotes in the FRAX underlying index space.
			if pool == routertesting.FRAXMetaDepositAddress {
				return rescale(amountIn, fraxUnderlyingDecimals[i], fraxUnderlyingDecimals[j]), nil
			}
			return rescale(amountIn, stablesDecimals[i], stablesDecimals[j]), nil
		},
		QuoteUnderlyingFunc: func(ctx context.Context, metaSwap common.Address, i, j int, amountIn osmomath.Int) (osmomath.Int, error) {
			return rescale(amountIn, fraxUnderlyingDecimals[i], fraxUnderlyingDecimals[j]), nil
		},
		QuoteComposedFunc: func(ctx context.Context, tokenIn, tokenOut common.Address, amountIn osmomath.Int) (osmomath.Int, error) {
			return rescale(amountIn, tokenDecimals[tokenIn], tokenDecimals[tokenOut]), nil
		},
		OwnerAddress: common.HexToAddress("0x00000000000000000000000000000000000d0001"),
	}
}

// mustGetSwapData returns the route reaching destination.
func mustGetSwapData(routes []domain.SwapData, destination string) domain.SwapData {
	for _, swapData := range routes {
		if swapData.To.Symbol == destination {
			return swapData
		}
	}
	panic("no route to " + destination)
}

func amountOf(whole int64, decimals int) osmomath.Int {
	return rescale(osmomath.NewInt(whole), 0, decimals)
}
