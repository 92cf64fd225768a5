package mocks

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/stableswap/sqs/domain"
)

var _ domain.Ledger = &LedgerMock{}

// LedgerMock is a mock implementation of domain.Ledger.
type LedgerMock struct {
	QuoteDirectFunc     func(ctx context.Context, pool common.Address, i, j int, amountIn osmomath.Int) (osmomath.Int, error)
	QuoteUnderlyingFunc func(ctx context.Context, metaSwap common.Address, i, j int, amountIn osmomath.Int) (osmomath.Int, error)
	QuoteComposedFunc   func(ctx context.Context, tokenIn, tokenOut common.Address, amountIn osmomath.Int) (osmomath.Int, error)
	AllowanceFunc       func(ctx context.Context, token, owner, spender common.Address) (osmomath.Int, error)
	ApproveFunc         func(ctx context.Context, token, spender common.Address, amount osmomath.Int) (domain.Receipt, error)
	ExecuteSwapFunc     func(ctx context.Context, swapType domain.SwapType, args domain.ExecuteSwapArgs) (domain.Receipt, error)

	OwnerAddress common.Address
}

// QuoteDirect implements domain.Ledger.
func (m *LedgerMock) QuoteDirect(ctx context.Context, pool common.Address, i, j int, amountIn osmomath.Int) (osmomath.Int, error) {
	if m.QuoteDirectFunc != nil {
		return m.QuoteDirectFunc(ctx, pool, i, j, amountIn)
	}
	panic("unimplemented")
}

// QuoteUnderlying implements domain.Ledger.
func (m *LedgerMock) QuoteUnderlying(ctx context.Context, metaSwap common.Address, i, j int, amountIn osmomath.Int) (osmomath.Int, error) {
	if m.QuoteUnderlyingFunc != nil {
		return m.QuoteUnderlyingFunc(ctx, metaSwap, i, j, amountIn)
	}
	panic("unimplemented")
}

// QuoteComposed implements domain.Ledger.
func (m *LedgerMock) QuoteComposed(ctx context.Context, tokenIn, tokenOut common.Address, amountIn osmomath.Int) (osmomath.Int, error) {
	if m.QuoteComposedFunc != nil {
		return m.QuoteComposedFunc(ctx, tokenIn, tokenOut, amountIn)
	}
	panic("unimplemented")
}

// Allowance implements domain.Ledger.
func (m *LedgerMock) Allowance(ctx context.Context, token, owner, spender common.Address) (osmomath.Int, error) {
	if m.AllowanceFunc != nil {
		return m.AllowanceFunc(ctx, token, owner, spender)
	}
	panic("unimplemented")
}

// Approve implements domain.Ledger.
func (m *LedgerMock) Approve(ctx context.Context, token, spender common.Address, amount osmomath.Int) (domain.Receipt, error) {
	if m.ApproveFunc != nil {
		return m.ApproveFunc(ctx, token, spender, amount)
	}
	panic("unimplemented")
}

// ExecuteSwap implements domain.Ledger.
func (m *LedgerMock) ExecuteSwap(ctx context.Context, swapType domain.SwapType, args domain.ExecuteSwapArgs) (domain.Receipt, error) {
	if m.ExecuteSwapFunc != nil {
		return m.ExecuteSwapFunc(ctx, swapType, args)
	}
	panic("unimplemented")
}

// Owner implements domain.Ledger.
func (m *LedgerMock) Owner() common.Address {
	return m.OwnerAddress
}
