package mvc

import (
	"context"
	"time"

	"github.com/stableswap/sqs/domain"
	"github.com/stableswap/sqs/swapmath"
)

// QuoteUsecase computes one-shot quotes through the ledger.
type QuoteUsecase interface {
	// GetQuote quotes swapping tokenIn to the destination token under the default slippage.
	GetQuote(ctx context.Context, tokenIn domain.TokenAmount, destination string) (domain.Quote, error)
}

// SwapUsecase is a single swap session.
// Setters never block on the ledger: quotes are fetched asynchronously after a quiet period.
type SwapUsecase interface {
	// SetFromToken selects the token to swap from.
	SetFromToken(ctx context.Context, symbol string) error
	// SetToToken selects the token to swap to.
	SetToToken(ctx context.Context, symbol string) error
	// ReverseDirection swaps the from and to tokens, seeding the input with the last quoted amount.
	ReverseDirection(ctx context.Context) error
	// SetFromAmount stores the raw input and schedules a debounced quote.
	SetFromAmount(ctx context.Context, raw string)
	// QuoteNow cancels any pending debounced quote and quotes the current input synchronously.
	QuoteNow(ctx context.Context) error
	// SetSlippage sets the slippage tolerance used by Confirm.
	SetSlippage(slippage swapmath.Slippage) error
	// SetInfiniteApproval sets whether to approve the max amount instead of the exact spend amount.
	SetInfiniteApproval(infinite bool)
	// SetTransactionDeadline sets the execute deadline in minutes from confirmation.
	SetTransactionDeadline(minutes int) error
	// Confirm approves if needed and executes the swap for the current quote.
	Confirm(ctx context.Context) (domain.SwapResult, error)
	// Snapshot returns a read-only copy of the session state.
	Snapshot() domain.SwapState
	// Close cancels any pending quote.
	Close()
}

// TxOrchestrator sequences allowance, approval and execute calls.
type TxOrchestrator interface {
	// Confirm runs the swap request to a confirmed receipt.
	Confirm(ctx context.Context, request domain.SwapRequest) (domain.SwapResult, error)
	// LastCompletedAt returns the time of the last successful swap. Zero if none.
	LastCompletedAt() time.Time
}
