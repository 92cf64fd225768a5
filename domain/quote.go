package domain

import "github.com/osmosis-labs/osmosis/osmomath"

// Quote is a one-shot quote of swapping an exact amount in.
type Quote struct {
	AmountIn  TokenAmount `json:"amount_in"`
	AmountOut TokenAmount `json:"amount_out"`
	SwapData  SwapData    `json:"swap_data"`

	ExchangeRate      osmomath.Dec `json:"exchange_rate"`
	PriceImpact       osmomath.Dec `json:"price_impact"`
	IsHighPriceImpact bool         `json:"is_high_price_impact"`

	// MinAmountOut is the amount out guard under Slippage.
	MinAmountOut osmomath.Int `json:"min_amount_out"`
	Slippage     osmomath.Dec `json:"slippage"`
}

// SwapRequest is everything the transaction orchestrator needs to confirm a swap.
type SwapRequest struct {
	SwapData        SwapData
	AmountIn        osmomath.Int
	QuotedAmountOut osmomath.Int
	// Slippage is the resolved fraction in [0, 1).
	Slippage         osmomath.Dec
	InfiniteApproval bool
	DeadlineMinutes  int
}
