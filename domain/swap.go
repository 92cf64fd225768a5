package domain

import (
	"fmt"

	"github.com/osmosis-labs/osmosis/osmomath"
)

// SwapType classifies how two tokens can be exchanged.
type SwapType int

const (
	// SwapTypeInvalid means no route exists between the tokens.
	SwapTypeInvalid SwapType = iota
	// SwapTypeMetaToMeta swaps between two meta pools sharing the same base pool.
	SwapTypeMetaToMeta
	// SwapTypeStablesToMeta swaps between a meta pool token and a token of its base pool.
	SwapTypeStablesToMeta
	// SwapTypeDirect swaps within a single pool.
	SwapTypeDirect
)

// Rank returns the preference rank of the swap type. Higher is preferred.
// INVALID < META_TO_META < STABLES_TO_META < DIRECT.
func (t SwapType) Rank() int {
	switch t {
	case SwapTypeDirect:
		return 3
	case SwapTypeStablesToMeta:
		return 2
	case SwapTypeMetaToMeta:
		return 1
	default:
		return 0
	}
}

func (t SwapType) String() string {
	switch t {
	case SwapTypeDirect:
		return "DIRECT"
	case SwapTypeStablesToMeta:
		return "STABLES_TO_META"
	case SwapTypeMetaToMeta:
		return "META_TO_META"
	default:
		return "INVALID"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t SwapType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// SwapSide is one side of a resolved swap.
// PoolName and TokenIndex are either both set or both nil.
type SwapSide struct {
	Symbol     string  `json:"symbol"`
	PoolName   *string `json:"pool_name,omitempty"`
	TokenIndex *int    `json:"token_index,omitempty"`
}

// NewResolvedSwapSide returns a side resolved against the given pool index.
func NewResolvedSwapSide(symbol, poolName string, tokenIndex int) SwapSide {
	return SwapSide{
		Symbol:     symbol,
		PoolName:   &poolName,
		TokenIndex: &tokenIndex,
	}
}

// IsResolved returns true if both the pool name and the token index are set.
func (s SwapSide) IsResolved() bool {
	return s.PoolName != nil && s.TokenIndex != nil
}

// SwapData describes how to swap from one token to another.
type SwapData struct {
	From SwapSide `json:"from"`
	To   SwapSide `json:"to"`
	Type SwapType `json:"type"`
	// Route is the token path, including the base LP token for meta to meta swaps.
	Route []string `json:"route"`
	// Pool is the pool used for bookkeeping: the shared pool for direct swaps,
	// the meta pool for stables to meta swaps and the preferred primary for meta to meta swaps.
	Pool string `json:"pool,omitempty"`
}

// NewInvalidSwapData returns unresolved swap data between the two tokens.
func NewInvalidSwapData(from, to string) SwapData {
	return SwapData{
		From:  SwapSide{Symbol: from},
		To:    SwapSide{Symbol: to},
		Type:  SwapTypeInvalid,
		Route: []string{},
	}
}

// Validate enforces that the sides are resolved if and only if the swap type is valid.
func (d SwapData) Validate() error {
	fromResolved, toResolved := d.From.IsResolved(), d.To.IsResolved()
	fromPartial := (d.From.PoolName == nil) != (d.From.TokenIndex == nil)
	toPartial := (d.To.PoolName == nil) != (d.To.TokenIndex == nil)

	if fromPartial || toPartial {
		return UnresolvedRouteError{From: d.From.Symbol, To: d.To.Symbol}
	}

	if d.Type == SwapTypeInvalid {
		if fromResolved || toResolved {
			return fmt.Errorf("invalid swap from (%s) to (%s) must not have resolved sides", d.From.Symbol, d.To.Symbol)
		}
		return nil
	}

	if !fromResolved || !toResolved {
		return UnresolvedRouteError{From: d.From.Symbol, To: d.To.Symbol}
	}

	return nil
}

// IsExecutable returns true if the swap can be quoted and executed.
func (d SwapData) IsExecutable() bool {
	return d.Type != SwapTypeInvalid && d.From.IsResolved() && d.To.IsResolved()
}

// SwapState is a read-only snapshot of a swap session.
type SwapState struct {
	FromSymbol    string       `json:"from_symbol"`
	FromAmountRaw string       `json:"from_amount_raw"`
	FromValueUSD  osmomath.Dec `json:"from_value_usd"`

	ToSymbol       string       `json:"to_symbol"`
	ToAmountQuoted osmomath.Int `json:"to_amount_quoted"`
	ToValueUSD     osmomath.Dec `json:"to_value_usd"`

	ExchangeRate      osmomath.Dec `json:"exchange_rate"`
	PriceImpact       osmomath.Dec `json:"price_impact"`
	IsHighPriceImpact bool         `json:"is_high_price_impact"`

	SwapType        SwapType   `json:"swap_type"`
	CandidateRoutes []SwapData `json:"candidate_routes"`
	// SwapData is the candidate reaching ToSymbol. Nil if none is selected.
	SwapData *SwapData `json:"swap_data,omitempty"`
}

// SwapResult is the outcome of a confirmed swap.
type SwapResult struct {
	Receipt      Receipt      `json:"receipt"`
	AmountIn     osmomath.Int `json:"amount_in"`
	MinAmountOut osmomath.Int `json:"min_amount_out"`
}
