package domain

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmomath"
)

// MaxTokenDecimals is the largest token precision supported by the 18-decimal fixed point space.
const MaxTokenDecimals = 18

// Token represents the token's domain model.
// Tokens are static configuration: created once at startup and never mutated.
type Token struct {
	// Symbol is the unique human readable symbol.
	Symbol string `json:"symbol"`
	// Decimals is the on-chain precision of the token.
	Decimals int `json:"decimals"`
	// Addresses maps chain ID to the token contract address on that chain.
	Addresses map[uint64]common.Address `json:"addresses"`
	// IsLPToken is true if the token is a pool share token.
	IsLPToken bool `json:"is_lp_token"`
	// CoingeckoID is the identifier used to fetch the USD price.
	CoingeckoID string `json:"coingecko_id"`
}

// Address returns the token address on the given chain.
func (t Token) Address(chainID uint64) (common.Address, bool) {
	address, ok := t.Addresses[chainID]
	return address, ok
}

// TokenAmount is a token-native integer amount tagged with the token symbol.
type TokenAmount struct {
	Symbol string       `json:"symbol"`
	Amount osmomath.Int `json:"amount"`
}

// NewTokenAmount returns a new token amount.
func NewTokenAmount(symbol string, amount osmomath.Int) TokenAmount {
	return TokenAmount{
		Symbol: symbol,
		Amount: amount,
	}
}
