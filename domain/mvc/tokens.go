package mvc

import (
	"context"

	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/stableswap/sqs/domain"
)

// TokensUsecase defines an interface for the tokens usecase.
type TokensUsecase interface {
	// GetToken returns the token by symbol.
	GetToken(symbol string) (domain.Token, error)
	// GetTokens returns all tokens in registry order.
	GetTokens() []domain.Token
	// GetPrice returns the USD price of the token.
	GetPrice(ctx context.Context, symbol string) (osmomath.Dec, error)
	// GetPrices returns the USD prices of the given tokens keyed by symbol.
	// Tokens without a price are omitted.
	GetPrices(ctx context.Context, symbols []string) (map[string]osmomath.Dec, error)
	// ComputeValueUSD returns the USD value of a token-native amount.
	ComputeValueUSD(ctx context.Context, symbol string, amount osmomath.Int) (osmomath.Dec, error)
}
