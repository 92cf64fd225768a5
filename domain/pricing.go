package domain

import (
	"context"
	"fmt"

	"github.com/osmosis-labs/osmosis/osmomath"
)

// PricingConfig is the config for USD token pricing.
type PricingConfig struct {
	// The number of milliseconds to cache the pricing data for.
	CacheExpiryMs int `mapstructure:"cache-expiry-ms"`
	// RefetchIntervalSecs is the polling interval of the price lookup.
	RefetchIntervalSecs int `mapstructure:"refetch-interval-secs"`

	CoingeckoUrl           string `mapstructure:"coingecko-url"`
	CoingeckoQuoteCurrency string `mapstructure:"coingecko-quote-currency"`
}

// PricingSource returns USD prices of tokens.
// Prices are only used for display and price impact, never for execution guards.
type PricingSource interface {
	// GetPrice returns the USD price of the token.
	GetPrice(ctx context.Context, token Token) (osmomath.Dec, error)
	// GetPrices returns the USD prices of the tokens keyed by symbol.
	// Tokens without a price are omitted.
	GetPrices(ctx context.Context, tokens []Token) (map[string]osmomath.Dec, error)
}

// TVLSource returns the USD TVL of every known pool.
// The result may be partial.
type TVLSource interface {
	GetPoolTVLs(ctx context.Context) (PoolTVLMap, error)
}

// FormatPricingCacheKey returns the cache key of a token price.
func FormatPricingCacheKey(symbol string, quoteCurrency string) string {
	return fmt.Sprintf("%s/%s", symbol, quoteCurrency)
}
