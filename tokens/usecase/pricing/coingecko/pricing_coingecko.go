package coingeckopricing

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/stableswap/sqs/domain"
	"github.com/stableswap/sqs/domain/cache"
	"github.com/stableswap/sqs/sqsutil/sqshttp"
)

// coingeckoPriceResponse maps coingecko ID to quote currency to price.
// Prices are decoded as json.Number to avoid float rounding.
type coingeckoPriceResponse map[string]map[string]json.Number

type coingeckoPricing struct {
	client        *http.Client
	cache         *cache.Cache
	cacheExpiryNs time.Duration
	quoteCurrency string
	coingeckoUrl  string
}

var _ domain.PricingSource = &coingeckoPricing{}

const defaultRequestTimeout = 10 * time.Second

// New returns a USD pricing source backed by the coingecko simple price endpoint.
func New(config domain.PricingConfig) domain.PricingSource {
	return &coingeckoPricing{
		client:        &http.Client{Timeout: defaultRequestTimeout},
		cache:         cache.New(),
		cacheExpiryNs: time.Duration(config.CacheExpiryMs) * time.Millisecond,
		quoteCurrency: config.CoingeckoQuoteCurrency,
		coingeckoUrl:  config.CoingeckoUrl,
	}
}

// GetPrice implements domain.PricingSource.
func (c *coingeckoPricing) GetPrice(ctx context.Context, token domain.Token) (osmomath.Dec, error) {
	prices, err := c.GetPrices(ctx, []domain.Token{token})
	if err != nil {
		return osmomath.Dec{}, err
	}

	price, ok := prices[token.Symbol]
	if !ok {
		return osmomath.Dec{}, fmt.Errorf("price not found for token (%s) with coingecko ID (%s)", token.Symbol, token.CoingeckoID)
	}

	return price, nil
}

// GetPrices implements domain.PricingSource.
// Cached prices are served from the cache. The rest are fetched in a single request.
// Tokens without a coingecko ID are omitted.
func (c *coingeckoPricing) GetPrices(ctx context.Context, tokens []domain.Token) (map[string]osmomath.Dec, error) {
	prices := make(map[string]osmomath.Dec, len(tokens))

	missingByID := make(map[string][]string)
	missingIDs := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if token.CoingeckoID == "" {
			continue
		}

		cacheKey := domain.FormatPricingCacheKey(token.Symbol, c.quoteCurrency)
		if cachedValue, found := c.cache.Get(cacheKey); found {
			// Cast cached value to correct type.
			cachedPrice, ok := cachedValue.(osmomath.Dec)
			if !ok {
				return nil, fmt.Errorf("invalid type cached in pricing, expected Dec, got (%T)", cachedValue)
			}

			domain.SQSPricingCoingeckoCacheHitsCounter.Inc()
			prices[token.Symbol] = cachedPrice
			continue
		}

		domain.SQSPricingCoingeckoCacheMissesCounter.Inc()

		if _, ok := missingByID[token.CoingeckoID]; !ok {
			missingIDs = append(missingIDs, token.CoingeckoID)
		}
		missingByID[token.CoingeckoID] = append(missingByID[token.CoingeckoID], token.Symbol)
	}

	if len(missingIDs) == 0 {
		return prices, nil
	}

	fetched, err := c.fetchPrices(ctx, missingIDs)
	if err != nil {
		return nil, err
	}

	for coingeckoID, price := range fetched {
		for _, symbol := range missingByID[coingeckoID] {
			c.cache.Set(domain.FormatPricingCacheKey(symbol, c.quoteCurrency), price, c.cacheExpiryNs)
			prices[symbol] = price
		}
	}

	return prices, nil
}

// fetchPrices fetches the prices of the given coingecko IDs in the configured quote currency.
// IDs missing from the response are omitted.
func (c *coingeckoPricing) fetchPrices(ctx context.Context, coingeckoIDs []string) (map[string]osmomath.Dec, error) {
	query := url.Values{}
	query.Set("ids", strings.Join(coingeckoIDs, ","))
	query.Set("vs_currencies", c.quoteCurrency)

	response, err := sqshttp.Get[coingeckoPriceResponse](ctx, c.client, c.coingeckoUrl, "?"+query.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to get price from coingecko: %w", err)
	}

	prices := make(map[string]osmomath.Dec, len(coingeckoIDs))
	for _, coingeckoID := range coingeckoIDs {
		rawPrice, ok := (*response)[coingeckoID][c.quoteCurrency]
		if !ok {
			continue
		}

		price, err := ParsePrice(rawPrice)
		if err != nil {
			return nil, fmt.Errorf("failed to parse price (%s) for coingecko ID (%s): %w", rawPrice, coingeckoID, err)
		}

		prices[coingeckoID] = price
	}

	return prices, nil
}

// ParsePrice converts a JSON number, including exponent notation, into an 18-decimal fixed point
// value truncated toward zero.
func ParsePrice(number json.Number) (osmomath.Dec, error) {
	rat, ok := new(big.Rat).SetString(number.String())
	if !ok {
		return osmomath.Dec{}, fmt.Errorf("invalid number (%s)", number)
	}

	if rat.Sign() < 0 {
		return osmomath.Dec{}, fmt.Errorf("negative price (%s)", number)
	}

	scaled := new(big.Int).Mul(rat.Num(), osmomath.NewInt(1_000_000_000_000_000_000).BigInt())
	scaled.Quo(scaled, rat.Denom())

	return osmomath.NewDecFromBigIntWithPrec(scaled, osmomath.DecPrecision), nil
}
