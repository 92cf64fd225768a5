package usecase

import (
	"context"
	"fmt"

	"github.com/osmosis-labs/osmosis/osmomath"
	"go.uber.org/zap"

	"github.com/stableswap/sqs/domain"
	"github.com/stableswap/sqs/domain/mvc"
	"github.com/stableswap/sqs/log"
	"github.com/stableswap/sqs/sqsutil/datafetchers"
	"github.com/stableswap/sqs/swapmath"
)

type tokensUseCase struct {
	registry *domain.Registry

	// Polled prices keyed by symbol. Optional.
	priceFetcher datafetchers.MapFetcher[string, osmomath.Dec]
	// Queried directly when the polled price is missing or stale.
	pricingSource domain.PricingSource

	logger log.Logger
}

var _ mvc.TokensUsecase = &tokensUseCase{}

// NewTokensUsecase will create a new tokens use case object.
// priceFetcher may be nil, in which case every price is read from the pricing source.
func NewTokensUsecase(registry *domain.Registry, pricingSource domain.PricingSource, priceFetcher datafetchers.MapFetcher[string, osmomath.Dec], logger log.Logger) mvc.TokensUsecase {
	if logger == nil {
		logger = &log.NoOpLogger{}
	}

	return &tokensUseCase{
		registry:      registry,
		priceFetcher:  priceFetcher,
		pricingSource: pricingSource,
		logger:        logger,
	}
}

// GetToken implements mvc.TokensUsecase.
func (t *tokensUseCase) GetToken(symbol string) (domain.Token, error) {
	return t.registry.GetToken(symbol)
}

// GetTokens implements mvc.TokensUsecase.
func (t *tokensUseCase) GetTokens() []domain.Token {
	return t.registry.GetTokens()
}

// GetPrice implements mvc.TokensUsecase.
func (t *tokensUseCase) GetPrice(ctx context.Context, symbol string) (osmomath.Dec, error) {
	token, err := t.registry.GetToken(symbol)
	if err != nil {
		return osmomath.Dec{}, err
	}

	if t.priceFetcher != nil {
		price, _, isStale, err := t.priceFetcher.GetByKey(symbol)
		if err == nil && !isStale {
			return price, nil
		}
	}

	if t.pricingSource == nil {
		return osmomath.Dec{}, fmt.Errorf("no price available for token (%s)", symbol)
	}

	price, err := t.pricingSource.GetPrice(ctx, token)
	if err != nil {
		domain.SQSPricingErrorCounter.Inc()
		return osmomath.Dec{}, err
	}

	return price, nil
}

// GetPrices implements mvc.TokensUsecase.
func (t *tokensUseCase) GetPrices(ctx context.Context, symbols []string) (map[string]osmomath.Dec, error) {
	prices := make(map[string]osmomath.Dec, len(symbols))
	for _, symbol := range symbols {
		if _, err := t.registry.GetToken(symbol); err != nil {
			return nil, err
		}

		price, err := t.GetPrice(ctx, symbol)
		if err != nil {
			t.logger.Debug("no price for token", zap.String("symbol", symbol), zap.Error(err))
			continue
		}

		prices[symbol] = price
	}

	return prices, nil
}

// ComputeValueUSD implements mvc.TokensUsecase.
func (t *tokensUseCase) ComputeValueUSD(ctx context.Context, symbol string, amount osmomath.Int) (osmomath.Dec, error) {
	token, err := t.registry.GetToken(symbol)
	if err != nil {
		return osmomath.Dec{}, err
	}

	if amount.IsNil() || amount.IsZero() {
		return osmomath.ZeroDec(), nil
	}

	price, err := t.GetPrice(ctx, symbol)
	if err != nil {
		return osmomath.Dec{}, err
	}

	return swapmath.ValueUSD(amount, token.Decimals, price)
}
