package mocks

import (
	"context"

	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/stableswap/sqs/domain"
)

var _ domain.PricingSource = &PricingSourceMock{}

// PricingSourceMock is a mock implementation of domain.PricingSource.
type PricingSourceMock struct {
	GetPriceFunc  func(ctx context.Context, token domain.Token) (osmomath.Dec, error)
	GetPricesFunc func(ctx context.Context, tokens []domain.Token) (map[string]osmomath.Dec, error)
}

// GetPrice implements domain.PricingSource.
func (m *PricingSourceMock) GetPrice(ctx context.Context, token domain.Token) (osmomath.Dec, error) {
	if m.GetPriceFunc != nil {
		return m.GetPriceFunc(ctx, token)
	}
	panic("unimplemented")
}

// GetPrices implements domain.PricingSource.
func (m *PricingSourceMock) GetPrices(ctx context.Context, tokens []domain.Token) (map[string]osmomath.Dec, error) {
	if m.GetPricesFunc != nil {
		return m.GetPricesFunc(ctx, tokens)
	}
	panic("unimplemented")
}

// NewConstantPricingSource returns a pricing source pricing every token at price.
func NewConstantPricingSource(price osmomath.Dec) *PricingSourceMock {
	return &PricingSourceMock{
		GetPriceFunc: func(ctx context.Context, token domain.Token) (osmomath.Dec, error) {
			return price, nil
		},
		GetPricesFunc: func(ctx context.Context, tokens []domain.Token) (map[string]osmomath.Dec, error) {
			prices := make(map[string]osmomath.Dec, len(tokens))
			for _, token := range tokens {
				prices[token.Symbol] = price
			}
			return prices, nil
		},
	}
}
