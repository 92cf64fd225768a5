package mocks

import (
	"context"

	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/stableswap/sqs/domain"
	"github.com/stableswap/sqs/domain/mvc"
)

var _ mvc.TokensUsecase = &TokensUsecaseMock{}

// TokensUsecaseMock is a mock implementation of the TokensUsecase interface
type TokensUsecaseMock struct {
	GetTokenFunc        func(symbol string) (domain.Token, error)
	GetTokensFunc       func() []domain.Token
	GetPriceFunc        func(ctx context.Context, symbol string) (osmomath.Dec, error)
	GetPricesFunc       func(ctx context.Context, symbols []string) (map[string]osmomath.Dec, error)
	ComputeValueUSDFunc func(ctx context.Context, symbol string, amount osmomath.Int) (osmomath.Dec, error)
}

func (m *TokensUsecaseMock) GetToken(symbol string) (domain.Token, error) {
	if m.GetTokenFunc != nil {
		return m.GetTokenFunc(symbol)
	}
	panic("unimplemented")
}

func (m *TokensUsecaseMock) GetTokens() []domain.Token {
	if m.GetTokensFunc != nil {
		return m.GetTokensFunc()
	}
	return nil
}

func (m *TokensUsecaseMock) GetPrice(ctx context.Context, symbol string) (osmomath.Dec, error) {
	if m.GetPriceFunc != nil {
		return m.GetPriceFunc(ctx, symbol)
	}
	panic("unimplemented")
}

func (m *TokensUsecaseMock) GetPrices(ctx context.Context, symbols []string) (map[string]osmomath.Dec, error) {
	if m.GetPricesFunc != nil {
		return m.GetPricesFunc(ctx, symbols)
	}
	panic("unimplemented")
}

func (m *TokensUsecaseMock) ComputeValueUSD(ctx context.Context, symbol string, amount osmomath.Int) (osmomath.Dec, error) {
	if m.ComputeValueUSDFunc != nil {
		return m.ComputeValueUSDFunc(ctx, symbol, amount)
	}
	panic("unimplemented")
}
