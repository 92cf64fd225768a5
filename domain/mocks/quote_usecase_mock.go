package mocks

import (
	"context"

	"github.com/stableswap/sqs/domain"
	"github.com/stableswap/sqs/domain/mvc"
)

var _ mvc.QuoteUsecase = &QuoteUsecaseMock{}

// QuoteUsecaseMock is a mock implementation of mvc.QuoteUsecase.
type QuoteUsecaseMock struct {
	GetQuoteFunc func(ctx context.Context, tokenIn domain.TokenAmount, destination string) (domain.Quote, error)
}

// GetQuote implements mvc.QuoteUsecase.
func (m *QuoteUsecaseMock) GetQuote(ctx context.Context, tokenIn domain.TokenAmount, destination string) (domain.Quote, error) {
	if m.GetQuoteFunc != nil {
		return m.GetQuoteFunc(ctx, tokenIn, destination)
	}
	panic("unimplemented")
}
