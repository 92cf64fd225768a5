package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/stretchr/testify/suite"

	"github.com/stableswap/sqs/domain"
	"github.com/stableswap/sqs/domain/mocks"
	"github.com/stableswap/sqs/log"
	"github.com/stableswap/sqs/router/usecase/routertesting"
	"github.com/stableswap/sqs/sqsutil/datafetchers"
	"github.com/stableswap/sqs/tokens/usecase"
)

type TokensUseCaseTestSuite struct {
	routertesting.RouterTestHelper
}

func TestTokensUseCaseTestSuite(t *testing.T) {
	suite.Run(t, new(TokensUseCaseTestSuite))
}

var errPricingUnavailable = errors.New("pricing unavailable")

func (s *TokensUseCaseTestSuite) TestGetToken() {
	registry := s.NewRegistry(routertesting.DefaultRegistryConfig())
	tokensUsecase := usecase.NewTokensUsecase(registry, nil, nil, &log.NoOpLogger{})

	token, err := tokensUsecase.GetToken(routertesting.USDC)
	s.Require().NoError(err)
	s.Require().Equal(6, token.Decimals)

	_, err = tokensUsecase.GetToken("UNKNOWN")
	s.Require().ErrorAs(err, &domain.TokenNotFoundError{})

	s.Require().Equal(registry.GetTokens(), tokensUsecase.GetTokens())
}

func (s *TokensUseCaseTestSuite) TestGetPrice() {
	registry := s.NewRegistry(routertesting.DefaultRegistryConfig())
	ctx := context.Background()

	fetcher := datafetchers.NewMapFetcher(func() (map[string]osmomath.Dec, error) {
		return map[string]osmomath.Dec{
			routertesting.DAI: osmomath.MustNewDecFromStr("0.999"),
		}, nil
	}, time.Minute)
	defer fetcher.Close()
	fetcher.WaitUntilFirstResult()

	pricingSource := &mocks.PricingSourceMock{
		GetPriceFunc: func(ctx context.Context, token domain.Token) (osmomath.Dec, error) {
			if token.Symbol == routertesting.USDC {
				return osmomath.OneDec(), nil
			}
			return osmomath.Dec{}, errPricingUnavailable
		},
	}

	tokensUsecase := usecase.NewTokensUsecase(registry, pricingSource, fetcher, &log.NoOpLogger{})

	s.Run("polled price", func() {
		price, err := tokensUsecase.GetPrice(ctx, routertesting.DAI)
		s.Require().NoError(err)
		s.Require().True(osmomath.MustNewDecFromStr("0.999").Equal(price))
	})

	s.Run("falls back to the pricing source", func() {
		price, err := tokensUsecase.GetPrice(ctx, routertesting.USDC)
		s.Require().NoError(err)
		s.Require().True(osmomath.OneDec().Equal(price))
	})

	s.Run("pricing source error", func() {
		_, err := tokensUsecase.GetPrice(ctx, routertesting.USDT)
		s.Require().ErrorIs(err, errPricingUnavailable)
	})

	s.Run("unknown token", func() {
		_, err := tokensUsecase.GetPrice(ctx, "UNKNOWN")
		s.Require().ErrorAs(err, &domain.TokenNotFoundError{})
	})

	s.Run("prices omit tokens without a price", func() {
		prices, err := tokensUsecase.GetPrices(ctx, []string{routertesting.DAI, routertesting.USDC, routertesting.USDT})
		s.Require().NoError(err)
		s.Require().Len(prices, 2)
		s.Require().Contains(prices, routertesting.DAI)
		s.Require().Contains(prices, routertesting.USDC)
	})
}

func (s *TokensUseCaseTestSuite) TestComputeValueUSD() {
	registry := s.NewRegistry(routertesting.DefaultRegistryConfig())
	tokensUsecase := usecase.NewTokensUsecase(registry, mocks.NewConstantPricingSource(osmomath.MustNewDecFromStr("2.5")), nil, &log.NoOpLogger{})
	ctx := context.Background()

	tests := []struct {
		name   string
		symbol string
		amount osmomath.Int

		expectErr bool
		expected  osmomath.Dec
	}{
		{
			name:     "6 decimals",
			symbol:   routertesting.USDC,
			amount:   osmomath.NewInt(12_345_678),
			expected: osmomath.MustNewDecFromStr("30.864195"),
		},
		{
			name:     "18 decimals",
			symbol:   routertesting.DAI,
			amount:   osmomath.NewInt(1_000_000_000_000_000_000),
			expected: osmomath.MustNewDecFromStr("2.5"),
		},
		{
			name:     "zero amount",
			symbol:   routertesting.DAI,
			amount:   osmomath.ZeroInt(),
			expected: osmomath.ZeroDec(),
		},
		{
			name:      "unknown token",
			symbol:    "UNKNOWN",
			amount:    osmomath.OneInt(),
			expectErr: true,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			value, err := tokensUsecase.ComputeValueUSD(ctx, tt.symbol, tt.amount)
			if tt.expectErr {
				s.Require().Error(err)
				return
			}

			s.Require().NoError(err)
			s.Require().True(tt.expected.Equal(value), "expected %s, got %s", tt.expected, value)
		})
	}
}
