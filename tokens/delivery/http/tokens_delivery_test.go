package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/stretchr/testify/suite"

	"github.com/stableswap/sqs/domain"
	"github.com/stableswap/sqs/domain/mocks"
	tokensdelivery "github.com/stableswap/sqs/tokens/delivery/http"
)

type TokensHandlerSuite struct {
	suite.Suite
}

func TestTokensHandlerSuite(t *testing.T) {
	suite.Run(t, new(TokensHandlerSuite))
}

var (
	dai  = domain.Token{Symbol: "DAI", Decimals: 18}
	usdc = domain.Token{Symbol: "USDC", Decimals: 6}
)

func (s *TokensHandlerSuite) newHandler() *tokensdelivery.TokensHandler {
	return &tokensdelivery.TokensHandler{
		TUsecase: &mocks.TokensUsecaseMock{
			GetTokensFunc: func() []domain.Token {
				return []domain.Token{dai, usdc}
			},
			GetTokenFunc: func(symbol string) (domain.Token, error) {
				switch symbol {
				case dai.Symbol:
					return dai, nil
				case usdc.Symbol:
					return usdc, nil
				}
				return domain.Token{}, domain.TokenNotFoundError{Symbol: symbol}
			},
			GetPricesFunc: func(ctx context.Context, symbols []string) (map[string]osmomath.Dec, error) {
				return map[string]osmomath.Dec{dai.Symbol: osmomath.OneDec()}, nil
			},
		},
	}
}

func (s *TokensHandlerSuite) serve(path string, handle func(c echo.Context) error) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	s.Require().NoError(handle(c))
	return rec
}

func (s *TokensHandlerSuite) TestGetMetadata() {
	tests := []struct {
		name string
		path string

		expectedStatusCode int
		expectedResponse   string
	}{
		{
			name:               "all tokens",
			path:               "/tokens/metadata",
			expectedStatusCode: http.StatusOK,
			expectedResponse:   `[{"symbol":"DAI","decimals":18,"addresses":null,"is_lp_token":false,"coingecko_id":""},{"symbol":"USDC","decimals":6,"addresses":null,"is_lp_token":false,"coingecko_id":""}]`,
		},
		{
			name:               "selected tokens",
			path:               "/tokens/metadata?symbols=USDC",
			expectedStatusCode: http.StatusOK,
			expectedResponse:   `{"USDC":{"symbol":"USDC","decimals":6,"addresses":null,"is_lp_token":false,"coingecko_id":""}}`,
		},
		{
			name:               "unknown token",
			path:               "/tokens/metadata?symbols=DAI,FOO",
			expectedStatusCode: http.StatusNotFound,
			expectedResponse:   `{"message":"token (FOO) is not found"}`,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			handler := s.newHandler()
			rec := s.serve(tt.path, handler.GetMetadata)

			s.Require().Equal(tt.expectedStatusCode, rec.Code)
			s.Require().JSONEq(tt.expectedResponse, rec.Body.String())
		})
	}
}

func (s *TokensHandlerSuite) TestGetPrices() {
	handler := s.newHandler()

	rec := s.serve("/tokens/prices?symbols=DAI,USDC", handler.GetPrices)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().JSONEq(`{"DAI":"1.000000000000000000"}`, rec.Body.String())

	rec = s.serve("/tokens/prices", handler.GetPrices)
	s.Require().Equal(http.StatusBadRequest, rec.Code)
}
