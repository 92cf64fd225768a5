package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stableswap/sqs/domain"
	"github.com/stableswap/sqs/domain/mvc"
	"github.com/stableswap/sqs/log"
)

// TokensHandler  represent the httphandler for the tokens
type TokensHandler struct {
	TUsecase mvc.TokensUsecase
	logger   log.Logger
}

const tokensResource = "/tokens"

func formatTokensResource(resource string) string {
	return tokensResource + resource
}

// NewTokensHandler will initialize the tokens/ resources endpoint
func NewTokensHandler(e *echo.Echo, ts mvc.TokensUsecase, logger log.Logger) {
	handler := &TokensHandler{
		TUsecase: ts,
		logger:   logger,
	}
	e.GET(formatTokensResource("/metadata"), handler.GetMetadata)
	e.GET(formatTokensResource("/prices"), handler.GetPrices)
}

// GetMetadata returns the metadata of the given comma-separated symbols,
// or of every token in registry order if none are given.
// @Summary Token metadata
// @ID get-tokens-metadata
// @Produce  json
// @Param  symbols  query  string  false  "Comma-separated symbols, e.g. DAI,USDC"
// @Success 200  {object}  map[string]domain.Token  "Tokens"
// @Router /tokens/metadata [get]
func (a *TokensHandler) GetMetadata(c echo.Context) error {
	symbols := domain.ParseSymbols(c.QueryParam("symbols"))
	if len(symbols) == 0 {
		return c.JSON(http.StatusOK, a.TUsecase.GetTokens())
	}

	tokens := make(map[string]domain.Token, len(symbols))
	for _, symbol := range symbols {
		token, err := a.TUsecase.GetToken(symbol)
		if err != nil {
			return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
		}

		tokens[symbol] = token
	}

	return c.JSON(http.StatusOK, tokens)
}

// GetPrices returns the USD prices of the given comma-separated symbols.
// Tokens without a price are omitted.
// @Summary Token USD prices
// @ID get-tokens-prices
// @Produce  json
// @Param  symbols  query  string  true  "Comma-separated symbols"
// @Success 200  {object}  map[string]string  "Prices keyed by symbol"
// @Router /tokens/prices [get]
func (a *TokensHandler) GetPrices(c echo.Context) error {
	ctx := c.Request().Context()

	symbols := domain.ParseSymbols(c.QueryParam("symbols"))
	if len(symbols) == 0 {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: "symbols is required"})
	}

	prices, err := a.TUsecase.GetPrices(ctx, symbols)
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, prices)
}
