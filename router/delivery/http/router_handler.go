package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/stableswap/sqs/domain"
	"github.com/stableswap/sqs/domain/mvc"
	"github.com/stableswap/sqs/log"
	"github.com/stableswap/sqs/swapmath"
)

// RouterHandler  represent the httphandler for the router
type RouterHandler struct {
	RUsecase mvc.RouterUsecase
	TUsecase mvc.TokensUsecase
	QUsecase mvc.QuoteUsecase
	logger   log.Logger
}

// graphResponse is the current token to ranked pools graph.
type graphResponse struct {
	SnapshotID uint64                `json:"snapshot_id"`
	Graph      domain.TokenPoolGraph `json:"graph"`
}

const routerResource = "/router"

func formatRouterResource(resource string) string {
	return routerResource + resource
}

// NewRouterHandler will initialize the router/ resources endpoint
func NewRouterHandler(e *echo.Echo, us mvc.RouterUsecase, tu mvc.TokensUsecase, qu mvc.QuoteUsecase, logger log.Logger) {
	handler := &RouterHandler{
		RUsecase: us,
		TUsecase: tu,
		QUsecase: qu,
		logger:   logger,
	}
	e.GET(formatRouterResource("/routes"), handler.GetRoutes)
	e.GET(formatRouterResource("/quote"), handler.GetQuote)
	e.GET(formatRouterResource("/graph"), handler.GetGraph)
}

// GetRoutes returns one resolved swap per reachable destination of the from token,
// in registry token order. An unknown token has no routes.
// @Summary Resolve swap routes
// @ID get-routes
// @Produce  json
// @Param  from  query  string  true  "From token symbol, e.g. DAI"
// @Param  disableCache  query  bool  false  "Bypass the route cache"
// @Success 200  {array}  domain.SwapData  "Resolved swaps"
// @Router /router/routes [get]
func (a *RouterHandler) GetRoutes(c echo.Context) error {
	ctx := c.Request().Context()

	from := c.QueryParam("from")
	if len(from) == 0 {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: "from is required"})
	}

	disableCache, err := domain.ParseBooleanQueryParam(c, "disableCache")
	if err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	var opts []domain.RouterOption
	if disableCache {
		opts = append(opts, domain.WithDisableCache())
	}

	return c.JSON(http.StatusOK, a.RUsecase.Resolve(ctx, from, opts...))
}

// GetQuote returns a one-shot quote of swapping the decimal amount of the from token
// to the to token, with the minimum received under the configured slippage.
// @Summary Quote a swap
// @ID get-quote
// @Produce  json
// @Param  from  query  string  true  "From token symbol"
// @Param  to  query  string  true  "To token symbol"
// @Param  amount  query  string  true  "Decimal amount of the from token, e.g. 0.5"
// @Success 200  {object}  domain.Quote  "Quote"
// @Router /router/quote [get]
func (a *RouterHandler) GetQuote(c echo.Context) error {
	ctx := c.Request().Context()

	tokenIn, to, err := a.getValidQuoteParameters(c)
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	quote, err := a.QUsecase.GetQuote(ctx, tokenIn, to)
	if err != nil {
		statusCode := domain.GetStatusCode(err)
		if statusCode >= http.StatusInternalServerError {
			requestPath, _ := domain.GetURLPathFromContext(ctx)
			a.logger.Error("failed to quote", zap.String("path", requestPath), zap.String("from", tokenIn.Symbol), zap.String("to", to), zap.Error(err))
		}
		return c.JSON(statusCode, domain.ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, quote)
}

// GetGraph returns the current token to ranked pools graph and its snapshot ID.
// @Summary Token to ranked pools graph
// @ID get-graph
// @Produce  json
// @Success 200  {object}  graphResponse  "Graph and snapshot ID"
// @Router /router/graph [get]
func (a *RouterHandler) GetGraph(c echo.Context) error {
	graph, snapshotID := a.RUsecase.GetGraph()

	return c.JSON(http.StatusOK, graphResponse{
		SnapshotID: snapshotID,
		Graph:      graph,
	})
}

// getValidQuoteParameters returns the token in and the to symbol from the query if they are valid.
func (a *RouterHandler) getValidQuoteParameters(c echo.Context) (domain.TokenAmount, string, error) {
	from, to := c.QueryParam("from"), c.QueryParam("to")
	if err := domain.ValidateInputSymbols(from, to); err != nil {
		if errors.Is(err, domain.ErrBadParamInput) {
			return domain.TokenAmount{}, "", fmt.Errorf("%w: from and to are required", err)
		}
		return domain.TokenAmount{}, "", err
	}

	amountStr := c.QueryParam("amount")
	if len(amountStr) == 0 {
		return domain.TokenAmount{}, "", domain.InvalidAmountError{Amount: amountStr, Reason: "amount is required"}
	}

	token, err := a.TUsecase.GetToken(from)
	if err != nil {
		return domain.TokenAmount{}, "", err
	}

	amount, err := swapmath.ParseAmount(amountStr, token.Decimals)
	if err != nil {
		return domain.TokenAmount{}, "", err
	}

	return domain.NewTokenAmount(token.Symbol, amount), to, nil
}
