package http

import (
	"github.com/labstack/echo/v4"

	"github.com/stableswap/sqs/domain"
	"github.com/stableswap/sqs/log"
)

func (a *RouterHandler) GetValidQuoteParameters(c echo.Context) (domain.TokenAmount, string, error) {
	return a.getValidQuoteParameters(c)
}

func (a *RouterHandler) SetLogger(logger log.Logger) {
	a.logger = logger
}
