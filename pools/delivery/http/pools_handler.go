package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/stableswap/sqs/domain"
	"github.com/stableswap/sqs/domain/mvc"
)

// PoolsHandler  represent the httphandler for pools
type PoolsHandler struct {
	PUsecase mvc.PoolsUsecase
}

const resourcePrefix = "/pools"

func formatPoolsResource(resource string) string {
	return resourcePrefix + resource
}

// NewPoolsHandler will initialize the pools/ resources endpoint
func NewPoolsHandler(e *echo.Echo, us mvc.PoolsUsecase) {
	handler := &PoolsHandler{
		PUsecase: us,
	}

	e.GET(formatPoolsResource(""), handler.GetPools)
}

// GetPools returns the pools with the given comma-separated names,
// or every pool in registry order if none are given.
// @Summary Pools with their last known TVL
// @ID get-pools
// @Produce  json
// @Param  names  query  string  false  "Comma-separated pool names"
// @Success 200  {array}  domain.PoolWithTVL  "Pools"
// @Router /pools [get]
func (a *PoolsHandler) GetPools(c echo.Context) error {
	names := domain.ParseSymbols(c.QueryParam("names"))

	if len(names) == 0 {
		return c.JSON(http.StatusOK, a.PUsecase.GetAllPools())
	}

	pools := make([]domain.PoolWithTVL, 0, len(names))
	for _, name := range names {
		pool, err := a.PUsecase.GetPool(name)
		if err != nil {
			return c.JSON(getStatusCode(err), domain.ResponseError{Message: err.Error()})
		}
		pools = append(pools, pool)
	}

	return c.JSON(http.StatusOK, pools)
}

func getStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	logrus.Error(err)
	return domain.GetStatusCode(err)
}
