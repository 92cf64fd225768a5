package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/stableswap/sqs/domain"
	"github.com/stableswap/sqs/middleware"
)

func TestCORS(t *testing.T) {
	tests := []struct {
		name       string
		corsConfig *domain.CORSConfig

		expectedOrigin  string
		expectedMethods string
	}{
		{
			name:            "defaults",
			expectedOrigin:  "*",
			expectedMethods: "GET",
		},
		{
			name: "configured",
			corsConfig: &domain.CORSConfig{
				AllowedHeaders: "Origin",
				AllowedMethods: "GET, POST",
				AllowedOrigin:  "https://app.example.com",
			},
			expectedOrigin:  "https://app.example.com",
			expectedMethods: "GET, POST",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := middleware.InitMiddleware(tc.corsConfig)

			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/router/routes", nil), rec)

			err := m.CORS(func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			})(c)
			require.NoError(t, err)

			require.Equal(t, tc.expectedOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			require.Equal(t, tc.expectedMethods, rec.Header().Get("Access-Control-Allow-Methods"))
		})
	}
}

func TestInstrumentMiddlewareCountsErrors(t *testing.T) {
	m := middleware.InitMiddleware(nil)

	const path = "/router/quote"

	before := testutil.ToFloat64(middleware.RequestErrorsTotal.WithLabelValues(http.MethodGet, path, "422"))

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, path+"?from=DAI&to=WBTC", nil), rec)

	err := m.InstrumentMiddleware(func(c echo.Context) error {
		return c.JSON(http.StatusUnprocessableEntity, domain.ResponseError{Message: "no route"})
	})(c)
	require.NoError(t, err)

	after := testutil.ToFloat64(middleware.RequestErrorsTotal.WithLabelValues(http.MethodGet, path, "422"))
	require.Equal(t, before+1, after)
}
