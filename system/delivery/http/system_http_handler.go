package http

import (
	"context"
	"fmt"
	"net/http"
	"net/http/pprof"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"github.com/stableswap/sqs/docs"
	"github.com/stableswap/sqs/domain"
	"github.com/stableswap/sqs/domain/mvc"
	"github.com/stableswap/sqs/log"
)

// ChainHeightGetter returns the latest block number of the chain the ledger talks to.
type ChainHeightGetter interface {
	LatestBlockNumber(ctx context.Context) (uint64, error)
}

type SystemHandler struct {
	logger   log.Logger
	config   domain.Config
	chain    ChainHeightGetter
	RUsecase mvc.RouterUsecase
	// Optional. Nil when no swaps can be executed from this process.
	TxOrchestrator mvc.TxOrchestrator
}

// HealthStatus is the healthcheck response.
type HealthStatus struct {
	ChainStatus       string `json:"chain_status"`
	ChainLatestHeight uint64 `json:"chain_latest_height"`
	GraphSnapshotID   uint64 `json:"graph_snapshot_id"`
	LastSwapAt        string `json:"last_swap_at,omitempty"`
}

const (
	versionPlaceholder    = "version="
	whiteSpacePlaceholder = " "

	healthcheckTimeout = 5 * time.Second
)

// NewSystemHandler will initialize the /debug/ppof resources endpoint
func NewSystemHandler(e *echo.Echo, config domain.Config, logger log.Logger, chain ChainHeightGetter, ru mvc.RouterUsecase, orchestrator mvc.TxOrchestrator) {
	handler := &SystemHandler{
		logger:         logger,
		config:         config,
		chain:          chain,
		RUsecase:       ru,
		TxOrchestrator: orchestrator,
	}

	// if debug mod, enable additional profiles that are too intensive
	// for production.
	if !config.LoggerIsProduction {
		runtime.SetMutexProfileFraction(2)
		runtime.SetBlockProfileRate(2)
	}

	e.GET("/debug/pprof/*", echo.WrapHandler(http.DefaultServeMux))
	e.GET("/debug/pprof/cmdline", echo.WrapHandler(http.HandlerFunc(pprof.Cmdline)))
	e.GET("/debug/pprof/profile", echo.WrapHandler(http.HandlerFunc(pprof.Profile)))
	e.GET("/debug/pprof/symbol", echo.WrapHandler(http.HandlerFunc(pprof.Symbol)))
	e.GET("/debug/pprof/trace", echo.WrapHandler(http.HandlerFunc(pprof.Trace)))

	e.GET("/healthcheck", handler.GetHealthStatus)
	e.GET("/config", handler.GetConfig)
	e.GET("/version", handler.GetVersion)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/swagger.yaml", handler.GetSwaggerDoc)
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.URL("swagger.yaml")))
}

// GetSwaggerDoc serves the OpenAPI document rendered by the swagger UI.
func (h *SystemHandler) GetSwaggerDoc(c echo.Context) error {
	return c.Blob(http.StatusOK, "application/yaml", docs.SwaggerYAML)
}

// GetConfig returns the config for the SQS service.
// The signer key is never exposed.
func (h *SystemHandler) GetConfig(c echo.Context) error {
	config := h.config
	if config.Ledger != nil {
		ledgerConfig := *config.Ledger
		if ledgerConfig.PrivateKey != "" {
			ledgerConfig.PrivateKey = "<redacted>"
		}
		config.Ledger = &ledgerConfig
	}

	return c.JSON(http.StatusOK, config)
}

func (h *SystemHandler) GetVersion(c echo.Context) error {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read build info")
	}

	for _, setting := range buildInfo.Settings {
		if setting.Key == "-ldflags" {
			version, err := extractVersion(setting.Value)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("failed to extract version information: %v", err))
			}

			return c.JSON(http.StatusOK, version)
		}
	}

	return echo.NewHTTPError(http.StatusInternalServerError, "failed to find version information")
}

// extractVersion extracts the version string from the ldflags
func extractVersion(ldGlagsValueStr string) (string, error) {
	index := strings.Index(ldGlagsValueStr, versionPlaceholder)
	if index == -1 {
		return "", fmt.Errorf("No version string found")
	}

	substring := ldGlagsValueStr[index+len(versionPlaceholder):]

	index = strings.Index(substring, whiteSpacePlaceholder)
	if index == -1 {
		return substring, nil
	}

	return substring[:index], nil
}

// GetHealthStatus checks that the chain node answers and reports the current graph snapshot.
func (h *SystemHandler) GetHealthStatus(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthcheckTimeout)
	defer cancel()

	status := HealthStatus{ChainStatus: "disabled"}

	if h.chain != nil {
		height, err := h.chain.LatestBlockNumber(ctx)
		if err != nil {
			h.logger.Error("Error checking chain node status", zap.Error(err))
			return echo.NewHTTPError(http.StatusServiceUnavailable, "Error connecting to the chain node")
		}

		status.ChainStatus = "running"
		status.ChainLatestHeight = height
	}

	if h.RUsecase != nil {
		_, status.GraphSnapshotID = h.RUsecase.GetGraph()
	}

	if h.TxOrchestrator != nil {
		if lastSwapAt := h.TxOrchestrator.LastCompletedAt(); !lastSwapAt.IsZero() {
			status.LastSwapAt = lastSwapAt.UTC().Format(time.RFC3339)
		}
	}

	return c.JSON(http.StatusOK, status)
}
