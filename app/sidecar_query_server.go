package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/labstack/echo/v4"
	"github.com/osmosis-labs/osmosis/osmomath"
	"go.uber.org/zap"

	"github.com/stableswap/sqs/domain"
	"github.com/stableswap/sqs/domain/mvc"
	"github.com/stableswap/sqs/ledger/evm"
	"github.com/stableswap/sqs/log"
	"github.com/stableswap/sqs/middleware"
	poolsclient "github.com/stableswap/sqs/pools/client"
	poolsHttpDelivery "github.com/stableswap/sqs/pools/delivery/http"
	poolsUseCase "github.com/stableswap/sqs/pools/usecase"
	routerHttpDelivery "github.com/stableswap/sqs/router/delivery/http"
	routerrepo "github.com/stableswap/sqs/router/repository"
	routerUseCase "github.com/stableswap/sqs/router/usecase"
	"github.com/stableswap/sqs/sqsutil/datafetchers"
	swapUseCase "github.com/stableswap/sqs/swap/usecase"
	systemhttpdelivery "github.com/stableswap/sqs/system/delivery/http"
	tokenshttpdelivery "github.com/stableswap/sqs/tokens/delivery/http"
	tokensUseCase "github.com/stableswap/sqs/tokens/usecase"
	coingeckopricing "github.com/stableswap/sqs/tokens/usecase/pricing/coingecko"
)

// SideCarQueryServer defines an interface for the swap quote server.
// It polls pool TVLs and token prices in the background
// and exposes endpoints for routes, quotes, tokens and pools.
type SideCarQueryServer interface {
	GetRouterUsecase() mvc.RouterUsecase
	GetTokensUseCase() mvc.TokensUsecase
	GetLogger() log.Logger
	Shutdown(context.Context) error
	Start(context.Context) error
}

type sideCarQueryServer struct {
	components *components
	e          *echo.Echo
	sqsAddress string
	logger     log.Logger
}

const fetchTimeout = 10 * time.Second

// components are the use cases shared by the server and the CLI commands.
type components struct {
	registry      *domain.Registry
	routerUsecase mvc.RouterUsecase
	tokensUsecase mvc.TokensUsecase
	poolsUsecase  mvc.PoolsUsecase

	// Nil unless the ledger is enabled.
	evmClient    *evm.Client
	ledger       domain.Ledger
	variants     *swapUseCase.VariantFactory
	quoteUsecase mvc.QuoteUsecase
	orchestrator mvc.TxOrchestrator

	tvlFetcher   *datafetchers.MapIntervalFetcher[string, osmomath.Dec]
	priceFetcher *datafetchers.MapIntervalFetcher[string, osmomath.Dec]
}

// newComponents builds the registry, router, tokens and pools use cases.
// The ledger backed use cases are built only if withLedger is true.
// Background fetchers are started only if withFetchers is true.
func newComponents(ctx context.Context, config domain.Config, withLedger bool, withFetchers bool, logger log.Logger) (*components, error) {
	registry, err := domain.NewRegistry(*config.Registry, config.ChainID)
	if err != nil {
		return nil, err
	}

	routerConfig := domain.RouterConfig{}
	if config.Router != nil {
		routerConfig = *config.Router
	}

	routerRepository := routerrepo.New()
	routerUsecase, err := routerUseCase.NewRouterUsecase(routerRepository, registry, routerConfig, logger)
	if err != nil {
		return nil, err
	}

	c := &components{
		registry:      registry,
		routerUsecase: routerUsecase,
		poolsUsecase:  poolsUseCase.NewPoolsUsecase(registry, routerRepository),
	}

	var pricingSource domain.PricingSource
	if config.Pricing != nil && config.Pricing.CoingeckoUrl != "" {
		pricingSource = coingeckopricing.New(*config.Pricing)

		if withFetchers && config.Pricing.RefetchIntervalSecs > 0 {
			fetchPrices := datafetchers.GetFetchPricesCb(pricingSource, registry.GetTokens(), fetchTimeout, logger)
			c.priceFetcher = datafetchers.NewMapFetcher(fetchPrices, time.Duration(config.Pricing.RefetchIntervalSecs)*time.Second)
		}
	}

	// A nil fetcher must stay an untyped nil interface.
	var priceFetcher datafetchers.MapFetcher[string, osmomath.Dec]
	if c.priceFetcher != nil {
		priceFetcher = c.priceFetcher
	}
	c.tokensUsecase = tokensUseCase.NewTokensUsecase(registry, pricingSource, priceFetcher, logger)

	if config.Pools != nil && config.Pools.TVLURL != "" {
		tvlSource := poolsclient.NewTVLClient(config.Pools.TVLURL, logger)
		fetchTVLs := datafetchers.GetFetchPoolTVLsCb(tvlSource, routerUsecase, fetchTimeout, logger)

		if withFetchers && config.Pools.TVLRefetchIntervalSecs > 0 {
			c.tvlFetcher = datafetchers.NewMapFetcher(func() (map[string]osmomath.Dec, error) {
				return fetchTVLs()
			}, time.Duration(config.Pools.TVLRefetchIntervalSecs)*time.Second)
		} else if _, err := fetchTVLs(); err != nil {
			// One-shot commands fall back to registry order.
			logger.Warn("failed to fetch pool TVLs, ranking pools in registry order", zap.Error(err))
		}
	}

	if !withLedger {
		return c, nil
	}

	if config.Ledger == nil || config.Ledger.RPCURL == "" {
		return nil, domain.ConfigurationError{Field: "ledger.rpc-url", Reason: "is required"}
	}

	c.evmClient, err = evm.NewClient(ctx, config.Ledger.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("connect rpc: %w", err)
	}

	c.ledger, err = evm.NewLedger(ctx, c.evmClient, config.ChainID, *config.Ledger, logger)
	if err != nil {
		c.evmClient.Close()
		return nil, err
	}

	var composer common.Address
	if config.Ledger.ComposerAddress != "" {
		composer = common.HexToAddress(config.Ledger.ComposerAddress)
	}
	c.variants = swapUseCase.NewVariantFactory(registry, c.ledger, composer)

	swapConfig := domain.SwapConfig{}
	if config.Swap != nil {
		swapConfig = *config.Swap
	}

	c.quoteUsecase, err = swapUseCase.NewQuoteUsecase(swapConfig, routerUsecase, c.tokensUsecase, c.variants, logger)
	if err != nil {
		c.evmClient.Close()
		return nil, err
	}

	c.orchestrator = swapUseCase.NewTxOrchestrator(c.ledger, c.variants, logger)

	return c, nil
}

// newSwapSession starts a swap session on the components. Requires the ledger.
func (c *components) newSwapSession(config domain.Config, logger log.Logger) (mvc.SwapUsecase, error) {
	if c.ledger == nil {
		return nil, errors.New("swap sessions require the ledger")
	}

	swapConfig := domain.SwapConfig{}
	if config.Swap != nil {
		swapConfig = *config.Swap
	}

	return swapUseCase.NewSwapUsecase(swapConfig, c.routerUsecase, c.tokensUsecase, c.variants, c.orchestrator, logger)
}

func (c *components) Close() {
	if c.tvlFetcher != nil {
		c.tvlFetcher.Close()
	}
	if c.priceFetcher != nil {
		c.priceFetcher.Close()
	}
	if c.evmClient != nil {
		c.evmClient.Close()
	}
}

// GetRouterUsecase implements SideCarQueryServer.
func (sqs *sideCarQueryServer) GetRouterUsecase() mvc.RouterUsecase {
	return sqs.components.routerUsecase
}

// GetTokensUseCase implements SideCarQueryServer.
func (sqs *sideCarQueryServer) GetTokensUseCase() mvc.TokensUsecase {
	return sqs.components.tokensUsecase
}

// GetLogger implements SideCarQueryServer.
func (sqs *sideCarQueryServer) GetLogger() log.Logger {
	return sqs.logger
}

// Shutdown implements SideCarQueryServer.
func (sqs *sideCarQueryServer) Shutdown(ctx context.Context) error {
	defer sqs.components.Close()
	return sqs.e.Shutdown(ctx)
}

// Start implements SideCarQueryServer.
func (sqs *sideCarQueryServer) Start(context.Context) error {
	sqs.logger.Info("Starting swap quote server", zap.String("address", sqs.sqsAddress))
	err := sqs.e.Start(sqs.sqsAddress)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// NewSideCarQueryServer creates a new swap quote server.
func NewSideCarQueryServer(ctx context.Context, config domain.Config, logger log.Logger) (SideCarQueryServer, error) {
	components, err := newComponents(ctx, config, true, true, logger)
	if err != nil {
		return nil, err
	}

	// Setup echo server
	e := echo.New()
	e.HideBanner = true
	middleware := middleware.InitMiddleware(config.CORS)
	e.Use(middleware.CORS)
	e.Use(middleware.InstrumentMiddleware)
	e.Use(middleware.TraceWithParamsMiddleware("sqs"))

	// The node is optional for the healthcheck. Keep nil untyped.
	var chain systemhttpdelivery.ChainHeightGetter
	if components.evmClient != nil {
		chain = components.evmClient
	}

	// HTTP handlers
	routerHttpDelivery.NewRouterHandler(e, components.routerUsecase, components.tokensUsecase, components.quoteUsecase, logger)
	tokenshttpdelivery.NewTokensHandler(e, components.tokensUsecase, logger)
	poolsHttpDelivery.NewPoolsHandler(e, components.poolsUsecase)
	systemhttpdelivery.NewSystemHandler(e, config, logger, chain, components.routerUsecase, components.orchestrator)

	return &sideCarQueryServer{
		components: components,
		e:          e,
		sqsAddress: config.ServerAddress,
		logger:     logger,
	}, nil
}
