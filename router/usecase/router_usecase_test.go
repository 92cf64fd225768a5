package usecase_test

import (
	"context"
	"testing"

	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/stretchr/testify/suite"

	"github.com/stableswap/sqs/domain"
	"github.com/stableswap/sqs/log"
	routerrepo "github.com/stableswap/sqs/router/repository"
	"github.com/stableswap/sqs/router/usecase"
	"github.com/stableswap/sqs/router/usecase/routertesting"
)

type RouterTestSuite struct {
	routertesting.RouterTestHelper
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func (s *RouterTestSuite) TestFormatRouteCacheKey() {
	s.Require().Equal("DAI|7", usecase.FormatRouteCacheKey(routertesting.DAI, 7))
}

// The initial graph is available before any TVL is received.
func (s *RouterTestSuite) TestNewRouterUsecase_InitialGraph() {
	routerUsecase := s.SetupRouterUsecase()

	graph, snapshotID := routerUsecase.GetGraph()
	s.Require().Equal(uint64(1), snapshotID)
	s.Require().Equal([]string{routertesting.BTCPool, routertesting.BTCV2Pool}, graph.GetRankedPools(routertesting.WBTC))

	swapData := routerUsecase.Resolve(context.Background(), routertesting.DAI)
	s.Require().Len(swapData, 4)
}

func (s *RouterTestSuite) TestResolve_Cache() {
	routerUsecase := s.SetupRouterUsecase(routertesting.WithTVLs(routertesting.DefaultTVLs()))
	routerUsecaseImpl, ok := routerUsecase.(*usecase.RouterUseCaseImpl)
	s.Require().True(ok)

	ctx := context.Background()

	s.Require().Equal(0, routerUsecaseImpl.GetRouteCacheLen())

	first := routerUsecase.Resolve(ctx, routertesting.FRAX)
	s.Require().Equal(1, routerUsecaseImpl.GetRouteCacheLen())

	second := routerUsecase.Resolve(ctx, routertesting.FRAX)
	s.Require().Equal(1, routerUsecaseImpl.GetRouteCacheLen())
	s.Require().Equal(first, second)

	// Mutating the returned slice does not affect the cached value.
	second[0] = domain.NewInvalidSwapData(routertesting.FRAX, routertesting.DAI)
	third := routerUsecase.Resolve(ctx, routertesting.FRAX)
	s.Require().Equal(first, third)

	// Disabled cache does not populate it.
	routerUsecase.Resolve(ctx, routertesting.DAI, domain.WithDisableCache())
	s.Require().Equal(1, routerUsecaseImpl.GetRouteCacheLen())

	// New TVLs rebuild the graph and invalidate the cache.
	updatedTVLs := routertesting.DefaultTVLs()
	updatedTVLs[routertesting.BTCV2Pool] = osmomath.NewDec(6_000_000)
	s.Require().True(routerUsecase.UpdateTVL(ctx, updatedTVLs))
	s.Require().Equal(0, routerUsecaseImpl.GetRouteCacheLen())
}

func (s *RouterTestSuite) TestResolve_CacheDisabledByConfig() {
	routerUsecase := s.SetupRouterUsecase(routertesting.WithRouterConfig(domain.RouterConfig{
		RouteCacheEnabled: false,
		RouteCacheSize:    4,
	}))
	routerUsecaseImpl, ok := routerUsecase.(*usecase.RouterUseCaseImpl)
	s.Require().True(ok)

	routerUsecase.Resolve(context.Background(), routertesting.DAI)
	s.Require().Equal(0, routerUsecaseImpl.GetRouteCacheLen())
}

func (s *RouterTestSuite) TestUpdateTVL() {
	ctx := context.Background()
	routerUsecase := s.SetupRouterUsecase()

	_, snapshotID := routerUsecase.GetGraph()
	s.Require().Equal(uint64(1), snapshotID)

	s.Run("new TVLs rebuild the graph", func() {
		s.Require().True(routerUsecase.UpdateTVL(ctx, routertesting.DefaultTVLs()))

		graph, snapshotID := routerUsecase.GetGraph()
		s.Require().Equal(uint64(2), snapshotID)
		s.Require().Equal([]string{routertesting.BTCPool, routertesting.BTCV2Pool}, graph.GetRankedPools(routertesting.WBTC))
	})

	s.Run("equal TVLs are a no-op", func() {
		s.Require().False(routerUsecase.UpdateTVL(ctx, routertesting.DefaultTVLs()))

		_, snapshotID := routerUsecase.GetGraph()
		s.Require().Equal(uint64(2), snapshotID)
	})

	s.Run("changed ranking is reflected in the graph", func() {
		tvls := routertesting.DefaultTVLs()
		tvls[routertesting.BTCV2Pool] = osmomath.NewDec(9_000_000)

		s.Require().True(routerUsecase.UpdateTVL(ctx, tvls))

		graph, snapshotID := routerUsecase.GetGraph()
		s.Require().Equal(uint64(3), snapshotID)
		s.Require().Equal([]string{routertesting.BTCV2Pool, routertesting.BTCPool}, graph.GetRankedPools(routertesting.WBTC))
	})

	s.Run("mutating the input after the update does not affect the router", func() {
		tvls := domain.PoolTVLMap{routertesting.StablesPool: osmomath.NewDec(1)}
		s.Require().True(routerUsecase.UpdateTVL(ctx, tvls))

		tvls[routertesting.FRAXPool] = osmomath.NewDec(2)

		// Same content as the applied map, so no rebuild.
		s.Require().False(routerUsecase.UpdateTVL(ctx, domain.PoolTVLMap{routertesting.StablesPool: osmomath.NewDec(1)}))
	})
}

func (s *RouterTestSuite) TestGetSwapData() {
	routerUsecase := s.SetupRouterUsecase(routertesting.WithTVLs(routertesting.DefaultTVLs()))
	ctx := context.Background()

	tests := []struct {
		name        string
		origin      string
		destination string

		expectedFound bool
		expectedType  domain.SwapType
		expectedPool  string
	}{
		{
			name:          "direct",
			origin:        routertesting.USDC,
			destination:   routertesting.USDT,
			expectedFound: true,
			expectedType:  domain.SwapTypeDirect,
			expectedPool:  routertesting.StablesPool,
		},
		{
			name:          "stables to meta",
			origin:        routertesting.FRAX,
			destination:   routertesting.USDC,
			expectedFound: true,
			expectedType:  domain.SwapTypeStablesToMeta,
			expectedPool:  routertesting.FRAXPool,
		},
		{
			name:          "meta to meta",
			origin:        routertesting.FRAX,
			destination:   routertesting.ALUSD,
			expectedFound: true,
			expectedType:  domain.SwapTypeMetaToMeta,
			expectedPool:  routertesting.FRAXPool,
		},
		{
			name:        "unreachable",
			origin:      routertesting.DAI,
			destination: routertesting.WBTC,
		},
		{
			name:        "same token",
			origin:      routertesting.DAI,
			destination: routertesting.DAI,
		},
		{
			name:        "LP token is never a destination",
			origin:      routertesting.FRAX,
			destination: routertesting.SaddleUSD,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			swapData, found := routerUsecase.GetSwapData(ctx, tt.origin, tt.destination)
			s.Require().Equal(tt.expectedFound, found)
			if !tt.expectedFound {
				return
			}

			s.Require().Equal(tt.expectedType, swapData.Type)
			s.Require().Equal(tt.expectedPool, swapData.Pool)
			s.Require().True(swapData.IsExecutable())
		})
	}
}

func (s *RouterTestSuite) TestGetConfigAndRegistry() {
	registry := s.NewRegistry(routertesting.StablesOnlyRegistryConfig())

	routerUsecase, err := usecase.NewRouterUsecase(routerrepo.New(), registry, routertesting.DefaultRouterConfig, &log.NoOpLogger{})
	s.Require().NoError(err)

	s.Require().Equal(routertesting.DefaultRouterConfig, routerUsecase.GetConfig())
	s.Require().Same(registry, routerUsecase.GetRegistry())
}
