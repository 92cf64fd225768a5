package usecase

import (
	"context"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/stableswap/sqs/domain"
	"github.com/stableswap/sqs/domain/mvc"
	"github.com/stableswap/sqs/log"
	routerrepo "github.com/stableswap/sqs/router/repository"
)

var _ mvc.RouterUsecase = &routerUseCaseImpl{}

type routerUseCaseImpl struct {
	routerRepository routerrepo.RouterRepository
	registry         *domain.Registry
	config           domain.RouterConfig
	logger           log.Logger

	// (origin, snapshot ID) -> resolved swap data.
	routeCache *lru.Cache[string, []domain.SwapData]

	// Single writer of the graph snapshot.
	updateMx sync.Mutex
	lastTVLs domain.PoolTVLMap
}

const (
	defaultRouteCacheSize = 256

	cacheKeySeparatorChar = "|"
)

// NewRouterUsecase will create a new router use case object.
// It builds the initial graph in registry order until the first TVLs are received.
func NewRouterUsecase(routerRepository routerrepo.RouterRepository, registry *domain.Registry, config domain.RouterConfig, logger log.Logger) (mvc.RouterUsecase, error) {
	if logger == nil {
		logger = &log.NoOpLogger{}
	}

	cacheSize := config.RouteCacheSize
	if cacheSize <= 0 {
		cacheSize = defaultRouteCacheSize
	}

	routeCache, err := lru.New[string, []domain.SwapData](cacheSize)
	if err != nil {
		return nil, err
	}

	r := &routerUseCaseImpl{
		routerRepository: routerRepository,
		registry:         registry,
		config:           config,
		logger:           logger,
		routeCache:       routeCache,
		lastTVLs:         domain.PoolTVLMap{},
	}

	graph := BuildTokenPoolGraph(registry, r.lastTVLs, logger)
	routerRepository.SetGraph(graph, r.lastTVLs)

	return r, nil
}

// Resolve implements mvc.RouterUsecase.
// Results are cached per origin and graph snapshot. A rebuilt graph invalidates the cache.
func (r *routerUseCaseImpl) Resolve(ctx context.Context, origin string, opts ...domain.RouterOption) []domain.SwapData {
	options := domain.RouterOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	graph, snapshotID := r.routerRepository.GetGraph()

	isCacheEnabled := r.config.RouteCacheEnabled && !options.DisableCache
	cacheKey := formatRouteCacheKey(origin, snapshotID)

	if isCacheEnabled {
		if swapData, ok := r.routeCache.Get(cacheKey); ok {
			domain.SQSRouteCacheHitsCounter.WithLabelValues(origin).Inc()
			return cloneSwapData(swapData)
		}
		domain.SQSRouteCacheMissesCounter.WithLabelValues(origin).Inc()
	}

	swapData := newRouteResolver(r.registry, graph).resolve(origin)

	if isCacheEnabled {
		r.routeCache.Add(cacheKey, swapData)
	}

	return cloneSwapData(swapData)
}

// GetSwapData implements mvc.RouterUsecase.
func (r *routerUseCaseImpl) GetSwapData(ctx context.Context, origin string, destination string) (domain.SwapData, bool) {
	for _, swapData := range r.Resolve(ctx, origin) {
		if swapData.To.Symbol == destination {
			return swapData, true
		}
	}
	return domain.SwapData{}, false
}

// GetGraph implements mvc.RouterUsecase.
func (r *routerUseCaseImpl) GetGraph() (domain.TokenPoolGraph, uint64) {
	return r.routerRepository.GetGraph()
}

// UpdateTVL implements mvc.RouterUsecase.
func (r *routerUseCaseImpl) UpdateTVL(ctx context.Context, tvls domain.PoolTVLMap) bool {
	r.updateMx.Lock()
	defer r.updateMx.Unlock()

	if tvls.Equal(r.lastTVLs) {
		return false
	}

	tvlsCopy := make(domain.PoolTVLMap, len(tvls))
	for poolName, tvl := range tvls {
		tvlsCopy[poolName] = tvl
	}

	graph := BuildTokenPoolGraph(r.registry, tvlsCopy, r.logger)
	snapshotID := r.routerRepository.SetGraph(graph, tvlsCopy)
	r.routeCache.Purge()
	r.lastTVLs = tvlsCopy

	r.logger.Info("rebuilt pool graph", zap.Uint64("snapshot_id", snapshotID), zap.Int("pools_with_tvl", len(tvlsCopy)))

	return true
}

// GetRegistry implements mvc.RouterUsecase.
func (r *routerUseCaseImpl) GetRegistry() *domain.Registry {
	return r.registry
}

// GetConfig implements mvc.RouterUsecase.
func (r *routerUseCaseImpl) GetConfig() domain.RouterConfig {
	return r.config
}

// formatRouteCacheKey formats the origin and snapshot ID into a single string.
func formatRouteCacheKey(origin string, snapshotID uint64) string {
	return fmt.Sprintf("%s%s%d", origin, cacheKeySeparatorChar, snapshotID)
}

// cloneSwapData returns a copy of the slice so callers cannot reorder cached entries.
func cloneSwapData(swapData []domain.SwapData) []domain.SwapData {
	result := make([]domain.SwapData, len(swapData))
	copy(result, swapData)
	return result
}
