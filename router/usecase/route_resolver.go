package usecase

import (
	"github.com/osmosis-labs/osmosis/osmoutils"

	"github.com/stableswap/sqs/domain"
)

// routeResolver resolves swap data from an origin token against one graph snapshot.
type routeResolver struct {
	registry *domain.Registry
	graph    domain.TokenPoolGraph
}

func newRouteResolver(registry *domain.Registry, graph domain.TokenPoolGraph) *routeResolver {
	return &routeResolver{
		registry: registry,
		graph:    graph,
	}
}

// resolve returns one swap data per eligible and reachable destination, in registry token order.
// Eligible destinations are non-LP tokens belonging to at least one pool.
// The origin itself is never a destination.
func (r *routeResolver) resolve(origin string) []domain.SwapData {
	if _, err := r.registry.GetToken(origin); err != nil {
		return []domain.SwapData{}
	}

	originPools := r.graph.GetRankedPools(origin)
	if len(originPools) == 0 {
		return []domain.SwapData{}
	}

	tokens := r.registry.GetTokens()

	candidates := make(map[string]domain.SwapData, len(tokens))
	for _, destination := range tokens {
		if destination.IsLPToken {
			continue
		}

		targetPools := r.graph.GetRankedPools(destination.Symbol)
		if len(targetPools) == 0 {
			continue
		}

		candidate, ok := r.resolveDestination(origin, originPools, destination.Symbol, targetPools)
		if !ok || candidate.Type == domain.SwapTypeInvalid {
			continue
		}

		keepHighestRank(candidates, candidate)
	}

	swapData := make([]domain.SwapData, 0, len(candidates))
	for _, token := range tokens {
		if candidate, ok := candidates[token.Symbol]; ok {
			swapData = append(swapData, candidate)
		}
	}

	return swapData
}

// resolveDestination returns the highest ranked structural match between origin and destination.
// Returns false if the destination is unreachable.
func (r *routeResolver) resolveDestination(origin string, originPools []string, destination string, targetPools []string) (domain.SwapData, bool) {
	if origin == destination {
		return domain.NewInvalidSwapData(origin, destination), true
	}

	matches := make([]domain.SwapData, 0, 3)

	if sharedPoolName, ok := r.sharedPool(originPools, targetPools); ok {
		if direct, ok := r.directSwapData(origin, destination, sharedPoolName); ok {
			matches = append(matches, direct)
		}
	}

	originPrimary, originOK := r.primaryPool(originPools)
	targetPrimary, targetOK := r.primaryPool(targetPools)
	if originOK && targetOK {
		if originPrimary.IsMetaPool() && targetPrimary.IsMetaPool() && originPrimary.UnderlyingPoolName == targetPrimary.UnderlyingPoolName && originPrimary.Name != targetPrimary.Name {
			if metaToMeta, ok := r.metaToMetaSwapData(origin, originPrimary, destination, targetPrimary); ok {
				matches = append(matches, metaToMeta)
			}
		}

		if originPrimary.IsMetaPool() != targetPrimary.IsMetaPool() {
			metaPool := originPrimary
			if targetPrimary.IsMetaPool() {
				metaPool = targetPrimary
			}

			if stablesToMeta, ok := r.stablesToMetaSwapData(origin, destination, metaPool); ok {
				matches = append(matches, stablesToMeta)
			}
		}
	}

	if len(matches) == 0 {
		return domain.SwapData{}, false
	}

	best := matches[0]
	for _, match := range matches[1:] {
		if match.Type.Rank() > best.Type.Rank() {
			best = match
		}
	}

	return best, true
}

// sharedPool returns the first pool in origin's ranked order that also contains the destination.
// Non-outdated pools are preferred; an outdated shared pool is the fallback.
func (r *routeResolver) sharedPool(originPools []string, targetPools []string) (string, bool) {
	var (
		outdatedFallback string
		hasFallback      bool
	)

	for _, poolName := range originPools {
		if !osmoutils.Contains(targetPools, poolName) {
			continue
		}

		pool, err := r.registry.GetPool(poolName)
		if err != nil {
			continue
		}

		if !pool.IsOutdated {
			return poolName, true
		}

		if !hasFallback {
			outdatedFallback, hasFallback = poolName, true
		}
	}

	return outdatedFallback, hasFallback
}

// primaryPool returns the first non-outdated pool in ranked order.
func (r *routeResolver) primaryPool(rankedPools []string) (domain.Pool, bool) {
	for _, poolName := range rankedPools {
		pool, err := r.registry.GetPool(poolName)
		if err != nil {
			continue
		}

		if !pool.IsOutdated {
			return pool, true
		}
	}
	return domain.Pool{}, false
}

func (r *routeResolver) directSwapData(origin, destination, poolName string) (domain.SwapData, bool) {
	pool, err := r.registry.GetPool(poolName)
	if err != nil {
		return domain.SwapData{}, false
	}

	fromIndex, fromOK := pool.TokenIndex(origin)
	toIndex, toOK := pool.TokenIndex(destination)
	if !fromOK || !toOK {
		return domain.SwapData{}, false
	}

	return domain.SwapData{
		From:  domain.NewResolvedSwapSide(origin, pool.Name, fromIndex),
		To:    domain.NewResolvedSwapSide(destination, pool.Name, toIndex),
		Type:  domain.SwapTypeDirect,
		Route: []string{origin, destination},
		Pool:  pool.Name,
	}, true
}

// stablesToMetaSwapData indexes both sides in the underlying token space of the meta pool.
func (r *routeResolver) stablesToMetaSwapData(origin, destination string, metaPool domain.Pool) (domain.SwapData, bool) {
	fromIndex, fromOK := r.registry.UnderlyingTokenIndex(metaPool.Name, origin)
	toIndex, toOK := r.registry.UnderlyingTokenIndex(metaPool.Name, destination)
	if !fromOK || !toOK {
		return domain.SwapData{}, false
	}

	return domain.SwapData{
		From:  domain.NewResolvedSwapSide(origin, metaPool.Name, fromIndex),
		To:    domain.NewResolvedSwapSide(destination, metaPool.Name, toIndex),
		Type:  domain.SwapTypeStablesToMeta,
		Route: []string{origin, destination},
		Pool:  metaPool.Name,
	}, true
}

// metaToMetaSwapData routes through the LP token of the shared base pool.
// The bookkeeping pool is the origin primary if it exposes a meta swap deposit contract,
// otherwise the target primary.
func (r *routeResolver) metaToMetaSwapData(origin string, originPool domain.Pool, destination string, targetPool domain.Pool) (domain.SwapData, bool) {
	fromIndex, fromOK := originPool.TokenIndex(origin)
	toIndex, toOK := targetPool.TokenIndex(destination)
	if !fromOK || !toOK {
		return domain.SwapData{}, false
	}

	baseLPToken, ok := r.registry.BaseLPToken(originPool.Name)
	if !ok {
		return domain.SwapData{}, false
	}

	bookkeepingPool := targetPool.Name
	if originPool.HasMetaSwapDeposit(r.registry.ChainID()) {
		bookkeepingPool = originPool.Name
	}

	return domain.SwapData{
		From:  domain.NewResolvedSwapSide(origin, originPool.Name, fromIndex),
		To:    domain.NewResolvedSwapSide(destination, targetPool.Name, toIndex),
		Type:  domain.SwapTypeMetaToMeta,
		Route: []string{origin, baseLPToken.Symbol, destination},
		Pool:  bookkeepingPool,
	}, true
}

// keepHighestRank stores the candidate unless a candidate with a higher or equal rank
// already exists for the same destination.
func keepHighestRank(candidates map[string]domain.SwapData, candidate domain.SwapData) {
	existing, ok := candidates[candidate.To.Symbol]
	if ok && existing.Type.Rank() >= candidate.Type.Rank() {
		return
	}
	candidates[candidate.To.Symbol] = candidate
}
