package usecase

import (
	"sort"

	"github.com/osmosis-labs/osmosis/osmomath"
	"go.uber.org/zap"

	"github.com/stableswap/sqs/domain"
	"github.com/stableswap/sqs/log"
)

type ratedPool struct {
	pool   domain.Pool
	tvl    osmomath.Dec
	hasTVL bool
}

// BuildTokenPoolGraph returns the token to pools adjacency where each token's pools
// are ranked by decreasing TVL. Pools with unknown TVL are ranked after pools with known TVL.
// Ties keep the registry order.
// Empty or partial TVLs only degrade the ranking.
func BuildTokenPoolGraph(registry *domain.Registry, tvls domain.PoolTVLMap, logger log.Logger) domain.TokenPoolGraph {
	if logger == nil {
		logger = &log.NoOpLogger{}
	}

	pools := registry.GetPools()

	ratedPools := make([]ratedPool, 0, len(pools))
	missingTVLCount := 0
	for _, pool := range pools {
		tvl, hasTVL := tvls[pool.Name]
		if hasTVL && (tvl.IsNil() || tvl.IsNegative()) {
			hasTVL = false
		}

		if !hasTVL {
			missingTVLCount++
		}

		ratedPools = append(ratedPools, ratedPool{
			pool:   pool,
			tvl:    tvl,
			hasTVL: hasTVL,
		})
	}

	sortPools(ratedPools)

	graph := make(domain.TokenPoolGraph, len(registry.GetTokens()))
	for _, ratedPool := range ratedPools {
		for _, token := range ratedPool.pool.Tokens {
			graph[token.Symbol] = append(graph[token.Symbol], ratedPool.pool.Name)
		}
	}

	if missingTVLCount > 0 {
		logger.Debug("pools without TVL are ranked last", zap.Int("count", missingTVLCount), zap.Int("total", len(pools)))
	}

	return graph
}

// sortPools sorts by decreasing TVL. Pools without TVL go last.
// The sort is stable so that ties keep the input order.
func sortPools(ratedPools []ratedPool) {
	sort.SliceStable(ratedPools, func(i, j int) bool {
		if ratedPools[i].hasTVL != ratedPools[j].hasTVL {
			return ratedPools[i].hasTVL
		}

		if !ratedPools[i].hasTVL {
			return false
		}

		return ratedPools[i].tvl.GT(ratedPools[j].tvl)
	})
}
