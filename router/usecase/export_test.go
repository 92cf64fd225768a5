package usecase

import (
	"github.com/stableswap/sqs/domain"
)

type (
	RouterUseCaseImpl = routerUseCaseImpl
)

func FormatRouteCacheKey(origin string, snapshotID uint64) string {
	return formatRouteCacheKey(origin, snapshotID)
}

func ResolveRoutes(registry *domain.Registry, graph domain.TokenPoolGraph, origin string) []domain.SwapData {
	return newRouteResolver(registry, graph).resolve(origin)
}

func KeepHighestRank(candidates map[string]domain.SwapData, candidate domain.SwapData) {
	keepHighestRank(candidates, candidate)
}

func (r *routerUseCaseImpl) GetRouteCacheLen() int {
	return r.routeCache.Len()
}
