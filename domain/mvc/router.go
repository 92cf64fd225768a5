package mvc

import (
	"context"

	"github.com/stableswap/sqs/domain"
)

// RouterUsecase represent the router's usecases
type RouterUsecase interface {
	// Resolve returns one swap data per eligible and reachable destination of origin,
	// in registry token order. Returns an empty slice for unknown origins.
	Resolve(ctx context.Context, origin string, opts ...domain.RouterOption) []domain.SwapData
	// GetSwapData returns the resolved swap data from origin to destination.
	// Returns false if the destination is unreachable.
	GetSwapData(ctx context.Context, origin, destination string) (domain.SwapData, bool)
	// GetGraph returns the current token to ranked pools graph and its snapshot ID.
	GetGraph() (domain.TokenPoolGraph, uint64)
	// UpdateTVL rebuilds the graph if the TVLs differ from the last ones.
	// Returns true if the graph was rebuilt.
	UpdateTVL(ctx context.Context, tvls domain.PoolTVLMap) bool
	// GetRegistry returns the static token and pool registry.
	GetRegistry() *domain.Registry
	// GetConfig returns the config for the router.
	GetConfig() domain.RouterConfig
}
