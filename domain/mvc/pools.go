package mvc

import (
	"github.com/stableswap/sqs/domain"
)

// PoolsUsecase represent the pool's usecases
type PoolsUsecase interface {
	// GetAllPools returns every pool in registry order with its last known TVL.
	GetAllPools() []domain.PoolWithTVL
	// GetPool returns the pool with the given name and its last known TVL.
	GetPool(poolName string) (domain.PoolWithTVL, error)
}
