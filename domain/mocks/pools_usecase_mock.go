package mocks

import (
	"github.com/stableswap/sqs/domain"
	"github.com/stableswap/sqs/domain/mvc"
)

var _ mvc.PoolsUsecase = &PoolsUsecaseMock{}

type PoolsUsecaseMock struct {
	GetAllPoolsFunc func() []domain.PoolWithTVL
	GetPoolFunc     func(poolName string) (domain.PoolWithTVL, error)

	Pools []domain.PoolWithTVL
}

// GetAllPools implements mvc.PoolsUsecase.
func (pm *PoolsUsecaseMock) GetAllPools() []domain.PoolWithTVL {
	if pm.GetAllPoolsFunc != nil {
		return pm.GetAllPoolsFunc()
	}
	return pm.Pools
}

// GetPool implements mvc.PoolsUsecase.
// Falls back to a lookup by name in Pools.
func (pm *PoolsUsecaseMock) GetPool(poolName string) (domain.PoolWithTVL, error) {
	if pm.GetPoolFunc != nil {
		return pm.GetPoolFunc(poolName)
	}

	for _, pool := range pm.Pools {
		if pool.Name == poolName {
			return pool, nil
		}
	}

	return domain.PoolWithTVL{}, domain.PoolNotFoundError{PoolName: poolName}
}
