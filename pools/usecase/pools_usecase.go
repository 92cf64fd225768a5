package usecase

import (
	"github.com/stableswap/sqs/domain"
	"github.com/stableswap/sqs/domain/mvc"
	routerrepo "github.com/stableswap/sqs/router/repository"
)

type poolsUseCase struct {
	registry         *domain.Registry
	routerRepository routerrepo.RouterRepository
}

var _ mvc.PoolsUsecase = &poolsUseCase{}

// NewPoolsUsecase will create a new pools use case object
func NewPoolsUsecase(registry *domain.Registry, routerRepository routerrepo.RouterRepository) mvc.PoolsUsecase {
	return &poolsUseCase{
		registry:         registry,
		routerRepository: routerRepository,
	}
}

// GetAllPools implements mvc.PoolsUsecase.
func (p *poolsUseCase) GetAllPools() []domain.PoolWithTVL {
	pools := p.registry.GetPools()

	result := make([]domain.PoolWithTVL, 0, len(pools))
	for _, pool := range pools {
		result = append(result, p.withTVL(pool))
	}

	return result
}

// GetPool implements mvc.PoolsUsecase.
func (p *poolsUseCase) GetPool(poolName string) (domain.PoolWithTVL, error) {
	pool, err := p.registry.GetPool(poolName)
	if err != nil {
		return domain.PoolWithTVL{}, err
	}

	return p.withTVL(pool), nil
}

func (p *poolsUseCase) withTVL(pool domain.Pool) domain.PoolWithTVL {
	result := domain.PoolWithTVL{Pool: pool}
	if tvl, ok := p.routerRepository.GetPoolTVL(pool.Name); ok {
		result.TVL = &tvl
	}
	return result
}
