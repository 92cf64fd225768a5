package usecase_test

import (
	"testing"

	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/stretchr/testify/suite"

	"github.com/stableswap/sqs/domain"
	"github.com/stableswap/sqs/pools/usecase"
	routerrepo "github.com/stableswap/sqs/router/repository"
	"github.com/stableswap/sqs/router/usecase/routertesting"
)

type PoolsUsecaseTestSuite struct {
	routertesting.RouterTestHelper
}

func TestPoolsUsecaseTestSuite(t *testing.T) {
	suite.Run(t, new(PoolsUsecaseTestSuite))
}

func (s *PoolsUsecaseTestSuite) TestGetPools() {
	registry := s.NewRegistry(routertesting.DefaultRegistryConfig())

	routerRepository := routerrepo.New()
	routerRepository.SetGraph(domain.TokenPoolGraph{}, domain.PoolTVLMap{
		routertesting.StablesPool: osmomath.NewDec(100),
	})

	poolsUsecase := usecase.NewPoolsUsecase(registry, routerRepository)

	pools := poolsUsecase.GetAllPools()
	s.Require().Len(pools, len(registry.GetPools()))
	s.Require().Equal(routertesting.StablesPool, pools[0].Name)
	s.Require().NotNil(pools[0].TVL)
	s.Require().True(osmomath.NewDec(100).Equal(*pools[0].TVL))
	s.Require().Nil(pools[1].TVL)

	pool, err := poolsUsecase.GetPool(routertesting.FRAXPool)
	s.Require().NoError(err)
	s.Require().Equal(routertesting.StablesPool, pool.UnderlyingPoolName)
	s.Require().Nil(pool.TVL)

	_, err = poolsUsecase.GetPool("unknown")
	s.Require().ErrorAs(err, &domain.PoolNotFoundError{})
}
