package routertesting

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/stretchr/testify/suite"

	"github.com/stableswap/sqs/domain"
	"github.com/stableswap/sqs/domain/mvc"
	"github.com/stableswap/sqs/log"
	routerrepo "github.com/stableswap/sqs/router/repository"
	routerusecase "github.com/stableswap/sqs/router/usecase"
)

type RouterTestHelper struct {
	suite.Suite
}

const (
	ChainID = uint64(1)

	DAI       = "DAI"
	USDC      = "USDC"
	USDT      = "USDT"
	SaddleUSD = "saddleUSD"
	FRAX      = "FRAX"
	ALUSD     = "alUSD"
	WBTC      = "WBTC"
	RENBTC    = "renBTC"
	SBTC      = "sBTC"
	// USX belongs to no pool.
	USX = "USX"

	StablesPool = "Stables"
	FRAXPool    = "FRAX"
	ALUSDPool   = "alUSD"
	// BTCPool is outdated and superseded by BTCV2Pool.
	BTCPool   = "BTC"
	BTCV2Pool = "BTC V2"
)

var (
	DAIAddress   = common.HexToAddress("0x6B175474E89094C44Da98b954EedeAC495271d0F")
	USDCAddress  = common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
	USDTAddress  = common.HexToAddress("0xdAC17F958D2ee523a2206206994597C13D831ec7")
	FRAXAddress  = common.HexToAddress("0x853d955aCEf822Db058eb8505911ED77F175b99e")
	ALUSDAddress = common.HexToAddress("0xBC6DA0FE9aD5f3b0d58160288917AA56653660E9")

	StablesPoolAddress     = common.HexToAddress("0x00000000000000000000000000000000000a0001")
	FRAXPoolAddress        = common.HexToAddress("0x00000000000000000000000000000000000f0001")
	FRAXMetaDepositAddress = common.HexToAddress("0x00000000000000000000000000000000000f0002")
	ALUSDPoolAddress       = common.HexToAddress("0x00000000000000000000000000000000000e0001")
	BTCPoolAddress         = common.HexToAddress("0x00000000000000000000000000000000000b0001")
	BTCV2PoolAddress       = common.HexToAddress("0x00000000000000000000000000000000000b0002")
	ComposerAddress        = common.HexToAddress("0x00000000000000000000000000000000000c0001")

	DefaultRouterConfig = domain.RouterConfig{
		RouteCacheEnabled: true,
		RouteCacheSize:    16,
	}
)

func chainAddress(address common.Address) map[string]string {
	return map[string]string{"1": address.Hex()}
}

// DefaultRegistryConfig returns a registry with a base pool, two meta pools over it,
// an outdated pool and a token that belongs to no pool.
func DefaultRegistryConfig() domain.RegistryConfig {
	return domain.RegistryConfig{
		Tokens: []domain.TokenConfig{
			{Symbol: DAI, Decimals: 18, CoingeckoID: "dai", Addresses: chainAddress(DAIAddress)},
			{Symbol: USDC, Decimals: 6, CoingeckoID: "usd-coin", Addresses: chainAddress(USDCAddress)},
			{Symbol: USDT, Decimals: 6, CoingeckoID: "tether", Addresses: chainAddress(USDTAddress)},
			{Symbol: SaddleUSD, Decimals: 18, IsLPToken: true},
			{Symbol: FRAX, Decimals: 18, CoingeckoID: "frax", Addresses: chainAddress(FRAXAddress)},
			{Symbol: ALUSD, Decimals: 18, CoingeckoID: "alchemix-usd", Addresses: chainAddress(ALUSDAddress)},
			{Symbol: WBTC, Decimals: 8, CoingeckoID: "wrapped-bitcoin"},
			{Symbol: RENBTC, Decimals: 8, CoingeckoID: "renbtc"},
			{Symbol: SBTC, Decimals: 18, CoingeckoID: "sbtc"},
			{Symbol: USX, Decimals: 18},
		},
		Pools: []domain.PoolConfig{
			{
				Name:      StablesPool,
				Tokens:    []string{DAI, USDC, USDT},
				Addresses: chainAddress(StablesPoolAddress),
			},
			{
				Name:                     FRAXPool,
				Tokens:                   []string{FRAX, SaddleUSD},
				Underlying:               StablesPool,
				Addresses:                chainAddress(FRAXPoolAddress),
				MetaSwapDepositAddresses: chainAddress(FRAXMetaDepositAddress),
			},
			{
				Name:       ALUSDPool,
				Tokens:     []string{ALUSD, SaddleUSD},
				Underlying: StablesPool,
				Addresses:  chainAddress(ALUSDPoolAddress),
			},
			{
				Name:       BTCPool,
				Tokens:     []string{WBTC, RENBTC, SBTC},
				Addresses:  chainAddress(BTCPoolAddress),
				IsOutdated: true,
			},
			{
				Name:      BTCV2Pool,
				Tokens:    []string{WBTC, RENBTC},
				Addresses: chainAddress(BTCV2PoolAddress),
			},
		},
	}
}

// StablesOnlyRegistryConfig returns a registry with the single base pool.
func StablesOnlyRegistryConfig() domain.RegistryConfig {
	config := DefaultRegistryConfig()
	return domain.RegistryConfig{
		Tokens: config.Tokens[:3],
		Pools:  config.Pools[:1],
	}
}

// DefaultTVLs ranks BTC above BTC V2 so that the outdated pool comes first.
func DefaultTVLs() domain.PoolTVLMap {
	return domain.PoolTVLMap{
		StablesPool: osmomath.NewDec(10_000_000),
		FRAXPool:    osmomath.NewDec(2_000_000),
		ALUSDPool:   osmomath.NewDec(1_000_000),
		BTCPool:     osmomath.NewDec(5_000_000),
		BTCV2Pool:   osmomath.NewDec(3_000_000),
	}
}

// NewRegistry builds the registry and fails the test on error.
func (s *RouterTestHelper) NewRegistry(config domain.RegistryConfig) *domain.Registry {
	registry, err := domain.NewRegistry(config, ChainID)
	s.Require().NoError(err)
	return registry
}

// SetupRouterUsecase returns a router use case over the default registry unless overridden.
func (s *RouterTestHelper) SetupRouterUsecase(opts ...TestOption) mvc.RouterUsecase {
	options := TestOptions{
		RegistryConfig: DefaultRegistryConfig(),
		RouterConfig:   DefaultRouterConfig,
	}
	for _, opt := range opts {
		opt(&options)
	}

	registry := s.NewRegistry(options.RegistryConfig)

	routerUsecase, err := routerusecase.NewRouterUsecase(routerrepo.New(), registry, options.RouterConfig, &log.NoOpLogger{})
	s.Require().NoError(err)

	if options.TVLs != nil {
		routerUsecase.UpdateTVL(context.Background(), options.TVLs)
	}

	return routerUsecase
}
