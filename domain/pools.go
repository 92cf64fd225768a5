package domain

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmomath"
)

// Pool represents an on-chain liquidity pool.
// Token order is the on-chain argument order and never changes for the lifetime of the pool.
type Pool struct {
	// Name is the unique pool name.
	Name string `json:"name"`
	// Tokens are the pool constituents. Index equals the on-chain token index.
	Tokens []Token `json:"tokens"`
	// UnderlyingPoolName is the base pool name for meta pools. Empty otherwise.
	UnderlyingPoolName string `json:"underlying_pool_name,omitempty"`
	// Addresses maps chain ID to the pool swap contract.
	Addresses map[uint64]common.Address `json:"addresses"`
	// MetaSwapDepositAddresses maps chain ID to the meta swap deposit contract
	// that swaps across the meta token and the base pool tokens.
	MetaSwapDepositAddresses map[uint64]common.Address `json:"meta_swap_deposit_addresses,omitempty"`
	// IsOutdated is true for pools superseded by a newer deployment.
	IsOutdated bool `json:"is_outdated"`
}

// IsMetaPool returns true if the pool swaps against the LP token of another pool.
func (p Pool) IsMetaPool() bool {
	return p.UnderlyingPoolName != ""
}

// Address returns the swap contract address on the given chain.
func (p Pool) Address(chainID uint64) (common.Address, bool) {
	address, ok := p.Addresses[chainID]
	return address, ok
}

// MetaSwapDepositAddress returns the meta swap deposit address on the given chain.
func (p Pool) MetaSwapDepositAddress(chainID uint64) (common.Address, bool) {
	address, ok := p.MetaSwapDepositAddresses[chainID]
	return address, ok
}

// HasMetaSwapDeposit returns true if the pool exposes a meta swap deposit contract on the chain.
func (p Pool) HasMetaSwapDeposit(chainID uint64) bool {
	_, ok := p.MetaSwapDepositAddresses[chainID]
	return ok
}

// TokenIndex returns the on-chain index of the token in the pool.
func (p Pool) TokenIndex(symbol string) (int, bool) {
	for i, token := range p.Tokens {
		if token.Symbol == symbol {
			return i, true
		}
	}
	return 0, false
}

// ContainsToken returns true if the token is one of the pool constituents.
func (p Pool) ContainsToken(symbol string) bool {
	_, ok := p.TokenIndex(symbol)
	return ok
}

// TokenPoolGraph maps a token symbol to the names of pools containing it,
// ranked by decreasing TVL.
type TokenPoolGraph map[string][]string

// GetRankedPools returns the ranked pool names for the token.
func (g TokenPoolGraph) GetRankedPools(symbol string) []string {
	return g[symbol]
}

// PoolTVLMap maps pool name to the USD total value locked.
type PoolTVLMap map[string]osmomath.Dec

// Equal returns true if both maps have the same keys and values.
func (m PoolTVLMap) Equal(other PoolTVLMap) bool {
	if len(m) != len(other) {
		return false
	}

	for poolName, tvl := range m {
		otherTVL, ok := other[poolName]
		if !ok || !tvl.Equal(otherTVL) {
			return false
		}
	}

	return true
}

// PoolsConfig is the config for the pool TVL lookup.
type PoolsConfig struct {
	// TVLURL is the endpoint serving pool name to USD TVL.
	TVLURL string `mapstructure:"tvl-url"`
	// TVLRefetchIntervalSecs is the polling interval of the TVL lookup.
	TVLRefetchIntervalSecs int `mapstructure:"tvl-refetch-interval-secs"`
}

// PoolWithTVL is a pool with its last known TVL.
// TVL is nil if the TVL lookup has no entry for the pool.
type PoolWithTVL struct {
	Pool
	TVL *osmomath.Dec `json:"tvl,omitempty"`
}
