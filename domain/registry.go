package domain

import (
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmoutils"
)

// Registry is the immutable token and pool registry.
// It is constructed once at startup and shared by reference.
type Registry struct {
	chainID uint64

	tokens     []Token
	tokenIndex map[string]int

	pools     []Pool
	poolIndex map[string]int

	// meta pool name -> non-LP meta tokens followed by base pool tokens.
	underlyingTokens map[string][]Token
	// meta pool name -> base pool LP token.
	baseLPTokens map[string]Token
}

// NewRegistry validates the registry config and builds the registry for the chain.
// Returns ConfigurationError on any invalid entry.
func NewRegistry(config RegistryConfig, chainID uint64) (*Registry, error) {
	r := &Registry{
		chainID:          chainID,
		tokens:           make([]Token, 0, len(config.Tokens)),
		tokenIndex:       make(map[string]int, len(config.Tokens)),
		pools:            make([]Pool, 0, len(config.Pools)),
		poolIndex:        make(map[string]int, len(config.Pools)),
		underlyingTokens: make(map[string][]Token),
		baseLPTokens:     make(map[string]Token),
	}

	for i, tokenConfig := range config.Tokens {
		token, err := newToken(tokenConfig)
		if err != nil {
			return nil, err
		}

		if _, ok := r.tokenIndex[token.Symbol]; ok {
			return nil, ConfigurationError{Field: fmt.Sprintf("registry.tokens[%d]", i), Reason: fmt.Sprintf("duplicate symbol %s", token.Symbol)}
		}

		r.tokenIndex[token.Symbol] = len(r.tokens)
		r.tokens = append(r.tokens, token)
	}

	for i, poolConfig := range config.Pools {
		pool, err := r.newPool(i, poolConfig)
		if err != nil {
			return nil, err
		}

		if _, ok := r.poolIndex[pool.Name]; ok {
			return nil, ConfigurationError{Field: fmt.Sprintf("registry.pools[%d]", i), Reason: fmt.Sprintf("duplicate pool name %s", pool.Name)}
		}

		r.poolIndex[pool.Name] = len(r.pools)
		r.pools = append(r.pools, pool)
	}

	// Meta pools may reference base pools declared after them.
	for _, pool := range r.pools {
		if !pool.IsMetaPool() {
			continue
		}

		if err := r.linkMetaPool(pool); err != nil {
			return nil, err
		}
	}

	return r, nil
}

func newToken(config TokenConfig) (Token, error) {
	if config.Symbol == "" {
		return Token{}, ConfigurationError{Field: "registry.tokens.symbol", Reason: "must not be empty"}
	}

	if config.Decimals < 0 || config.Decimals > MaxTokenDecimals {
		return Token{}, ConfigurationError{Field: fmt.Sprintf("registry.tokens.%s.decimals", config.Symbol), Reason: fmt.Sprintf("must be in [0, %d], got %d", MaxTokenDecimals, config.Decimals)}
	}

	addresses, err := parseAddresses(fmt.Sprintf("registry.tokens.%s.addresses", config.Symbol), config.Addresses)
	if err != nil {
		return Token{}, err
	}

	return Token{
		Symbol:      config.Symbol,
		Decimals:    config.Decimals,
		Addresses:   addresses,
		IsLPToken:   config.IsLPToken,
		CoingeckoID: config.CoingeckoID,
	}, nil
}

func (r *Registry) newPool(i int, config PoolConfig) (Pool, error) {
	field := fmt.Sprintf("registry.pools[%d]", i)
	if config.Name == "" {
		return Pool{}, ConfigurationError{Field: field, Reason: "name must not be empty"}
	}

	field = fmt.Sprintf("registry.pools.%s", config.Name)
	if len(config.Tokens) < 2 {
		return Pool{}, ConfigurationError{Field: field + ".tokens", Reason: fmt.Sprintf("must have at least 2 tokens, got %d", len(config.Tokens))}
	}

	tokens := make([]Token, 0, len(config.Tokens))
	seen := make([]string, 0, len(config.Tokens))
	for _, symbol := range config.Tokens {
		if osmoutils.Contains(seen, symbol) {
			return Pool{}, ConfigurationError{Field: field + ".tokens", Reason: fmt.Sprintf("duplicate token %s", symbol)}
		}
		seen = append(seen, symbol)

		token, err := r.GetToken(symbol)
		if err != nil {
			return Pool{}, ConfigurationError{Field: field + ".tokens", Reason: err.Error()}
		}
		tokens = append(tokens, token)
	}

	if config.Underlying == config.Name {
		return Pool{}, ConfigurationError{Field: field + ".underlying", Reason: "pool cannot be its own base pool"}
	}

	addresses, err := parseAddresses(field+".addresses", config.Addresses)
	if err != nil {
		return Pool{}, err
	}

	metaSwapDepositAddresses, err := parseAddresses(field+".meta-swap-deposit-addresses", config.MetaSwapDepositAddresses)
	if err != nil {
		return Pool{}, err
	}

	if len(metaSwapDepositAddresses) > 0 && config.Underlying == "" {
		return Pool{}, ConfigurationError{Field: field + ".meta-swap-deposit-addresses", Reason: "only meta pools have a meta swap deposit contract"}
	}

	return Pool{
		Name:                     config.Name,
		Tokens:                   tokens,
		UnderlyingPoolName:       config.Underlying,
		Addresses:                addresses,
		MetaSwapDepositAddresses: metaSwapDepositAddresses,
		IsOutdated:               config.IsOutdated,
	}, nil
}

func (r *Registry) linkMetaPool(pool Pool) error {
	field := fmt.Sprintf("registry.pools.%s.underlying", pool.Name)

	basePool, err := r.GetPool(pool.UnderlyingPoolName)
	if err != nil {
		return ConfigurationError{Field: field, Reason: err.Error()}
	}

	if basePool.IsMetaPool() {
		return ConfigurationError{Field: field, Reason: fmt.Sprintf("base pool %s must not be a meta pool", basePool.Name)}
	}

	var (
		lpTokens   []Token
		underlying = make([]Token, 0, len(pool.Tokens)+len(basePool.Tokens))
	)
	for _, token := range pool.Tokens {
		if token.IsLPToken {
			lpTokens = append(lpTokens, token)
			continue
		}
		underlying = append(underlying, token)
	}

	if len(lpTokens) != 1 {
		return ConfigurationError{Field: field, Reason: fmt.Sprintf("meta pool must hold exactly one base LP token, got %d", len(lpTokens))}
	}

	r.baseLPTokens[pool.Name] = lpTokens[0]
	r.underlyingTokens[pool.Name] = append(underlying, basePool.Tokens...)

	return nil
}

func parseAddresses(field string, raw map[string]string) (map[uint64]common.Address, error) {
	addresses := make(map[uint64]common.Address, len(raw))
	for chainIDStr, addressStr := range raw {
		chainID, err := strconv.ParseUint(chainIDStr, 10, 64)
		if err != nil {
			return nil, ConfigurationError{Field: field, Reason: fmt.Sprintf("invalid chain ID %q", chainIDStr)}
		}

		if !common.IsHexAddress(addressStr) {
			return nil, ConfigurationError{Field: field, Reason: fmt.Sprintf("invalid address %q for chain %d", addressStr, chainID)}
		}

		addresses[chainID] = common.HexToAddress(addressStr)
	}
	return addresses, nil
}

// ChainID returns the chain the registry addresses are resolved against.
func (r *Registry) ChainID() uint64 {
	return r.chainID
}

// GetTokens returns all tokens in registry order.
func (r *Registry) GetTokens() []Token {
	tokens := make([]Token, len(r.tokens))
	copy(tokens, r.tokens)
	return tokens
}

// GetPools returns all pools in registry order.
func (r *Registry) GetPools() []Pool {
	pools := make([]Pool, len(r.pools))
	copy(pools, r.pools)
	return pools
}

// GetToken returns the token by symbol.
func (r *Registry) GetToken(symbol string) (Token, error) {
	i, ok := r.tokenIndex[symbol]
	if !ok {
		return Token{}, TokenNotFoundError{Symbol: symbol}
	}
	return r.tokens[i], nil
}

// GetPool returns the pool by name.
func (r *Registry) GetPool(name string) (Pool, error) {
	i, ok := r.poolIndex[name]
	if !ok {
		return Pool{}, PoolNotFoundError{PoolName: name}
	}
	return r.pools[i], nil
}

// UnderlyingTokens returns the token index space of the meta pool deposit contract:
// the non-LP meta pool tokens followed by the base pool tokens.
// Returns false if the pool is not a meta pool.
func (r *Registry) UnderlyingTokens(poolName string) ([]Token, bool) {
	tokens, ok := r.underlyingTokens[poolName]
	return tokens, ok
}

// UnderlyingTokenIndex returns the index of the token in UnderlyingTokens(poolName).
func (r *Registry) UnderlyingTokenIndex(poolName string, symbol string) (int, bool) {
	tokens, ok := r.underlyingTokens[poolName]
	if !ok {
		return 0, false
	}

	for i, token := range tokens {
		if token.Symbol == symbol {
			return i, true
		}
	}
	return 0, false
}

// BaseLPToken returns the base pool LP token held by the meta pool.
func (r *Registry) BaseLPToken(poolName string) (Token, bool) {
	token, ok := r.baseLPTokens[poolName]
	return token, ok
}
