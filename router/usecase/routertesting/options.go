package routertesting

import (
	"github.com/stableswap/sqs/domain"
)

// TestOptions holds the options for setting up the router in tests.
type TestOptions struct {
	RegistryConfig domain.RegistryConfig
	RouterConfig   domain.RouterConfig
	TVLs           domain.PoolTVLMap
}

// TestOption configures the test options.
type TestOption func(*TestOptions)

// WithRegistryConfig sets the registry config.
func WithRegistryConfig(registryConfig domain.RegistryConfig) TestOption {
	return func(options *TestOptions) {
		options.RegistryConfig = registryConfig
	}
}

// WithRouterConfig sets the router config.
func WithRouterConfig(routerConfig domain.RouterConfig) TestOption {
	return func(options *TestOptions) {
		options.RouterConfig = routerConfig
	}
}

// WithTVLs sets the pool TVLs pushed into the router after creation.
func WithTVLs(tvls domain.PoolTVLMap) TestOption {
	return func(options *TestOptions) {
		options.TVLs = tvls
	}
}
