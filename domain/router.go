package domain

// RouterConfig defines the config for the route resolver.
type RouterConfig struct {
	// RouteCacheEnabled toggles the per origin resolved route cache.
	RouteCacheEnabled bool `mapstructure:"route-cache-enabled"`
	// RouteCacheSize is the max number of (origin, snapshot) entries kept in the cache.
	RouteCacheSize int `mapstructure:"route-cache-size"`
}

// RouterOptions defines the options for resolving routes.
type RouterOptions struct {
	// DisableCache bypasses the route cache for a single resolution.
	DisableCache bool
}

// RouterOption configures the router options.
type RouterOption func(*RouterOptions)

// WithDisableCache configures the router options to bypass the route cache.
func WithDisableCache() RouterOption {
	return func(o *RouterOptions) {
		o.DisableCache = true
	}
}
