package domain

import "fmt"

// Config defines the config for the swap quote server.
type Config struct {
	// Defines the web server configuration.
	ServerAddress string `mapstructure:"server-address"`

	// Defines the logger configuration.
	LoggerFilename     string `mapstructure:"logger-filename"`
	LoggerIsProduction bool   `mapstructure:"logger-is-production"`
	LoggerLevel        string `mapstructure:"logger-level"`

	// ChainID is the EVM chain the registry addresses are resolved against.
	ChainID uint64 `mapstructure:"chain-id"`

	// Router encapsulates the router config.
	Router *RouterConfig `mapstructure:"router"`

	// Pools encapsulates the pool TVL lookup config.
	Pools *PoolsConfig `mapstructure:"pools"`

	Pricing *PricingConfig `mapstructure:"pricing"`

	// Swap encapsulates the quote state machine and orchestrator config.
	Swap *SwapConfig `mapstructure:"swap"`

	// Ledger encapsulates the JSON-RPC ledger config.
	Ledger *LedgerConfig `mapstructure:"ledger"`

	// Registry is the static token and pool registry.
	Registry *RegistryConfig `mapstructure:"registry"`

	CORS *CORSConfig `mapstructure:"cors"`

	OTEL *OTELConfig `mapstructure:"otel"`
}

// SwapConfig defines the config for swap sessions.
type SwapConfig struct {
	// QuoteDebounceMs is the quiet period after an amount edit before a quote is fetched.
	QuoteDebounceMs int `mapstructure:"quote-debounce-ms"`
	// TransactionDeadlineMinutes is added to the current time to build the execute deadline.
	TransactionDeadlineMinutes int `mapstructure:"transaction-deadline-minutes"`
	// DefaultSlippage is one of "0.1%", "1%" or a custom fraction such as "0.005".
	DefaultSlippage string `mapstructure:"default-slippage"`
	// InfiniteApproval approves the max uint256 amount instead of the exact spend amount.
	InfiniteApproval bool `mapstructure:"infinite-approval"`
}

// LedgerConfig defines the config for the on-chain ledger collaborator.
type LedgerConfig struct {
	// RPCURL is the JSON-RPC endpoint.
	RPCURL string `mapstructure:"rpc-url"`
	// PrivateKey is the hex encoded signer key. Read-only mode if empty.
	PrivateKey string `mapstructure:"private-key"`
	// ComposerAddress is the contract used for meta to meta swaps.
	ComposerAddress string `mapstructure:"composer-address"`
	// ReceiptTimeoutSecs bounds the wait for a transaction receipt.
	ReceiptTimeoutSecs int `mapstructure:"receipt-timeout-secs"`
}

// RegistryConfig is the static token and pool registry.
// Order of tokens and pools is the stable registry order.
type RegistryConfig struct {
	Tokens []TokenConfig `mapstructure:"tokens"`
	Pools  []PoolConfig  `mapstructure:"pools"`
}

// TokenConfig defines a registry token.
type TokenConfig struct {
	Symbol      string `mapstructure:"symbol"`
	Decimals    int    `mapstructure:"decimals"`
	IsLPToken   bool   `mapstructure:"is-lp-token"`
	CoingeckoID string `mapstructure:"coingecko-id"`
	// Addresses maps the decimal chain ID to the token address.
	Addresses map[string]string `mapstructure:"addresses"`
}

// PoolConfig defines a registry pool.
type PoolConfig struct {
	Name string `mapstructure:"name"`
	// Tokens are symbols in on-chain index order.
	Tokens []string `mapstructure:"tokens"`
	// Underlying is the base pool name for meta pools.
	Underlying string `mapstructure:"underlying"`
	// Addresses maps the decimal chain ID to the swap contract address.
	Addresses map[string]string `mapstructure:"addresses"`
	// MetaSwapDepositAddresses maps the decimal chain ID to the meta swap deposit address.
	MetaSwapDepositAddresses map[string]string `mapstructure:"meta-swap-deposit-addresses"`
	IsOutdated               bool              `mapstructure:"is-outdated"`
}

// CORSConfig defines the CORS headers set on every response.
type CORSConfig struct {
	AllowedHeaders string `mapstructure:"allowed-headers"`
	AllowedMethods string `mapstructure:"allowed-methods"`
	AllowedOrigin  string `mapstructure:"allowed-origin"`
}

// OTELConfig defines the sentry and open telemetry config.
type OTELConfig struct {
	DSN                string           `mapstructure:"dsn"`
	SampleRate         float64          `mapstructure:"sample-rate"`
	EnableTracing      bool             `mapstructure:"enable-tracing"`
	ProfilesSampleRate float64          `mapstructure:"profiles-sample-rate"`
	Environment        string           `mapstructure:"environment"`
	CustomSampleRate   CustomSampleRate `mapstructure:"custom-sample-rate"`
}

// CustomSampleRate defines per endpoint trace sampling rates.
type CustomSampleRate struct {
	Quote  float64 `mapstructure:"quote"`
	Routes float64 `mapstructure:"routes"`
	Other  float64 `mapstructure:"other"`
}

// Validate validates the config sections that have no sensible fallback.
func (c Config) Validate() error {
	if c.Registry == nil {
		return ConfigurationError{Field: "registry", Reason: "is not set"}
	}

	if c.Swap != nil {
		if c.Swap.QuoteDebounceMs < 0 {
			return ConfigurationError{Field: "swap.quote-debounce-ms", Reason: fmt.Sprintf("must be non-negative, got %d", c.Swap.QuoteDebounceMs)}
		}

		if c.Swap.TransactionDeadlineMinutes <= 0 {
			return ConfigurationError{Field: "swap.transaction-deadline-minutes", Reason: fmt.Sprintf("must be positive, got %d", c.Swap.TransactionDeadlineMinutes)}
		}
	}

	if c.Router != nil && c.Router.RouteCacheSize <= 0 {
		return ConfigurationError{Field: "router.route-cache-size", Reason: fmt.Sprintf("must be positive, got %d", c.Router.RouteCacheSize)}
	}

	return nil
}
