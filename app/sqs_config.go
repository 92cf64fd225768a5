package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/stableswap/sqs/domain"
)

const envPrefix = "SQS"

// DefaultConfig returns the default config for the swap quote server.
// Every section is a fresh copy so that unmarshalling never mutates shared defaults.
func DefaultConfig() domain.Config {
	return domain.Config{
		ServerAddress: ":9092",

		LoggerFilename:     "sqs.log",
		LoggerIsProduction: true,
		LoggerLevel:        "info",

		ChainID: 1,

		Router: &domain.RouterConfig{
			RouteCacheEnabled: true,
			RouteCacheSize:    256,
		},

		Pools: &domain.PoolsConfig{
			TVLRefetchIntervalSecs: 60,
		},

		Pricing: &domain.PricingConfig{
			CacheExpiryMs:          2000, // 2 seconds.
			RefetchIntervalSecs:    30,
			CoingeckoUrl:           "https://api.coingecko.com/api/v3/simple/price",
			CoingeckoQuoteCurrency: "usd",
		},

		Swap: &domain.SwapConfig{
			QuoteDebounceMs:            250,
			TransactionDeadlineMinutes: 20,
			DefaultSlippage:            "0.1%",
			InfiniteApproval:           false,
		},

		Ledger: &domain.LedgerConfig{
			RPCURL:             "http://localhost:8545",
			ReceiptTimeoutSecs: 120,
		},

		CORS: &domain.CORSConfig{
			AllowedHeaders: "Origin, Accept, Content-Type, X-Requested-With",
			AllowedMethods: "GET",
			AllowedOrigin:  "*",
		},

		OTEL: &domain.OTELConfig{
			Environment: "production",
		},
	}
}

// LoadConfig merges the defaults, the config file, SQS_ prefixed environment variables and flags.
// Flags bound by name override nested keys, e.g. --ledger.rpc-url.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (domain.Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return domain.Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	v.SetConfigFile(cfgFile)
	if err := v.ReadInConfig(); err != nil {
		return domain.Config{}, fmt.Errorf("read config: %w", err)
	}

	config := DefaultConfig()
	if err := v.Unmarshal(&config); err != nil {
		return domain.Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return domain.Config{}, err
	}

	return config, nil
}
