package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/stableswap/sqs/domain"
)

const minimalConfig = `{
  "logger-level": "info",
  "chain-id": 1,
  "swap": {
    "transaction-deadline-minutes": 30
  },
  "registry": {
    "tokens": [
      { "symbol": "DAI", "decimals": 18, "addresses": { "1": "0x6B175474E89094C44Da98b954EedeAC495271d0F" } },
      { "symbol": "USDC", "decimals": 6, "addresses": { "1": "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48" } }
    ],
    "pools": [
      { "name": "Stables", "tokens": ["DAI", "USDC"], "addresses": { "1": "0x00000000000000000000000000000000000a0001" } }
    ]
  }
}`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, minimalConfig)

	config, err := LoadConfig(path, nil)
	require.NoError(t, err)

	// From the file.
	require.Equal(t, uint64(1), config.ChainID)
	require.Equal(t, 30, config.Swap.TransactionDeadlineMinutes)
	require.Len(t, config.Registry.Tokens, 2)
	require.Equal(t, "0x6B175474E89094C44Da98b954EedeAC495271d0F", config.Registry.Tokens[0].Addresses["1"])

	// From the defaults.
	require.Equal(t, ":9092", config.ServerAddress)
	require.Equal(t, 256, config.Router.RouteCacheSize)
	require.Equal(t, "0.1%", config.Swap.DefaultSlippage)
	require.Equal(t, 250, config.Swap.QuoteDebounceMs)

	// Defaults are never shared across loads.
	require.Equal(t, 20, DefaultConfig().Swap.TransactionDeadlineMinutes)

	_, err = domain.NewRegistry(*config.Registry, config.ChainID)
	require.NoError(t, err)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfig(t, minimalConfig)

	t.Setenv("SQS_LOGGER_LEVEL", "debug")

	flags := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	flags.String("server-address", ":9092", "")
	require.NoError(t, flags.Parse([]string{"--server-address=:8080"}))

	config, err := LoadConfig(path, flags)
	require.NoError(t, err)

	require.Equal(t, "debug", config.LoggerLevel)
	require.Equal(t, ":8080", config.ServerAddress)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "missing registry",
			content: `{"chain-id": 1}`,
		},
		{
			name:    "non-positive deadline",
			content: `{"chain-id": 1, "swap": {"transaction-deadline-minutes": -1}, "registry": {"tokens": [], "pools": []}}`,
		},
		{
			name:    "malformed json",
			content: `{"chain-id": `,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tc.content), nil)
			require.Error(t, err)
		})
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"), nil)
	require.Error(t, err)
}
