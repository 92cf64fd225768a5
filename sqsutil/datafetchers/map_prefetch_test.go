package datafetchers_test

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stableswap/sqs/sqsutil/datafetchers"
)

func TestMapIntervalFetcher_GetByKey(t *testing.T) {
	// Run the test in parallel with other tests
	t.Parallel()

	didFetchOnce := atomic.Bool{}

	// Define the update function
	updateFn := func() (map[string]string, error) {
		if didFetchOnce.Load() {
			// Intentionally block the update function to simulate a slow update
			time.Sleep(10 * time.Second)
		}

		didFetchOnce.Store(true)

		return map[string]string{
			"Stables": "10000000",
			"FRAX":    "2000000",
			"alUSD":   "1000000",
		}, nil
	}

	// Create a new MapIntervalFetcher with a short interval
	interval := 50 * time.Millisecond
	fetcher := datafetchers.NewMapFetcher(updateFn, interval)

	// Wait until the first result is fetched
	fetcher.WaitUntilFirstResult()

	// Test getting a valid key
	value, lastFetch, isStale, err := fetcher.GetByKey("Stables")
	assert.NoError(t, err)
	assert.Equal(t, "10000000", value)
	assert.False(t, isStale)
	assert.NotZero(t, lastFetch)

	// Test getting an invalid key
	value, lastFetch, isStale, err = fetcher.GetByKey("BTC")
	assert.Error(t, err)
	assert.Equal(t, "", value)
	assert.False(t, isStale)
	assert.NotZero(t, lastFetch)

	// Wait for more than 2x the interval to ensure data becomes stale
	time.Sleep(200 * time.Millisecond)

	// Test getting a key after data should be stale
	value, lastFetch, isStale, err = fetcher.GetByKey("FRAX")
	assert.NoError(t, err)
	assert.Equal(t, "2000000", value)
	assert.True(t, isStale)
	assert.NotZero(t, lastFetch)
}

// Failed fetches keep the last successful value.
func TestMapIntervalFetcher_ErrorKeepsLastValue(t *testing.T) {
	t.Parallel()

	fetchCount := atomic.Int32{}

	updateFn := func() (map[string]string, error) {
		if fetchCount.Add(1) > 1 {
			return nil, errors.New("tvl endpoint unavailable")
		}
		return map[string]string{"Stables": "1"}, nil
	}

	fetcher := datafetchers.NewMapFetcher(updateFn, 10*time.Millisecond)
	defer fetcher.Close()

	fetcher.WaitUntilFirstResult()

	require.Eventually(t, func() bool {
		return fetchCount.Load() > 2
	}, time.Second, 5*time.Millisecond)

	value, _, _, err := fetcher.GetByKey("Stables")
	require.NoError(t, err)
	require.Equal(t, "1", value)
}
