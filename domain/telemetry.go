package domain

import "github.com/prometheus/client_golang/prometheus"

var (
	// sqs_route_cache_hits_total
	//
	// counter that measures the number of resolved route cache hits
	//
	// Has the following labels:
	// * origin - the origin token symbol
	SQSRouteCacheHitsCounterMetricName = "sqs_route_cache_hits_total"

	// sqs_route_cache_misses_total
	//
	// counter that measures the number of resolved route cache misses
	//
	// Has the following labels:
	// * origin - the origin token symbol
	SQSRouteCacheMissesCounterMetricName = "sqs_route_cache_misses_total"

	// sqs_pool_graph_snapshot_id
	//
	// gauge that tracks the ID of the current token to ranked pools graph snapshot
	SQSPoolGraphSnapshotIDMetricName = "sqs_pool_graph_snapshot_id"

	// sqs_tvl_fetch_error_total
	//
	// counter that measures the number of errors when fetching pool TVLs
	SQSTVLFetchErrorMetricName = "sqs_tvl_fetch_error_total"

	// sqs_quote_errors_total
	//
	// counter that measures the number of failed ledger quote calls
	//
	// Has the following labels:
	// * swap_type - the swap type of the quoted route
	SQSQuoteErrorsMetricName = "sqs_quote_errors_total"

	// sqs_quote_discarded_total
	//
	// counter that measures the number of quote results discarded because the session state moved on
	SQSQuoteDiscardedMetricName = "sqs_quote_discarded_total"

	// sqs_swap_approvals_total
	//
	// counter that measures the number of approval transactions sent
	//
	// Has the following labels:
	// * kind - "reset", "exact" or "infinite"
	SQSSwapApprovalsMetricName = "sqs_swap_approvals_total"

	// sqs_swap_execution_errors_total
	//
	// counter that measures the number of failed swap confirmations
	//
	// Has the following labels:
	// * swap_type - the swap type of the executed route
	// * stage - "approve" or "execute"
	SQSSwapExecutionErrorsMetricName = "sqs_swap_execution_errors_total"

	// sqs_swaps_completed_total
	//
	// counter that measures the number of swaps confirmed with a successful receipt
	//
	// Has the following labels:
	// * swap_type - the swap type of the executed route
	SQSSwapsCompletedMetricName = "sqs_swaps_completed_total"

	// sqs_pricing_error_total
	//
	// counter that measures the number of errors when fetching USD prices
	SQSPricingErrorCounterMetricName = "sqs_pricing_error_total"

	// sqs_pricing_coingecko_cache_hits_total
	//
	// counter that measures the number of coingecko price cache hits
	SQSPricingCoingeckoCacheHitsCounterMetricName = "sqs_pricing_coingecko_cache_hits_total"

	// sqs_pricing_coingecko_cache_misses_total
	//
	// counter that measures the number of coingecko price cache misses
	SQSPricingCoingeckoCacheMissesCounterMetricName = "sqs_pricing_coingecko_cache_misses_total"

	SQSRouteCacheHitsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: SQSRouteCacheHitsCounterMetricName,
			Help: "Total number of resolved route cache hits",
		},
		[]string{"origin"},
	)

	SQSRouteCacheMissesCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: SQSRouteCacheMissesCounterMetricName,
			Help: "Total number of resolved route cache misses",
		},
		[]string{"origin"},
	)

	SQSPoolGraphSnapshotIDGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: SQSPoolGraphSnapshotIDMetricName,
			Help: "ID of the current pool graph snapshot",
		},
	)

	SQSTVLFetchErrorCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: SQSTVLFetchErrorMetricName,
			Help: "Total number of errors when fetching pool TVLs",
		},
	)

	SQSQuoteErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: SQSQuoteErrorsMetricName,
			Help: "Total number of failed quote calls",
		},
		[]string{"swap_type"},
	)

	SQSQuoteDiscardedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: SQSQuoteDiscardedMetricName,
			Help: "Total number of stale quote results discarded",
		},
	)

	SQSSwapApprovalsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: SQSSwapApprovalsMetricName,
			Help: "Total number of approval transactions sent",
		},
		[]string{"kind"},
	)

	SQSSwapExecutionErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: SQSSwapExecutionErrorsMetricName,
			Help: "Total number of failed swap confirmations",
		},
		[]string{"swap_type", "stage"},
	)

	SQSSwapsCompletedCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: SQSSwapsCompletedMetricName,
			Help: "Total number of completed swaps",
		},
		[]string{"swap_type"},
	)

	SQSPricingErrorCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: SQSPricingErrorCounterMetricName,
			Help: "Total number of pricing errors",
		},
	)

	SQSPricingCoingeckoCacheHitsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: SQSPricingCoingeckoCacheHitsCounterMetricName,
			Help: "Total number of pricing coingecko cache hits",
		},
	)

	SQSPricingCoingeckoCacheMissesCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: SQSPricingCoingeckoCacheMissesCounterMetricName,
			Help: "Total number of pricing coingecko cache misses",
		},
	)
)

func init() {
	prometheus.MustRegister(SQSRouteCacheHitsCounter)
	prometheus.MustRegister(SQSRouteCacheMissesCounter)
	prometheus.MustRegister(SQSPoolGraphSnapshotIDGauge)
	prometheus.MustRegister(SQSTVLFetchErrorCounter)
	prometheus.MustRegister(SQSQuoteErrorsCounter)
	prometheus.MustRegister(SQSQuoteDiscardedCounter)
	prometheus.MustRegister(SQSSwapApprovalsCounter)
	prometheus.MustRegister(SQSSwapExecutionErrorsCounter)
	prometheus.MustRegister(SQSSwapsCompletedCounter)
	prometheus.MustRegister(SQSPricingErrorCounter)
	prometheus.MustRegister(SQSPricingCoingeckoCacheHitsCounter)
	prometheus.MustRegister(SQSPricingCoingeckoCacheMissesCounter)
}
