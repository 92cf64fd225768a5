package datafetchers

import (
	"context"
	"time"

	"github.com/osmosis-labs/osmosis/osmomath"
	"go.uber.org/zap"

	"github.com/stableswap/sqs/domain"
	"github.com/stableswap/sqs/domain/mvc"
	"github.com/stableswap/sqs/log"
)

// GetFetchPoolTVLsCb returns a callback that fetches pool TVLs and pushes them into the router.
// It increments the error counter if the TVL fetching fails.
// The router rebuilds the pool graph only when the TVLs changed.
func GetFetchPoolTVLsCb(tvlSource domain.TVLSource, routerUsecase mvc.RouterUsecase, timeout time.Duration, logger log.Logger) func() (domain.PoolTVLMap, error) {
	return func() (domain.PoolTVLMap, error) {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		tvls, err := tvlSource.GetPoolTVLs(ctx)
		if err != nil {
			logger.Error("failed to fetch pool TVLs", zap.Error(err))

			domain.SQSTVLFetchErrorCounter.Inc()

			return nil, err
		}

		routerUsecase.UpdateTVL(ctx, tvls)

		return tvls, nil
	}
}

// GetFetchPricesCb returns a callback that fetches the USD prices of the given tokens keyed by symbol.
// It increments the error counter if the price fetching fails.
func GetFetchPricesCb(pricingSource domain.PricingSource, tokens []domain.Token, timeout time.Duration, logger log.Logger) func() (map[string]osmomath.Dec, error) {
	return func() (map[string]osmomath.Dec, error) {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		prices, err := pricingSource.GetPrices(ctx, tokens)
		if err != nil {
			logger.Error("failed to fetch prices", zap.Error(err))

			domain.SQSPricingErrorCounter.Inc()

			return nil, err
		}

		return prices, nil
	}
}
