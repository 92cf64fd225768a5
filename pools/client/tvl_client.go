package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/osmosis-labs/osmosis/osmomath"
	"go.uber.org/zap"

	"github.com/stableswap/sqs/domain"
	"github.com/stableswap/sqs/log"
	"github.com/stableswap/sqs/sqsutil/sqshttp"
)

// tvlResponse maps pool name to the USD TVL as a decimal string.
type tvlResponse map[string]string

type tvlClient struct {
	client *http.Client
	url    string
	logger log.Logger
}

var _ domain.TVLSource = &tvlClient{}

const defaultTVLRequestTimeout = 10 * time.Second

// NewTVLClient returns a TVL source reading `{"<pool name>": "<usd>"}` from url.
func NewTVLClient(url string, logger log.Logger) domain.TVLSource {
	return &tvlClient{
		client: &http.Client{Timeout: defaultTVLRequestTimeout},
		url:    url,
		logger: logger,
	}
}

// GetPoolTVLs implements domain.TVLSource.
// Entries that do not parse as a non-negative decimal are skipped.
func (t *tvlClient) GetPoolTVLs(ctx context.Context) (domain.PoolTVLMap, error) {
	response, err := sqshttp.Get[tvlResponse](ctx, t.client, t.url, "")
	if err != nil {
		return nil, fmt.Errorf("failed to get pool TVLs: %w", err)
	}

	tvls := make(domain.PoolTVLMap, len(*response))
	for poolName, rawTVL := range *response {
		tvl, err := osmomath.NewDecFromStr(rawTVL)
		if err != nil {
			t.logger.Warn("skipping unparsable pool TVL", zap.String("pool", poolName), zap.String("tvl", rawTVL), zap.Error(err))
			continue
		}

		if tvl.IsNegative() {
			t.logger.Warn("skipping negative pool TVL", zap.String("pool", poolName), zap.String("tvl", rawTVL))
			continue
		}

		tvls[poolName] = tvl
	}

	return tvls, nil
}
