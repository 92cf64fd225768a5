package mocks

import (
	"context"

	"github.com/stableswap/sqs/domain"
)

var _ domain.TVLSource = &TVLSourceMock{}

// TVLSourceMock is a mock implementation of domain.TVLSource.
type TVLSourceMock struct {
	GetPoolTVLsFunc func(ctx context.Context) (domain.PoolTVLMap, error)
}

// GetPoolTVLs implements domain.TVLSource.
func (m *TVLSourceMock) GetPoolTVLs(ctx context.Context) (domain.PoolTVLMap, error) {
	if m.GetPoolTVLsFunc != nil {
		return m.GetPoolTVLsFunc(ctx)
	}
	panic("unimplemented")
}
