package mocks

import (
	"context"

	"github.com/stableswap/sqs/domain"
	"github.com/stableswap/sqs/domain/mvc"
)

var _ mvc.RouterUsecase = &RouterUsecaseMock{}

// RouterUsecaseMock is a mock implementation of the RouterUsecase interface
type RouterUsecaseMock struct {
	ResolveFunc     func(ctx context.Context, origin string, opts ...domain.RouterOption) []domain.SwapData
	GetSwapDataFunc func(ctx context.Context, origin, destination string) (domain.SwapData, bool)
	GetGraphFunc    func() (domain.TokenPoolGraph, uint64)
	UpdateTVLFunc   func(ctx context.Context, tvls domain.PoolTVLMap) bool
	GetRegistryFunc func() *domain.Registry
	GetConfigFunc   func() domain.RouterConfig
}

// Resolve implements mvc.RouterUsecase.
func (m *RouterUsecaseMock) Resolve(ctx context.Context, origin string, opts ...domain.RouterOption) []domain.SwapData {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, origin, opts...)
	}
	panic("unimplemented")
}

// GetSwapData implements mvc.RouterUsecase.
func (m *RouterUsecaseMock) GetSwapData(ctx context.Context, origin, destination string) (domain.SwapData, bool) {
	if m.GetSwapDataFunc != nil {
		return m.GetSwapDataFunc(ctx, origin, destination)
	}
	panic("unimplemented")
}

// GetGraph implements mvc.RouterUsecase.
func (m *RouterUsecaseMock) GetGraph() (domain.TokenPoolGraph, uint64) {
	if m.GetGraphFunc != nil {
		return m.GetGraphFunc()
	}
	panic("unimplemented")
}

// UpdateTVL implements mvc.RouterUsecase.
func (m *RouterUsecaseMock) UpdateTVL(ctx context.Context, tvls domain.PoolTVLMap) bool {
	if m.UpdateTVLFunc != nil {
		return m.UpdateTVLFunc(ctx, tvls)
	}
	panic("unimplemented")
}

// GetRegistry implements mvc.RouterUsecase.
func (m *RouterUsecaseMock) GetRegistry() *domain.Registry {
	if m.GetRegistryFunc != nil {
		return m.GetRegistryFunc()
	}
	panic("unimplemented")
}

// GetConfig implements mvc.RouterUsecase.
func (m *RouterUsecaseMock) GetConfig() domain.RouterConfig {
	if m.GetConfigFunc != nil {
		return m.GetConfigFunc()
	}
	return domain.RouterConfig{}
}
