package mocks

import (
	"context"
	"time"

	"github.com/stableswap/sqs/domain"
	"github.com/stableswap/sqs/domain/mvc"
)

var _ mvc.TxOrchestrator = &TxOrchestratorMock{}

// TxOrchestratorMock is a mock implementation of mvc.TxOrchestrator.
type TxOrchestratorMock struct {
	ConfirmFunc         func(ctx context.Context, request domain.SwapRequest) (domain.SwapResult, error)
	LastCompletedAtFunc func() time.Time
}

// Confirm implements mvc.TxOrchestrator.
func (m *TxOrchestratorMock) Confirm(ctx context.Context, request domain.SwapRequest) (domain.SwapResult, error) {
	if m.ConfirmFunc != nil {
		return m.ConfirmFunc(ctx, request)
	}
	panic("unimplemented")
}

// LastCompletedAt implements mvc.TxOrchestrator.
func (m *TxOrchestratorMock) LastCompletedAt() time.Time {
	if m.LastCompletedAtFunc != nil {
		return m.LastCompletedAtFunc()
	}
	return time.Time{}
}
