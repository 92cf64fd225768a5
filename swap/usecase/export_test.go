package usecase

import (
	"context"
	"time"
)

type (
	SwapUseCaseImpl    = swapUseCase
	TxOrchestratorImpl = txOrchestrator
	QuoteRequest       = quoteRequest
	Debouncer          = debouncer
)

func NewDebouncer(delay time.Duration) *Debouncer {
	return newDebouncer(delay)
}

func (s *swapUseCase) NewQuoteRequest() QuoteRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.newQuoteRequestLocked()
}

func (s *swapUseCase) RunQuote(ctx context.Context, request QuoteRequest) error {
	return s.runQuote(ctx, request)
}

func (s *swapUseCase) GetVersion() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

func (o *txOrchestrator) SetNow(now func() time.Time) {
	o.now = now
}
