package http

import (
	"github.com/stableswap/sqs/domain"
	"github.com/stableswap/sqs/domain/mvc"
	"github.com/stableswap/sqs/log"
)

func ExtractVersion(ldFlagsValue string) (string, error) {
	return extractVersion(ldFlagsValue)
}

// NewTestSystemHandler returns a handler without registering routes.
func NewTestSystemHandler(config domain.Config, chain ChainHeightGetter, ru mvc.RouterUsecase, orchestrator mvc.TxOrchestrator) *SystemHandler {
	handler := &SystemHandler{
		logger:         &log.NoOpLogger{},
		config:         config,
		chain:          chain,
		RUsecase:       ru,
		TxOrchestrator: orchestrator,
	}
	return handler
}
