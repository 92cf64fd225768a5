package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/osmosis-labs/osmosis/osmomath"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/stableswap/sqs/domain"
	"github.com/stableswap/sqs/domain/mvc"
	"github.com/stableswap/sqs/log"
	"github.com/stableswap/sqs/swapmath"
)

const (
	tracerName = "sqs-swap-orchestrator"

	approvalKindReset    = "reset"
	approvalKindExact    = "exact"
	approvalKindInfinite = "infinite"

	stageApprove = "approve"
	stageExecute = "execute"
)

var (
	tracer = otel.Tracer(tracerName)

	errReceiptFailed = errors.New("transaction receipt status is failed")
)

var _ mvc.TxOrchestrator = &txOrchestrator{}

type txOrchestrator struct {
	ledger   domain.Ledger
	variants *VariantFactory
	logger   log.Logger

	// now is swapped in tests.
	now func() time.Time

	mu              sync.Mutex
	lastCompletedAt time.Time
}

// NewTxOrchestrator returns a new transaction orchestrator.
func NewTxOrchestrator(ledger domain.Ledger, variants *VariantFactory, logger log.Logger) mvc.TxOrchestrator {
	if logger == nil {
		logger = &log.NoOpLogger{}
	}

	return &txOrchestrator{
		ledger:   ledger,
		variants: variants,
		logger:   logger,
		now:      time.Now,
	}
}

// Confirm implements mvc.TxOrchestrator.
// Approval and execute are separate transactions with no rollback:
// an approval left in place by a failed execute is reused by the next attempt.
func (o *txOrchestrator) Confirm(ctx context.Context, request domain.SwapRequest) (_ domain.SwapResult, err error) {
	ctx, span := tracer.Start(ctx, "swap.confirm")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	swapType := request.SwapData.Type
	span.SetAttributes(
		attribute.String("swap_type", swapType.String()),
		attribute.String("from", request.SwapData.From.Symbol),
		attribute.String("to", request.SwapData.To.Symbol),
	)

	variant, err := o.variants.NewVariant(request.SwapData)
	if err != nil {
		return domain.SwapResult{}, err
	}

	if variant.Type() == domain.SwapTypeInvalid {
		return domain.SwapResult{}, domain.UnresolvedRouteError{From: request.SwapData.From.Symbol, To: request.SwapData.To.Symbol}
	}

	if request.AmountIn.IsNil() || !request.AmountIn.IsPositive() {
		return domain.SwapResult{}, domain.InvalidAmountError{Amount: request.AmountIn.String(), Reason: "must be positive"}
	}

	if err := o.ensureAllowance(ctx, variant, request); err != nil {
		domain.SQSSwapExecutionErrorsCounter.WithLabelValues(swapType.String(), stageApprove).Inc()
		return domain.SwapResult{}, err
	}

	minAmountOut := swapmath.SubtractSlippage(request.QuotedAmountOut, request.Slippage)
	deadline := swapmath.Deadline(o.now(), request.DeadlineMinutes)

	receipt, err := variant.Execute(ctx, request.AmountIn, minAmountOut, deadline)
	if err != nil {
		domain.SQSSwapExecutionErrorsCounter.WithLabelValues(swapType.String(), stageExecute).Inc()
		o.logger.Error("failed to execute swap", zap.Stringer("swap_type", swapType), zap.String("tx_hash", receipt.TxHash), zap.Error(err))

		executionErr := domain.SwapExecutionError{SwapType: swapType, TxHash: receipt.TxHash, Err: err}
		if receipt.TxHash != "" {
			executionErr.Receipt = &receipt
		}
		return domain.SwapResult{}, executionErr
	}

	if !receipt.Status {
		domain.SQSSwapExecutionErrorsCounter.WithLabelValues(swapType.String(), stageExecute).Inc()
		o.logger.Error("swap transaction failed", zap.Stringer("swap_type", swapType), zap.String("tx_hash", receipt.TxHash))

		return domain.SwapResult{}, domain.SwapExecutionError{SwapType: swapType, TxHash: receipt.TxHash, Receipt: &receipt, Err: errReceiptFailed}
	}

	o.mu.Lock()
	o.lastCompletedAt = o.now()
	o.mu.Unlock()

	domain.SQSSwapsCompletedCounter.WithLabelValues(swapType.String()).Inc()
	o.logger.Info("swap completed", zap.Stringer("swap_type", swapType), zap.String("tx_hash", receipt.TxHash), zap.Uint64("block_number", receipt.BlockNumber))

	return domain.SwapResult{
		Receipt:      receipt,
		AmountIn:     request.AmountIn,
		MinAmountOut: minAmountOut,
	}, nil
}

// LastCompletedAt implements mvc.TxOrchestrator.
func (o *txOrchestrator) LastCompletedAt() time.Time {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.lastCompletedAt
}

// ensureAllowance approves the spender for at least the amount in.
// A non-zero but insufficient allowance is reset to zero first since some tokens
// reject changing one non-zero allowance to another.
func (o *txOrchestrator) ensureAllowance(ctx context.Context, variant SwapVariant, request domain.SwapRequest) error {
	token, spender := variant.TokenIn(), variant.Spender()

	allowance, err := o.ledger.Allowance(ctx, token, o.ledger.Owner(), spender)
	if err != nil {
		return domain.ApprovalError{Token: token.Hex(), Spender: spender.Hex(), Err: err}
	}

	if allowance.GTE(request.AmountIn) {
		return nil
	}

	if allowance.IsPositive() {
		if err := o.approve(ctx, variant, osmomath.ZeroInt(), approvalKindReset); err != nil {
			return err
		}
	}

	amount, kind := request.AmountIn, approvalKindExact
	if request.InfiniteApproval {
		amount, kind = domain.MaxUint256, approvalKindInfinite
	}

	return o.approve(ctx, variant, amount, kind)
}

func (o *txOrchestrator) approve(ctx context.Context, variant SwapVariant, amount osmomath.Int, kind string) error {
	token, spender := variant.TokenIn(), variant.Spender()

	receipt, err := o.ledger.Approve(ctx, token, spender, amount)
	if err != nil {
		return domain.ApprovalError{Token: token.Hex(), Spender: spender.Hex(), TxHash: receipt.TxHash, Err: err}
	}

	if !receipt.Status {
		return domain.ApprovalError{Token: token.Hex(), Spender: spender.Hex(), TxHash: receipt.TxHash, Err: errReceiptFailed}
	}

	domain.SQSSwapApprovalsCounter.WithLabelValues(kind).Inc()
	o.logger.Debug("approved spender", zap.String("kind", kind), zap.String("token", token.Hex()), zap.String("spender", spender.Hex()), zap.String("tx_hash", receipt.TxHash))

	return nil
}
