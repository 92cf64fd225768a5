package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osmosis-labs/osmosis/osmomath"
	"go.uber.org/zap"

	"github.com/stableswap/sqs/domain"
	"github.com/stableswap/sqs/domain/mvc"
	"github.com/stableswap/sqs/log"
	"github.com/stableswap/sqs/swapmath"
)

const (
	defaultQuoteDebounce              = 250 * time.Millisecond
	defaultTransactionDeadlineMinutes = 20
)

var _ mvc.SwapUsecase = &swapUseCase{}

type swapUseCase struct {
	routerUsecase mvc.RouterUsecase
	tokensUsecase mvc.TokensUsecase
	variants      *VariantFactory
	orchestrator  mvc.TxOrchestrator
	debouncer     *debouncer
	logger        log.Logger

	// mu guards everything below. Ledger calls are made without holding it.
	mu    sync.Mutex
	state domain.SwapState
	// amountIn is the parsed from amount in token-native units.
	amountIn osmomath.Int
	// version is bumped on every selection or amount change.
	version uint64
	// quotedVersion is the version the current quote was computed for.
	quotedVersion uint64
	hasQuote      bool

	slippage         swapmath.Slippage
	infiniteApproval bool
	deadlineMinutes  int
}

// quoteRequest is the state a quote is computed from.
type quoteRequest struct {
	version  uint64
	swapData domain.SwapData
	amountIn osmomath.Int
}

// NewSwapUsecase returns a new swap session.
func NewSwapUsecase(config domain.SwapConfig, routerUsecase mvc.RouterUsecase, tokensUsecase mvc.TokensUsecase, variants *VariantFactory, orchestrator mvc.TxOrchestrator, logger log.Logger) (mvc.SwapUsecase, error) {
	if logger == nil {
		logger = &log.NoOpLogger{}
	}

	slippage, err := swapmath.ParseSlippage(config.DefaultSlippage)
	if err != nil {
		return nil, err
	}

	debounce := time.Duration(config.QuoteDebounceMs) * time.Millisecond
	if debounce <= 0 {
		debounce = defaultQuoteDebounce
	}

	deadlineMinutes := config.TransactionDeadlineMinutes
	if deadlineMinutes <= 0 {
		deadlineMinutes = defaultTransactionDeadlineMinutes
	}

	s := &swapUseCase{
		routerUsecase: routerUsecase,
		tokensUsecase: tokensUsecase,
		variants:      variants,
		orchestrator:  orchestrator,
		debouncer:     newDebouncer(debounce),
		logger:        logger,

		amountIn: osmomath.ZeroInt(),

		slippage:         slippage,
		infiniteApproval: config.InfiniteApproval,
		deadlineMinutes:  deadlineMinutes,
	}

	s.state = domain.SwapState{
		FromValueUSD:    osmomath.ZeroDec(),
		CandidateRoutes: []domain.SwapData{},
	}
	s.resetQuoteLocked()

	return s, nil
}

// SetFromToken implements mvc.SwapUsecase.
// Selecting the current to token reverses the direction.
func (s *swapUseCase) SetFromToken(ctx context.Context, symbol string) error {
	token, err := s.tokensUsecase.GetToken(symbol)
	if err != nil {
		return err
	}

	s.mu.Lock()

	if symbol == s.state.ToSymbol {
		s.mu.Unlock()
		return s.ReverseDirection(ctx)
	}

	if symbol == s.state.FromSymbol {
		s.mu.Unlock()
		return nil
	}

	if s.state.FromSymbol != "" {
		oldToken, err := s.tokensUsecase.GetToken(s.state.FromSymbol)
		if err != nil {
			s.mu.Unlock()
			return err
		}

		// Never round up what was typed.
		raw := s.state.FromAmountRaw
		if token.Decimals < oldToken.Decimals && swapmath.FractionalDigits(raw) > token.Decimals {
			s.state.FromAmountRaw = swapmath.TruncateDecimalString(raw, token.Decimals)
		}
	}

	s.state.FromSymbol = symbol
	s.state.CandidateRoutes = s.routerUsecase.Resolve(ctx, symbol)
	if !s.selectRouteLocked() {
		s.state.ToSymbol = ""
	}

	s.resetQuoteLocked()
	s.version++

	s.onInputChangedLocked(ctx, token.Decimals)
	s.mu.Unlock()

	return nil
}

// SetToToken implements mvc.SwapUsecase.
// Selecting the current from token reverses the direction.
// An unreachable token stays selected with an INVALID swap type.
func (s *swapUseCase) SetToToken(ctx context.Context, symbol string) error {
	if _, err := s.tokensUsecase.GetToken(symbol); err != nil {
		return err
	}

	s.mu.Lock()

	if symbol == s.state.FromSymbol {
		s.mu.Unlock()
		return s.ReverseDirection(ctx)
	}

	if symbol == s.state.ToSymbol {
		s.mu.Unlock()
		return nil
	}

	s.state.ToSymbol = symbol
	s.selectRouteLocked()

	s.resetQuoteLocked()
	s.version++

	fromDecimals, err := s.fromDecimalsLocked()
	if err != nil {
		s.mu.Unlock()
		return err
	}

	s.onInputChangedLocked(ctx, fromDecimals)
	s.mu.Unlock()

	return nil
}

// ReverseDirection implements mvc.SwapUsecase.
// The last quoted amount formatted at the new from token precision seeds the input.
func (s *swapUseCase) ReverseDirection(ctx context.Context) error {
	s.mu.Lock()

	newFrom, newTo := s.state.ToSymbol, s.state.FromSymbol

	seed := ""
	newFromDecimals := 0
	if newFrom != "" {
		token, err := s.tokensUsecase.GetToken(newFrom)
		if err != nil {
			s.mu.Unlock()
			return err
		}
		newFromDecimals = token.Decimals

		if !s.state.ToAmountQuoted.IsNil() && s.state.ToAmountQuoted.IsPositive() {
			seed = swapmath.FormatAmount(s.state.ToAmountQuoted, newFromDecimals)
		}
	}

	s.state.FromSymbol = newFrom
	s.state.ToSymbol = newTo
	s.state.FromAmountRaw = seed
	s.state.FromValueUSD = osmomath.ZeroDec()

	if newFrom != "" {
		s.state.CandidateRoutes = s.routerUsecase.Resolve(ctx, newFrom)
	} else {
		s.state.CandidateRoutes = []domain.SwapData{}
	}

	if !s.selectRouteLocked() {
		s.state.ToSymbol = ""
	}

	s.resetQuoteLocked()
	s.version++

	s.onInputChangedLocked(ctx, newFromDecimals)
	s.mu.Unlock()

	return nil
}

// SetFromAmount implements mvc.SwapUsecase.
// The raw text is stored as typed. A zero or unparsable amount cancels any pending quote.
func (s *swapUseCase) SetFromAmount(ctx context.Context, raw string) {
	s.mu.Lock()

	s.state.FromAmountRaw = raw
	s.version++

	fromSymbol := s.state.FromSymbol
	fromDecimals, err := s.fromDecimalsLocked()
	if err != nil {
		s.mu.Unlock()
		s.logger.Error("failed to get from token decimals", zap.String("symbol", fromSymbol), zap.Error(err))
		return
	}

	s.onInputChangedLocked(ctx, fromDecimals)
	s.mu.Unlock()
}

// QuoteNow implements mvc.SwapUsecase.
func (s *swapUseCase) QuoteNow(ctx context.Context) error {
	s.debouncer.Cancel()

	s.mu.Lock()
	if s.state.SwapData == nil || !s.state.SwapData.IsExecutable() {
		err := domain.UnresolvedRouteError{From: s.state.FromSymbol, To: s.state.ToSymbol}
		s.mu.Unlock()
		return err
	}

	if s.amountIn.IsNil() || !s.amountIn.IsPositive() {
		err := domain.InvalidAmountError{Amount: s.state.FromAmountRaw, Reason: "must be positive"}
		s.mu.Unlock()
		return err
	}

	request := s.newQuoteRequestLocked()
	s.mu.Unlock()

	return s.runQuote(ctx, request)
}

// SetSlippage implements mvc.SwapUsecase.
func (s *swapUseCase) SetSlippage(slippage swapmath.Slippage) error {
	if _, err := slippage.Fraction(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.slippage = slippage
	return nil
}

// SetInfiniteApproval implements mvc.SwapUsecase.
func (s *swapUseCase) SetInfiniteApproval(infinite bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.infiniteApproval = infinite
}

// SetTransactionDeadline implements mvc.SwapUsecase.
func (s *swapUseCase) SetTransactionDeadline(minutes int) error {
	if minutes <= 0 {
		return fmt.Errorf("%w: transaction deadline must be positive, got %d minutes", domain.ErrBadParamInput, minutes)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.deadlineMinutes = minutes
	return nil
}

// Confirm implements mvc.SwapUsecase.
// On success both sides are zeroed. On failure only the from amount is zeroed
// so that the selection and route stay in place for a retry.
func (s *swapUseCase) Confirm(ctx context.Context) (domain.SwapResult, error) {
	s.mu.Lock()

	if s.state.SwapData == nil || !s.state.SwapData.IsExecutable() {
		err := domain.UnresolvedRouteError{From: s.state.FromSymbol, To: s.state.ToSymbol}
		s.mu.Unlock()
		return domain.SwapResult{}, err
	}

	if !s.hasQuote || s.quotedVersion != s.version {
		s.mu.Unlock()
		return domain.SwapResult{}, domain.ErrNoQuote
	}

	slippage, err := s.slippage.Fraction()
	if err != nil {
		s.mu.Unlock()
		return domain.SwapResult{}, err
	}

	request := domain.SwapRequest{
		SwapData:         *s.state.SwapData,
		AmountIn:         s.amountIn,
		QuotedAmountOut:  s.state.ToAmountQuoted,
		Slippage:         slippage,
		InfiniteApproval: s.infiniteApproval,
		DeadlineMinutes:  s.deadlineMinutes,
	}
	version := s.version
	s.mu.Unlock()

	s.debouncer.Cancel()

	result, confirmErr := s.orchestrator.Confirm(ctx, request)

	s.mu.Lock()
	defer s.mu.Unlock()

	// The session moved on while confirming.
	if s.version != version {
		return result, confirmErr
	}

	s.state.FromAmountRaw = ""
	s.state.FromValueUSD = osmomath.ZeroDec()
	s.amountIn = osmomath.ZeroInt()
	s.hasQuote = false
	s.version++

	if confirmErr != nil {
		return domain.SwapResult{}, confirmErr
	}

	s.resetQuoteLocked()

	return result, nil
}

// Snapshot implements mvc.SwapUsecase.
func (s *swapUseCase) Snapshot() domain.SwapState {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state
	snapshot.CandidateRoutes = make([]domain.SwapData, len(s.state.CandidateRoutes))
	copy(snapshot.CandidateRoutes, s.state.CandidateRoutes)

	if s.state.SwapData != nil {
		swapData := *s.state.SwapData
		snapshot.SwapData = &swapData
	}

	return snapshot
}

// Close implements mvc.SwapUsecase.
func (s *swapUseCase) Close() {
	s.debouncer.Cancel()
}

// selectRouteLocked selects the candidate reaching the current to token.
// Returns false if there is a to token and no candidate reaches it.
func (s *swapUseCase) selectRouteLocked() bool {
	s.state.SwapData = nil
	s.state.SwapType = domain.SwapTypeInvalid

	if s.state.ToSymbol == "" {
		return true
	}

	for i := range s.state.CandidateRoutes {
		if s.state.CandidateRoutes[i].To.Symbol == s.state.ToSymbol {
			swapData := s.state.CandidateRoutes[i]
			s.state.SwapData = &swapData
			s.state.SwapType = swapData.Type
			return true
		}
	}

	return false
}

func (s *swapUseCase) resetQuoteLocked() {
	s.state.ToAmountQuoted = osmomath.ZeroInt()
	s.state.ToValueUSD = osmomath.ZeroDec()
	s.state.ExchangeRate = osmomath.ZeroDec()
	s.state.PriceImpact = osmomath.ZeroDec()
	s.state.IsHighPriceImpact = false
	s.hasQuote = false
}

func (s *swapUseCase) fromDecimalsLocked() (int, error) {
	if s.state.FromSymbol == "" {
		return 0, nil
	}

	token, err := s.tokensUsecase.GetToken(s.state.FromSymbol)
	if err != nil {
		return 0, err
	}

	return token.Decimals, nil
}

func (s *swapUseCase) newQuoteRequestLocked() quoteRequest {
	return quoteRequest{
		version:  s.version,
		swapData: *s.state.SwapData,
		amountIn: s.amountIn,
	}
}

// onInputChangedLocked parses the raw input and schedules a debounced quote.
// Pricing may hit the network, so the USD value is also refreshed on the debounced path.
func (s *swapUseCase) onInputChangedLocked(ctx context.Context, fromDecimals int) {
	amountIn, err := swapmath.ParseAmount(s.state.FromAmountRaw, fromDecimals)
	if s.state.FromSymbol == "" || s.state.FromAmountRaw == "" || err != nil || !amountIn.IsPositive() {
		s.amountIn = osmomath.ZeroInt()
		s.state.FromValueUSD = osmomath.ZeroDec()
		s.resetQuoteLocked()
		s.debouncer.Cancel()
		return
	}

	s.amountIn = amountIn

	executable := s.state.SwapData != nil && s.state.SwapData.IsExecutable()
	request := quoteRequest{version: s.version, swapData: domain.NewInvalidSwapData(s.state.FromSymbol, s.state.ToSymbol), amountIn: amountIn}
	if executable {
		request = s.newQuoteRequestLocked()
	}

	// The quote outlives the call that scheduled it.
	quoteCtx := context.WithoutCancel(ctx)
	s.debouncer.Schedule(func(sequence uint64) {
		if !s.debouncer.IsLatest(sequence) {
			return
		}

		if !executable {
			s.refreshFromValueUSD(quoteCtx, request)
			return
		}

		// Errors are logged and counted by runQuote.
		if err := s.runQuote(quoteCtx, request); err != nil {
			s.refreshFromValueUSD(quoteCtx, request)
		}
	})
}

// refreshFromValueUSD recomputes the USD value of the input.
// The value is dropped if the session moved on meanwhile.
func (s *swapUseCase) refreshFromValueUSD(ctx context.Context, request quoteRequest) {
	fromSymbol := request.swapData.From.Symbol
	valueUSD, err := s.tokensUsecase.ComputeValueUSD(ctx, fromSymbol, request.amountIn)
	if err != nil {
		s.logger.Debug("failed to compute from value in USD", zap.String("symbol", fromSymbol), zap.Error(err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.version != request.version {
		return
	}

	s.state.FromValueUSD = valueUSD
}

// runQuote quotes the request through the ledger and applies the result if the session did not move on.
// A failed quote leaves the previous quote in place.
func (s *swapUseCase) runQuote(ctx context.Context, request quoteRequest) error {
	swapData := request.swapData

	variant, err := s.variants.NewVariant(swapData)
	if err != nil {
		return s.quoteError(swapData, err)
	}

	amountOut, err := variant.Quote(ctx, request.amountIn)
	if err != nil {
		return s.quoteError(swapData, err)
	}

	fromToken, err := s.tokensUsecase.GetToken(swapData.From.Symbol)
	if err != nil {
		return s.quoteError(swapData, err)
	}

	toToken, err := s.tokensUsecase.GetToken(swapData.To.Symbol)
	if err != nil {
		return s.quoteError(swapData, err)
	}

	exchangeRate, err := swapmath.ExchangeRate(request.amountIn, fromToken.Decimals, amountOut, toToken.Decimals)
	if err != nil {
		return s.quoteError(swapData, err)
	}

	// USD values are display only. A missing price degrades to zero impact.
	valueIn, valueOut := osmomath.ZeroDec(), osmomath.ZeroDec()
	hasValueIn := false
	if value, err := s.tokensUsecase.ComputeValueUSD(ctx, fromToken.Symbol, request.amountIn); err == nil {
		valueIn, hasValueIn = value, true
	} else {
		s.logger.Debug("failed to compute from value in USD", zap.String("symbol", fromToken.Symbol), zap.Error(err))
	}

	if value, err := s.tokensUsecase.ComputeValueUSD(ctx, toToken.Symbol, amountOut); err == nil {
		valueOut = value
	} else {
		s.logger.Debug("failed to compute to value in USD", zap.String("symbol", toToken.Symbol), zap.Error(err))
	}

	priceImpact := osmomath.ZeroDec()
	if valueIn.IsPositive() && valueOut.IsPositive() {
		priceImpact = swapmath.PriceImpact(valueIn, valueOut)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.version != request.version {
		domain.SQSQuoteDiscardedCounter.Inc()
		s.logger.Debug("discarding stale quote", zap.Uint64("quote_version", request.version), zap.Uint64("version", s.version))
		return nil
	}

	s.state.ToAmountQuoted = amountOut
	s.state.ToValueUSD = valueOut
	if hasValueIn {
		s.state.FromValueUSD = valueIn
	}
	s.state.ExchangeRate = exchangeRate
	s.state.PriceImpact = priceImpact
	s.state.IsHighPriceImpact = swapmath.IsHighPriceImpact(priceImpact)
	s.hasQuote = true
	s.quotedVersion = request.version

	return nil
}

func (s *swapUseCase) quoteError(swapData domain.SwapData, err error) error {
	quoteErr := domain.QuoteError{
		SwapType: swapData.Type,
		From:     swapData.From.Symbol,
		To:       swapData.To.Symbol,
		Err:      err,
	}

	domain.SQSQuoteErrorsCounter.WithLabelValues(swapData.Type.String()).Inc()
	s.logger.Error("failed to quote swap", zap.Stringer("swap_type", swapData.Type), zap.String("from", swapData.From.Symbol), zap.String("to", swapData.To.Symbol), zap.Error(err))

	return quoteErr
}
