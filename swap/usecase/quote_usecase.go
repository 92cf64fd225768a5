package usecase

import (
	"context"

	"github.com/osmosis-labs/osmosis/osmomath"
	"go.uber.org/zap"

	"github.com/stableswap/sqs/domain"
	"github.com/stableswap/sqs/domain/mvc"
	"github.com/stableswap/sqs/log"
	"github.com/stableswap/sqs/swapmath"
)

var _ mvc.QuoteUsecase = &quoteUseCase{}

type quoteUseCase struct {
	routerUsecase mvc.RouterUsecase
	tokensUsecase mvc.TokensUsecase
	variants      *VariantFactory
	slippage      osmomath.Dec
	logger        log.Logger
}

// NewQuoteUsecase returns a stateless quote use case sharing the variant dispatch of swap sessions.
func NewQuoteUsecase(config domain.SwapConfig, routerUsecase mvc.RouterUsecase, tokensUsecase mvc.TokensUsecase, variants *VariantFactory, logger log.Logger) (mvc.QuoteUsecase, error) {
	if logger == nil {
		logger = &log.NoOpLogger{}
	}

	slippage, err := swapmath.ParseSlippage(config.DefaultSlippage)
	if err != nil {
		return nil, err
	}

	fraction, err := slippage.Fraction()
	if err != nil {
		return nil, err
	}

	return &quoteUseCase{
		routerUsecase: routerUsecase,
		tokensUsecase: tokensUsecase,
		variants:      variants,
		slippage:      fraction,
		logger:        logger,
	}, nil
}

// GetQuote implements mvc.QuoteUsecase.
func (q *quoteUseCase) GetQuote(ctx context.Context, tokenIn domain.TokenAmount, destination string) (domain.Quote, error) {
	if err := domain.ValidateInputSymbols(tokenIn.Symbol, destination); err != nil {
		return domain.Quote{}, err
	}

	fromToken, err := q.tokensUsecase.GetToken(tokenIn.Symbol)
	if err != nil {
		return domain.Quote{}, err
	}

	toToken, err := q.tokensUsecase.GetToken(destination)
	if err != nil {
		return domain.Quote{}, err
	}

	if tokenIn.Amount.IsNil() || !tokenIn.Amount.IsPositive() {
		return domain.Quote{}, domain.InvalidAmountError{Amount: tokenIn.Amount.String(), Reason: "must be positive"}
	}

	swapData, ok := q.routerUsecase.GetSwapData(ctx, fromToken.Symbol, toToken.Symbol)
	if !ok || !swapData.IsExecutable() {
		return domain.Quote{}, domain.UnresolvedRouteError{From: fromToken.Symbol, To: toToken.Symbol}
	}

	variant, err := q.variants.NewVariant(swapData)
	if err != nil {
		return domain.Quote{}, err
	}

	amountOut, err := variant.Quote(ctx, tokenIn.Amount)
	if err != nil {
		domain.SQSQuoteErrorsCounter.WithLabelValues(swapData.Type.String()).Inc()
		q.logger.Error("failed to quote swap", zap.Stringer("swap_type", swapData.Type), zap.String("from", fromToken.Symbol), zap.String("to", toToken.Symbol), zap.Error(err))
		return domain.Quote{}, domain.QuoteError{SwapType: swapData.Type, From: fromToken.Symbol, To: toToken.Symbol, Err: err}
	}

	exchangeRate, err := swapmath.ExchangeRate(tokenIn.Amount, fromToken.Decimals, amountOut, toToken.Decimals)
	if err != nil {
		return domain.Quote{}, err
	}

	priceImpact := osmomath.ZeroDec()
	valueIn, errIn := q.tokensUsecase.ComputeValueUSD(ctx, fromToken.Symbol, tokenIn.Amount)
	valueOut, errOut := q.tokensUsecase.ComputeValueUSD(ctx, toToken.Symbol, amountOut)
	if errIn == nil && errOut == nil && valueIn.IsPositive() && valueOut.IsPositive() {
		priceImpact = swapmath.PriceImpact(valueIn, valueOut)
	} else {
		q.logger.Debug("no USD values for price impact", zap.String("from", fromToken.Symbol), zap.String("to", toToken.Symbol))
	}

	return domain.Quote{
		AmountIn:          tokenIn,
		AmountOut:         domain.NewTokenAmount(toToken.Symbol, amountOut),
		SwapData:          swapData,
		ExchangeRate:      exchangeRate,
		PriceImpact:       priceImpact,
		IsHighPriceImpact: swapmath.IsHighPriceImpact(priceImpact),
		MinAmountOut:      swapmath.SubtractSlippage(amountOut, q.slippage),
		Slippage:          q.slippage,
	}, nil
}
