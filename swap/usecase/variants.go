package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/stableswap/sqs/domain"
)

// SwapVariant is the quote and execute call shape of one swap type.
// It is selected once from resolved swap data.
type SwapVariant interface {
	// Type returns the swap type the variant dispatches.
	Type() domain.SwapType
	// TokenIn returns the address of the token spent.
	TokenIn() common.Address
	// Spender returns the contract that transfers the token in.
	Spender() common.Address
	// Quote returns the amount out for amountIn.
	Quote(ctx context.Context, amountIn osmomath.Int) (osmomath.Int, error)
	// Execute sends the swap and waits for the receipt.
	Execute(ctx context.Context, amountIn, minAmountOut osmomath.Int, deadline time.Time) (domain.Receipt, error)
}

var (
	_ SwapVariant = &directVariant{}
	_ SwapVariant = &stablesToMetaVariant{}
	_ SwapVariant = &metaToMetaVariant{}
	_ SwapVariant = &invalidVariant{}
)

// directVariant swaps between two tokens of the same pool.
type directVariant struct {
	ledger  domain.Ledger
	pool    common.Address
	tokenIn common.Address
	from    int
	to      int
}

func (v *directVariant) Type() domain.SwapType   { return domain.SwapTypeDirect }
func (v *directVariant) TokenIn() common.Address { return v.tokenIn }
func (v *directVariant) Spender() common.Address { return v.pool }

func (v *directVariant) Quote(ctx context.Context, amountIn osmomath.Int) (osmomath.Int, error) {
	return v.ledger.QuoteDirect(ctx, v.pool, v.from, v.to, amountIn)
}

func (v *directVariant) Execute(ctx context.Context, amountIn, minAmountOut osmomath.Int, deadline time.Time) (domain.Receipt, error) {
	return v.ledger.ExecuteSwap(ctx, domain.SwapTypeDirect, domain.ExecuteSwapArgs{
		Contract:       v.pool,
		TokenIndexFrom: v.from,
		TokenIndexTo:   v.to,
		TokenIn:        v.tokenIn,
		AmountIn:       amountIn,
		MinAmountOut:   minAmountOut,
		Deadline:       deadline,
	})
}

// stablesToMetaVariant swaps in the underlying token space of a meta pool.
// When the pool has a meta swap deposit contract, quotes and swaps go through it:
// the deposit contract exposes the plain swap entrypoints over the underlying index space.
type stablesToMetaVariant struct {
	ledger     domain.Ledger
	contract   common.Address
	viaDeposit bool
	tokenIn    common.Address
	from       int
	to         int
}

func (v *stablesToMetaVariant) Type() domain.SwapType   { return domain.SwapTypeStablesToMeta }
func (v *stablesToMetaVariant) TokenIn() common.Address { return v.tokenIn }
func (v *stablesToMetaVariant) Spender() common.Address { return v.contract }

func (v *stablesToMetaVariant) Quote(ctx context.Context, amountIn osmomath.Int) (osmomath.Int, error) {
	if v.viaDeposit {
		return v.ledger.QuoteDirect(ctx, v.contract, v.from, v.to, amountIn)
	}
	return v.ledger.QuoteUnderlying(ctx, v.contract, v.from, v.to, amountIn)
}

func (v *stablesToMetaVariant) Execute(ctx context.Context, amountIn, minAmountOut osmomath.Int, deadline time.Time) (domain.Receipt, error) {
	return v.ledger.ExecuteSwap(ctx, domain.SwapTypeStablesToMeta, domain.ExecuteSwapArgs{
		Contract:       v.contract,
		ViaDeposit:     v.viaDeposit,
		TokenIndexFrom: v.from,
		TokenIndexTo:   v.to,
		TokenIn:        v.tokenIn,
		AmountIn:       amountIn,
		MinAmountOut:   minAmountOut,
		Deadline:       deadline,
	})
}

// metaToMetaVariant swaps through the composer contract across two meta pools sharing a base pool.
type metaToMetaVariant struct {
	ledger   domain.Ledger
	composer common.Address
	tokenIn  common.Address
	tokenOut common.Address
}

func (v *metaToMetaVariant) Type() domain.SwapType   { return domain.SwapTypeMetaToMeta }
func (v *metaToMetaVariant) TokenIn() common.Address { return v.tokenIn }
func (v *metaToMetaVariant) Spender() common.Address { return v.composer }

func (v *metaToMetaVariant) Quote(ctx context.Context, amountIn osmomath.Int) (osmomath.Int, error) {
	return v.ledger.QuoteComposed(ctx, v.tokenIn, v.tokenOut, amountIn)
}

func (v *metaToMetaVariant) Execute(ctx context.Context, amountIn, minAmountOut osmomath.Int, deadline time.Time) (domain.Receipt, error) {
	return v.ledger.ExecuteSwap(ctx, domain.SwapTypeMetaToMeta, domain.ExecuteSwapArgs{
		Contract:     v.composer,
		TokenIn:      v.tokenIn,
		TokenOut:     v.tokenOut,
		AmountIn:     amountIn,
		MinAmountOut: minAmountOut,
		Deadline:     deadline,
	})
}

// invalidVariant guards against dispatching an unresolved swap, e.g. from a stale timer.
type invalidVariant struct {
	from string
	to   string
}

func (v *invalidVariant) Type() domain.SwapType   { return domain.SwapTypeInvalid }
func (v *invalidVariant) TokenIn() common.Address { return common.Address{} }
func (v *invalidVariant) Spender() common.Address { return common.Address{} }

func (v *invalidVariant) Quote(ctx context.Context, amountIn osmomath.Int) (osmomath.Int, error) {
	return osmomath.Int{}, domain.UnresolvedRouteError{From: v.from, To: v.to}
}

func (v *invalidVariant) Execute(ctx context.Context, amountIn, minAmountOut osmomath.Int, deadline time.Time) (domain.Receipt, error) {
	return domain.Receipt{}, domain.UnresolvedRouteError{From: v.from, To: v.to}
}

// VariantFactory selects the swap variant of resolved swap data on the configured chain.
type VariantFactory struct {
	registry *domain.Registry
	ledger   domain.Ledger
	composer common.Address
}

// NewVariantFactory returns a new variant factory.
// composer may be the zero address if no composer contract is deployed, in which case
// meta to meta swaps fail with a ConfigurationError.
func NewVariantFactory(registry *domain.Registry, ledger domain.Ledger, composer common.Address) *VariantFactory {
	return &VariantFactory{
		registry: registry,
		ledger:   ledger,
		composer: composer,
	}
}

// NewVariant returns the variant matching the swap type of swapData.
// Unresolved swap data yields the invalid variant.
// Returns a ConfigurationError if a required address is missing on the chain.
func (f *VariantFactory) NewVariant(swapData domain.SwapData) (SwapVariant, error) {
	if !swapData.IsExecutable() {
		return &invalidVariant{from: swapData.From.Symbol, to: swapData.To.Symbol}, nil
	}

	chainID := f.registry.ChainID()

	tokenIn, err := f.tokenAddress(swapData.From.Symbol)
	if err != nil {
		return nil, err
	}

	switch swapData.Type {
	case domain.SwapTypeDirect:
		pool, err := f.poolAddress(*swapData.From.PoolName)
		if err != nil {
			return nil, err
		}

		return &directVariant{
			ledger:  f.ledger,
			pool:    pool,
			tokenIn: tokenIn,
			from:    *swapData.From.TokenIndex,
			to:      *swapData.To.TokenIndex,
		}, nil
	case domain.SwapTypeStablesToMeta:
		metaPool, err := f.registry.GetPool(swapData.Pool)
		if err != nil {
			return nil, err
		}

		variant := &stablesToMetaVariant{
			ledger:  f.ledger,
			tokenIn: tokenIn,
			from:    *swapData.From.TokenIndex,
			to:      *swapData.To.TokenIndex,
		}

		if deposit, ok := metaPool.MetaSwapDepositAddress(chainID); ok {
			variant.contract, variant.viaDeposit = deposit, true
			return variant, nil
		}

		variant.contract, err = f.poolAddress(metaPool.Name)
		if err != nil {
			return nil, err
		}

		return variant, nil
	case domain.SwapTypeMetaToMeta:
		if f.composer == (common.Address{}) {
			return nil, domain.ConfigurationError{Field: "ledger.composer-address", Reason: fmt.Sprintf("required for %s swaps on chain %d", domain.SwapTypeMetaToMeta, chainID)}
		}

		tokenOut, err := f.tokenAddress(swapData.To.Symbol)
		if err != nil {
			return nil, err
		}

		return &metaToMetaVariant{
			ledger:   f.ledger,
			composer: f.composer,
			tokenIn:  tokenIn,
			tokenOut: tokenOut,
		}, nil
	default:
		return &invalidVariant{from: swapData.From.Symbol, to: swapData.To.Symbol}, nil
	}
}

func (f *VariantFactory) tokenAddress(symbol string) (common.Address, error) {
	token, err := f.registry.GetToken(symbol)
	if err != nil {
		return common.Address{}, err
	}

	address, ok := token.Address(f.registry.ChainID())
	if !ok {
		return common.Address{}, domain.ConfigurationError{Field: "registry.tokens." + symbol + ".addresses", Reason: fmt.Sprintf("no address on chain %d", f.registry.ChainID())}
	}

	return address, nil
}

func (f *VariantFactory) poolAddress(poolName string) (common.Address, error) {
	pool, err := f.registry.GetPool(poolName)
	if err != nil {
		return common.Address{}, err
	}

	address, ok := pool.Address(f.registry.ChainID())
	if !ok {
		return common.Address{}, domain.ConfigurationError{Field: "registry.pools." + poolName + ".addresses", Reason: fmt.Sprintf("no address on chain %d", f.registry.ChainID())}
	}

	return address, nil
}
