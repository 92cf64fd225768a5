package domain

import (
	"context"
	"math/big"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
	"github.com/osmosis-labs/osmosis/osmomath"
)

// MaxUint256 is the infinite approval sentinel.
var MaxUint256 = sdkmath.NewIntFromBigInt(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1)))

// Ledger is the on-chain quote and execute surface.
// All methods block until the node responds or ctx is done.
type Ledger interface {
	// QuoteDirect quotes a swap between tokens i and j of a pool.
	QuoteDirect(ctx context.Context, pool common.Address, i, j int, amountIn osmomath.Int) (osmomath.Int, error)
	// QuoteUnderlying quotes a swap between underlying tokens i and j of a meta pool deposit contract.
	QuoteUnderlying(ctx context.Context, metaSwap common.Address, i, j int, amountIn osmomath.Int) (osmomath.Int, error)
	// QuoteComposed quotes a swap routed by the composer contract through a shared base pool.
	QuoteComposed(ctx context.Context, tokenIn, tokenOut common.Address, amountIn osmomath.Int) (osmomath.Int, error)

	// Allowance returns the amount of token owner allowed spender to transfer.
	Allowance(ctx context.Context, token, owner, spender common.Address) (osmomath.Int, error)
	// Approve sets the spender allowance and waits for the receipt.
	Approve(ctx context.Context, token, spender common.Address, amount osmomath.Int) (Receipt, error)
	// ExecuteSwap sends the execute call matching swapType and waits for the receipt.
	ExecuteSwap(ctx context.Context, swapType SwapType, args ExecuteSwapArgs) (Receipt, error)

	// Owner returns the signer address.
	Owner() common.Address
}

// ExecuteSwapArgs are the arguments of an execute call.
// Token indexes are used by pool calls, token addresses by composer calls.
type ExecuteSwapArgs struct {
	Contract       common.Address
	TokenIndexFrom int
	TokenIndexTo   int
	TokenIn        common.Address
	TokenOut       common.Address
	AmountIn       osmomath.Int
	MinAmountOut   osmomath.Int
	Deadline       time.Time

	// ViaDeposit marks Contract as a meta swap deposit contract. Only read for STABLES_TO_META.
	ViaDeposit bool
}

// Receipt is a mined transaction receipt.
type Receipt struct {
	TxHash      string `json:"tx_hash"`
	Status      bool   `json:"status"`
	BlockNumber uint64 `json:"block_number"`
	GasUsed     uint64 `json:"gas_used"`
}
