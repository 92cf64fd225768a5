package evm

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/osmosis-labs/osmosis/osmomath"
	"go.uber.org/zap"

	"github.com/stableswap/sqs/domain"
	"github.com/stableswap/sqs/log"
)

const defaultReceiptTimeout = 2 * time.Minute

var (
	errReadOnly          = errors.New("ledger is read-only: no private key configured")
	errUnexpectedOutput  = errors.New("unexpected contract call output")
	errTokenIndexOutside = errors.New("token index must fit in uint8")
)

// Backend is the node surface needed to call, transact and wait for receipts.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

var _ domain.Ledger = &ledger{}

type ledger struct {
	caller  bind.ContractCaller
	backend Backend

	// nil in read-only mode.
	transactor *bind.TransactOpts
	owner      common.Address

	// Zero if no composer contract is deployed on the chain.
	composer common.Address

	receiptTimeout time.Duration
	logger         log.Logger
}

// NewLedger returns a ledger over the client.
// The node chain ID must match chainID. Without a private key the ledger quotes but never transacts.
func NewLedger(ctx context.Context, client *Client, chainID uint64, config domain.LedgerConfig, logger log.Logger) (domain.Ledger, error) {
	nodeChainID, err := client.ChainID(ctx)
	if err != nil {
		return nil, err
	}

	if !nodeChainID.IsUint64() || nodeChainID.Uint64() != chainID {
		return nil, domain.ConfigurationError{Field: "chain-id", Reason: fmt.Sprintf("node reports chain %s, configured %d", nodeChainID, chainID)}
	}

	return newLedger(client.ethClient, client.ethClient, chainID, config, logger)
}

func newLedger(caller bind.ContractCaller, backend Backend, chainID uint64, config domain.LedgerConfig, logger log.Logger) (*ledger, error) {
	if logger == nil {
		logger = &log.NoOpLogger{}
	}

	receiptTimeout := time.Duration(config.ReceiptTimeoutSecs) * time.Second
	if receiptTimeout <= 0 {
		receiptTimeout = defaultReceiptTimeout
	}

	var composer common.Address
	if config.ComposerAddress != "" {
		if !common.IsHexAddress(config.ComposerAddress) {
			return nil, domain.ConfigurationError{Field: "ledger.composer-address", Reason: fmt.Sprintf("invalid address %q", config.ComposerAddress)}
		}
		composer = common.HexToAddress(config.ComposerAddress)
	}

	l := &ledger{
		caller:         caller,
		composer:       composer,
		backend:        backend,
		receiptTimeout: receiptTimeout,
		logger:         logger,
	}

	if config.PrivateKey == "" {
		logger.Info("ledger in read-only mode")
		return l, nil
	}

	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(config.PrivateKey, "0x"))
	if err != nil {
		return nil, domain.ConfigurationError{Field: "ledger.private-key", Reason: err.Error()}
	}

	transactor, err := bind.NewKeyedTransactorWithChainID(privateKey, new(big.Int).SetUint64(chainID))
	if err != nil {
		return nil, domain.ConfigurationError{Field: "ledger.private-key", Reason: err.Error()}
	}

	l.transactor = transactor
	l.owner = crypto.PubkeyToAddress(privateKey.PublicKey)

	return l, nil
}

// QuoteDirect implements domain.Ledger.
func (l *ledger) QuoteDirect(ctx context.Context, pool common.Address, i, j int, amountIn osmomath.Int) (osmomath.Int, error) {
	from, to, err := tokenIndexes(i, j)
	if err != nil {
		return osmomath.Int{}, err
	}

	contractABI, err := swapABIInstance()
	if err != nil {
		return osmomath.Int{}, err
	}

	return l.callUint256(ctx, contractABI, pool, methodCalculateSwap, from, to, amountIn.BigInt())
}

// QuoteUnderlying implements domain.Ledger.
func (l *ledger) QuoteUnderlying(ctx context.Context, metaSwap common.Address, i, j int, amountIn osmomath.Int) (osmomath.Int, error) {
	from, to, err := tokenIndexes(i, j)
	if err != nil {
		return osmomath.Int{}, err
	}

	contractABI, err := metaSwapABIInstance()
	if err != nil {
		return osmomath.Int{}, err
	}

	return l.callUint256(ctx, contractABI, metaSwap, methodCalculateSwapUnderlying, from, to, amountIn.BigInt())
}

// QuoteComposed implements domain.Ledger.
func (l *ledger) QuoteComposed(ctx context.Context, tokenIn, tokenOut common.Address, amountIn osmomath.Int) (osmomath.Int, error) {
	if l.composer == (common.Address{}) {
		return osmomath.Int{}, domain.ConfigurationError{Field: "ledger.composer-address", Reason: "is not set"}
	}

	contractABI, err := composerABIInstance()
	if err != nil {
		return osmomath.Int{}, err
	}

	return l.callUint256(ctx, contractABI, l.composer, methodCalculateSwap, tokenIn, tokenOut, amountIn.BigInt())
}

// Allowance implements domain.Ledger.
func (l *ledger) Allowance(ctx context.Context, token, owner, spender common.Address) (osmomath.Int, error) {
	contractABI, err := erc20ABIInstance()
	if err != nil {
		return osmomath.Int{}, err
	}

	return l.callUint256(ctx, contractABI, token, methodAllowance, owner, spender)
}

// Approve implements domain.Ledger.
func (l *ledger) Approve(ctx context.Context, token, spender common.Address, amount osmomath.Int) (domain.Receipt, error) {
	contractABI, err := erc20ABIInstance()
	if err != nil {
		return domain.Receipt{}, err
	}

	return l.transact(ctx, contractABI, token, methodApprove, spender, amount.BigInt())
}

// ExecuteSwap implements domain.Ledger.
func (l *ledger) ExecuteSwap(ctx context.Context, swapType domain.SwapType, args domain.ExecuteSwapArgs) (domain.Receipt, error) {
	deadline := big.NewInt(args.Deadline.Unix())

	switch swapType {
	case domain.SwapTypeDirect:
		from, to, err := tokenIndexes(args.TokenIndexFrom, args.TokenIndexTo)
		if err != nil {
			return domain.Receipt{}, err
		}

		contractABI, err := swapABIInstance()
		if err != nil {
			return domain.Receipt{}, err
		}

		return l.transact(ctx, contractABI, args.Contract, methodSwap, from, to, args.AmountIn.BigInt(), args.MinAmountOut.BigInt(), deadline)
	case domain.SwapTypeStablesToMeta:
		from, to, err := tokenIndexes(args.TokenIndexFrom, args.TokenIndexTo)
		if err != nil {
			return domain.Receipt{}, err
		}

		if args.ViaDeposit {
			contractABI, err := swapABIInstance()
			if err != nil {
				return domain.Receipt{}, err
			}

			return l.transact(ctx, contractABI, args.Contract, methodSwap, from, to, args.AmountIn.BigInt(), args.MinAmountOut.BigInt(), deadline)
		}

		contractABI, err := metaSwapABIInstance()
		if err != nil {
			return domain.Receipt{}, err
		}

		return l.transact(ctx, contractABI, args.Contract, methodSwapUnderlying, from, to, args.AmountIn.BigInt(), args.MinAmountOut.BigInt(), deadline)
	case domain.SwapTypeMetaToMeta:
		contractABI, err := composerABIInstance()
		if err != nil {
			return domain.Receipt{}, err
		}

		return l.transact(ctx, contractABI, args.Contract, methodSwap, args.TokenIn, args.TokenOut, args.AmountIn.BigInt(), args.MinAmountOut.BigInt(), deadline)
	default:
		return domain.Receipt{}, domain.ErrUnresolvedRoute
	}
}

// Owner implements domain.Ledger.
func (l *ledger) Owner() common.Address {
	return l.owner
}

// callUint256 calls a view method returning a single uint256.
func (l *ledger) callUint256(ctx context.Context, contractABI abi.ABI, address common.Address, method string, args ...interface{}) (osmomath.Int, error) {
	contract := bind.NewBoundContract(address, contractABI, l.caller, nil, nil)

	var out []interface{}
	if err := contract.Call(&bind.CallOpts{Context: ctx, From: l.owner}, &out, method, args...); err != nil {
		return osmomath.Int{}, fmt.Errorf("%s on %s: %w", method, address.Hex(), err)
	}

	if len(out) != 1 {
		return osmomath.Int{}, fmt.Errorf("%s on %s: %w", method, address.Hex(), errUnexpectedOutput)
	}

	value, ok := out[0].(*big.Int)
	if !ok || value == nil {
		return osmomath.Int{}, fmt.Errorf("%s on %s: %w", method, address.Hex(), errUnexpectedOutput)
	}

	return sdkmath.NewIntFromBigInt(value), nil
}

// transact sends the method call and waits until it is mined.
// The returned receipt carries the hash even if waiting fails.
func (l *ledger) transact(ctx context.Context, contractABI abi.ABI, address common.Address, method string, args ...interface{}) (domain.Receipt, error) {
	if l.transactor == nil {
		return domain.Receipt{}, errReadOnly
	}

	contract := bind.NewBoundContract(address, contractABI, l.caller, l.backend, l.backend)

	opts := *l.transactor
	opts.Context = ctx

	tx, err := contract.Transact(&opts, method, args...)
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("%s on %s: %w", method, address.Hex(), err)
	}

	receipt := domain.Receipt{TxHash: tx.Hash().Hex()}
	l.logger.Debug("sent transaction", zap.String("method", method), zap.String("contract", address.Hex()), zap.String("tx_hash", receipt.TxHash))

	waitCtx, cancel := context.WithTimeout(ctx, l.receiptTimeout)
	defer cancel()

	mined, err := bind.WaitMined(waitCtx, l.backend, tx)
	if err != nil {
		return receipt, fmt.Errorf("waiting for %s receipt: %w", receipt.TxHash, err)
	}

	return newReceipt(mined), nil
}

func newReceipt(receipt *types.Receipt) domain.Receipt {
	result := domain.Receipt{
		TxHash:  receipt.TxHash.Hex(),
		Status:  receipt.Status == types.ReceiptStatusSuccessful,
		GasUsed: receipt.GasUsed,
	}

	if receipt.BlockNumber != nil {
		result.BlockNumber = receipt.BlockNumber.Uint64()
	}

	return result
}

// tokenIndexes converts pool token indexes to the uint8 contract arguments.
func tokenIndexes(i, j int) (uint8, uint8, error) {
	if i < 0 || i > math.MaxUint8 || j < 0 || j > math.MaxUint8 {
		return 0, 0, fmt.Errorf("%w: got (%d, %d)", errTokenIndexOutside, i, j)
	}
	return uint8(i), uint8(j), nil
}
