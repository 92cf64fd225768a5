package evm

import (
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"

	"github.com/stableswap/sqs/domain"
	"github.com/stableswap/sqs/log"
)

var (
	ErrReadOnly          = errReadOnly
	ErrTokenIndexOutside = errTokenIndexOutside
)

func NewReadOnlyLedger(caller bind.ContractCaller, chainID uint64, config domain.LedgerConfig) (domain.Ledger, error) {
	return newLedger(caller, nil, chainID, config, &log.NoOpLogger{})
}

func ERC20ABI() (abi.ABI, error)    { return erc20ABIInstance() }
func SwapABI() (abi.ABI, error)     { return swapABIInstance() }
func MetaSwapABI() (abi.ABI, error) { return metaSwapABIInstance() }
func ComposerABI() (abi.ABI, error) { return composerABIInstance() }
