package evm

import (
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const (
	methodAllowance = "allowance"
	methodApprove   = "approve"

	methodCalculateSwap           = "calculateSwap"
	methodSwap                    = "swap"
	methodCalculateSwapUnderlying = "calculateSwapUnderlying"
	methodSwapUnderlying          = "swapUnderlying"
)

const erc20ABIJSON = `[
  {"inputs": [{"name": "owner", "type": "address"}, {"name": "spender", "type": "address"}], "name": "allowance", "outputs": [{"name": "", "type": "uint256"}], "stateMutability": "view", "type": "function"},
  {"inputs": [{"name": "spender", "type": "address"}, {"name": "amount", "type": "uint256"}], "name": "approve", "outputs": [{"name": "", "type": "bool"}], "stateMutability": "nonpayable", "type": "function"}
]`

// swapABIJSON is the pool swap contract. Tokens are addressed by their index in the pool.
const swapABIJSON = `[
  {"inputs": [{"name": "tokenIndexFrom", "type": "uint8"}, {"name": "tokenIndexTo", "type": "uint8"}, {"name": "dx", "type": "uint256"}], "name": "calculateSwap", "outputs": [{"name": "", "type": "uint256"}], "stateMutability": "view", "type": "function"},
  {"inputs": [{"name": "tokenIndexFrom", "type": "uint8"}, {"name": "tokenIndexTo", "type": "uint8"}, {"name": "dx", "type": "uint256"}, {"name": "minDy", "type": "uint256"}, {"name": "deadline", "type": "uint256"}], "name": "swap", "outputs": [{"name": "", "type": "uint256"}], "stateMutability": "nonpayable", "type": "function"}
]`

// metaSwapABIJSON is the meta pool contract. Underlying indexes are the meta tokens followed by the base pool tokens.
const metaSwapABIJSON = `[
  {"inputs": [{"name": "tokenIndexFrom", "type": "uint8"}, {"name": "tokenIndexTo", "type": "uint8"}, {"name": "dx", "type": "uint256"}], "name": "calculateSwapUnderlying", "outputs": [{"name": "", "type": "uint256"}], "stateMutability": "view", "type": "function"},
  {"inputs": [{"name": "tokenIndexFrom", "type": "uint8"}, {"name": "tokenIndexTo", "type": "uint8"}, {"name": "dx", "type": "uint256"}, {"name": "minDy", "type": "uint256"}, {"name": "deadline", "type": "uint256"}], "name": "swapUnderlying", "outputs": [{"name": "", "type": "uint256"}], "stateMutability": "nonpayable", "type": "function"}
]`

// composerABIJSON routes between two meta pools sharing a base pool. Tokens are addressed by address.
const composerABIJSON = `[
  {"inputs": [{"name": "tokenFrom", "type": "address"}, {"name": "tokenTo", "type": "address"}, {"name": "amountIn", "type": "uint256"}], "name": "calculateSwap", "outputs": [{"name": "", "type": "uint256"}], "stateMutability": "view", "type": "function"},
  {"inputs": [{"name": "tokenFrom", "type": "address"}, {"name": "tokenTo", "type": "address"}, {"name": "amountIn", "type": "uint256"}, {"name": "minAmountOut", "type": "uint256"}, {"name": "deadline", "type": "uint256"}], "name": "swap", "outputs": [{"name": "", "type": "uint256"}], "stateMutability": "nonpayable", "type": "function"}
]`

var (
	erc20ABI     abi.ABI
	erc20ABIOnce sync.Once
	erc20ABIErr  error

	swapABI     abi.ABI
	swapABIOnce sync.Once
	swapABIErr  error

	metaSwapABI     abi.ABI
	metaSwapABIOnce sync.Once
	metaSwapABIErr  error

	composerABI     abi.ABI
	composerABIOnce sync.Once
	composerABIErr  error
)

func erc20ABIInstance() (abi.ABI, error) {
	erc20ABIOnce.Do(func() {
		erc20ABI, erc20ABIErr = abi.JSON(strings.NewReader(erc20ABIJSON))
	})
	return erc20ABI, erc20ABIErr
}

func swapABIInstance() (abi.ABI, error) {
	swapABIOnce.Do(func() {
		swapABI, swapABIErr = abi.JSON(strings.NewReader(swapABIJSON))
	})
	return swapABI, swapABIErr
}

func metaSwapABIInstance() (abi.ABI, error) {
	metaSwapABIOnce.Do(func() {
		metaSwapABI, metaSwapABIErr = abi.JSON(strings.NewReader(metaSwapABIJSON))
	})
	return metaSwapABI, metaSwapABIErr
}

func composerABIInstance() (abi.ABI, error) {
	composerABIOnce.Do(func() {
		composerABI, composerABIErr = abi.JSON(strings.NewReader(composerABIJSON))
	})
	return composerABI, composerABIErr
}
