package evm_test

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/stretchr/testify/suite"

	"github.com/stableswap/sqs/domain"
	"github.com/stableswap/sqs/ledger/evm"
)

type LedgerTestSuite struct {
	suite.Suite
}

func TestLedgerTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerTestSuite))
}

const (
	chainID = uint64(1)

	// Well known development key. Never funded on a public chain.
	testPrivateKey = "0xb71c71a67e1177ad4e901695e1b4b9ee17ae16c6668d313eac2f96dbcda3f291"
)

var (
	poolAddress     = common.HexToAddress("0x00000000000000000000000000000000000a0001")
	composerAddress = common.HexToAddress("0x00000000000000000000000000000000000c0001")
	daiAddress      = common.HexToAddress("0x6B175474E89094C44Da98b954EedeAC495271d0F")
	usdcAddress     = common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")

	errNode = errors.New("node unavailable")
)

// fakeCaller answers eth_call by decoding the request against the contract ABI.
type fakeCaller struct {
	contractABI abi.ABI
	handle      func(to common.Address, method string, args []interface{}) (interface{}, error)
}

func (f *fakeCaller) CodeAt(ctx context.Context, contract common.Address, blockNumber *big.Int) ([]byte, error) {
	return []byte{0x01}, nil
}

func (f *fakeCaller) CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	method, err := f.contractABI.MethodById(call.Data[:4])
	if err != nil {
		return nil, err
	}

	args, err := method.Inputs.Unpack(call.Data[4:])
	if err != nil {
		return nil, err
	}

	result, err := f.handle(*call.To, method.Name, args)
	if err != nil {
		return nil, err
	}

	return method.Outputs.Pack(result)
}

func (s *LedgerTestSuite) TestMethodSignatures() {
	erc20ABI, err := evm.ERC20ABI()
	s.Require().NoError(err)
	swapABI, err := evm.SwapABI()
	s.Require().NoError(err)
	metaSwapABI, err := evm.MetaSwapABI()
	s.Require().NoError(err)
	composerABI, err := evm.ComposerABI()
	s.Require().NoError(err)

	tests := []struct {
		name        string
		contractABI abi.ABI
		method      string
		expectedSig string
	}{
		{name: "erc20 allowance", contractABI: erc20ABI, method: "allowance", expectedSig: "allowance(address,address)"},
		{name: "erc20 approve", contractABI: erc20ABI, method: "approve", expectedSig: "approve(address,uint256)"},
		{name: "pool quote", contractABI: swapABI, method: "calculateSwap", expectedSig: "calculateSwap(uint8,uint8,uint256)"},
		{name: "pool swap", contractABI: swapABI, method: "swap", expectedSig: "swap(uint8,uint8,uint256,uint256,uint256)"},
		{name: "meta pool quote", contractABI: metaSwapABI, method: "calculateSwapUnderlying", expectedSig: "calculateSwapUnderlying(uint8,uint8,uint256)"},
		{name: "meta pool swap", contractABI: metaSwapABI, method: "swapUnderlying", expectedSig: "swapUnderlying(uint8,uint8,uint256,uint256,uint256)"},
		{name: "composer quote", contractABI: composerABI, method: "calculateSwap", expectedSig: "calculateSwap(address,address,uint256)"},
		{name: "composer swap", contractABI: composerABI, method: "swap", expectedSig: "swap(address,address,uint256,uint256,uint256)"},
	}

	for _, tc := range tests {
		tc := tc
		s.Run(tc.name, func() {
			method, ok := tc.contractABI.Methods[tc.method]
			s.Require().True(ok)
			s.Require().Equal(tc.expectedSig, method.Sig)
			s.Require().Equal(crypto.Keccak256([]byte(tc.expectedSig))[:4], method.ID)
		})
	}
}

func (s *LedgerTestSuite) TestQuoteDirect() {
	swapABI, err := evm.SwapABI()
	s.Require().NoError(err)

	caller := &fakeCaller{
		contractABI: swapABI,
		handle: func(to common.Address, method string, args []interface{}) (interface{}, error) {
			s.Require().Equal(poolAddress, to)
			s.Require().Equal("calculateSwap", method)
			s.Require().Equal(uint8(0), args[0])
			s.Require().Equal(uint8(1), args[1])
			s.Require().Equal(0, args[2].(*big.Int).Cmp(big.NewInt(1_000_000_000_000_000_000)))
			return big.NewInt(999_000), nil
		},
	}

	ledger, err := evm.NewReadOnlyLedger(caller, chainID, domain.LedgerConfig{})
	s.Require().NoError(err)

	amountOut, err := ledger.QuoteDirect(context.Background(), poolAddress, 0, 1, osmomath.NewInt(1_000_000_000_000_000_000))
	s.Require().NoError(err)
	s.Require().True(amountOut.Equal(osmomath.NewInt(999_000)))

	_, err = ledger.QuoteDirect(context.Background(), poolAddress, 0, 256, osmomath.OneInt())
	s.Require().ErrorIs(err, evm.ErrTokenIndexOutside)
}

func (s *LedgerTestSuite) TestQuoteUnderlying() {
	metaSwapABI, err := evm.MetaSwapABI()
	s.Require().NoError(err)

	caller := &fakeCaller{
		contractABI: metaSwapABI,
		handle: func(to common.Address, method string, args []interface{}) (interface{}, error) {
			s.Require().Equal("calculateSwapUnderlying", method)
			s.Require().Equal(uint8(2), args[0])
			s.Require().Equal(uint8(0), args[1])
			return nil, errNode
		},
	}

	ledger, err := evm.NewReadOnlyLedger(caller, chainID, domain.LedgerConfig{})
	s.Require().NoError(err)

	_, err = ledger.QuoteUnderlying(context.Background(), poolAddress, 2, 0, osmomath.OneInt())
	s.Require().ErrorIs(err, errNode)
}

func (s *LedgerTestSuite) TestQuoteComposed() {
	composerABI, err := evm.ComposerABI()
	s.Require().NoError(err)

	caller := &fakeCaller{
		contractABI: composerABI,
		handle: func(to common.Address, method string, args []interface{}) (interface{}, error) {
			s.Require().Equal(composerAddress, to)
			s.Require().Equal(daiAddress, args[0])
			s.Require().Equal(usdcAddress, args[1])
			return big.NewInt(42), nil
		},
	}

	ledger, err := evm.NewReadOnlyLedger(caller, chainID, domain.LedgerConfig{ComposerAddress: composerAddress.Hex()})
	s.Require().NoError(err)

	amountOut, err := ledger.QuoteComposed(context.Background(), daiAddress, usdcAddress, osmomath.NewInt(100))
	s.Require().NoError(err)
	s.Require().True(amountOut.Equal(osmomath.NewInt(42)))

	// No composer on the chain.
	ledger, err = evm.NewReadOnlyLedger(caller, chainID, domain.LedgerConfig{})
	s.Require().NoError(err)

	_, err = ledger.QuoteComposed(context.Background(), daiAddress, usdcAddress, osmomath.NewInt(100))
	s.Require().ErrorAs(err, &domain.ConfigurationError{})
}

func (s *LedgerTestSuite) TestAllowance() {
	erc20ABI, err := evm.ERC20ABI()
	s.Require().NoError(err)

	owner := common.HexToAddress("0x00000000000000000000000000000000000d0001")

	caller := &fakeCaller{
		contractABI: erc20ABI,
		handle: func(to common.Address, method string, args []interface{}) (interface{}, error) {
			s.Require().Equal(daiAddress, to)
			s.Require().Equal(owner, args[0])
			s.Require().Equal(poolAddress, args[1])
			return domain.MaxUint256.BigInt(), nil
		},
	}

	ledger, err := evm.NewReadOnlyLedger(caller, chainID, domain.LedgerConfig{})
	s.Require().NoError(err)

	allowance, err := ledger.Allowance(context.Background(), daiAddress, owner, poolAddress)
	s.Require().NoError(err)
	s.Require().True(allowance.Equal(domain.MaxUint256))
}

func (s *LedgerTestSuite) TestReadOnly() {
	ledger, err := evm.NewReadOnlyLedger(&fakeCaller{}, chainID, domain.LedgerConfig{})
	s.Require().NoError(err)
	s.Require().Equal(common.Address{}, ledger.Owner())

	_, err = ledger.Approve(context.Background(), daiAddress, poolAddress, osmomath.OneInt())
	s.Require().ErrorIs(err, evm.ErrReadOnly)

	_, err = ledger.ExecuteSwap(context.Background(), domain.SwapTypeDirect, domain.ExecuteSwapArgs{
		Contract:     poolAddress,
		AmountIn:     osmomath.OneInt(),
		MinAmountOut: osmomath.OneInt(),
		Deadline:     time.Now(),
	})
	s.Require().ErrorIs(err, evm.ErrReadOnly)

	_, err = ledger.ExecuteSwap(context.Background(), domain.SwapTypeInvalid, domain.ExecuteSwapArgs{})
	s.Require().ErrorIs(err, domain.ErrUnresolvedRoute)
}

func (s *LedgerTestSuite) TestPrivateKey() {
	ledger, err := evm.NewReadOnlyLedger(&fakeCaller{}, chainID, domain.LedgerConfig{PrivateKey: testPrivateKey})
	s.Require().NoError(err)

	privateKey, err := crypto.HexToECDSA(testPrivateKey[2:])
	s.Require().NoError(err)
	s.Require().Equal(crypto.PubkeyToAddress(privateKey.PublicKey), ledger.Owner())

	_, err = evm.NewReadOnlyLedger(&fakeCaller{}, chainID, domain.LedgerConfig{PrivateKey: "0xnothex"})
	s.Require().ErrorAs(err, &domain.ConfigurationError{})

	_, err = evm.NewReadOnlyLedger(&fakeCaller{}, chainID, domain.LedgerConfig{ComposerAddress: "composer"})
	s.Require().ErrorAs(err, &domain.ConfigurationError{})
}
