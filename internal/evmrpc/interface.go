package evmrpc

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/dwarvesf/swappy/internal/model"
)

type IEvmRPC interface {
	Client() *ethclient.Client
	SignerAddress() common.Address
	FacilitatorAddress() common.Address
	BlockNumber(ctx context.Context) (uint64, error)

	Initialize(ctx context.Context, router, wrappedNative common.Address) (*TxReceipt, error)
	SwapNativeToToken(ctx context.Context, params SwapParams) (*SwapReceipt, error)

	Router(ctx context.Context) (common.Address, error)
	WrappedNative(ctx context.Context) (common.Address, error)
	Quote(ctx context.Context, tokenIn, tokenOut common.Address, fee uint32, amountIn *big.Int) (*big.Int, error)
	NativeBalance(ctx context.Context, account common.Address) (*big.Int, error)
	TokenBalance(ctx context.Context, token, account common.Address) (*TokenBalance, error)

	// SwapExecutions returns the SwapExecuted logs emitted from fromBlock up to
	// the current head, together with the head it stopped at.
	SwapExecutions(ctx context.Context, fromBlock uint64) ([]model.SwapExecution, uint64, error)
}

// SwapParams is a swapEtherToToken call paid with PaymentAmount wei.
type SwapParams struct {
	OutputAsset   common.Address
	MinimumOutput *big.Int
	FeeTier       uint32
	PaymentAmount *big.Int
}

type TxReceipt struct {
	TxHash      common.Hash
	BlockNumber uint64
}

// SwapReceipt is a mined swap with its decoded SwapExecuted log.
type SwapReceipt struct {
	TxReceipt
	LogIndex      uint
	Caller        common.Address
	OutputAsset   common.Address
	AmountIn      *big.Int
	MinimumOutput *big.Int
	AmountOut     *big.Int
}

type TokenBalance struct {
	Token    common.Address
	Symbol   string
	Decimals uint8
	Balance  *big.Int
}
