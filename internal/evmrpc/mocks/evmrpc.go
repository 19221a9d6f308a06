package mocks

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/stretchr/testify/mock"

	"github.com/dwarvesf/swappy/internal/evmrpc"
	"github.com/dwarvesf/swappy/internal/model"
)

// EvmRPC is a testify mock of evmrpc.IEvmRPC.
type EvmRPC struct {
	mock.Mock
}

var _ evmrpc.IEvmRPC = (*EvmRPC)(nil)

func (m *EvmRPC) Client() *ethclient.Client {
	return nil
}

func (m *EvmRPC) SignerAddress() common.Address {
	args := m.Called()
	return args.Get(0).(common.Address)
}

func (m *EvmRPC) FacilitatorAddress() common.Address {
	args := m.Called()
	return args.Get(0).(common.Address)
}

func (m *EvmRPC) BlockNumber(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *EvmRPC) Initialize(ctx context.Context, router, wrappedNative common.Address) (*evmrpc.TxReceipt, error) {
	args := m.Called(ctx, router, wrappedNative)
	receipt, _ := args.Get(0).(*evmrpc.TxReceipt)
	return receipt, args.Error(1)
}

func (m *EvmRPC) SwapNativeToToken(ctx context.Context, params evmrpc.SwapParams) (*evmrpc.SwapReceipt, error) {
	args := m.Called(ctx, params)
	receipt, _ := args.Get(0).(*evmrpc.SwapReceipt)
	return receipt, args.Error(1)
}

func (m *EvmRPC) Router(ctx context.Context) (common.Address, error) {
	args := m.Called(ctx)
	return args.Get(0).(common.Address), args.Error(1)
}

func (m *EvmRPC) WrappedNative(ctx context.Context) (common.Address, error) {
	args := m.Called(ctx)
	return args.Get(0).(common.Address), args.Error(1)
}

func (m *EvmRPC) Quote(ctx context.Context, tokenIn, tokenOut common.Address, fee uint32, amountIn *big.Int) (*big.Int, error) {
	args := m.Called(ctx, tokenIn, tokenOut, fee, amountIn)
	out, _ := args.Get(0).(*big.Int)
	return out, args.Error(1)
}

func (m *EvmRPC) NativeBalance(ctx context.Context, account common.Address) (*big.Int, error) {
	args := m.Called(ctx, account)
	out, _ := args.Get(0).(*big.Int)
	return out, args.Error(1)
}

func (m *EvmRPC) TokenBalance(ctx context.Context, token, account common.Address) (*evmrpc.TokenBalance, error) {
	args := m.Called(ctx, token, account)
	out, _ := args.Get(0).(*evmrpc.TokenBalance)
	return out, args.Error(1)
}

func (m *EvmRPC) SwapExecutions(ctx context.Context, fromBlock uint64) ([]model.SwapExecution, uint64, error) {
	args := m.Called(ctx, fromBlock)
	out, _ := args.Get(0).([]model.SwapExecution)
	return out, args.Get(1).(uint64), args.Error(2)
}
