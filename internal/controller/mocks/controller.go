package mocks

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"

	"github.com/dwarvesf/swappy/internal/controller"
	"github.com/dwarvesf/swappy/internal/model"
)

// Controller is a testify mock of controller.IController.
type Controller struct {
	mock.Mock
}

var _ controller.IController = (*Controller)(nil)

func (m *Controller) Initialize(ctx context.Context, router, wrappedNative common.Address) (*controller.InitializeResult, error) {
	args := m.Called(ctx, router, wrappedNative)
	result, _ := args.Get(0).(*controller.InitializeResult)
	return result, args.Error(1)
}

func (m *Controller) SwapNativeToToken(ctx context.Context, req controller.SwapRequest) (*controller.SwapExecution, error) {
	args := m.Called(ctx, req)
	execution, _ := args.Get(0).(*controller.SwapExecution)
	return execution, args.Error(1)
}

func (m *Controller) Config(ctx context.Context) (*controller.FacilitatorConfig, error) {
	args := m.Called(ctx)
	cfg, _ := args.Get(0).(*controller.FacilitatorConfig)
	return cfg, args.Error(1)
}

func (m *Controller) Quote(ctx context.Context, outputAsset common.Address, feeTier uint32, amountIn *model.Web3BigInt) (*controller.Quote, error) {
	args := m.Called(ctx, outputAsset, feeTier, amountIn)
	quote, _ := args.Get(0).(*controller.Quote)
	return quote, args.Error(1)
}

func (m *Controller) Balances(ctx context.Context, account common.Address, tokens []common.Address) (*controller.Balances, error) {
	args := m.Called(ctx, account, tokens)
	balances, _ := args.Get(0).(*controller.Balances)
	return balances, args.Error(1)
}

func (m *Controller) ListExecutions(ctx context.Context, filter model.SwapExecutionFilter) (*controller.ExecutionList, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).(*controller.ExecutionList)
	return list, args.Error(1)
}
