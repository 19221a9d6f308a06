package controller

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/dwarvesf/swappy/internal/model"
)

type IController interface {
	// Initialize sets the router and wrapped native token of the facilitator once
	Initialize(ctx context.Context, router, wrappedNative common.Address) (*InitializeResult, error)

	// SwapNativeToToken swaps the attached native amount into OutputAsset for the caller
	SwapNativeToToken(ctx context.Context, req SwapRequest) (*SwapExecution, error)

	// Config reports the facilitator configuration; it never fails on an uninitialized instance
	Config(ctx context.Context) (*FacilitatorConfig, error)

	// Quote asks the router how much OutputAsset amountIn of wrapped native buys
	Quote(ctx context.Context, outputAsset common.Address, feeTier uint32, amountIn *model.Web3BigInt) (*Quote, error)

	// Balances returns native and token balances of an account
	Balances(ctx context.Context, account common.Address, tokens []common.Address) (*Balances, error)

	// ListExecutions pages through recorded SwapExecuted logs, newest first
	ListExecutions(ctx context.Context, filter model.SwapExecutionFilter) (*ExecutionList, error)
}

// Metrics receives swap and initialization outcomes.
type Metrics interface {
	RecordSwap(mode, outcome string, duration time.Duration)
	RecordInitialization(mode, outcome string)
}
