package facilitator

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/dwarvesf/swappy/internal/chain"
	"github.com/dwarvesf/swappy/internal/dex"
)

// SwapParams is one native-to-token swap request.
type SwapParams struct {
	OutputAsset   common.Address
	MinimumOutput *uint256.Int
	FeeTier       uint32
	PaymentAmount *uint256.Int
}

// SwapResult mirrors the SwapExecuted audit log.
type SwapResult struct {
	OutputAsset   common.Address
	AmountIn      *uint256.Int
	MinimumOutput *uint256.Int
	AmountOut     *uint256.Int
}

// SwapNativeToToken wraps the native value attached to call, swaps it through the
// configured router into OutputAsset and forwards the proceeds to call.Caller.
// The caller receives at least MinimumOutput or the call fails; callers must run
// it inside a chain transaction so that a failure reverts every step.
func (f *Facilitator) SwapNativeToToken(call *chain.Call, params SwapParams) (*SwapResult, error) {
	if !f.Initialized(call.State) {
		return nil, ErrNotInitialized
	}
	if err := f.enter(call.State); err != nil {
		return nil, err
	}
	defer f.exit(call.State)

	payment := params.PaymentAmount
	if payment == nil || payment.IsZero() || !payment.Eq(call.Value) {
		return nil, ErrInvalidPayment
	}
	if params.OutputAsset == (common.Address{}) {
		return nil, ErrInvalidOutputAsset
	}
	minOut := params.MinimumOutput
	if minOut == nil {
		minOut = new(uint256.Int)
	}

	weth, router, output, err := f.collaborators(call, params.OutputAsset)
	if err != nil {
		return nil, err
	}

	self := f.address
	outputBefore := output.BalanceOf(call.State, self)
	wethBefore := weth.BalanceOf(call.State, self)

	if err := call.Sub(weth.Address(), payment, weth.Deposit); err != nil {
		return nil, errors.Wrapf(ErrInvalidPayment, "wrap native: %v", err)
	}

	err = call.Sub(weth.Address(), nil, func(c *chain.Call) error {
		return weth.Approve(c, router.Address(), payment)
	})
	if err != nil {
		return nil, errors.Wrapf(ErrRouterFailure, "approve router: %v", err)
	}

	var reported *uint256.Int
	err = call.Sub(router.Address(), nil, func(c *chain.Call) error {
		out, err := router.ExactInputSingle(c, dex.ExactInputSingleParams{
			TokenIn:          weth.Address(),
			TokenOut:         params.OutputAsset,
			Fee:              params.FeeTier,
			Recipient:        self,
			AmountIn:         payment,
			AmountOutMinimum: minOut,
		})
		reported = out
		return err
	})
	if errors.Is(err, dex.ErrTooLittleReceived) {
		return nil, errors.Wrap(ErrSlippageExceeded, err.Error())
	}
	if err != nil {
		return nil, errors.Wrapf(ErrRouterFailure, "exactInputSingle: %v", err)
	}

	received := output.BalanceOf(call.State, self)
	if received.Lt(outputBefore) {
		return nil, errors.Wrap(ErrRouterFailure, "output balance decreased")
	}
	received.Sub(received, outputBefore)
	if received.Lt(minOut) {
		return nil, errors.Wrapf(ErrSlippageExceeded, "received %s below minimum %s", received.Dec(), minOut.Dec())
	}
	if reported == nil || !received.Eq(reported) {
		return nil, errors.Wrap(ErrRouterFailure, "router reported a different output amount")
	}

	if err := f.settleWrapped(call, weth, router.Address(), wethBefore); err != nil {
		return nil, err
	}

	err = call.Sub(params.OutputAsset, nil, func(c *chain.Call) error {
		return output.Transfer(c, call.Caller, received)
	})
	if err != nil {
		return nil, errors.Wrapf(ErrTransferFailure, "forward output: %v", err)
	}

	log, err := chain.NewLog(self, swappyABI.Events["SwapExecuted"],
		params.OutputAsset, payment.ToBig(), minOut.ToBig(), received.ToBig())
	if err != nil {
		return nil, errors.Wrap(err, "encode SwapExecuted")
	}
	call.State.AddLog(log)

	return &SwapResult{
		OutputAsset:   params.OutputAsset,
		AmountIn:      payment.Clone(),
		MinimumOutput: minOut.Clone(),
		AmountOut:     received,
	}, nil
}

func (f *Facilitator) collaborators(call *chain.Call, outputAsset common.Address) (dex.WrappedNative, dex.Router, dex.Token, error) {
	wethAddr, _ := f.WrappedNative(call.State)
	routerAddr, _ := f.Router(call.State)

	c, err := call.Contract(wethAddr)
	if err != nil {
		return nil, nil, nil, errors.Wrapf(ErrInvalidConfiguration, "wrapped native %s: %v", wethAddr.Hex(), err)
	}
	weth, ok := c.(dex.WrappedNative)
	if !ok {
		return nil, nil, nil, errors.Wrapf(ErrInvalidConfiguration, "%s is not a wrapped native token", wethAddr.Hex())
	}

	c, err = call.Contract(routerAddr)
	if err != nil {
		return nil, nil, nil, errors.Wrapf(ErrRouterFailure, "router %s: %v", routerAddr.Hex(), err)
	}
	router, ok := c.(dex.Router)
	if !ok {
		return nil, nil, nil, errors.Wrapf(ErrRouterFailure, "%s is not a router", routerAddr.Hex())
	}

	c, err = call.Contract(outputAsset)
	if err != nil {
		return nil, nil, nil, errors.Wrapf(ErrInvalidOutputAsset, "%s: %v", outputAsset.Hex(), err)
	}
	output, ok := c.(dex.Token)
	if !ok {
		return nil, nil, nil, errors.Wrapf(ErrInvalidOutputAsset, "%s is not a token", outputAsset.Hex())
	}

	return weth, router, output, nil
}

// settleWrapped makes sure the router consumed the whole wrapped payment and
// leaves no allowance behind.
func (f *Facilitator) settleWrapped(call *chain.Call, weth dex.WrappedNative, router common.Address, before *uint256.Int) error {
	if !weth.BalanceOf(call.State, f.address).Eq(before) {
		return errors.Wrap(ErrRouterFailure, "router left wrapped native in custody")
	}
	if weth.Allowance(call.State, f.address, router).IsZero() {
		return nil
	}
	err := call.Sub(weth.Address(), nil, func(c *chain.Call) error {
		return weth.Approve(c, router, new(uint256.Int))
	})
	if err != nil {
		return errors.Wrapf(ErrRouterFailure, "reset allowance: %v", err)
	}
	return nil
}

func (f *Facilitator) enter(state *chain.StateDB) error {
	if chain.WordToBool(state.GetState(f.address, slot(fieldReentrancyStatus))) {
		return ErrReentrantCall
	}
	state.SetState(f.address, slot(fieldReentrancyStatus), chain.BoolToWord(true))
	return nil
}

func (f *Facilitator) exit(state *chain.StateDB) {
	state.SetState(f.address, slot(fieldReentrancyStatus), chain.BoolToWord(false))
}
