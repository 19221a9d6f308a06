package facilitator_test

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	. "github.com/onsi/gomega"

	"github.com/dwarvesf/swappy/contracts/swappy"
	"github.com/dwarvesf/swappy/internal/chain"
	"github.com/dwarvesf/swappy/internal/dex"
	"github.com/dwarvesf/swappy/internal/facilitator"
	"github.com/dwarvesf/swappy/internal/simulation"
	"github.com/dwarvesf/swappy/internal/token"
)

func newEnv() *simulation.Environment {
	env := simulation.New(simulation.DefaultGenesis(), nil)
	Expect(env.Seed(context.Background())).To(Succeed())
	return env
}

func initialize(env *simulation.Environment, router, weth common.Address) error {
	_, err := env.Chain.Transact(context.Background(), chain.Message{
		From: simulation.Deployer,
		To:   env.Facilitator.Address(),
	}, func(call *chain.Call) error {
		return env.Facilitator.Initialize(call, router, weth)
	})
	return err
}

func swap(env *simulation.Environment, from common.Address, value *uint256.Int, params facilitator.SwapParams) (*chain.Receipt, *facilitator.SwapResult, error) {
	var result *facilitator.SwapResult
	receipt, err := env.Chain.Transact(context.Background(), chain.Message{
		From:  from,
		To:    env.Facilitator.Address(),
		Value: value,
	}, func(call *chain.Call) error {
		res, err := env.Facilitator.SwapNativeToToken(call, params)
		result = res
		return err
	})
	return receipt, result, err
}

func quote(env *simulation.Environment, tokenOut common.Address, fee uint32, amountIn *uint256.Int) *uint256.Int {
	out, err := env.Router.QuoteExactInputSingle(env.State, env.WETH.Address(), tokenOut, fee, amountIn)
	Expect(err).NotTo(HaveOccurred())
	return out
}

func swapLogs(receipt *chain.Receipt) []*swappy.SwappySwapExecuted {
	filterer, err := swappy.NewSwappyFilterer(simulation.FacilitatorAddress, nil)
	Expect(err).NotTo(HaveOccurred())

	var out []*swappy.SwappySwapExecuted
	for _, log := range receipt.Logs {
		if log.Address != simulation.FacilitatorAddress || log.Topics[0] != facilitator.SwapExecutedTopic() {
			continue
		}
		ev, err := filterer.ParseSwapExecuted(*log)
		Expect(err).NotTo(HaveOccurred())
		out = append(out, ev)
	}
	return out
}

func tokenBalance(env *simulation.Environment, asset, owner common.Address) *uint256.Int {
	t, ok := env.Token(asset)
	Expect(ok).To(BeTrue())
	return t.BalanceOf(env.State, owner)
}

// reentrantToken calls back into the facilitator when it forwards proceeds.
type reentrantToken struct {
	*token.ERC20
	facilitator *facilitator.Facilitator
}

func (r *reentrantToken) Transfer(call *chain.Call, to common.Address, amount *uint256.Int) error {
	if call.Caller == r.facilitator.Address() {
		err := call.Sub(r.facilitator.Address(), nil, func(c *chain.Call) error {
			_, err := r.facilitator.SwapNativeToToken(c, facilitator.SwapParams{
				OutputAsset:   r.Address(),
				FeeTier:       dex.FeeLow,
				PaymentAmount: uint256.NewInt(1),
			})
			return err
		})
		if err != nil {
			return err
		}
	}
	return r.ERC20.Transfer(call, to, amount)
}

// inflatingRouter reports one unit more than it delivers.
type inflatingRouter struct {
	dex.Router
}

func (r inflatingRouter) ExactInputSingle(call *chain.Call, params dex.ExactInputSingleParams) (*uint256.Int, error) {
	out, err := r.Router.ExactInputSingle(call, params)
	if err != nil {
		return nil, err
	}
	return out.AddUint64(out, 1), nil
}

// silentRouter claims to have met the minimum without moving any tokens.
type silentRouter struct {
	dex.Router
}

func (r silentRouter) ExactInputSingle(_ *chain.Call, params dex.ExactInputSingleParams) (*uint256.Int, error) {
	return params.AmountOutMinimum, nil
}

// rejectingWETH refuses every deposit.
type rejectingWETH struct {
	*token.WETH
}

func (w rejectingWETH) Deposit(*chain.Call) error {
	return token.ErrZeroDeposit
}

func ctx() context.Context {
	return context.Background()
}
