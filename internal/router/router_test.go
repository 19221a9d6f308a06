package router_test

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwarvesf/swappy/internal/chain"
	"github.com/dwarvesf/swappy/internal/dex"
	"github.com/dwarvesf/swappy/internal/simulation"
)

func seeded(t *testing.T) *simulation.Environment {
	t.Helper()
	env := simulation.New(simulation.DefaultGenesis(), nil)
	require.NoError(t, env.Seed(context.Background()))
	return env
}

func TestRouter_PoolIsUnordered(t *testing.T) {
	env := seeded(t)

	p1, err := env.Router.Pool(env.State, simulation.WETHAddress, simulation.USDTAddress, dex.FeeLow)
	require.NoError(t, err)
	p2, err := env.Router.Pool(env.State, simulation.USDTAddress, simulation.WETHAddress, dex.FeeLow)
	require.NoError(t, err)
	assert.Equal(t, p1, p2)

	// WETH sorts before USDT
	assert.Equal(t, simulation.WETHAddress, p1.Token0)
	assert.Equal(t, simulation.Ether(1000), p1.Reserve0)
	assert.Equal(t, simulation.Units(1_600_000, 6), p1.Reserve1)

	_, err = env.Router.Pool(env.State, simulation.WETHAddress, simulation.USDTAddress, dex.FeeHigh)
	assert.ErrorIs(t, err, dex.ErrPoolNotFound)
}

func TestRouter_Quote(t *testing.T) {
	env := seeded(t)

	tests := []struct {
		name    string
		out     common.Address
		fee     uint32
		amount  *uint256.Int
		want    string
		wantErr error
	}{
		{
			// 1e18*999500*1.6e12 / (1e21*1e6 + 1e18*999500)
			name:   "one ether into USDT",
			out:    simulation.USDTAddress,
			fee:    dex.FeeLow,
			amount: simulation.Ether(1),
			want:   "1597603195",
		},
		{name: "unsupported fee", out: simulation.USDTAddress, fee: 42, amount: simulation.Ether(1), wantErr: dex.ErrUnsupportedFee},
		{name: "zero amount", out: simulation.USDTAddress, fee: dex.FeeLow, amount: new(uint256.Int), wantErr: dex.ErrZeroAmount},
		{name: "identical tokens", out: simulation.WETHAddress, fee: dex.FeeLow, amount: simulation.Ether(1), wantErr: dex.ErrIdenticalTokens},
		{name: "no pool", out: simulation.UnlistedAddress, fee: dex.FeeLow, amount: simulation.Ether(1), wantErr: dex.ErrPoolNotFound},
		{name: "dust rounds to zero", out: simulation.USDTAddress, fee: dex.FeeLow, amount: uint256.NewInt(1), wantErr: dex.ErrInsufficientLiquidity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := env.Router.QuoteExactInputSingle(env.State, simulation.WETHAddress, tt.out, tt.fee, tt.amount)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Dec())
		})
	}
}

func TestRouter_ExactInputSingle(t *testing.T) {
	env := seeded(t)
	ctx := context.Background()
	amountIn := simulation.Ether(2)

	// Bob wraps and approves, then swaps through the router.
	_, err := env.Chain.Transact(ctx, chain.Message{From: simulation.Bob, To: simulation.WETHAddress, Value: amountIn}, env.WETH.Deposit)
	require.NoError(t, err)
	_, err = env.Chain.Transact(ctx, chain.Message{From: simulation.Bob, To: simulation.WETHAddress}, func(call *chain.Call) error {
		return env.WETH.Approve(call, simulation.RouterAddress, amountIn)
	})
	require.NoError(t, err)

	quoted, err := env.Router.QuoteExactInputSingle(env.State, simulation.WETHAddress, simulation.DAIAddress, dex.FeeMedium, amountIn)
	require.NoError(t, err)

	tooMuch := new(uint256.Int).AddUint64(quoted, 1)
	_, err = env.Chain.Transact(ctx, chain.Message{From: simulation.Bob, To: simulation.RouterAddress}, func(call *chain.Call) error {
		_, err := env.Router.ExactInputSingle(call, dex.ExactInputSingleParams{
			TokenIn: simulation.WETHAddress, TokenOut: simulation.DAIAddress, Fee: dex.FeeMedium,
			Recipient: simulation.Bob, AmountIn: amountIn, AmountOutMinimum: tooMuch,
		})
		return err
	})
	assert.ErrorIs(t, err, dex.ErrTooLittleReceived)

	var out *uint256.Int
	_, err = env.Chain.Transact(ctx, chain.Message{From: simulation.Bob, To: simulation.RouterAddress}, func(call *chain.Call) error {
		out, err = env.Router.ExactInputSingle(call, dex.ExactInputSingleParams{
			TokenIn: simulation.WETHAddress, TokenOut: simulation.DAIAddress, Fee: dex.FeeMedium,
			Recipient: simulation.Bob, AmountIn: amountIn, AmountOutMinimum: quoted,
		})
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, quoted, out)

	dai, _ := env.Token(simulation.DAIAddress)
	assert.Equal(t, quoted, dai.BalanceOf(env.State, simulation.Bob))
	assert.True(t, env.WETH.BalanceOf(env.State, simulation.Bob).IsZero())

	pool, err := env.Router.Pool(env.State, simulation.WETHAddress, simulation.DAIAddress, dex.FeeMedium)
	require.NoError(t, err)
	// pool reserves track the router's token balances
	assert.Equal(t, dai.BalanceOf(env.State, simulation.RouterAddress), pool.Reserve0)
	assert.Equal(t, simulation.Ether(502), pool.Reserve1)
}

func TestRouter_AddLiquidityErrors(t *testing.T) {
	env := seeded(t)
	ctx := context.Background()

	err := env.AddLiquidity(ctx, simulation.LiquidityProvider, simulation.WETHAddress, simulation.USDTAddress, 42, uint256.NewInt(1), uint256.NewInt(1))
	assert.ErrorIs(t, err, dex.ErrUnsupportedFee)

	err = env.AddLiquidity(ctx, simulation.LiquidityProvider, simulation.WETHAddress, simulation.USDTAddress, dex.FeeLow, uint256.NewInt(0), uint256.NewInt(1))
	assert.ErrorIs(t, err, dex.ErrZeroAmount)

	err = env.AddLiquidity(ctx, simulation.Alice, simulation.WETHAddress, simulation.USDTAddress, dex.FeeLow, uint256.NewInt(1), uint256.NewInt(1))
	assert.Error(t, err)
}
