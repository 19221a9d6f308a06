package simulation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dwarvesf/swappy/internal/chain"
)

func TestSeed_DefaultGenesis(t *testing.T) {
	env := New(DefaultGenesis(), nil)
	require.NoError(t, env.Seed(context.Background()))

	pool, err := env.Router.Pool(env.State, USDTAddress, WETHAddress, 500)
	require.NoError(t, err)
	wethReserve := pool.Reserve0
	if pool.Token0 != WETHAddress {
		wethReserve = pool.Reserve1
	}
	assert.Equal(t, Ether(1000).Dec(), wethReserve.Dec())

	// 2000 minted, 1000 in the USDT pool and 500 in the DAI pool
	assert.Equal(t, Ether(500).Dec(), env.WETH.BalanceOf(env.State, LiquidityProvider).Dec())
	assert.Equal(t, Ether(2000).Dec(), env.State.GetBalance(WETHAddress).Dec(), "WETH supply is backed 1:1")
	assert.Equal(t, Ether(100).Dec(), env.State.GetBalance(Alice).Dec())
	assert.False(t, env.Facilitator.Initialized(env.State))
	assert.True(t, env.State.Dirty().IsEmpty())

	usdt, ok := env.Token(USDTAddress)
	require.True(t, ok)
	assert.Equal(t, uint8(6), usdt.Decimals())
	assert.Equal(t, Units(1_600_000, 6).Dec(), usdt.BalanceOf(env.State, RouterAddress).Dec())
}

func TestGenesisRoundTripsThroughYAML(t *testing.T) {
	raw, err := yaml.Marshal(DefaultGenesis())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "genesis.yaml")
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	g, err := chain.LoadGenesis(path)
	require.NoError(t, err)
	assert.Equal(t, FacilitatorAddress, g.Facilitator)
	assert.Len(t, g.Pools, 2)
	assert.Equal(t, Units(1_600_000, 6).Dec(), g.Pools[0].AmountB.Value().Dec())
}

func TestUnits(t *testing.T) {
	assert.Equal(t, "1000000", Units(1, 6).Dec())
	assert.Equal(t, "2000000000000000000", Ether(2).Dec())
}
