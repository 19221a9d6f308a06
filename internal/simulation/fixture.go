package simulation

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/dwarvesf/swappy/internal/chain"
)

// Addresses of the default deployment. WETH and USDT reuse their mainnet addresses.
var (
	WETHAddress        = common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2")
	USDTAddress        = common.HexToAddress("0xdAC17F958D2ee523a2206206994597C13D831ec7")
	DAIAddress         = common.HexToAddress("0x6B175474E89094C44Da98b954EedeAC495271d0F")
	UnlistedAddress    = common.HexToAddress("0x00000000000000000000000000000000000f0001")
	RouterAddress      = common.HexToAddress("0x0000000000000000000000000000000000005e01")
	FacilitatorAddress = common.HexToAddress("0x0000000000000000000000000000000000005a99")

	LiquidityProvider = common.HexToAddress("0x00000000000000000000000000000000000001a9")
	Deployer          = common.HexToAddress("0x0000000000000000000000000000000000000de9")
	Alice             = common.HexToAddress("0x00000000000000000000000000000000000a11ce")
	Bob               = common.HexToAddress("0x0000000000000000000000000000000000000b0b")
)

// Ether returns n whole units of an 18-decimals amount.
func Ether(n uint64) *uint256.Int {
	return Units(n, 18)
}

// Units returns n whole units of a token with the given decimals.
func Units(n uint64, decimals uint8) *uint256.Int {
	scale := new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(uint64(decimals)))
	return new(uint256.Int).Mul(uint256.NewInt(n), scale)
}

// DefaultGenesis is a small mainnet-like world: a 0.05% WETH/USDT pool priced
// around 1600 USDT per ether, a 0.3% WETH/DAI pool and funded test accounts.
func DefaultGenesis() *chain.Genesis {
	amt := chain.NewAmount
	return &chain.Genesis{
		Accounts: []chain.GenesisAccount{
			{Address: Alice, Balance: amt(Ether(100))},
			{Address: Bob, Balance: amt(Ether(100))},
			{Address: Deployer, Balance: amt(Ether(1))},
			{Address: LiquidityProvider, Balance: amt(Ether(10))},
		},
		WETH: chain.GenesisToken{
			Address:  WETHAddress,
			Name:     "Wrapped Ether",
			Symbol:   "WETH",
			Decimals: 18,
			Balances: map[common.Address]chain.Amount{
				LiquidityProvider: amt(Ether(2000)),
			},
		},
		Tokens: []chain.GenesisToken{
			{
				Address:  USDTAddress,
				Name:     "Tether USD",
				Symbol:   "USDT",
				Decimals: 6,
				Balances: map[common.Address]chain.Amount{
					LiquidityProvider: amt(Units(10_000_000, 6)),
				},
			},
			{
				Address:  DAIAddress,
				Name:     "Dai Stablecoin",
				Symbol:   "DAI",
				Decimals: 18,
				Balances: map[common.Address]chain.Amount{
					LiquidityProvider: amt(Ether(10_000_000)),
				},
			},
			{
				Address:  UnlistedAddress,
				Name:     "Unlisted",
				Symbol:   "NOPOOL",
				Decimals: 18,
				Balances: map[common.Address]chain.Amount{
					LiquidityProvider: amt(Ether(1)),
				},
			},
		},
		Router:      RouterAddress,
		Facilitator: FacilitatorAddress,
		Pools: []chain.GenesisPool{
			{
				Provider: LiquidityProvider,
				TokenA:   WETHAddress,
				TokenB:   USDTAddress,
				Fee:      500,
				AmountA:  amt(Ether(1000)),
				AmountB:  amt(Units(1_600_000, 6)),
			},
			{
				Provider: LiquidityProvider,
				TokenA:   WETHAddress,
				TokenB:   DAIAddress,
				Fee:      3000,
				AmountA:  amt(Ether(500)),
				AmountB:  amt(Ether(800_000)),
			},
		},
	}
}
