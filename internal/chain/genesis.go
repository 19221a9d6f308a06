package chain

import (
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Genesis describes the initial world of a simulated deployment.
type Genesis struct {
	Accounts    []GenesisAccount `yaml:"accounts"`
	WETH        GenesisToken     `yaml:"weth"`
	Tokens      []GenesisToken   `yaml:"tokens"`
	Router      common.Address   `yaml:"router"`
	Facilitator common.Address   `yaml:"facilitator"`
	Pools       []GenesisPool    `yaml:"pools"`
}

type GenesisAccount struct {
	Address common.Address `yaml:"address"`
	Balance Amount         `yaml:"balance"`
}

type GenesisToken struct {
	Address  common.Address            `yaml:"address"`
	Name     string                    `yaml:"name"`
	Symbol   string                    `yaml:"symbol"`
	Decimals uint8                     `yaml:"decimals"`
	Balances map[common.Address]Amount `yaml:"balances"`
}

type GenesisPool struct {
	Provider common.Address `yaml:"provider"`
	TokenA   common.Address `yaml:"token_a"`
	TokenB   common.Address `yaml:"token_b"`
	Fee      uint32         `yaml:"fee"`
	AmountA  Amount         `yaml:"amount_a"`
	AmountB  Amount         `yaml:"amount_b"`
}

// Amount is a uint256 written in YAML as a decimal or 0x-prefixed string.
type Amount struct {
	*uint256.Int
}

func NewAmount(v *uint256.Int) Amount {
	return Amount{Int: v}
}

func (a Amount) Value() *uint256.Int {
	if a.Int == nil {
		return new(uint256.Int)
	}
	return a.Int.Clone()
}

func (a *Amount) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	v, err := uint256.FromDecimal(raw)
	if err != nil {
		v, err = uint256.FromHex(raw)
		if err != nil {
			return errors.Wrapf(err, "invalid amount %q", raw)
		}
	}
	a.Int = v
	return nil
}

func (a Amount) MarshalYAML() (interface{}, error) {
	return a.Value().Dec(), nil
}

// LoadGenesis reads a YAML genesis file.
func LoadGenesis(path string) (*Genesis, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis")
	}
	return ParseGenesis(raw)
}

func ParseGenesis(raw []byte) (*Genesis, error) {
	var g Genesis
	if err := yaml.Unmarshal(raw, &g); err != nil {
		return nil, errors.Wrap(err, "parse genesis")
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &g, nil
}

func (g *Genesis) Validate() error {
	zero := common.Address{}
	if g.WETH.Address == zero {
		return errors.New("genesis: weth address is required")
	}
	if g.Router == zero {
		return errors.New("genesis: router address is required")
	}
	if g.Facilitator == zero {
		return errors.New("genesis: facilitator address is required")
	}
	for _, t := range g.Tokens {
		if t.Address == zero {
			return errors.Errorf("genesis: token %s has no address", t.Symbol)
		}
	}
	for _, p := range g.Pools {
		if p.TokenA == p.TokenB {
			return errors.Errorf("genesis: pool %s/%s uses the same token twice", p.TokenA.Hex(), p.TokenB.Hex())
		}
	}
	return nil
}
