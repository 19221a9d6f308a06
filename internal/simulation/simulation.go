package simulation

import (
	"context"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/dwarvesf/swappy/internal/chain"
	"github.com/dwarvesf/swappy/internal/facilitator"
	"github.com/dwarvesf/swappy/internal/router"
	"github.com/dwarvesf/swappy/internal/token"
)

// Environment is a simulated deployment: the chain with the WETH, token,
// router and facilitator contracts registered on it.
type Environment struct {
	Genesis     *chain.Genesis
	State       *chain.StateDB
	Chain       *chain.Chain
	WETH        *token.WETH
	Tokens      map[common.Address]*token.ERC20
	Router      *router.Router
	Facilitator *facilitator.Facilitator
}

// New registers the contract code described by g on top of state. Nothing is
// written to state; call Seed for a fresh deployment.
func New(g *chain.Genesis, state *chain.StateDB) *Environment {
	if state == nil {
		state = chain.NewStateDB()
	}
	env := &Environment{
		Genesis:     g,
		State:       state,
		Chain:       chain.New(state),
		WETH:        token.NewWETH(g.WETH.Address),
		Tokens:      make(map[common.Address]*token.ERC20, len(g.Tokens)),
		Router:      router.New(g.Router),
		Facilitator: facilitator.New(g.Facilitator),
	}

	env.Chain.Register(env.WETH)
	for _, t := range g.Tokens {
		erc20 := token.NewERC20(t.Address, t.Name, t.Symbol, t.Decimals)
		env.Tokens[t.Address] = erc20
		env.Chain.Register(erc20)
	}
	env.Chain.Register(env.Router)
	env.Chain.Register(env.Facilitator)
	return env
}

// Seed writes genesis balances and pools and commits them.
func (e *Environment) Seed(ctx context.Context) error {
	g := e.Genesis
	for _, acc := range g.Accounts {
		e.State.SetBalance(acc.Address, acc.Balance.Value())
	}

	for _, holder := range sortedHolders(g.WETH.Balances) {
		amount := g.WETH.Balances[holder].Value()
		if err := e.WETH.Mint(e.State, holder, amount); err != nil {
			return errors.Wrapf(err, "mint WETH to %s", holder.Hex())
		}
		if err := e.State.AddBalance(e.WETH.Address(), amount); err != nil {
			return errors.Wrap(err, "back WETH supply")
		}
	}
	for _, t := range g.Tokens {
		erc20 := e.Tokens[t.Address]
		for _, holder := range sortedHolders(t.Balances) {
			if err := erc20.Mint(e.State, holder, t.Balances[holder].Value()); err != nil {
				return errors.Wrapf(err, "mint %s to %s", t.Symbol, holder.Hex())
			}
		}
	}
	e.State.Commit()

	for _, p := range g.Pools {
		if err := e.AddLiquidity(ctx, p.Provider, p.TokenA, p.TokenB, p.Fee, p.AmountA.Value(), p.AmountB.Value()); err != nil {
			return errors.Wrapf(err, "seed pool %s/%s/%d", p.TokenA.Hex(), p.TokenB.Hex(), p.Fee)
		}
	}
	return nil
}

// AddLiquidity approves the router for both amounts and deposits them from provider.
func (e *Environment) AddLiquidity(ctx context.Context, provider, tokenA, tokenB common.Address, fee uint32, amountA, amountB *uint256.Int) error {
	for _, leg := range []struct {
		token  common.Address
		amount *uint256.Int
	}{{tokenA, amountA}, {tokenB, amountB}} {
		tok, err := e.token(leg.token)
		if err != nil {
			return err
		}
		amount := leg.amount
		_, err = e.Chain.Transact(ctx, chain.Message{From: provider, To: leg.token}, func(call *chain.Call) error {
			return tok.Approve(call, e.Router.Address(), amount)
		})
		if err != nil {
			return errors.Wrap(err, "approve router")
		}
	}

	_, err := e.Chain.Transact(ctx, chain.Message{From: provider, To: e.Router.Address()}, func(call *chain.Call) error {
		return e.Router.AddLiquidity(call, tokenA, tokenB, fee, amountA, amountB)
	})
	return err
}

// Token resolves a registered token, WETH included.
func (e *Environment) Token(addr common.Address) (*token.ERC20, bool) {
	if addr == e.WETH.Address() {
		return e.WETH.ERC20, true
	}
	t, ok := e.Tokens[addr]
	return t, ok
}

func (e *Environment) token(addr common.Address) (*token.ERC20, error) {
	t, ok := e.Token(addr)
	if !ok {
		return nil, errors.Errorf("unknown token %s", addr.Hex())
	}
	return t, nil
}

func sortedHolders(balances map[common.Address]chain.Amount) []common.Address {
	out := make([]common.Address, 0, len(balances))
	for addr := range balances {
		out = append(out, addr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Cmp(out[j]) < 0 })
	return out
}
