package router

import (
	"bytes"
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/dwarvesf/swappy/internal/chain"
	"github.com/dwarvesf/swappy/internal/dex"
)

var poolsSlot = chain.SlotIndex(0)

// pool field offsets from the pool's base slot
const (
	fieldReserve0 = iota
	fieldReserve1
	fieldExists
)

// Pool is a constant-product pair for one fee tier. Token0 sorts before Token1.
type Pool struct {
	Token0   common.Address
	Token1   common.Address
	Fee      uint32
	Reserve0 *uint256.Int
	Reserve1 *uint256.Int
}

// Router is a single-hop exact-input swap router over fee-tiered pools.
// Pool reserves are held as token balances of the router address.
type Router struct {
	address common.Address
}

var (
	_ dex.Router = (*Router)(nil)
	_ dex.Quoter = (*Router)(nil)
)

func New(address common.Address) *Router {
	return &Router{address: address}
}

func (r *Router) Address() common.Address {
	return r.address
}

// Pool returns the pool for the unordered pair at fee.
func (r *Router) Pool(state *chain.StateDB, tokenA, tokenB common.Address, fee uint32) (*Pool, error) {
	if tokenA == tokenB {
		return nil, dex.ErrIdenticalTokens
	}
	token0, token1 := sortTokens(tokenA, tokenB)
	base := r.poolBase(token0, token1, fee)
	if !chain.WordToBool(state.GetState(r.address, chain.SlotOffset(base, fieldExists))) {
		return nil, dex.ErrPoolNotFound
	}
	return &Pool{
		Token0:   token0,
		Token1:   token1,
		Fee:      fee,
		Reserve0: chain.WordToUint256(state.GetState(r.address, chain.SlotOffset(base, fieldReserve0))),
		Reserve1: chain.WordToUint256(state.GetState(r.address, chain.SlotOffset(base, fieldReserve1))),
	}, nil
}

// AddLiquidity pulls amountA/amountB from the frame's caller into the pool,
// creating it on first use. The caller must have approved the router for both.
func (r *Router) AddLiquidity(call *chain.Call, tokenA, tokenB common.Address, fee uint32, amountA, amountB *uint256.Int) error {
	if !dex.IsSupportedFee(fee) {
		return dex.ErrUnsupportedFee
	}
	if tokenA == tokenB {
		return dex.ErrIdenticalTokens
	}
	if amountA.IsZero() || amountB.IsZero() {
		return dex.ErrZeroAmount
	}

	if err := r.pull(call, tokenA, call.Caller, amountA); err != nil {
		return errors.Wrap(err, "pull liquidity")
	}
	if err := r.pull(call, tokenB, call.Caller, amountB); err != nil {
		return errors.Wrap(err, "pull liquidity")
	}

	token0, token1 := sortTokens(tokenA, tokenB)
	amount0, amount1 := amountA, amountB
	if token0 != tokenA {
		amount0, amount1 = amountB, amountA
	}

	pool, err := r.Pool(call.State, tokenA, tokenB, fee)
	if errors.Is(err, dex.ErrPoolNotFound) {
		pool = &Pool{Token0: token0, Token1: token1, Fee: fee, Reserve0: new(uint256.Int), Reserve1: new(uint256.Int)}
	} else if err != nil {
		return err
	}
	pool.Reserve0.Add(pool.Reserve0, amount0)
	pool.Reserve1.Add(pool.Reserve1, amount1)
	r.store(call.State, pool)
	return nil
}

// QuoteExactInputSingle returns the output of swapping amountIn without executing it.
func (r *Router) QuoteExactInputSingle(state *chain.StateDB, tokenIn, tokenOut common.Address, fee uint32, amountIn *uint256.Int) (*uint256.Int, error) {
	if !dex.IsSupportedFee(fee) {
		return nil, dex.ErrUnsupportedFee
	}
	if amountIn == nil || amountIn.IsZero() {
		return nil, dex.ErrZeroAmount
	}
	pool, err := r.Pool(state, tokenIn, tokenOut, fee)
	if err != nil {
		return nil, err
	}
	reserveIn, reserveOut := pool.reserves(tokenIn)
	return amountOut(amountIn, reserveIn, reserveOut, fee)
}

// ExactInputSingle swaps params.AmountIn of TokenIn, paid by the frame's caller,
// for TokenOut sent to Recipient.
func (r *Router) ExactInputSingle(call *chain.Call, params dex.ExactInputSingleParams) (*uint256.Int, error) {
	out, err := r.QuoteExactInputSingle(call.State, params.TokenIn, params.TokenOut, params.Fee, params.AmountIn)
	if err != nil {
		return nil, err
	}
	if params.AmountOutMinimum != nil && out.Lt(params.AmountOutMinimum) {
		return nil, dex.ErrTooLittleReceived
	}
	if params.Recipient == (common.Address{}) {
		return nil, errors.New("zero recipient")
	}

	if err := r.pull(call, params.TokenIn, call.Caller, params.AmountIn); err != nil {
		return nil, errors.Wrap(err, "pull input")
	}
	if err := r.push(call, params.TokenOut, params.Recipient, out); err != nil {
		return nil, errors.Wrap(err, "push output")
	}

	pool, err := r.Pool(call.State, params.TokenIn, params.TokenOut, params.Fee)
	if err != nil {
		return nil, err
	}
	if params.TokenIn == pool.Token0 {
		pool.Reserve0.Add(pool.Reserve0, params.AmountIn)
		pool.Reserve1.Sub(pool.Reserve1, out)
	} else {
		pool.Reserve1.Add(pool.Reserve1, params.AmountIn)
		pool.Reserve0.Sub(pool.Reserve0, out)
	}
	r.store(call.State, pool)
	return out, nil
}

func (r *Router) pull(call *chain.Call, tokenAddr, from common.Address, amount *uint256.Int) error {
	tok, err := resolveToken(call, tokenAddr)
	if err != nil {
		return err
	}
	return call.Sub(tokenAddr, nil, func(c *chain.Call) error {
		return tok.TransferFrom(c, from, r.address, amount)
	})
}

func (r *Router) push(call *chain.Call, tokenAddr, to common.Address, amount *uint256.Int) error {
	tok, err := resolveToken(call, tokenAddr)
	if err != nil {
		return err
	}
	return call.Sub(tokenAddr, nil, func(c *chain.Call) error {
		return tok.Transfer(c, to, amount)
	})
}

func (r *Router) store(state *chain.StateDB, pool *Pool) {
	base := r.poolBase(pool.Token0, pool.Token1, pool.Fee)
	state.SetState(r.address, chain.SlotOffset(base, fieldReserve0), chain.Uint256ToWord(pool.Reserve0))
	state.SetState(r.address, chain.SlotOffset(base, fieldReserve1), chain.Uint256ToWord(pool.Reserve1))
	state.SetState(r.address, chain.SlotOffset(base, fieldExists), chain.BoolToWord(true))
}

func (r *Router) poolBase(token0, token1 common.Address, fee uint32) common.Hash {
	var feeBytes [4]byte
	binary.BigEndian.PutUint32(feeBytes[:], fee)
	key := crypto.Keccak256Hash(token0[:], token1[:], feeBytes[:])
	return chain.MappingSlot(poolsSlot, key)
}

func (p *Pool) reserves(tokenIn common.Address) (reserveIn, reserveOut *uint256.Int) {
	if tokenIn == p.Token0 {
		return p.Reserve0, p.Reserve1
	}
	return p.Reserve1, p.Reserve0
}

func resolveToken(call *chain.Call, addr common.Address) (dex.Token, error) {
	contract, err := call.Contract(addr)
	if err != nil {
		return nil, errors.Wrapf(err, "token %s", addr.Hex())
	}
	tok, ok := contract.(dex.Token)
	if !ok {
		return nil, errors.Errorf("%s is not a token", addr.Hex())
	}
	return tok, nil
}

func sortTokens(a, b common.Address) (common.Address, common.Address) {
	if bytes.Compare(a[:], b[:]) < 0 {
		return a, b
	}
	return b, a
}
