package token

import (
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/dwarvesf/swappy/contracts/erc20"
	"github.com/dwarvesf/swappy/internal/chain"
)

var (
	ErrInsufficientBalance   = errors.New("ERC20: transfer amount exceeds balance")
	ErrInsufficientAllowance = errors.New("ERC20: insufficient allowance")
	ErrZeroAddress           = errors.New("ERC20: zero address")
	ErrSupplyOverflow        = errors.New("ERC20: total supply overflow")
)

// storage layout
var (
	balancesSlot    = chain.SlotIndex(0)
	allowancesSlot  = chain.SlotIndex(1)
	totalSupplySlot = chain.SlotIndex(2)
)

var erc20ABI = mustParseABI()

func mustParseABI() *abi.ABI {
	parsed, err := erc20.ERC20MetaData.GetAbi()
	if err != nil {
		panic(err)
	}
	return parsed
}

// ERC20 is a fungible token bound to an address. Metadata is fixed at
// construction; balances, allowances and supply live in storage.
type ERC20 struct {
	address  common.Address
	name     string
	symbol   string
	decimals uint8
}

func NewERC20(address common.Address, name, symbol string, decimals uint8) *ERC20 {
	return &ERC20{
		address:  address,
		name:     name,
		symbol:   symbol,
		decimals: decimals,
	}
}

func (t *ERC20) Address() common.Address { return t.address }
func (t *ERC20) Name() string            { return t.name }
func (t *ERC20) Symbol() string          { return t.symbol }
func (t *ERC20) Decimals() uint8         { return t.decimals }

func (t *ERC20) BalanceOf(state *chain.StateDB, owner common.Address) *uint256.Int {
	return chain.WordToUint256(state.GetState(t.address, t.balanceKey(owner)))
}

func (t *ERC20) Allowance(state *chain.StateDB, owner, spender common.Address) *uint256.Int {
	return chain.WordToUint256(state.GetState(t.address, t.allowanceKey(owner, spender)))
}

func (t *ERC20) TotalSupply(state *chain.StateDB) *uint256.Int {
	return chain.WordToUint256(state.GetState(t.address, totalSupplySlot))
}

// Transfer moves amount from the frame's caller to `to`.
func (t *ERC20) Transfer(call *chain.Call, to common.Address, amount *uint256.Int) error {
	return t.transfer(call.State, call.Caller, to, amount)
}

// Approve sets the caller's allowance for spender, replacing any previous value.
func (t *ERC20) Approve(call *chain.Call, spender common.Address, amount *uint256.Int) error {
	if spender == (common.Address{}) {
		return ErrZeroAddress
	}
	return t.approve(call.State, call.Caller, spender, amount)
}

// TransferFrom spends the caller's allowance over from's balance.
func (t *ERC20) TransferFrom(call *chain.Call, from, to common.Address, amount *uint256.Int) error {
	allowed := t.Allowance(call.State, from, call.Caller)
	if allowed.Lt(amount) {
		return ErrInsufficientAllowance
	}
	if err := t.transfer(call.State, from, to, amount); err != nil {
		return err
	}
	if allowed.Eq(maxUint256) {
		return nil
	}
	call.State.SetState(t.address, t.allowanceKey(from, call.Caller), chain.Uint256ToWord(allowed.Sub(allowed, amount)))
	return nil
}

// Mint creates amount new tokens for to. It is not reachable from a call frame;
// genesis and WETH deposits use it.
func (t *ERC20) Mint(state *chain.StateDB, to common.Address, amount *uint256.Int) error {
	if to == (common.Address{}) {
		return ErrZeroAddress
	}
	supply, overflow := new(uint256.Int).AddOverflow(t.TotalSupply(state), amount)
	if overflow {
		return ErrSupplyOverflow
	}
	state.SetState(t.address, totalSupplySlot, chain.Uint256ToWord(supply))

	bal := t.BalanceOf(state, to)
	state.SetState(t.address, t.balanceKey(to), chain.Uint256ToWord(bal.Add(bal, amount)))
	return t.emitTransfer(state, common.Address{}, to, amount)
}

func (t *ERC20) Burn(state *chain.StateDB, from common.Address, amount *uint256.Int) error {
	bal := t.BalanceOf(state, from)
	if bal.Lt(amount) {
		return ErrInsufficientBalance
	}
	state.SetState(t.address, t.balanceKey(from), chain.Uint256ToWord(bal.Sub(bal, amount)))

	supply := t.TotalSupply(state)
	state.SetState(t.address, totalSupplySlot, chain.Uint256ToWord(supply.Sub(supply, amount)))
	return t.emitTransfer(state, from, common.Address{}, amount)
}

func (t *ERC20) transfer(state *chain.StateDB, from, to common.Address, amount *uint256.Int) error {
	if from == (common.Address{}) || to == (common.Address{}) {
		return ErrZeroAddress
	}
	fromBal := t.BalanceOf(state, from)
	if fromBal.Lt(amount) {
		return ErrInsufficientBalance
	}
	state.SetState(t.address, t.balanceKey(from), chain.Uint256ToWord(fromBal.Sub(fromBal, amount)))

	toBal := t.BalanceOf(state, to)
	state.SetState(t.address, t.balanceKey(to), chain.Uint256ToWord(toBal.Add(toBal, amount)))
	return t.emitTransfer(state, from, to, amount)
}

func (t *ERC20) approve(state *chain.StateDB, owner, spender common.Address, amount *uint256.Int) error {
	state.SetState(t.address, t.allowanceKey(owner, spender), chain.Uint256ToWord(amount))

	log, err := chain.NewLog(t.address, erc20ABI.Events["Approval"], owner, spender, amount.ToBig())
	if err != nil {
		return err
	}
	state.AddLog(log)
	return nil
}

func (t *ERC20) emitTransfer(state *chain.StateDB, from, to common.Address, amount *uint256.Int) error {
	log, err := chain.NewLog(t.address, erc20ABI.Events["Transfer"], from, to, amount.ToBig())
	if err != nil {
		return err
	}
	state.AddLog(log)
	return nil
}

func (t *ERC20) balanceKey(owner common.Address) common.Hash {
	return chain.MappingSlot(balancesSlot, chain.AddressToWord(owner))
}

func (t *ERC20) allowanceKey(owner, spender common.Address) common.Hash {
	inner := chain.MappingSlot(allowancesSlot, chain.AddressToWord(owner))
	return chain.MappingSlot(inner, chain.AddressToWord(spender))
}

var maxUint256 = new(uint256.Int).SetAllOne()
