package token

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/dwarvesf/swappy/internal/chain"
)

var ErrZeroDeposit = errors.New("WETH: zero deposit")

// WETH wraps native currency 1:1. The native backing is held at its address.
type WETH struct {
	*ERC20
}

func NewWETH(address common.Address) *WETH {
	return &WETH{ERC20: NewERC20(address, "Wrapped Ether", "WETH", 18)}
}

func (w *WETH) Payable() bool { return true }

// Deposit mints the value attached to the frame to its caller.
func (w *WETH) Deposit(call *chain.Call) error {
	if call.Value.IsZero() {
		return ErrZeroDeposit
	}
	return w.Mint(call.State, call.Caller, call.Value)
}

// Withdraw burns amount of the caller's tokens and sends back the native currency.
func (w *WETH) Withdraw(call *chain.Call, amount *uint256.Int) error {
	if err := w.Burn(call.State, call.Caller, amount); err != nil {
		return err
	}
	return call.State.Transfer(w.address, call.Caller, amount)
}
