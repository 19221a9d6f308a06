package dex

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/dwarvesf/swappy/internal/chain"
)

// Token is an ERC-20 asset. Mutating methods run inside a call frame whose Self
// is the token and whose Caller is the msg.sender of the token call.
type Token interface {
	chain.Contract
	Symbol() string
	Decimals() uint8
	BalanceOf(state *chain.StateDB, owner common.Address) *uint256.Int
	Allowance(state *chain.StateDB, owner, spender common.Address) *uint256.Int
	Transfer(call *chain.Call, to common.Address, amount *uint256.Int) error
	Approve(call *chain.Call, spender common.Address, amount *uint256.Int) error
	TransferFrom(call *chain.Call, from, to common.Address, amount *uint256.Int) error
}

// WrappedNative converts attached native currency 1:1 into its token form.
type WrappedNative interface {
	Token
	Deposit(call *chain.Call) error
	Withdraw(call *chain.Call, amount *uint256.Int) error
}

type ExactInputSingleParams struct {
	TokenIn          common.Address
	TokenOut         common.Address
	Fee              uint32
	Recipient        common.Address
	AmountIn         *uint256.Int
	AmountOutMinimum *uint256.Int
}

// Router swaps an exact input amount through a single pool. The payer is the
// Caller of the frame and must have approved the router for AmountIn.
type Router interface {
	chain.Contract
	ExactInputSingle(call *chain.Call, params ExactInputSingleParams) (*uint256.Int, error)
}

type Quoter interface {
	QuoteExactInputSingle(state *chain.StateDB, tokenIn, tokenOut common.Address, fee uint32, amountIn *uint256.Int) (*uint256.Int, error)
}
