package model

import (
	"math/big"

	"github.com/holiman/uint256"
)

// Web3BigInt is an integer amount in the token's smallest unit, carried as a
// decimal string together with the token's decimals.
type Web3BigInt struct {
	Value   string `json:"value"`
	Decimal int    `json:"decimal"`
}

func NewWeb3BigInt(v *big.Int, decimal int) *Web3BigInt {
	if v == nil {
		v = new(big.Int)
	}
	return &Web3BigInt{Value: v.String(), Decimal: decimal}
}

func FromUint256(v *uint256.Int, decimal int) *Web3BigInt {
	if v == nil {
		v = new(uint256.Int)
	}
	return &Web3BigInt{Value: v.Dec(), Decimal: decimal}
}

// Uint256 fails for negative, malformed or oversized values.
func (w *Web3BigInt) Uint256() (*uint256.Int, bool) {
	v, err := uint256.FromDecimal(w.Value)
	if err != nil {
		return nil, false
	}
	return v, true
}
