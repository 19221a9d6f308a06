package router

import (
	"github.com/holiman/uint256"

	"github.com/dwarvesf/swappy/internal/dex"
)

var feeDenominator = uint256.NewInt(uint64(dex.FeeDenominator))

// amountOut prices a constant-product swap with the fee taken from the input:
//
//	out = in*(1e6-fee)*reserveOut / (reserveIn*1e6 + in*(1e6-fee))
func amountOut(amountIn, reserveIn, reserveOut *uint256.Int, fee uint32) (*uint256.Int, error) {
	if reserveIn.IsZero() || reserveOut.IsZero() {
		return nil, dex.ErrInsufficientLiquidity
	}

	inWithFee, overflow := new(uint256.Int).MulOverflow(amountIn, uint256.NewInt(uint64(dex.FeeDenominator-fee)))
	if overflow {
		return nil, dex.ErrInsufficientLiquidity
	}
	scaledReserve, overflow := new(uint256.Int).MulOverflow(reserveIn, feeDenominator)
	if overflow {
		return nil, dex.ErrInsufficientLiquidity
	}
	denominator, overflow := new(uint256.Int).AddOverflow(scaledReserve, inWithFee)
	if overflow {
		return nil, dex.ErrInsufficientLiquidity
	}

	out, overflow := new(uint256.Int).MulDivOverflow(inWithFee, reserveOut, denominator)
	if overflow || out.IsZero() {
		return nil, dex.ErrInsufficientLiquidity
	}
	return out, nil
}
