package dex

import "errors"

var (
	// ErrTooLittleReceived is returned when the pool output is below AmountOutMinimum.
	ErrTooLittleReceived     = errors.New("too little received")
	ErrPoolNotFound          = errors.New("pool does not exist")
	ErrUnsupportedFee        = errors.New("unsupported fee tier")
	ErrInsufficientLiquidity = errors.New("insufficient liquidity")
	ErrIdenticalTokens       = errors.New("identical tokens")
	ErrZeroAmount            = errors.New("zero amount")
)

// Fee tiers in hundredths of a bip.
const (
	FeeLowest uint32 = 100
	FeeLow    uint32 = 500
	FeeMedium uint32 = 3000
	FeeHigh   uint32 = 10000

	// FeeDenominator expresses fees as a fraction of one million.
	FeeDenominator uint32 = 1_000_000
)

func IsSupportedFee(fee uint32) bool {
	switch fee {
	case FeeLowest, FeeLow, FeeMedium, FeeHigh:
		return true
	}
	return false
}
