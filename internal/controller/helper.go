package controller

import (
	"math/big"
	"strconv"

	"github.com/holiman/uint256"
)

func formatFee(fee uint32) string {
	return strconv.FormatUint(uint64(fee), 10)
}

func toBig(v *uint256.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v.ToBig()
}
