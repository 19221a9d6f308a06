package chain

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

// NamespacedSlot returns the ERC-7201 storage root for the given namespace id:
// keccak256(abi.encode(uint256(keccak256(id)) - 1)) & ~bytes32(uint256(0xff)).
func NamespacedSlot(id string) common.Hash {
	inner := new(uint256.Int).SetBytes(crypto.Keccak256([]byte(id)))
	inner.Sub(inner, uint256.NewInt(1))
	word := inner.Bytes32()

	root := crypto.Keccak256Hash(word[:])
	root[common.HashLength-1] = 0
	return root
}

// SlotOffset returns base + n, the n-th field of a struct laid out at base.
func SlotOffset(base common.Hash, n uint64) common.Hash {
	slot := new(uint256.Int).SetBytes(base[:])
	slot.Add(slot, uint256.NewInt(n))
	return slot.Bytes32()
}

// MappingSlot returns the slot of mapping[key] for a mapping rooted at base,
// keccak256(key . base), as solidity lays out mappings.
func MappingSlot(base common.Hash, key common.Hash) common.Hash {
	return crypto.Keccak256Hash(key[:], base[:])
}

// SlotIndex converts a plain slot number into a hash key.
func SlotIndex(n uint64) common.Hash {
	return uint256.NewInt(n).Bytes32()
}

func AddressToWord(addr common.Address) common.Hash {
	return common.BytesToHash(addr[:])
}

func WordToAddress(word common.Hash) common.Address {
	return common.BytesToAddress(word[:])
}

func Uint256ToWord(v *uint256.Int) common.Hash {
	if v == nil {
		return common.Hash{}
	}
	return v.Bytes32()
}

func WordToUint256(word common.Hash) *uint256.Int {
	return new(uint256.Int).SetBytes(word[:])
}

func BoolToWord(b bool) common.Hash {
	if b {
		return SlotIndex(1)
	}
	return common.Hash{}
}

func WordToBool(word common.Hash) bool {
	return word != (common.Hash{})
}
