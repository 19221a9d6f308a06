package facilitator

import (
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/dwarvesf/swappy/contracts/swappy"
	"github.com/dwarvesf/swappy/internal/chain"
)

// StorageNamespace is the ERC-7201 id of the facilitator storage struct.
const StorageNamespace = "swappy.storage.Facilitator"

// storage struct fields, relative to the namespace root
const (
	fieldInitialized = iota
	fieldRouter
	fieldWrappedNative
	fieldReentrancyStatus
)

var (
	storageRoot = chain.NamespacedSlot(StorageNamespace)
	swappyABI   = mustParseABI()
)

func mustParseABI() *abi.ABI {
	parsed, err := swappy.SwappyMetaData.GetAbi()
	if err != nil {
		panic(err)
	}
	return parsed
}

// Facilitator is the swap logic bound to an instance address. It holds no state:
// replacing the value for the same address keeps every stored field, the way a
// proxy keeps storage across implementation upgrades.
type Facilitator struct {
	address common.Address
}

func New(address common.Address) *Facilitator {
	return &Facilitator{address: address}
}

func (f *Facilitator) Address() common.Address { return f.address }

// Payable reports that swaps may carry native currency.
func (f *Facilitator) Payable() bool { return true }

func slot(field uint64) common.Hash {
	return chain.SlotOffset(storageRoot, field)
}

// SwapExecutedTopic is the topic0 of SwapExecuted logs.
func SwapExecutedTopic() common.Hash {
	return swappyABI.Events["SwapExecuted"].ID
}
