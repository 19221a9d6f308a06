package chain

import (
	"errors"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
)

var (
	ErrInsufficientBalance = errors.New("insufficient native balance")
	ErrBalanceOverflow     = errors.New("native balance overflow")
	ErrInvalidSnapshot     = errors.New("invalid snapshot id")
)

// StateDiff holds the accounts and storage slots touched since the last commit,
// with their current values.
type StateDiff struct {
	Accounts map[common.Address]*uint256.Int
	Slots    map[common.Address]map[common.Hash]common.Hash
}

func (d StateDiff) IsEmpty() bool {
	return len(d.Accounts) == 0 && len(d.Slots) == 0
}

// StateDB is an in-memory journaled world state: native balances, contract
// storage and the logs emitted by the running call.
type StateDB struct {
	balances map[common.Address]*uint256.Int
	storage  map[common.Address]map[common.Hash]common.Hash
	logs     []*types.Log

	journal   []journalEntry
	snapshots []int

	dirtyAccounts map[common.Address]struct{}
	dirtySlots    map[common.Address]map[common.Hash]struct{}
}

func NewStateDB() *StateDB {
	return &StateDB{
		balances:      make(map[common.Address]*uint256.Int),
		storage:       make(map[common.Address]map[common.Hash]common.Hash),
		dirtyAccounts: make(map[common.Address]struct{}),
		dirtySlots:    make(map[common.Address]map[common.Hash]struct{}),
	}
}

// Snapshot marks the current journal position and returns its id.
func (s *StateDB) Snapshot() int {
	s.snapshots = append(s.snapshots, len(s.journal))
	return len(s.snapshots) - 1
}

// RevertToSnapshot undoes every mutation made after the snapshot was taken.
// Snapshots taken after id are invalidated.
func (s *StateDB) RevertToSnapshot(id int) error {
	if id < 0 || id >= len(s.snapshots) {
		return ErrInvalidSnapshot
	}

	mark := s.snapshots[id]
	for i := len(s.journal) - 1; i >= mark; i-- {
		s.journal[i].revert(s)
	}
	s.journal = s.journal[:mark]
	s.snapshots = s.snapshots[:id]
	return nil
}

func (s *StateDB) GetBalance(addr common.Address) *uint256.Int {
	if bal, ok := s.balances[addr]; ok {
		return bal.Clone()
	}
	return new(uint256.Int)
}

func (s *StateDB) SetBalance(addr common.Address, amount *uint256.Int) {
	prev, existed := s.balances[addr]
	s.journal = append(s.journal, balanceChange{account: addr, prev: prev, existed: existed})
	s.balances[addr] = amount.Clone()
	s.dirtyAccounts[addr] = struct{}{}
}

func (s *StateDB) AddBalance(addr common.Address, amount *uint256.Int) error {
	next, overflow := new(uint256.Int).AddOverflow(s.GetBalance(addr), amount)
	if overflow {
		return ErrBalanceOverflow
	}
	s.SetBalance(addr, next)
	return nil
}

func (s *StateDB) SubBalance(addr common.Address, amount *uint256.Int) error {
	bal := s.GetBalance(addr)
	if bal.Lt(amount) {
		return ErrInsufficientBalance
	}
	s.SetBalance(addr, bal.Sub(bal, amount))
	return nil
}

// Transfer moves native currency between two accounts.
func (s *StateDB) Transfer(from, to common.Address, amount *uint256.Int) error {
	if amount.IsZero() {
		return nil
	}
	if err := s.SubBalance(from, amount); err != nil {
		return err
	}
	return s.AddBalance(to, amount)
}

func (s *StateDB) GetState(addr common.Address, key common.Hash) common.Hash {
	return s.storage[addr][key]
}

func (s *StateDB) SetState(addr common.Address, key, value common.Hash) {
	slots, ok := s.storage[addr]
	if !ok {
		slots = make(map[common.Hash]common.Hash)
		s.storage[addr] = slots
	}
	s.journal = append(s.journal, storageChange{account: addr, key: key, prev: slots[key]})
	if value == (common.Hash{}) {
		delete(slots, key)
	} else {
		slots[key] = value
	}

	dirty, ok := s.dirtySlots[addr]
	if !ok {
		dirty = make(map[common.Hash]struct{})
		s.dirtySlots[addr] = dirty
	}
	dirty[key] = struct{}{}
}

// Storage returns a copy of every non-zero slot of addr.
func (s *StateDB) Storage(addr common.Address) map[common.Hash]common.Hash {
	out := make(map[common.Hash]common.Hash, len(s.storage[addr]))
	for k, v := range s.storage[addr] {
		out[k] = v
	}
	return out
}

func (s *StateDB) AddLog(log *types.Log) {
	s.journal = append(s.journal, addLogChange{})
	s.logs = append(s.logs, log)
}

func (s *StateDB) Logs() []*types.Log {
	out := make([]*types.Log, len(s.logs))
	copy(out, s.logs)
	return out
}

// Dirty returns the current values of everything modified since the last commit.
// Entries reverted back to their original value are still reported.
func (s *StateDB) Dirty() StateDiff {
	diff := StateDiff{
		Accounts: make(map[common.Address]*uint256.Int, len(s.dirtyAccounts)),
		Slots:    make(map[common.Address]map[common.Hash]common.Hash, len(s.dirtySlots)),
	}
	for addr := range s.dirtyAccounts {
		diff.Accounts[addr] = s.GetBalance(addr)
	}
	for addr, keys := range s.dirtySlots {
		slots := make(map[common.Hash]common.Hash, len(keys))
		for key := range keys {
			slots[key] = s.GetState(addr, key)
		}
		diff.Slots[addr] = slots
	}
	return diff
}

// Commit finalizes the pending journal, clears logs and dirty tracking and
// returns what changed.
func (s *StateDB) Commit() StateDiff {
	diff := s.Dirty()
	s.journal = nil
	s.snapshots = nil
	s.logs = nil
	s.dirtyAccounts = make(map[common.Address]struct{})
	s.dirtySlots = make(map[common.Address]map[common.Hash]struct{})
	return diff
}

// Accounts lists every address holding a native balance, sorted.
func (s *StateDB) Accounts() []common.Address {
	out := make([]common.Address, 0, len(s.balances))
	for addr := range s.balances {
		out = append(out, addr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Cmp(out[j]) < 0 })
	return out
}

// Export returns every non-zero balance and storage slot.
func (s *StateDB) Export() StateDiff {
	diff := StateDiff{
		Accounts: make(map[common.Address]*uint256.Int, len(s.balances)),
		Slots:    make(map[common.Address]map[common.Hash]common.Hash, len(s.storage)),
	}
	for addr, bal := range s.balances {
		if bal.IsZero() {
			continue
		}
		diff.Accounts[addr] = bal.Clone()
	}
	for addr, slots := range s.storage {
		if len(slots) == 0 {
			continue
		}
		diff.Slots[addr] = s.Storage(addr)
	}
	return diff
}
