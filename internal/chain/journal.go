package chain

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// journalEntry is a single reversible mutation of the state database.
type journalEntry interface {
	revert(s *StateDB)
}

type balanceChange struct {
	account common.Address
	prev    *uint256.Int
	existed bool
}

func (c balanceChange) revert(s *StateDB) {
	if !c.existed {
		delete(s.balances, c.account)
		return
	}
	s.balances[c.account] = c.prev
}

type storageChange struct {
	account common.Address
	key     common.Hash
	prev    common.Hash
}

func (c storageChange) revert(s *StateDB) {
	slots := s.storage[c.account]
	if c.prev == (common.Hash{}) {
		delete(slots, c.key)
		return
	}
	slots[c.key] = c.prev
}

type addLogChange struct{}

func (addLogChange) revert(s *StateDB) {
	s.logs = s.logs[:len(s.logs)-1]
}
