package chain

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

var (
	ErrContractNotFound  = errors.New("no contract at address")
	ErrAddressRegistered = errors.New("address already has a contract")
	ErrNotPayable        = errors.New("target does not accept native currency")
)

// Contract is logic bound to an address. Implementations keep no state of their
// own; everything persistent goes through the StateDB slots of Address().
type Contract interface {
	Address() common.Address
}

// Payable is implemented by contracts that accept native currency on a call.
type Payable interface {
	Contract
	Payable() bool
}

// Message describes an externally initiated call.
type Message struct {
	From  common.Address
	To    common.Address
	Value *uint256.Int
}

// Receipt is the outcome of a committed call.
type Receipt struct {
	TxHash      common.Hash
	BlockNumber uint64
	From        common.Address
	To          common.Address
	Value       *uint256.Int
	Logs        []*types.Log
	Timestamp   time.Time
}

// CommitHook runs inside the call, after fn succeeded and before the state is
// committed. A hook error reverts the whole call.
type CommitHook func(ctx context.Context, receipt *Receipt, diff StateDiff) error

// Chain serializes calls against a single StateDB.
type Chain struct {
	mu        sync.Mutex
	state     *StateDB
	contracts map[common.Address]Contract
	hooks     []CommitHook

	blockNumber uint64
	nonce       uint64
}

func New(state *StateDB) *Chain {
	if state == nil {
		state = NewStateDB()
	}
	return &Chain{
		state:     state,
		contracts: make(map[common.Address]Contract),
	}
}

// Register binds c to its address. Registering again on the same address
// replaces the logic while keeping storage, which is how contract code is upgraded.
func (c *Chain) Register(contract Contract) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.contracts[contract.Address()] = contract
}

func (c *Chain) Contract(addr common.Address) (Contract, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	contract, ok := c.contracts[addr]
	return contract, ok
}

func (c *Chain) OnCommit(hook CommitHook) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hooks = append(c.hooks, hook)
}

func (c *Chain) BlockNumber() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.blockNumber
}

// SetBlockNumber moves the head, used when state is restored from storage.
func (c *Chain) SetBlockNumber(n uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.blockNumber = n
}

// Transact runs fn as one atomic call from msg.From to msg.To. Any error from
// fn, the value transfer or a commit hook reverts every effect of the call.
func (c *Chain) Transact(ctx context.Context, msg Message, fn func(*Call) error) (*Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	value := msg.Value
	if value == nil {
		value = new(uint256.Int)
	}

	snap := c.state.Snapshot()
	call := &Call{
		State:       c.state,
		Caller:      msg.From,
		Self:        msg.To,
		Value:       value.Clone(),
		BlockNumber: c.blockNumber + 1,
		chain:       c,
		ctx:         ctx,
	}

	if err := c.run(call, fn); err != nil {
		_ = c.state.RevertToSnapshot(snap)
		return nil, err
	}

	receipt := &Receipt{
		TxHash:      c.txHash(msg.From),
		BlockNumber: c.blockNumber + 1,
		From:        msg.From,
		To:          msg.To,
		Value:       value.Clone(),
		Timestamp:   time.Now().UTC(),
	}
	receipt.Logs = c.state.Logs()
	for i, log := range receipt.Logs {
		log.TxHash = receipt.TxHash
		log.BlockNumber = receipt.BlockNumber
		log.Index = uint(i)
	}

	diff := c.state.Dirty()
	for _, hook := range c.hooks {
		if err := hook(ctx, receipt, diff); err != nil {
			_ = c.state.RevertToSnapshot(snap)
			return nil, fmt.Errorf("commit hook: %w", err)
		}
	}

	c.state.Commit()
	c.blockNumber++
	c.nonce++
	return receipt, nil
}

// View runs fn against the current state and discards all of its effects.
func (c *Chain) View(ctx context.Context, fn func(*Call) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	snap := c.state.Snapshot()
	defer func() { _ = c.state.RevertToSnapshot(snap) }()

	return fn(&Call{
		State:       c.state,
		Value:       new(uint256.Int),
		BlockNumber: c.blockNumber,
		chain:       c,
		ctx:         ctx,
	})
}

func (c *Chain) run(call *Call, fn func(*Call) error) error {
	if !call.Value.IsZero() {
		if err := c.acceptsValue(call.Self); err != nil {
			return err
		}
		if err := call.State.Transfer(call.Caller, call.Self, call.Value); err != nil {
			return err
		}
	}
	return fn(call)
}

func (c *Chain) acceptsValue(addr common.Address) error {
	contract, ok := c.contracts[addr]
	if !ok {
		// plain accounts always accept native currency
		return nil
	}
	if p, ok := contract.(Payable); ok && p.Payable() {
		return nil
	}
	return ErrNotPayable
}

func (c *Chain) txHash(from common.Address) common.Hash {
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[:8], c.nonce)
	binary.BigEndian.PutUint64(buf[8:], c.blockNumber+1)
	return crypto.Keccak256Hash(from[:], buf[:])
}

// Call is the context of one contract frame.
type Call struct {
	State       *StateDB
	Caller      common.Address
	Self        common.Address
	Value       *uint256.Int
	BlockNumber uint64

	chain *Chain
	ctx   context.Context
}

func (c *Call) Context() context.Context {
	return c.ctx
}

// Contract resolves the logic registered at addr.
func (c *Call) Contract(addr common.Address) (Contract, error) {
	contract, ok := c.chain.contracts[addr]
	if !ok {
		return nil, ErrContractNotFound
	}
	return contract, nil
}

// Sub opens a nested frame from the current contract to target, moving value
// native currency from Self. A failing fn reverts only the nested frame's effects.
func (c *Call) Sub(target common.Address, value *uint256.Int, fn func(*Call) error) error {
	if value == nil {
		value = new(uint256.Int)
	}
	snap := c.State.Snapshot()
	sub := &Call{
		State:       c.State,
		Caller:      c.Self,
		Self:        target,
		Value:       value.Clone(),
		BlockNumber: c.BlockNumber,
		chain:       c.chain,
		ctx:         c.ctx,
	}
	if err := c.chain.run(sub, fn); err != nil {
		_ = c.State.RevertToSnapshot(snap)
		return err
	}
	return nil
}
