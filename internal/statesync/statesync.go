// Package statesync mirrors the simulated chain into the database: every
// committed call writes its state diff and SwapExecuted logs in one transaction,
// and Hydrate rebuilds a StateDB from what was written.
package statesync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
	"gorm.io/gorm"

	"github.com/dwarvesf/swappy/contracts/swappy"
	"github.com/dwarvesf/swappy/internal/chain"
	"github.com/dwarvesf/swappy/internal/facilitator"
	"github.com/dwarvesf/swappy/internal/model"
	"github.com/dwarvesf/swappy/internal/store"
	"github.com/dwarvesf/swappy/internal/utils/logger"
)

type Syncer struct {
	db          *gorm.DB
	store       *store.Store
	logger      *logger.Logger
	facilitator common.Address
	filterer    *swappy.SwappyFilterer
}

func New(db *gorm.DB, s *store.Store, logger *logger.Logger, facilitatorAddr common.Address) (*Syncer, error) {
	filterer, err := swappy.NewSwappyFilterer(facilitatorAddr, nil)
	if err != nil {
		return nil, err
	}
	return &Syncer{
		db:          db,
		store:       s,
		logger:      logger,
		facilitator: facilitatorAddr,
		filterer:    filterer,
	}, nil
}

// OnCommit is a chain.CommitHook. A database failure fails the call, so the
// in-memory state never runs ahead of what is persisted.
func (s *Syncer) OnCommit(ctx context.Context, receipt *chain.Receipt, diff chain.StateDiff) error {
	executions, err := s.swapExecutions(receipt)
	if err != nil {
		s.logger.Error("[OnCommit][swapExecutions]", map[string]string{
			"tx_hash": receipt.TxHash.Hex(),
			"error":   err.Error(),
		})
		return err
	}

	err = store.DoInTx(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := s.writeDiff(tx, diff); err != nil {
			return err
		}
		for i := range executions {
			if _, err := s.store.SwapExecution.Create(tx, &executions[i]); err != nil {
				return fmt.Errorf("create swap execution: %w", err)
			}
		}
		return s.store.ChainHead.Save(tx, receipt.BlockNumber)
	})
	if err != nil {
		s.logger.Error("[OnCommit][DoInTx]", map[string]string{
			"tx_hash": receipt.TxHash.Hex(),
			"block":   fmt.Sprintf("%d", receipt.BlockNumber),
			"error":   err.Error(),
		})
		return err
	}
	return nil
}

// Persist writes a full snapshot, as produced by StateDB.Export, at blockNumber.
func (s *Syncer) Persist(ctx context.Context, snapshot chain.StateDiff, blockNumber uint64) error {
	return store.DoInTx(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := s.writeDiff(tx, snapshot); err != nil {
			return err
		}
		return s.store.ChainHead.Save(tx, blockNumber)
	})
}

// Hydrate loads the persisted state. ok is false when nothing was persisted yet.
func (s *Syncer) Hydrate(ctx context.Context) (state *chain.StateDB, blockNumber uint64, ok bool, err error) {
	db := s.db.WithContext(ctx)

	head, err := s.store.ChainHead.Get(db)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, 0, false, nil
	}
	if err != nil {
		return nil, 0, false, fmt.Errorf("load chain head: %w", err)
	}

	accounts, err := s.store.Account.List(db)
	if err != nil {
		return nil, 0, false, fmt.Errorf("load accounts: %w", err)
	}
	slots, err := s.store.ContractStorage.List(db)
	if err != nil {
		return nil, 0, false, fmt.Errorf("load storage: %w", err)
	}

	state = chain.NewStateDB()
	for _, acc := range accounts {
		bal, err := uint256.FromDecimal(acc.Balance)
		if err != nil {
			return nil, 0, false, fmt.Errorf("account %s: invalid balance %q", acc.Address, acc.Balance)
		}
		state.SetBalance(common.HexToAddress(acc.Address), bal)
	}
	for _, slot := range slots {
		state.SetState(common.HexToAddress(slot.Address), common.HexToHash(slot.Slot), common.HexToHash(slot.Value))
	}
	state.Commit()

	s.logger.Info("[Hydrate] state restored", map[string]string{
		"block":    fmt.Sprintf("%d", head.BlockNumber),
		"accounts": fmt.Sprintf("%d", len(accounts)),
		"slots":    fmt.Sprintf("%d", len(slots)),
	})
	return state, head.BlockNumber, true, nil
}

func (s *Syncer) writeDiff(tx *gorm.DB, diff chain.StateDiff) error {
	now := time.Now()

	var upserts []model.Account
	var deletes []string
	for addr, bal := range diff.Accounts {
		if bal.IsZero() {
			deletes = append(deletes, addr.Hex())
			continue
		}
		upserts = append(upserts, model.Account{Address: addr.Hex(), Balance: bal.Dec(), UpdatedAt: now})
	}
	if err := s.store.Account.Upsert(tx, upserts); err != nil {
		return fmt.Errorf("upsert accounts: %w", err)
	}
	if err := s.store.Account.Delete(tx, deletes); err != nil {
		return fmt.Errorf("delete accounts: %w", err)
	}

	for addr, slots := range diff.Slots {
		var written []model.StorageSlot
		var cleared []string
		for key, value := range slots {
			if value == (common.Hash{}) {
				cleared = append(cleared, key.Hex())
				continue
			}
			written = append(written, model.StorageSlot{Address: addr.Hex(), Slot: key.Hex(), Value: value.Hex(), UpdatedAt: now})
		}
		if err := s.store.ContractStorage.Upsert(tx, written); err != nil {
			return fmt.Errorf("upsert storage of %s: %w", addr.Hex(), err)
		}
		if err := s.store.ContractStorage.Delete(tx, addr.Hex(), cleared); err != nil {
			return fmt.Errorf("delete storage of %s: %w", addr.Hex(), err)
		}
	}
	return nil
}

func (s *Syncer) swapExecutions(receipt *chain.Receipt) ([]model.SwapExecution, error) {
	var out []model.SwapExecution
	for _, log := range receipt.Logs {
		if !s.isSwapExecuted(log) {
			continue
		}
		ev, err := s.filterer.ParseSwapExecuted(*log)
		if err != nil {
			return nil, err
		}
		out = append(out, model.SwapExecution{
			TxHash:        receipt.TxHash.Hex(),
			LogIndex:      log.Index,
			BlockNumber:   receipt.BlockNumber,
			Facilitator:   log.Address.Hex(),
			Caller:        receipt.From.Hex(),
			OutputAsset:   ev.Token.Hex(),
			AmountIn:      ev.AmountIn.String(),
			MinimumOutput: ev.AmountOutMin.String(),
			AmountOut:     ev.AmountOut.String(),
			ExecutedAt:    receipt.Timestamp,
		})
	}
	return out, nil
}

func (s *Syncer) isSwapExecuted(log *types.Log) bool {
	return log.Address == s.facilitator &&
		len(log.Topics) > 0 &&
		log.Topics[0] == facilitator.SwapExecutedTopic()
}
