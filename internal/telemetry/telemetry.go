package telemetry

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"github.com/dwarvesf/swappy/internal/evmrpc"
	"github.com/dwarvesf/swappy/internal/store"
	"github.com/dwarvesf/swappy/internal/utils/config"
	"github.com/dwarvesf/swappy/internal/utils/logger"
)

type Telemetry struct {
	db        *gorm.DB
	store     *store.Store
	appConfig *config.AppConfig
	logger    *logger.Logger
	evmRpc    evmrpc.IEvmRPC
	metrics   IndexMetrics

	// next block to scan; zero until the first run resolves it
	cursor uint64
}

func New(db *gorm.DB, store *store.Store, appConfig *config.AppConfig, logger *logger.Logger, evmRpc evmrpc.IEvmRPC, metrics IndexMetrics) *Telemetry {
	return &Telemetry{
		db:        db,
		store:     store,
		appConfig: appConfig,
		logger:    logger,
		evmRpc:    evmRpc,
		metrics:   metrics,
	}
}

// IndexSwapExecutions stores every SwapExecuted log emitted by the deployed
// facilitator since the last indexed block. Rows are keyed by (tx hash, log
// index) so rescanning a block is harmless.
func (t *Telemetry) IndexSwapExecutions(ctx context.Context) error {
	t.logger.Info("[IndexSwapExecutions] Start indexing swap executions...")

	fromBlock, err := t.startBlock()
	if err != nil {
		return err
	}

	executions, head, err := t.evmRpc.SwapExecutions(ctx, fromBlock)
	if err != nil {
		t.logger.Error("[IndexSwapExecutions][SwapExecutions]", map[string]string{
			"error":      err.Error(),
			"from_block": strconv.FormatUint(fromBlock, 10),
		})
		return err
	}

	if len(executions) > 0 {
		err = store.DoInTx(t.db, func(tx *gorm.DB) error {
			for i := range executions {
				if _, err := t.store.SwapExecution.Create(tx, &executions[i]); err != nil {
					t.logger.Error("[IndexSwapExecutions][Create]", map[string]string{
						"error":   err.Error(),
						"tx_hash": executions[i].TxHash,
					})
					return err
				}
				t.logger.Info(fmt.Sprintf("Tx Hash: %s - %s in -> %s out [%s]",
					executions[i].TxHash, executions[i].AmountIn, executions[i].AmountOut, executions[i].OutputAsset))
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	if head >= fromBlock {
		t.cursor = head + 1
	}
	if t.metrics != nil {
		t.metrics.SetIndexedBlock(head)
	}

	t.logger.Info("[IndexSwapExecutions] Done", map[string]string{
		"from_block": strconv.FormatUint(fromBlock, 10),
		"head":       strconv.FormatUint(head, 10),
		"indexed":    strconv.Itoa(len(executions)),
	})
	return nil
}

// startBlock resumes after the in-memory cursor, then after the latest stored
// execution, then from the configured start block.
func (t *Telemetry) startBlock() (uint64, error) {
	from := t.appConfig.Blockchain.IndexFromBlock
	if t.cursor > from {
		from = t.cursor
	}

	latest, err := t.store.SwapExecution.GetLatest(t.db)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return from, nil
		}
		t.logger.Error("[IndexSwapExecutions][GetLatest]", map[string]string{
			"error": err.Error(),
		})
		return 0, err
	}
	if latest.BlockNumber+1 > from {
		from = latest.BlockNumber + 1
	}
	return from, nil
}
