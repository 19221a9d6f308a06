package swapexecution

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dwarvesf/swappy/internal/model"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

type Store struct {
}

func New() IStore {
	return &Store{}
}

// Create is idempotent on (tx_hash, log_index) so a log indexed twice is stored once.
func (s *Store) Create(tx *gorm.DB, execution *model.SwapExecution) (*model.SwapExecution, error) {
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tx_hash"}, {Name: "log_index"}},
		DoNothing: true,
	}).Create(execution).Error
	return execution, err
}

func (s *Store) GetByTransactionHash(tx *gorm.DB, txHash string) (*model.SwapExecution, error) {
	var execution model.SwapExecution
	err := tx.Where("tx_hash = ?", txHash).Order("log_index").First(&execution).Error
	if err != nil {
		return nil, err
	}
	return &execution, nil
}

func (s *Store) GetLatest(tx *gorm.DB) (*model.SwapExecution, error) {
	var execution model.SwapExecution
	err := tx.Order("block_number DESC, log_index DESC").First(&execution).Error
	if err != nil {
		return nil, err
	}
	return &execution, nil
}

func (s *Store) List(tx *gorm.DB, filter model.SwapExecutionFilter) ([]model.SwapExecution, int64, error) {
	query := tx.Model(&model.SwapExecution{})
	if filter.OutputAsset != "" {
		query = query.Where("LOWER(output_asset) = LOWER(?)", filter.OutputAsset)
	}
	if filter.Caller != "" {
		query = query.Where("LOWER(caller) = LOWER(?)", filter.Caller)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	var executions []model.SwapExecution
	err := query.Order("block_number DESC, log_index DESC").
		Limit(limit).
		Offset(filter.Offset).
		Find(&executions).Error
	if err != nil {
		return nil, 0, err
	}
	return executions, total, nil
}
