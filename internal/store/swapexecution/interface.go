package swapexecution

import (
	"gorm.io/gorm"

	"github.com/dwarvesf/swappy/internal/model"
)

type IStore interface {
	Create(tx *gorm.DB, execution *model.SwapExecution) (*model.SwapExecution, error)
	GetByTransactionHash(tx *gorm.DB, txHash string) (*model.SwapExecution, error)
	GetLatest(tx *gorm.DB) (*model.SwapExecution, error)
	List(tx *gorm.DB, filter model.SwapExecutionFilter) ([]model.SwapExecution, int64, error)
}
