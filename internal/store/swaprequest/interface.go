package swaprequest

import (
	"gorm.io/gorm"

	"github.com/dwarvesf/swappy/internal/model"
)

type IStore interface {
	Create(tx *gorm.DB, swapRequest *model.SwapRequest) (*model.SwapRequest, error)
	GetByRequestID(tx *gorm.DB, requestID string) (*model.SwapRequest, error)
	FindPending(tx *gorm.DB) ([]model.SwapRequest, error)
	Complete(tx *gorm.DB, requestID, txHash string) error
	Fail(tx *gorm.DB, requestID, errorKind string) error
}
