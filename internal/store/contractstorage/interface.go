package contractstorage

import (
	"gorm.io/gorm"

	"github.com/dwarvesf/swappy/internal/model"
)

type IStore interface {
	Upsert(tx *gorm.DB, slots []model.StorageSlot) error
	Delete(tx *gorm.DB, address string, slots []string) error
	ListByAddress(tx *gorm.DB, address string) ([]model.StorageSlot, error)
	List(tx *gorm.DB) ([]model.StorageSlot, error)
}
