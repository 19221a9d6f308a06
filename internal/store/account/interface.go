package account

import (
	"gorm.io/gorm"

	"github.com/dwarvesf/swappy/internal/model"
)

type IStore interface {
	Upsert(tx *gorm.DB, accounts []model.Account) error
	Delete(tx *gorm.DB, addresses []string) error
	GetByAddress(tx *gorm.DB, address string) (*model.Account, error)
	List(tx *gorm.DB) ([]model.Account, error)
}
