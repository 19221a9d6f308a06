package chainhead

import (
	"gorm.io/gorm"

	"github.com/dwarvesf/swappy/internal/model"
)

type IStore interface {
	Get(tx *gorm.DB) (*model.ChainHead, error)
	Save(tx *gorm.DB, blockNumber uint64) error
}
