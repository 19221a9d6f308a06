package chainhead

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dwarvesf/swappy/internal/model"
)

// the simulated chain has a single head row
const headID = 1

type Store struct {
}

func New() IStore {
	return &Store{}
}

func (s *Store) Get(tx *gorm.DB) (*model.ChainHead, error) {
	var head model.ChainHead
	err := tx.Where("id = ?", headID).First(&head).Error
	if err != nil {
		return nil, err
	}
	return &head, nil
}

func (s *Store) Save(tx *gorm.DB, blockNumber uint64) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"block_number", "updated_at"}),
	}).Create(&model.ChainHead{
		ID:          headID,
		BlockNumber: blockNumber,
		UpdatedAt:   time.Now(),
	}).Error
}
