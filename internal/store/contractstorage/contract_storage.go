package contractstorage

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dwarvesf/swappy/internal/model"
)

const upsertBatchSize = 500

type Store struct {
}

func New() IStore {
	return &Store{}
}

func (s *Store) Upsert(tx *gorm.DB, slots []model.StorageSlot) error {
	if len(slots) == 0 {
		return nil
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "address"}, {Name: "slot"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).CreateInBatches(slots, upsertBatchSize).Error
}

func (s *Store) Delete(tx *gorm.DB, address string, slots []string) error {
	if len(slots) == 0 {
		return nil
	}
	return tx.Where("address = ? AND slot IN ?", address, slots).Delete(&model.StorageSlot{}).Error
}

func (s *Store) ListByAddress(tx *gorm.DB, address string) ([]model.StorageSlot, error) {
	var slots []model.StorageSlot
	err := tx.Where("address = ?", address).Order("slot").Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (s *Store) List(tx *gorm.DB) ([]model.StorageSlot, error) {
	var slots []model.StorageSlot
	err := tx.Order("address, slot").Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}
