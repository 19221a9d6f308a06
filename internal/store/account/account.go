package account

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dwarvesf/swappy/internal/model"
)

type Store struct {
}

func New() IStore {
	return &Store{}
}

func (s *Store) Upsert(tx *gorm.DB, accounts []model.Account) error {
	if len(accounts) == 0 {
		return nil
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "address"}},
		DoUpdates: clause.AssignmentColumns([]string{"balance", "updated_at"}),
	}).Create(&accounts).Error
}

func (s *Store) Delete(tx *gorm.DB, addresses []string) error {
	if len(addresses) == 0 {
		return nil
	}
	return tx.Where("address IN ?", addresses).Delete(&model.Account{}).Error
}

func (s *Store) GetByAddress(tx *gorm.DB, address string) (*model.Account, error) {
	var account model.Account
	err := tx.Where("address = ?", address).First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *Store) List(tx *gorm.DB) ([]model.Account, error) {
	var accounts []model.Account
	err := tx.Order("address").Find(&accounts).Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}
