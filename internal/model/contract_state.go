package model

import "time"

// StorageSlot is one non-zero storage word of a contract.
type StorageSlot struct {
	Address   string    `gorm:"column:address;type:varchar(42);primaryKey"`
	Slot      string    `gorm:"column:slot;type:varchar(66);primaryKey"`
	Value     string    `gorm:"column:value;type:varchar(66);not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (StorageSlot) TableName() string {
	return "storage_slots"
}

// Account is the native balance of an address, in wei.
type Account struct {
	Address   string    `gorm:"column:address;type:varchar(42);primaryKey"`
	Balance   string    `gorm:"column:balance;type:varchar(78);not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Account) TableName() string {
	return "accounts"
}

// ChainHead tracks the last committed simulated block.
type ChainHead struct {
	ID          int       `gorm:"primaryKey"`
	BlockNumber uint64    `gorm:"column:block_number;not null"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (ChainHead) TableName() string {
	return "chain_heads"
}
