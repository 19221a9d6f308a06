package model

import (
	"time"

	"gorm.io/gorm"
)

type SwapRequestStatus string

const (
	SwapRequestStatusPending   SwapRequestStatus = "pending"
	SwapRequestStatusCompleted SwapRequestStatus = "completed"
	SwapRequestStatusFailed    SwapRequestStatus = "failed"
)

// SwapRequest records a swap submitted through the API, whatever its outcome.
type SwapRequest struct {
	gorm.Model
	RequestID     string            `gorm:"column:request_id;type:varchar(64);not null;uniqueIndex"`
	Caller        string            `gorm:"column:caller;type:varchar(42);not null;index"`
	OutputAsset   string            `gorm:"column:output_asset;type:varchar(42);not null"`
	MinimumOutput string            `gorm:"column:minimum_output;type:varchar(78);not null"`
	FeeTier       uint32            `gorm:"column:fee_tier;not null"`
	PaymentAmount string            `gorm:"column:payment_amount;type:varchar(78);not null"`
	Status        SwapRequestStatus `gorm:"column:status;type:varchar(50);default:'pending'"`
	TxHash        string            `gorm:"column:tx_hash;type:varchar(66)"`
	ErrorKind     string            `gorm:"column:error_kind;type:varchar(64)"`
	ProcessedAt   *time.Time        `gorm:"column:processed_at"`
}

func (SwapRequest) TableName() string {
	return "swap_requests"
}
