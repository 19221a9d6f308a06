package model

import (
	"time"
)

// SwapExecution is the persisted form of one SwapExecuted audit log.
type SwapExecution struct {
	ID            int       `json:"id" gorm:"primaryKey"`
	TxHash        string    `json:"tx_hash" gorm:"column:tx_hash;type:varchar(66);not null;uniqueIndex:idx_swap_executions_tx_log"`
	LogIndex      uint      `json:"log_index" gorm:"column:log_index;not null;uniqueIndex:idx_swap_executions_tx_log"`
	BlockNumber   uint64    `json:"block_number" gorm:"column:block_number;not null;index"`
	Facilitator   string    `json:"facilitator" gorm:"column:facilitator;type:varchar(42);not null"`
	Caller        string    `json:"caller" gorm:"column:caller;type:varchar(42)"`
	OutputAsset   string    `json:"output_asset" gorm:"column:output_asset;type:varchar(42);not null;index"`
	AmountIn      string    `json:"amount_in" gorm:"column:amount_in;type:varchar(78);not null"`
	MinimumOutput string    `json:"minimum_output" gorm:"column:minimum_output;type:varchar(78);not null"`
	AmountOut     string    `json:"amount_out" gorm:"column:amount_out;type:varchar(78);not null"`
	ExecutedAt    time.Time `json:"executed_at" gorm:"column:executed_at"`
	CreatedAt     time.Time `json:"created_at"`
}

func (SwapExecution) TableName() string {
	return "swap_executions"
}

// SwapExecutionFilter narrows SwapExecution listings; zero values match all.
type SwapExecutionFilter struct {
	OutputAsset string
	Caller      string
	Limit       int
	Offset      int
}
