package swaprequest

import (
	"time"

	"gorm.io/gorm"

	"github.com/dwarvesf/swappy/internal/model"
)

type Store struct {
}

func New() IStore {
	return &Store{}
}

func (s *Store) Create(tx *gorm.DB, swapRequest *model.SwapRequest) (*model.SwapRequest, error) {
	return swapRequest, tx.Create(swapRequest).Error
}

func (s *Store) GetByRequestID(tx *gorm.DB, requestID string) (*model.SwapRequest, error) {
	var swapRequest model.SwapRequest
	err := tx.Where("request_id = ?", requestID).First(&swapRequest).Error
	if err != nil {
		return nil, err
	}
	return &swapRequest, nil
}

func (s *Store) FindPending(tx *gorm.DB) ([]model.SwapRequest, error) {
	var swapRequests []model.SwapRequest
	err := tx.Where("status = ?", model.SwapRequestStatusPending).Order("id").Find(&swapRequests).Error
	if err != nil {
		return nil, err
	}
	return swapRequests, nil
}

func (s *Store) Complete(tx *gorm.DB, requestID, txHash string) error {
	return s.updateStatus(tx, requestID, map[string]interface{}{
		"status":  model.SwapRequestStatusCompleted,
		"tx_hash": txHash,
	})
}

func (s *Store) Fail(tx *gorm.DB, requestID, errorKind string) error {
	return s.updateStatus(tx, requestID, map[string]interface{}{
		"status":     model.SwapRequestStatusFailed,
		"error_kind": errorKind,
	})
}

func (s *Store) updateStatus(tx *gorm.DB, requestID string, fields map[string]interface{}) error {
	fields["processed_at"] = time.Now()
	return tx.Model(&model.SwapRequest{}).
		Where("request_id = ?", requestID).
		Updates(fields).Error
}
