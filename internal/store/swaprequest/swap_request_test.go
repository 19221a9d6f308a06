package swaprequest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwarvesf/swappy/internal/model"
	"github.com/dwarvesf/swappy/internal/store/storetest"
	"github.com/dwarvesf/swappy/internal/store/swaprequest"
)

func TestStore_Lifecycle(t *testing.T) {
	db := storetest.NewDB(t)
	s := swaprequest.New()

	for _, id := range []string{"req-1", "req-2"} {
		_, err := s.Create(db, &model.SwapRequest{
			RequestID:     id,
			Caller:        "0x00000000000000000000000000000000000a11ce",
			OutputAsset:   "0xdAC17F958D2ee523a2206206994597C13D831ec7",
			MinimumOutput: "1",
			FeeTier:       500,
			PaymentAmount: "1000000000000000000",
			Status:        model.SwapRequestStatusPending,
		})
		require.NoError(t, err)
	}

	require.NoError(t, s.Complete(db, "req-1", "0xabc"))
	require.NoError(t, s.Fail(db, "req-2", "slippage_exceeded"))

	pending, err := s.FindPending(db)
	require.NoError(t, err)
	assert.Empty(t, pending)

	done, err := s.GetByRequestID(db, "req-1")
	require.NoError(t, err)
	assert.Equal(t, model.SwapRequestStatusCompleted, done.Status)
	assert.Equal(t, "0xabc", done.TxHash)
	assert.NotNil(t, done.ProcessedAt)

	failed, err := s.GetByRequestID(db, "req-2")
	require.NoError(t, err)
	assert.Equal(t, model.SwapRequestStatusFailed, failed.Status)
	assert.Equal(t, "slippage_exceeded", failed.ErrorKind)
}
