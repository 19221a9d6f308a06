package swapexecution_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dwarvesf/swappy/internal/model"
	"github.com/dwarvesf/swappy/internal/store/storetest"
	"github.com/dwarvesf/swappy/internal/store/swapexecution"
)

const (
	usdt = "0xdAC17F958D2ee523a2206206994597C13D831ec7"
	dai  = "0x6B175474E89094C44Da98b954EedeAC495271d0F"
)

func execution(block uint64, asset string) *model.SwapExecution {
	return &model.SwapExecution{
		TxHash:        fmt.Sprintf("0x%064x", block),
		BlockNumber:   block,
		Facilitator:   "0x0000000000000000000000000000000000005a99",
		Caller:        "0x00000000000000000000000000000000000a11ce",
		OutputAsset:   asset,
		AmountIn:      "1000000000000000000",
		MinimumOutput: "1",
		AmountOut:     "1597603195",
	}
}

func TestStore_CreateIsIdempotent(t *testing.T) {
	db := storetest.NewDB(t)
	s := swapexecution.New()

	_, err := s.Create(db, execution(1, usdt))
	require.NoError(t, err)
	_, err = s.Create(db, execution(1, usdt))
	require.NoError(t, err)

	_, total, err := s.List(db, model.SwapExecutionFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestStore_GetLatest(t *testing.T) {
	db := storetest.NewDB(t)
	s := swapexecution.New()

	_, err := s.GetLatest(db)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	for _, b := range []uint64{3, 7, 5} {
		_, err := s.Create(db, execution(b, usdt))
		require.NoError(t, err)
	}
	latest, err := s.GetLatest(db)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), latest.BlockNumber)

	byHash, err := s.GetByTransactionHash(db, fmt.Sprintf("0x%064x", 5))
	require.NoError(t, err)
	assert.Equal(t, uint64(5), byHash.BlockNumber)
}

func TestStore_List(t *testing.T) {
	db := storetest.NewDB(t)
	s := swapexecution.New()
	for b := uint64(1); b <= 5; b++ {
		asset := usdt
		if b%2 == 0 {
			asset = dai
		}
		_, err := s.Create(db, execution(b, asset))
		require.NoError(t, err)
	}

	tests := []struct {
		name       string
		filter     model.SwapExecutionFilter
		wantTotal  int64
		wantBlocks []uint64
	}{
		{name: "all newest first", filter: model.SwapExecutionFilter{}, wantTotal: 5, wantBlocks: []uint64{5, 4, 3, 2, 1}},
		{name: "by asset, any case", filter: model.SwapExecutionFilter{OutputAsset: "0x6b175474e89094c44da98b954eedeac495271d0f"}, wantTotal: 2, wantBlocks: []uint64{4, 2}},
		{name: "paged", filter: model.SwapExecutionFilter{Limit: 2, Offset: 1}, wantTotal: 5, wantBlocks: []uint64{4, 3}},
		{name: "unknown caller", filter: model.SwapExecutionFilter{Caller: "0x0000000000000000000000000000000000000b0b"}, wantTotal: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, total, err := s.List(db, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, total)
			var blocks []uint64
			for _, e := range got {
				blocks = append(blocks, e.BlockNumber)
			}
			assert.Equal(t, tt.wantBlocks, blocks)
		})
	}
}
