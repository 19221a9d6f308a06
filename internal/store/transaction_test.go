package store_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dwarvesf/swappy/internal/model"
	"github.com/dwarvesf/swappy/internal/store"
	"github.com/dwarvesf/swappy/internal/store/storetest"
)

const alice = "0x00000000000000000000000000000000000A11cE"

func countAccounts(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&model.Account{}).Count(&n).Error)
	return n
}

func TestDoInTx(t *testing.T) {
	t.Run("commits", func(t *testing.T) {
		db := storetest.NewDB(t)
		err := store.DoInTx(db, func(tx *gorm.DB) error {
			return tx.Create(&model.Account{Address: alice, Balance: "100"}).Error
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), countAccounts(t, db))
	})

	t.Run("rolls back and returns the callback error", func(t *testing.T) {
		db := storetest.NewDB(t)
		boom := errors.New("boom")
		err := store.DoInTx(db, func(tx *gorm.DB) error {
			require.NoError(t, tx.Create(&model.Account{Address: alice, Balance: "100"}).Error)
			return boom
		})
		assert.Same(t, boom, err)
		assert.Zero(t, countAccounts(t, db))
	})

	t.Run("rolls back on panic", func(t *testing.T) {
		db := storetest.NewDB(t)
		assert.PanicsWithValue(t, "kaboom", func() {
			_ = store.DoInTx(db, func(tx *gorm.DB) error {
				require.NoError(t, tx.Create(&model.Account{Address: alice, Balance: "1"}).Error)
				panic("kaboom")
			})
		})
		assert.Zero(t, countAccounts(t, db))
	})
}
