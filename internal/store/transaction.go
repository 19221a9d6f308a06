package store

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// DoInTx runs fn inside one database transaction. The transaction is rolled
// back when fn returns an error or panics; the panic is re-raised afterwards.
// Errors returned by fn reach the caller unwrapped.
func DoInTx(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "begin transaction")
	}

	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return errors.Wrap(err, "commit transaction")
	}
	committed = true
	return nil
}
