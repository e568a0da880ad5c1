package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	ierr "github.com/cbo-rewards/loyalty/internal/errors"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/jmoiron/sqlx"
)

type txKey struct{}

// Tx is the open ledger transaction carried on the context. Nested WithTx
// calls become savepoints on it.
type Tx struct {
	*sqlx.Tx
	ID    string
	depth int
}

// GetTx retrieves a transaction from the context if it exists
func GetTx(ctx context.Context) (*Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(*Tx)
	return tx, ok
}

// WithTx runs fn in a transaction. A balance update, its transaction row
// and any stock decrement either all commit or none do. The transaction is
// rolled back when fn returns an error or panics.
func (db *DB) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if tx, ok := GetTx(ctx); ok {
		return db.withSavepoint(ctx, tx, fn)
	}

	sqlxTx, err := db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to start database transaction").
			Mark(ierr.ErrDatabase)
	}
	tx := &Tx{Tx: sqlxTx, ID: types.GenerateUUID()}
	db.logger.Debugw("transaction started", "tx_id", tx.ID)

	done := false
	defer func() {
		if done {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			db.logger.Errorw("transaction rollback failed", "tx_id", tx.ID, "error", rbErr)
			return
		}
		db.logger.Debugw("transaction rolled back", "tx_id", tx.ID)
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to commit database transaction").
			Mark(ierr.ErrDatabase)
	}
	done = true
	db.logger.Debugw("transaction committed", "tx_id", tx.ID)
	return nil
}

func (db *DB) withSavepoint(ctx context.Context, tx *Tx, fn func(ctx context.Context) error) error {
	tx.depth++
	defer func() { tx.depth-- }()
	savepoint := fmt.Sprintf("loyalty_sp_%d", tx.depth)

	if _, err := tx.ExecContext(ctx, "SAVEPOINT "+savepoint); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to start database transaction").
			Mark(ierr.ErrDatabase)
	}

	if err := fn(ctx); err != nil {
		if _, rbErr := tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+savepoint); rbErr != nil {
			return ierr.WithError(err).
				WithMessage(fmt.Sprintf("rollback to %s failed: %v", savepoint, rbErr)).
				Mark(ierr.ErrDatabase)
		}
		return err
	}

	if _, err := tx.ExecContext(ctx, "RELEASE SAVEPOINT "+savepoint); err != nil {
		return ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	return nil
}
