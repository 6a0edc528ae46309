// Package txmanager runs functions inside serializable transactions over
// an instrumented dbmetrics.DB. The transaction is exposed to repositories
// through the context (dbmetrics.GetExecutor).
package txmanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/condoflow/booking-service/pkg/dbmetrics"
)

// TxBeginner is satisfied by *dbmetrics.DB.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager begins serializable transactions on demand.
type TransactionManager struct {
	db TxBeginner
}

// NewTransactionManager creates a manager over an instrumented DB.
func NewTransactionManager(db TxBeginner) *TransactionManager {
	return &TransactionManager{db: db}
}

// DoSerializable runs fn inside a SERIALIZABLE transaction. The open
// transaction travels in the context passed to fn; any error from fn
// rolls the transaction back and is returned unwrapped so callers can
// match sentinel errors with errors.Is.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("txmanager: begin transaction: %w", err)
	}

	txCtx := dbmetrics.WithTx(ctx, tx)

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("txmanager: rollback after %v: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("txmanager: commit transaction: %w", err)
	}
	return nil
}
