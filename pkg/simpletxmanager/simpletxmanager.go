// Package simpletxmanager is the plain *sql.DB counterpart of txmanager,
// used when metrics instrumentation is disabled.
package simpletxmanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/condoflow/booking-service/pkg/dbmetrics"
)

// TransactionManager begins serializable transactions on a raw *sql.DB.
type TransactionManager struct {
	db *sql.DB
}

// NewTransactionManager creates a manager over db.
func NewTransactionManager(db *sql.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// DoSerializable runs fn inside a SERIALIZABLE transaction, exposing the
// transaction through the context the same way txmanager does.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("simpletxmanager: begin transaction: %w", err)
	}

	txCtx := dbmetrics.WithTx(ctx, plainTx{tx})

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("simpletxmanager: rollback after %v: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("simpletxmanager: commit transaction: %w", err)
	}
	return nil
}

// plainTx adapts *sql.Tx to dbmetrics.TxExecutor.
type plainTx struct {
	*sql.Tx
}
