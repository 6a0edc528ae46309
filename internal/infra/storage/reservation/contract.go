package reservation

import (
	"context"
	"database/sql"

	"github.com/condoflow/booking-service/pkg/dbmetrics"
)

// Reuse the dbmetrics executor interfaces so the repository works over a
// raw *sql.DB, an instrumented wrapper or an open transaction alike.
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor

// TxBeginner is the subset needed to start transactions.
// Satisfied by *sql.DB and *dbmetrics.DB.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error)
}
