package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/condoflow/booking-service/internal/domain"
	"github.com/condoflow/booking-service/pkg/dbmetrics"
	"github.com/condoflow/booking-service/pkg/psqlbuilder"
)

// reservationColumns is the full column list used by every SELECT.
var reservationColumns = []string{
	"id",
	"space_id",
	"unit_id",
	"resident_id",
	"title",
	"start_datetime",
	"end_datetime",
	"expected_guests",
	"notes",
	"status",
	"approved_by",
	"approved_at",
	"rejected_by",
	"rejected_at",
	"rejection_reason",
	"cancelled_by",
	"cancelled_at",
	"cancellation_reason",
	"checked_in_by",
	"checked_in_at",
	"completed_by",
	"completed_at",
	"no_show_by",
	"no_show_at",
	"created_at",
	"updated_at",
}

// Repository persists reservations in Postgres.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a reservation repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a new reservation and fills in the generated id and
// timestamps. Reservations are only ever inserted here; all later
// mutations go through Update.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"space_id",
			"unit_id",
			"resident_id",
			"title",
			"start_datetime",
			"end_datetime",
			"expected_guests",
			"notes",
			"status",
		).
		Values(
			res.SpaceID,
			res.UnitID,
			res.ResidentID,
			res.Title,
			res.StartDatetime,
			res.EndDatetime,
			res.ExpectedGuests,
			res.Notes,
			res.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&res.ID, &createdAt, &updatedAt)
	if err != nil {
		if lockErr := mapLockError(err); lockErr != nil {
			return nil, lockErr
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID fetches a reservation by id.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}
	return res, nil
}

// Update saves the mutable part of a reservation: lifecycle status and
// the audit trail written by transitions. Identity and the booked
// interval are immutable after creation and deliberately not updated.
// The row is only written while it still holds the status the caller
// transitioned from; a concurrent transition makes the update match
// nothing and the loser gets ErrStatusConflict.
func (r *Repository) Update(ctx context.Context, res *domain.Reservation, from domain.ReservationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", res.Status).
		Set("approved_by", res.ApprovedBy).
		Set("approved_at", res.ApprovedAt).
		Set("rejected_by", res.RejectedBy).
		Set("rejected_at", res.RejectedAt).
		Set("rejection_reason", res.RejectionReason).
		Set("cancelled_by", res.CancelledBy).
		Set("cancelled_at", res.CancelledAt).
		Set("cancellation_reason", res.CancellationReason).
		Set("checked_in_by", res.CheckedInBy).
		Set("checked_in_at", res.CheckedInAt).
		Set("completed_by", res.CompletedBy).
		Set("completed_at", res.CompletedAt).
		Set("no_show_by", res.NoShowBy).
		Set("no_show_at", res.NoShowAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": res.ID, "status": from}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if lockErr := mapLockError(err); lockErr != nil {
			return lockErr
		}
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: id=%d expected status=%s", ErrStatusConflict, res.ID, from)
	}
	return nil
}

// FindConflicting returns all reservations for the space that still block
// their slot and overlap the requested half-open interval. Inside a
// transaction the rows are locked with FOR UPDATE, which serializes
// concurrent admission attempts against the same space: whichever
// transaction locks first checks and inserts before the loser re-reads.
func (r *Repository) FindConflicting(
	ctx context.Context,
	spaceID int64,
	interval domain.TimeRange,
	excludeReservationID *int64,
) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	terminal := make([]string, len(domain.TerminalStatuses))
	for i, s := range domain.TerminalStatuses {
		terminal[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"space_id": spaceID}).
		Where(squirrel.NotEq{"status": terminal}).
		Where(squirrel.Lt{"start_datetime": interval.End}).
		Where(squirrel.Gt{"end_datetime": interval.Start}).
		OrderBy("start_datetime ASC")

	if excludeReservationID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeReservationID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindConflicting - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if lockErr := mapLockError(err); lockErr != nil {
			return nil, lockErr
		}
		return nil, fmt.Errorf("%w: FindConflicting - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// ListBlockingBySpace returns the space's slot-occupying reservations
// inside the given period, ordered by start time. Used by the
// availability calculator; runs without locking.
func (r *Repository) ListBlockingBySpace(ctx context.Context, spaceID int64, period domain.TimeRange) ([]*domain.Reservation, error) {
	return r.FindConflicting(ctx, spaceID, period, nil)
}

// ListByUnit returns a unit's reservation history, newest first, with an
// optional status filter.
func (r *Repository) ListByUnit(ctx context.Context, unitID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"unit_id": unitID}).
		OrderBy("start_datetime DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUnit - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUnit - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// ListBySpace returns a space's reservations inside an optional period,
// optionally including terminal ones. Ordered by start time ascending for
// single-day manager views, descending otherwise.
func (r *Repository) ListBySpace(ctx context.Context, filter domain.SpaceReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"space_id": filter.SpaceID})

	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_datetime": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_datetime": *filter.To})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeTerminal {
		terminal := make([]string, len(domain.TerminalStatuses))
		for i, s := range domain.TerminalStatuses {
			terminal[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": terminal})
	}

	if filter.From != nil && filter.To != nil {
		selectBuilder = selectBuilder.OrderBy("start_datetime ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("start_datetime DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySpace - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySpace - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// mapLockError translates Postgres lock/serialization failures into the
// retryable ErrLockTimeout; other errors pass through as nil so callers
// wrap them with their own context.
func mapLockError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return nil
	}
	switch pqErr.Code {
	case "40001", // serialization_failure
		"40P01", // deadlock_detected
		"55P03": // lock_not_available
		return fmt.Errorf("%w: %s", ErrLockTimeout, pqErr.Code)
	}
	return nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var status string
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.SpaceID,
		&res.UnitID,
		&res.ResidentID,
		&res.Title,
		&res.StartDatetime,
		&res.EndDatetime,
		&res.ExpectedGuests,
		&res.Notes,
		&status,
		&res.ApprovedBy,
		&res.ApprovedAt,
		&res.RejectedBy,
		&res.RejectedAt,
		&res.RejectionReason,
		&res.CancelledBy,
		&res.CancelledAt,
		&res.CancellationReason,
		&res.CheckedInBy,
		&res.CheckedInAt,
		&res.CompletedBy,
		&res.CompletedAt,
		&res.NoShowBy,
		&res.NoShowAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	parsed, err := domain.ParseReservationStatus(status)
	if err != nil {
		return nil, err
	}
	res.Status = parsed
	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
