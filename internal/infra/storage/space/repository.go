package space

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/condoflow/booking-service/internal/domain"
	"github.com/condoflow/booking-service/pkg/dbmetrics"
	"github.com/condoflow/booking-service/pkg/psqlbuilder"
)

var spaceColumns = []string{
	"id",
	"name",
	"type",
	"status",
	"capacity",
	"requires_approval",
	"max_duration_hours",
	"max_advance_days",
	"min_advance_hours",
	"cancellation_deadline_hours",
	"created_at",
	"updated_at",
}

// Repository persists spaces and their weekly windows, blocks and rules.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository creates a space repository.
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID fetches a space by id.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Space, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(spaceColumns...).
		From("spaces").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	sp, err := scanSpace(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSpaceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan space: %v", ErrScanRow, err)
	}
	return sp, nil
}

// Create inserts a new space and fills in the generated id and timestamps.
func (r *Repository) Create(ctx context.Context, sp *domain.Space) (*domain.Space, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("spaces").
		Columns(
			"name",
			"type",
			"status",
			"capacity",
			"requires_approval",
			"max_duration_hours",
			"max_advance_days",
			"min_advance_hours",
			"cancellation_deadline_hours",
		).
		Values(
			sp.Name,
			sp.Type,
			sp.Status,
			sp.Capacity,
			sp.RequiresApproval,
			sp.MaxDurationHours,
			sp.MaxAdvanceDays,
			sp.MinAdvanceHours,
			sp.CancellationDeadlineHours,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&sp.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	sp.CreatedAt = createdAt.Time
	sp.UpdatedAt = updatedAt.Time
	return sp, nil
}

// Update saves a space's administrative settings.
func (r *Repository) Update(ctx context.Context, sp *domain.Space) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("spaces").
		Set("name", sp.Name).
		Set("type", sp.Type).
		Set("status", sp.Status).
		Set("capacity", sp.Capacity).
		Set("requires_approval", sp.RequiresApproval).
		Set("max_duration_hours", sp.MaxDurationHours).
		Set("max_advance_days", sp.MaxAdvanceDays).
		Set("min_advance_hours", sp.MinAdvanceHours).
		Set("cancellation_deadline_hours", sp.CancellationDeadlineHours).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": sp.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSpaceNotFound
	}
	return nil
}

// ListAvailability returns a space's weekly windows ordered by day and
// start time.
func (r *Repository) ListAvailability(ctx context.Context, spaceID int64) ([]*domain.SpaceAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "space_id", "day_of_week", "start_time", "end_time", "created_at",
	).
		From("space_availability").
		Where(squirrel.Eq{"space_id": spaceID}).
		OrderBy("day_of_week ASC, start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailability - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailability - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]*domain.SpaceAvailability, 0)
	for rows.Next() {
		var w domain.SpaceAvailability
		var createdAt sql.NullTime
		if err := rows.Scan(&w.ID, &w.SpaceID, &w.DayOfWeek, &w.StartTime, &w.EndTime, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListAvailability - scan row: %v", ErrScanRow, err)
		}
		w.CreatedAt = createdAt.Time
		windows = append(windows, &w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAvailability - rows error: %v", ErrScanRow, err)
	}
	return windows, nil
}

// ReplaceAvailability swaps a space's full weekly schedule in one
// statement pair. Validation (window overlap) happens in the service
// layer before this is called.
func (r *Repository) ReplaceAvailability(ctx context.Context, spaceID int64, windows []*domain.SpaceAvailability) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	delQuery, delArgs, err := psqlbuilder.Delete("space_availability").
		Where(squirrel.Eq{"space_id": spaceID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceAvailability - build delete query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, delQuery, delArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceAvailability - execute delete: %v", ErrExecQuery, err)
	}

	if len(windows) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("space_availability").
		Columns("space_id", "day_of_week", "start_time", "end_time")
	for _, w := range windows {
		insertBuilder = insertBuilder.Values(spaceID, w.DayOfWeek, w.StartTime, w.EndTime)
	}

	insQuery, insArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceAvailability - build insert query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, insQuery, insArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceAvailability - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

// CreateBlock inserts an ad-hoc closure for a space.
func (r *Repository) CreateBlock(ctx context.Context, block *domain.SpaceBlock) (*domain.SpaceBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("space_blocks").
		Columns("space_id", "start_datetime", "end_datetime", "reason", "created_by", "notes").
		Values(block.SpaceID, block.StartDatetime, block.EndDatetime, block.Reason, block.CreatedBy, block.Notes).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBlock - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&block.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: CreateBlock - execute insert: %v", ErrExecQuery, err)
	}
	block.CreatedAt = createdAt.Time
	return block, nil
}

// ListBlocksInRange returns a space's blocks overlapping the half-open
// period, ordered by start.
func (r *Repository) ListBlocksInRange(ctx context.Context, spaceID int64, period domain.TimeRange) ([]*domain.SpaceBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "space_id", "start_datetime", "end_datetime", "reason", "created_by", "notes", "created_at",
	).
		From("space_blocks").
		Where(squirrel.Eq{"space_id": spaceID}).
		Where(squirrel.Lt{"start_datetime": period.End}).
		Where(squirrel.Gt{"end_datetime": period.Start}).
		OrderBy("start_datetime ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlocksInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlocksInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]*domain.SpaceBlock, 0)
	for rows.Next() {
		var b domain.SpaceBlock
		var createdAt sql.NullTime
		if err := rows.Scan(&b.ID, &b.SpaceID, &b.StartDatetime, &b.EndDatetime, &b.Reason, &b.CreatedBy, &b.Notes, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListBlocksInRange - scan row: %v", ErrScanRow, err)
		}
		b.CreatedAt = createdAt.Time
		blocks = append(blocks, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBlocksInRange - rows error: %v", ErrScanRow, err)
	}
	return blocks, nil
}

// ListRules returns a space's informational rules.
func (r *Repository) ListRules(ctx context.Context, spaceID int64) ([]*domain.SpaceRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "space_id", "rule_key", "rule_value", "created_at").
		From("space_rules").
		Where(squirrel.Eq{"space_id": spaceID}).
		OrderBy("rule_key ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListRules - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRules - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.SpaceRule, 0)
	for rows.Next() {
		var rule domain.SpaceRule
		var createdAt sql.NullTime
		if err := rows.Scan(&rule.ID, &rule.SpaceID, &rule.RuleKey, &rule.RuleValue, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListRules - scan row: %v", ErrScanRow, err)
		}
		rule.CreatedAt = createdAt.Time
		rules = append(rules, &rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListRules - rows error: %v", ErrScanRow, err)
	}
	return rules, nil
}

func scanSpace(row interface{ Scan(...interface{}) error }) (*domain.Space, error) {
	var sp domain.Space
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&sp.ID,
		&sp.Name,
		&sp.Type,
		&sp.Status,
		&sp.Capacity,
		&sp.RequiresApproval,
		&sp.MaxDurationHours,
		&sp.MaxAdvanceDays,
		&sp.MinAdvanceHours,
		&sp.CancellationDeadlineHours,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	sp.CreatedAt = createdAt.Time
	sp.UpdatedAt = updatedAt.Time
	return &sp, nil
}
