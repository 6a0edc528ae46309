package spaces_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/condoflow/booking-service/internal/domain"
	spacestorage "github.com/condoflow/booking-service/internal/infra/storage/space"
	"github.com/condoflow/booking-service/internal/service/spaces"
	"github.com/condoflow/booking-service/internal/service/spaces/models"
	"github.com/condoflow/booking-service/pkg/dbmetrics"
	"github.com/condoflow/booking-service/pkg/types"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// fakeSpaceRepo keeps the schedule in memory. ReplaceAvailability
// refuses to run outside a transaction and, like a rolled-back real
// swap, leaves the stored windows untouched when it fails.
type fakeSpaceRepo struct {
	space      *domain.Space
	windows    []*domain.SpaceAvailability
	replaceErr error
	sawTx      bool
}

func (f *fakeSpaceRepo) GetByID(_ context.Context, id int64) (*domain.Space, error) {
	if f.space == nil || f.space.ID != id {
		return nil, spacestorage.ErrSpaceNotFound
	}
	return f.space, nil
}

func (f *fakeSpaceRepo) Create(_ context.Context, sp *domain.Space) (*domain.Space, error) {
	created := *sp
	created.ID = 1
	f.space = &created
	return &created, nil
}

func (f *fakeSpaceRepo) Update(context.Context, *domain.Space) error { return nil }

func (f *fakeSpaceRepo) ListAvailability(context.Context, int64) ([]*domain.SpaceAvailability, error) {
	return f.windows, nil
}

func (f *fakeSpaceRepo) ReplaceAvailability(ctx context.Context, _ int64, windows []*domain.SpaceAvailability) error {
	f.sawTx = dbmetrics.IsInTransaction(ctx)
	if !f.sawTx {
		return fmt.Errorf("schedule swap outside a transaction")
	}
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.windows = windows
	return nil
}

func (f *fakeSpaceRepo) CreateBlock(_ context.Context, block *domain.SpaceBlock) (*domain.SpaceBlock, error) {
	created := *block
	created.ID = 1
	return &created, nil
}

func (f *fakeSpaceRepo) ListRules(context.Context, int64) ([]*domain.SpaceRule, error) {
	return nil, nil
}

// stubTx satisfies the transaction interface just enough to mark a
// context as transactional.
type stubTx struct{}

func (stubTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}
func (stubTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}
func (stubTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row { return nil }
func (stubTx) Commit() error   { return nil }
func (stubTx) Rollback() error { return nil }

type fakeTxManager struct{ calls int }

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(dbmetrics.WithTx(ctx, stubTx{}))
}

type countingCache struct{ invalidations int }

func (c *countingCache) InvalidateSpace(context.Context, int64) error {
	c.invalidations++
	return nil
}

func (c *countingCache) InvalidateRange(context.Context, int64, domain.TimeRange) error {
	c.invalidations++
	return nil
}

func window(day int, start, end string) *domain.SpaceAvailability {
	return &domain.SpaceAvailability{
		SpaceID:   1,
		DayOfWeek: day,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
	}
}

func newFixture() (*spaces.Service, *fakeSpaceRepo, *fakeTxManager, *countingCache) {
	repo := &fakeSpaceRepo{
		space: &domain.Space{
			ID:       1,
			Name:     "Gym",
			Status:   domain.SpaceStatusActive,
			Capacity: 20,
		},
		windows: []*domain.SpaceAvailability{window(1, "08:00", "20:00")},
	}
	txManager := &fakeTxManager{}
	cache := &countingCache{}
	svc := spaces.NewService(repo, txManager, cache, noopLogger{})
	return svc, repo, txManager, cache
}

func scheduleRequest(windows ...models.WindowRequest) *models.ReplaceScheduleRequest {
	return &models.ReplaceScheduleRequest{Windows: windows}
}

func TestReplaceSchedule(t *testing.T) {
	svc, repo, txManager, cache := newFixture()

	resp, err := svc.ReplaceSchedule(context.Background(), 1, scheduleRequest(
		models.WindowRequest{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00"},
		models.WindowRequest{DayOfWeek: 1, StartTime: "14:00", EndTime: "18:00"},
	))
	require.NoError(t, err)

	assert.Equal(t, 1, txManager.calls)
	assert.True(t, repo.sawTx, "swap must run inside the transaction")
	require.Len(t, resp.Windows, 2)
	assert.Equal(t, "09:00", resp.Windows[0].StartTime)
	assert.Equal(t, 1, cache.invalidations)
}

func TestReplaceSchedule_FailedSwapKeepsOldSchedule(t *testing.T) {
	svc, repo, _, cache := newFixture()
	repo.replaceErr = fmt.Errorf("insert failed: connection reset")

	_, err := svc.ReplaceSchedule(context.Background(), 1, scheduleRequest(
		models.WindowRequest{DayOfWeek: 2, StartTime: "09:00", EndTime: "12:00"},
	))
	assert.ErrorIs(t, err, spaces.ErrInternal)

	require.Len(t, repo.windows, 1, "old schedule must survive a failed swap")
	assert.Equal(t, 1, repo.windows[0].DayOfWeek)
	assert.Equal(t, types.TimeString("08:00"), repo.windows[0].StartTime)
	assert.Zero(t, cache.invalidations, "no invalidation for a failed swap")
}

func TestReplaceSchedule_OverlapRejected(t *testing.T) {
	svc, repo, txManager, _ := newFixture()

	_, err := svc.ReplaceSchedule(context.Background(), 1, scheduleRequest(
		models.WindowRequest{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00"},
		models.WindowRequest{DayOfWeek: 1, StartTime: "11:00", EndTime: "14:00"},
	))
	assert.ErrorIs(t, err, spaces.ErrWindowOverlap)
	assert.Zero(t, txManager.calls, "no write for an invalid schedule")
	require.Len(t, repo.windows, 1)
}

func TestReplaceSchedule_SpaceNotFound(t *testing.T) {
	svc, _, _, _ := newFixture()

	_, err := svc.ReplaceSchedule(context.Background(), 404, scheduleRequest())
	assert.ErrorIs(t, err, spaces.ErrSpaceNotFound)
}
