package create_reservation

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/condoflow/booking-service/internal/domain"
	reservationstorage "github.com/condoflow/booking-service/internal/infra/storage/reservation"
	spacestorage "github.com/condoflow/booking-service/internal/infra/storage/space"
	"github.com/condoflow/booking-service/pkg/ptr"
	"github.com/condoflow/booking-service/pkg/types"
)

// 2026-09-14 is a Monday.
var monday = time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

func mondayAt(hour int) time.Time {
	return monday.Add(time.Duration(hour) * time.Hour)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeSpaceRepo struct {
	space   *domain.Space
	windows []*domain.SpaceAvailability
	blocks  []*domain.SpaceBlock
}

func (f *fakeSpaceRepo) GetByID(_ context.Context, id int64) (*domain.Space, error) {
	if f.space == nil || f.space.ID != id {
		return nil, spacestorage.ErrSpaceNotFound
	}
	return f.space, nil
}

func (f *fakeSpaceRepo) ListAvailability(context.Context, int64) ([]*domain.SpaceAvailability, error) {
	return f.windows, nil
}

func (f *fakeSpaceRepo) ListBlocksInRange(context.Context, int64, domain.TimeRange) ([]*domain.SpaceBlock, error) {
	return f.blocks, nil
}

// fakeReservationRepo stores reservations in memory. FindConflicting
// scans live reservations the same way the SQL predicate does; callers
// must hold the fake transaction manager's lock for the scan + insert
// pair to be atomic.
type fakeReservationRepo struct {
	mu           sync.Mutex
	nextID       int64
	reservations []*domain.Reservation

	findErr   error
	createErr error
}

func (f *fakeReservationRepo) FindConflicting(_ context.Context, spaceID int64, interval domain.TimeRange, _ *int64) ([]*domain.Reservation, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var conflicting []*domain.Reservation
	for _, r := range f.reservations {
		if r.SpaceID != spaceID || !r.IsBlocking() {
			continue
		}
		if r.Interval().Overlaps(interval) {
			conflicting = append(conflicting, r)
		}
	}
	return conflicting, nil
}

func (f *fakeReservationRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	stored := *res
	stored.ID = f.nextID
	f.reservations = append(f.reservations, &stored)
	return &stored, nil
}

type fakeGovernance struct {
	blocked bool
	err     error
}

func (f *fakeGovernance) HasActiveBlock(context.Context, int64) (bool, error) {
	return f.blocked, f.err
}

// fakeTxManager serializes transactions with a mutex, mirroring the
// row-lock behavior of the real serializable transaction.
type fakeTxManager struct {
	mu  sync.Mutex
	err error
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
}

type capturePublisher struct {
	mu     sync.Mutex
	events []domain.Event
}

func (p *capturePublisher) Publish(_ context.Context, events ...domain.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
}

type fixture struct {
	uc           *UseCase
	spaces       *fakeSpaceRepo
	reservations *fakeReservationRepo
	governance   *fakeGovernance
	txManager    *fakeTxManager
	publisher    *capturePublisher
}

func newFixture() *fixture {
	f := &fixture{
		spaces: &fakeSpaceRepo{
			space: &domain.Space{
				ID:               7,
				Name:             "Rooftop Terrace",
				Status:           domain.SpaceStatusActive,
				Capacity:         30,
				MaxDurationHours: ptr.Ptr(4),
				MaxAdvanceDays:   30,
				MinAdvanceHours:  2,
			},
			windows: []*domain.SpaceAvailability{{
				SpaceID:   7,
				DayOfWeek: 1,
				StartTime: types.TimeString("08:00"),
				EndTime:   types.TimeString("22:00"),
			}},
		},
		reservations: &fakeReservationRepo{},
		governance:   &fakeGovernance{},
		txManager:    &fakeTxManager{},
		publisher:    &capturePublisher{},
	}
	f.uc = NewUseCase(f.spaces, f.reservations, f.governance, f.txManager,
		f.publisher, fixedClock{now: monday.Add(8 * time.Hour)}, noopLogger{})
	return f
}

func newRequest(startHour, endHour int) *Request {
	return &Request{
		SpaceID:        7,
		UnitID:         42,
		ResidentID:     100,
		StartDatetime:  mondayAt(startHour),
		EndDatetime:    mondayAt(endHour),
		ExpectedGuests: 4,
	}
}

func TestExecute_AutoConfirms(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), newRequest(18, 20))
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.NotZero(t, resp.ID)
	assert.Equal(t, mondayAt(18), resp.StartDatetime)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, domain.RoutingKeyReservationConfirmed, f.publisher.events[0].RoutingKey())
	assert.Len(t, f.reservations.reservations, 1)
}

func TestExecute_ApprovalRequiredStaysPending(t *testing.T) {
	f := newFixture()
	f.spaces.space.RequiresApproval = true

	resp, err := f.uc.Execute(context.Background(), newRequest(18, 20))
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPendingApproval), resp.Status)
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, domain.RoutingKeyReservationRequested, f.publisher.events[0].RoutingKey())
}

func TestExecute_SpaceNotFound(t *testing.T) {
	f := newFixture()
	f.spaces.space = nil

	_, err := f.uc.Execute(context.Background(), newRequest(18, 20))
	assert.ErrorIs(t, err, ErrSpaceNotFound)
	assert.Empty(t, f.publisher.events)
}

func TestExecute_InactiveSpaceCheckedBeforeCapacity(t *testing.T) {
	f := newFixture()
	f.spaces.space.Status = domain.SpaceStatusMaintenance

	req := newRequest(18, 20)
	req.ExpectedGuests = 500 // would also fail capacity

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSpaceInactive)
}

func TestExecute_CapacityExceeded(t *testing.T) {
	f := newFixture()

	req := newRequest(18, 20)
	req.ExpectedGuests = 31

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestExecute_AdvanceWindow(t *testing.T) {
	f := newFixture()

	// now is 08:00; a 09:00 start gives one hour of notice against a
	// two-hour minimum.
	_, err := f.uc.Execute(context.Background(), newRequest(9, 11))
	assert.ErrorIs(t, err, ErrAdvanceWindowViolation)

	// 60 days out against a 30-day advance limit.
	req := newRequest(18, 20)
	req.StartDatetime = req.StartDatetime.AddDate(0, 0, 60)
	req.EndDatetime = req.EndDatetime.AddDate(0, 0, 60)

	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAdvanceWindowViolation)
}

func TestExecute_DurationExceeded(t *testing.T) {
	f := newFixture()

	// Five hours against a four-hour cap. The duration check fires
	// before the open-hours check sees that 23:00 is past closing.
	_, err := f.uc.Execute(context.Background(), newRequest(18, 23))
	assert.ErrorIs(t, err, ErrDurationExceeded)
}

func TestExecute_UnitBlocked(t *testing.T) {
	f := newFixture()
	f.governance.blocked = true

	_, err := f.uc.Execute(context.Background(), newRequest(18, 20))
	assert.ErrorIs(t, err, ErrUnitBlocked)
}

func TestExecute_GovernanceErrorFailsClosed(t *testing.T) {
	f := newFixture()
	f.governance.err = fmt.Errorf("connection refused")

	_, err := f.uc.Execute(context.Background(), newRequest(18, 20))
	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, f.reservations.reservations)
}

func TestExecute_OutsideOpenHours(t *testing.T) {
	f := newFixture()

	// The Monday window is 08:00-22:00.
	_, err := f.uc.Execute(context.Background(), newRequest(21, 23))
	assert.ErrorIs(t, err, ErrSlotConflict)

	// Tuesday has no window at all.
	req := newRequest(18, 20)
	req.StartDatetime = req.StartDatetime.AddDate(0, 0, 1)
	req.EndDatetime = req.EndDatetime.AddDate(0, 0, 1)

	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_ConflictingReservation(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), newRequest(18, 20))
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), newRequest(19, 21))
	assert.ErrorIs(t, err, ErrSlotConflict)

	assert.Len(t, f.reservations.reservations, 1)
	assert.Len(t, f.publisher.events, 1, "no event for the rejected request")
}

func TestExecute_TouchingReservationIsAllowed(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), newRequest(16, 18))
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), newRequest(18, 20))
	require.NoError(t, err)

	assert.Len(t, f.reservations.reservations, 2)
}

func TestExecute_OverlappingBlock(t *testing.T) {
	f := newFixture()
	f.spaces.blocks = []*domain.SpaceBlock{{
		ID:            3,
		SpaceID:       7,
		StartDatetime: mondayAt(19),
		EndDatetime:   mondayAt(21),
		Reason:        "maintenance",
	}}

	_, err := f.uc.Execute(context.Background(), newRequest(18, 20))
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Empty(t, f.reservations.reservations)
}

func TestExecute_LockTimeout(t *testing.T) {
	f := newFixture()
	f.txManager.err = fmt.Errorf("find conflicting reservations: %w", reservationstorage.ErrLockTimeout)

	_, err := f.uc.Execute(context.Background(), newRequest(18, 20))
	assert.ErrorIs(t, err, ErrLockTimeout)
	assert.Empty(t, f.publisher.events)
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture()

	req := newRequest(18, 20)
	req.SpaceID = 0
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

}

func TestExecute_InvalidDateRange(t *testing.T) {
	f := newFixture()

	req := newRequest(18, 20)
	req.EndDatetime = req.StartDatetime // empty interval
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDateRange)
	assert.NotErrorIs(t, err, ErrInvalidInput)

	req = newRequest(20, 18) // inverted
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

// Concurrent overlapping requests for the same space must never both
// be admitted: with the conflict scan and the insert serialized, the
// stored reservations stay pairwise non-overlapping no matter how the
// goroutines interleave.
func TestExecute_ConcurrentAdmissionNeverDoubleBooks(t *testing.T) {
	f := newFixture()

	rng := rand.New(rand.NewSource(1))
	const attempts = 50

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		start := 10 + rng.Intn(10) // inside the window, past the notice minimum
		length := 1 + rng.Intn(2)
		req := newRequest(start, start+length)
		req.UnitID = int64(i + 1)

		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Execute(context.Background(), req)
			if err != nil {
				assert.ErrorIs(t, err, ErrSlotConflict)
			}
		}()
	}
	wg.Wait()

	stored := f.reservations.reservations
	require.NotEmpty(t, stored)
	for i := 0; i < len(stored); i++ {
		for j := i + 1; j < len(stored); j++ {
			assert.False(t, stored[i].Interval().Overlaps(stored[j].Interval()),
				"reservations %d and %d overlap", stored[i].ID, stored[j].ID)
		}
	}
	assert.Len(t, f.publisher.events, len(stored))
}
