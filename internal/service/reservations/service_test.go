package reservations_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/condoflow/booking-service/internal/domain"
	reservationstorage "github.com/condoflow/booking-service/internal/infra/storage/reservation"
	"github.com/condoflow/booking-service/internal/service/reservations"
	"github.com/condoflow/booking-service/internal/service/reservations/models"
	"github.com/condoflow/booking-service/pkg/ptr"
)

var start = time.Date(2026, 9, 14, 18, 0, 0, 0, time.UTC)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

// fakeReservationRepo mimics the row semantics of the real repository:
// GetByID hands out a detached copy and Update only writes while the
// stored row still holds the status the caller transitioned from.
type fakeReservationRepo struct {
	byID      map[int64]*domain.Reservation
	updated   []*domain.Reservation
	updateErr error
	onLoad    func() // runs after a successful GetByID lookup
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	r, ok := f.byID[id]
	if !ok {
		return nil, reservationstorage.ErrReservationNotFound
	}
	loaded := *r
	if f.onLoad != nil {
		f.onLoad()
	}
	return &loaded, nil
}

func (f *fakeReservationRepo) Update(_ context.Context, res *domain.Reservation, from domain.ReservationStatus) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	stored, ok := f.byID[res.ID]
	if !ok {
		return reservationstorage.ErrReservationNotFound
	}
	if stored.Status != from {
		return reservationstorage.ErrStatusConflict
	}
	written := *res
	f.byID[res.ID] = &written
	f.updated = append(f.updated, &written)
	return nil
}

func (f *fakeReservationRepo) ListByUnit(_ context.Context, unitID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	var out []*domain.Reservation
	for _, r := range f.byID {
		if r.UnitID != unitID {
			continue
		}
		if status != nil && r.Status != *status {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeReservationRepo) ListBySpace(_ context.Context, filter domain.SpaceReservationsFilter) ([]*domain.Reservation, error) {
	var out []*domain.Reservation
	for _, r := range f.byID {
		if r.SpaceID == filter.SpaceID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeSpaceRepo struct{ space *domain.Space }

func (f *fakeSpaceRepo) GetByID(context.Context, int64) (*domain.Space, error) {
	return f.space, nil
}

type capturePublisher struct{ events []domain.Event }

func (p *capturePublisher) Publish(_ context.Context, events ...domain.Event) {
	p.events = append(p.events, events...)
}

type fixture struct {
	svc          *reservations.Service
	reservations *fakeReservationRepo
	publisher    *capturePublisher
	now          time.Time
}

func newFixture(now time.Time, stored ...*domain.Reservation) *fixture {
	repo := &fakeReservationRepo{byID: map[int64]*domain.Reservation{}}
	for _, r := range stored {
		repo.byID[r.ID] = r
	}
	spaces := &fakeSpaceRepo{space: &domain.Space{
		ID:                        7,
		Status:                    domain.SpaceStatusActive,
		CancellationDeadlineHours: 24,
	}}
	publisher := &capturePublisher{}
	svc := reservations.NewService(repo, spaces, publisher, fixedClock{now: now}, noopLogger{})
	return &fixture{svc: svc, reservations: repo, publisher: publisher, now: now}
}

func storedReservation(id int64, status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		ID:            id,
		SpaceID:       7,
		UnitID:        42,
		ResidentID:    100,
		StartDatetime: start,
		EndDatetime:   start.Add(2 * time.Hour),
		Status:        status,
	}
}

func TestApprove(t *testing.T) {
	f := newFixture(start.Add(-48*time.Hour), storedReservation(1, domain.StatusPendingApproval))

	resp, err := f.svc.Approve(context.Background(), 1, 900)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	require.NotNil(t, resp.ApprovedBy)
	assert.Equal(t, int64(900), *resp.ApprovedBy)

	require.Len(t, f.reservations.updated, 1)
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, domain.RoutingKeyReservationConfirmed, f.publisher.events[0].RoutingKey())
}

func TestApprove_AlreadyConfirmed(t *testing.T) {
	f := newFixture(start.Add(-48*time.Hour), storedReservation(1, domain.StatusConfirmed))

	_, err := f.svc.Approve(context.Background(), 1, 900)
	assert.ErrorIs(t, err, reservations.ErrInvalidStatusTransition)
	assert.Empty(t, f.reservations.updated, "failed transition must not persist")
	assert.Empty(t, f.publisher.events)
}

func TestReject(t *testing.T) {
	f := newFixture(start.Add(-48*time.Hour), storedReservation(1, domain.StatusPendingApproval))

	resp, err := f.svc.Reject(context.Background(), 1, &models.RejectReservationRequest{
		AdminID: 900,
		Reason:  "space reserved for community event",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusRejected), resp.Status)
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, domain.RoutingKeyReservationRejected, f.publisher.events[0].RoutingKey())
}

func TestReject_ReasonRequired(t *testing.T) {
	f := newFixture(start.Add(-48*time.Hour), storedReservation(1, domain.StatusPendingApproval))

	_, err := f.svc.Reject(context.Background(), 1, &models.RejectReservationRequest{AdminID: 900})
	assert.ErrorIs(t, err, reservations.ErrInvalidInput)
}

func TestCancel_BeforeDeadline(t *testing.T) {
	// 48 hours before start, against a 24-hour deadline.
	f := newFixture(start.Add(-48*time.Hour), storedReservation(1, domain.StatusConfirmed))

	resp, err := f.svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{
		ActorID: 100,
		Reason:  ptr.Ptr("plans changed"),
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	require.Len(t, f.publisher.events, 1)
	event, ok := f.publisher.events[0].(*domain.ReservationCanceled)
	require.True(t, ok)
	assert.False(t, event.IsLateCancellation)
}

func TestCancel_InsideDeadlineIsLate(t *testing.T) {
	// 6 hours before start, inside the 24-hour deadline.
	f := newFixture(start.Add(-6*time.Hour), storedReservation(1, domain.StatusConfirmed))

	resp, err := f.svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{ActorID: 100})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	event, ok := f.publisher.events[0].(*domain.ReservationCanceled)
	require.True(t, ok)
	assert.True(t, event.IsLateCancellation)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	f := newFixture(start.Add(-48*time.Hour), storedReservation(1, domain.StatusCancelled))

	_, err := f.svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{ActorID: 100})
	assert.ErrorIs(t, err, reservations.ErrInvalidStatusTransition)
	assert.Empty(t, f.publisher.events)
}

func TestCancel_LosesRaceAgainstConcurrentTransition(t *testing.T) {
	f := newFixture(start.Add(-48*time.Hour), storedReservation(1, domain.StatusConfirmed))

	// Another actor checks the reservation in between our load and our
	// write; the guarded update must reject the stale cancellation.
	f.reservations.onLoad = func() {
		f.reservations.byID[1].Status = domain.StatusInProgress
	}

	_, err := f.svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{ActorID: 100})
	assert.ErrorIs(t, err, reservations.ErrInvalidStatusTransition)
	assert.Empty(t, f.publisher.events, "losing transition must not publish")
	assert.Equal(t, domain.StatusInProgress, f.reservations.byID[1].Status)
}

func TestCheckInCompleteFlow(t *testing.T) {
	f := newFixture(start.Add(30*time.Minute), storedReservation(1, domain.StatusConfirmed))

	resp, err := f.svc.CheckIn(context.Background(), 1, 100)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusInProgress), resp.Status)

	resp, err = f.svc.Complete(context.Background(), 1, 100)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)

	require.Len(t, f.publisher.events, 2)
	assert.Equal(t, domain.RoutingKeyReservationCheckedIn, f.publisher.events[0].RoutingKey())
	assert.Equal(t, domain.RoutingKeyReservationCompleted, f.publisher.events[1].RoutingKey())
}

func TestMarkNoShow(t *testing.T) {
	f := newFixture(start.Add(3*time.Hour), storedReservation(1, domain.StatusInProgress))

	resp, err := f.svc.MarkNoShow(context.Background(), 1, 900)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusNoShow), resp.Status)
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, domain.RoutingKeyReservationNoShow, f.publisher.events[0].RoutingKey())
}

func TestGetByID_NotFound(t *testing.T) {
	f := newFixture(start)

	_, err := f.svc.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, reservations.ErrReservationNotFound)
}

func TestGetUnitReservations_StatusFilter(t *testing.T) {
	f := newFixture(start,
		storedReservation(1, domain.StatusConfirmed),
		storedReservation(2, domain.StatusCancelled))

	resp, err := f.svc.GetUnitReservations(context.Background(), &models.GetUnitReservationsRequest{
		UnitID: 42,
		Status: ptr.Ptr("confirmed"),
	})
	require.NoError(t, err)
	require.Len(t, resp.Reservations, 1)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Reservations[0].Status)

	_, err = f.svc.GetUnitReservations(context.Background(), &models.GetUnitReservationsRequest{
		UnitID: 42,
		Status: ptr.Ptr("bogus"),
	})
	assert.ErrorIs(t, err, reservations.ErrInvalidInput)
}
