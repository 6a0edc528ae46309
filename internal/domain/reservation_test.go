package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/condoflow/booking-service/internal/domain"
	"github.com/condoflow/booking-service/pkg/ptr"
)

func newTestSpace(requiresApproval bool) *domain.Space {
	return &domain.Space{
		ID:               7,
		Name:             "Party Hall",
		Type:             "party_hall",
		Status:           domain.SpaceStatusActive,
		Capacity:         50,
		RequiresApproval: requiresApproval,
	}
}

func newTestReservation(t *testing.T, status domain.ReservationStatus) *domain.Reservation {
	t.Helper()
	interval := mustRange(t, at(18), at(22))
	r := domain.NewReservation(newTestSpace(true), 12, 31, interval, 20, ptr.Ptr("Birthday"), nil)
	r.ID = 101
	r.Status = status
	return r
}

func TestNewReservation_InitialStatus(t *testing.T) {
	interval := mustRange(t, at(18), at(22))

	withApproval := domain.NewReservation(newTestSpace(true), 12, 31, interval, 20, nil, nil)
	assert.Equal(t, domain.StatusPendingApproval, withApproval.Status)

	autoConfirmed := domain.NewReservation(newTestSpace(false), 12, 31, interval, 20, nil, nil)
	assert.Equal(t, domain.StatusConfirmed, autoConfirmed.Status)

	assert.Equal(t, int64(7), withApproval.SpaceID)
	assert.Equal(t, at(18), withApproval.StartDatetime)
	assert.Equal(t, at(22), withApproval.EndDatetime)
}

func TestReservationStatus_TransitionTable(t *testing.T) {
	all := []domain.ReservationStatus{
		domain.StatusPendingApproval, domain.StatusConfirmed, domain.StatusRejected,
		domain.StatusCancelled, domain.StatusInProgress, domain.StatusCompleted,
		domain.StatusNoShow,
	}

	allowed := map[domain.ReservationStatus][]domain.ReservationStatus{
		domain.StatusPendingApproval: {domain.StatusConfirmed, domain.StatusRejected, domain.StatusCancelled},
		domain.StatusConfirmed:       {domain.StatusCancelled, domain.StatusInProgress},
		domain.StatusInProgress:      {domain.StatusCompleted, domain.StatusNoShow},
	}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestReservationStatus_TerminalAndBlocking(t *testing.T) {
	for _, s := range domain.TerminalStatuses {
		assert.True(t, s.IsTerminal(), "%s", s)
		assert.False(t, s.IsBlocking(), "%s", s)
	}
	for _, s := range domain.BlockingStatuses {
		assert.False(t, s.IsTerminal(), "%s", s)
		assert.True(t, s.IsBlocking(), "%s", s)
	}
}

func TestReservation_Approve(t *testing.T) {
	r := newTestReservation(t, domain.StatusPendingApproval)
	now := time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)

	event, err := r.Approve(55, now)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusConfirmed, r.Status)
	require.NotNil(t, r.ApprovedBy)
	assert.Equal(t, int64(55), *r.ApprovedBy)
	require.NotNil(t, r.ApprovedAt)
	assert.Equal(t, now, *r.ApprovedAt)

	assert.Equal(t, domain.RoutingKeyReservationConfirmed, event.RoutingKey())
	assert.Equal(t, r.ID, event.ReservationID())
}

func TestReservation_Reject(t *testing.T) {
	r := newTestReservation(t, domain.StatusPendingApproval)
	now := time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)

	event, err := r.Reject(55, "space under renovation", now)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusRejected, r.Status)
	require.NotNil(t, r.RejectionReason)
	assert.Equal(t, "space under renovation", *r.RejectionReason)
	assert.Equal(t, domain.RoutingKeyReservationRejected, event.RoutingKey())
	assert.Equal(t, "space under renovation", event.Reason)
}

func TestReservation_Cancel(t *testing.T) {
	r := newTestReservation(t, domain.StatusConfirmed)
	now := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)

	event, err := r.Cancel(31, ptr.Ptr("plans changed"), true, now)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelled, r.Status)
	require.NotNil(t, r.CancelledBy)
	assert.Equal(t, int64(31), *r.CancelledBy)
	assert.True(t, event.IsLateCancellation)
	assert.Equal(t, domain.RoutingKeyReservationCanceled, event.RoutingKey())
	assert.Equal(t, r.StartDatetime, event.StartDatetime)
}

func TestReservation_FullLifecycle(t *testing.T) {
	r := newTestReservation(t, domain.StatusPendingApproval)
	now := time.Date(2026, 9, 14, 17, 0, 0, 0, time.UTC)

	_, err := r.Approve(55, now)
	require.NoError(t, err)

	checkedIn, err := r.CheckIn(55, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, domain.RoutingKeyReservationCheckedIn, checkedIn.RoutingKey())
	assert.Equal(t, domain.StatusInProgress, r.Status)

	completed, err := r.Complete(55, now.Add(5*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, domain.RoutingKeyReservationCompleted, completed.RoutingKey())
	assert.Equal(t, domain.StatusCompleted, r.Status)
}

func TestReservation_NoShowPath(t *testing.T) {
	r := newTestReservation(t, domain.StatusInProgress)
	now := time.Date(2026, 9, 14, 19, 0, 0, 0, time.UTC)

	event, err := r.MarkNoShow(55, now)
	require.NoError(t, err)
	assert.Equal(t, domain.RoutingKeyReservationNoShow, event.RoutingKey())
	assert.Equal(t, domain.StatusNoShow, r.Status)
}

func TestReservation_TerminalStatesRejectEveryTransition(t *testing.T) {
	now := time.Date(2026, 9, 14, 9, 0, 0, 0, time.UTC)

	for _, status := range domain.TerminalStatuses {
		r := newTestReservation(t, status)

		_, err := r.Approve(1, now)
		assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition, "Approve from %s", status)

		_, err = r.Cancel(1, nil, false, now)
		assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition, "Cancel from %s", status)

		_, err = r.CheckIn(1, now)
		assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition, "CheckIn from %s", status)

		assert.Equal(t, status, r.Status, "failed transition must not change state")
	}
}

func TestReservation_CancelCancelledFails(t *testing.T) {
	r := newTestReservation(t, domain.StatusConfirmed)
	now := time.Date(2026, 9, 14, 9, 0, 0, 0, time.UTC)

	_, err := r.Cancel(31, nil, false, now)
	require.NoError(t, err)

	_, err = r.Cancel(31, nil, false, now.Add(time.Minute))
	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)
}

func TestReservation_InvalidTransitionsFromLiveStates(t *testing.T) {
	now := time.Date(2026, 9, 14, 9, 0, 0, 0, time.UTC)

	// A pending reservation has not started yet.
	pending := newTestReservation(t, domain.StatusPendingApproval)
	_, err := pending.CheckIn(1, now)
	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)
	_, err = pending.Complete(1, now)
	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)

	// A confirmed reservation cannot be approved or rejected again.
	confirmed := newTestReservation(t, domain.StatusConfirmed)
	_, err = confirmed.Approve(1, now)
	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)
	_, err = confirmed.Reject(1, "reason", now)
	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)

	// An in-progress reservation cannot be cancelled.
	inProgress := newTestReservation(t, domain.StatusInProgress)
	_, err = inProgress.Cancel(1, nil, false, now)
	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)
}

func TestParseReservationStatus(t *testing.T) {
	status, err := domain.ParseReservationStatus("confirmed")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, status)

	_, err = domain.ParseReservationStatus("unknown")
	assert.Error(t, err)
}
