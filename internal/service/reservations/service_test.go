package reservations

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manueles91/stella-booking-service/internal/domain"
	storage "github.com/manueles91/stella-booking-service/internal/infra/storage/commitments"
	"github.com/manueles91/stella-booking-service/pkg/ptr"
	"github.com/manueles91/stella-booking-service/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeRepo struct {
	reservations map[int64]*domain.Reservation
	cancelled    map[int64]string
	listErr      error
}

func newFakeRepo(reservations ...*domain.Reservation) *fakeRepo {
	r := &fakeRepo{
		reservations: make(map[int64]*domain.Reservation),
		cancelled:    make(map[int64]string),
	}
	for _, res := range reservations {
		r.reservations[res.ID] = res
	}
	return r
}

func (r *fakeRepo) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	res, ok := r.reservations[id]
	if !ok {
		return nil, storage.ErrReservationNotFound
	}
	return res, nil
}

func (r *fakeRepo) ListWithFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []*domain.Reservation
	for _, res := range r.reservations {
		if filter.ClientID != nil && res.ClientID != *filter.ClientID {
			continue
		}
		if !filter.IncludeCancelled && res.IsCancelled() {
			continue
		}
		out = append(out, res)
	}
	return out, nil
}

func (r *fakeRepo) Cancel(ctx context.Context, id int64, reason string) error {
	if _, ok := r.reservations[id]; !ok {
		return storage.ErrReservationNotFound
	}
	r.cancelled[id] = reason
	return nil
}

func (r *fakeRepo) ListBlockedByEmployeesAndDate(ctx context.Context, employeeIDs []int64, date time.Time) ([]*domain.BlockedInterval, error) {
	return nil, nil
}

func confirmedReservation(id, clientID int64) *domain.Reservation {
	return &domain.Reservation{
		ID:              id,
		ClientID:        clientID,
		EmployeeID:      1,
		ItemType:        domain.ItemService,
		ItemID:          1,
		Date:            time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("10:00"),
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
		ItemName:        "Corte de pelo",
		PriceCents:      4000,
	}
}

func TestGetReservation_OwnerCheck(t *testing.T) {
	svc := NewService(newFakeRepo(confirmedReservation(1, 7)), nopLogger{})

	res, err := svc.GetReservation(context.Background(), 1, ptr.Ptr(int64(7)))
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.ID)

	_, err = svc.GetReservation(context.Background(), 1, ptr.Ptr(int64(8)))
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Бэк-офис без владельца видит любую бронь
	_, err = svc.GetReservation(context.Background(), 1, nil)
	assert.NoError(t, err)
}

func TestGetReservation_NotFound(t *testing.T) {
	svc := NewService(newFakeRepo(), nopLogger{})

	_, err := svc.GetReservation(context.Background(), 99, nil)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestCancelReservation(t *testing.T) {
	repo := newFakeRepo(confirmedReservation(1, 7))
	svc := NewService(repo, nopLogger{})

	err := svc.CancelReservation(context.Background(), 1, ptr.Ptr(int64(7)), "cambio de planes")
	require.NoError(t, err)
	assert.Equal(t, "cambio de planes", repo.cancelled[1])
}

func TestCancelReservation_WrongOwner(t *testing.T) {
	svc := NewService(newFakeRepo(confirmedReservation(1, 7)), nopLogger{})

	err := svc.CancelReservation(context.Background(), 1, ptr.Ptr(int64(8)), "")
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancelReservation_AlreadyCancelled(t *testing.T) {
	res := confirmedReservation(1, 7)
	res.Status = domain.StatusCancelled
	svc := NewService(newFakeRepo(res), nopLogger{})

	err := svc.CancelReservation(context.Background(), 1, ptr.Ptr(int64(7)), "")
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancelReservation_CompletedCannotBeCancelled(t *testing.T) {
	res := confirmedReservation(1, 7)
	res.Status = domain.StatusCompleted
	svc := NewService(newFakeRepo(res), nopLogger{})

	err := svc.CancelReservation(context.Background(), 1, ptr.Ptr(int64(7)), "")
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancelReservation_ReasonTooLong(t *testing.T) {
	svc := NewService(newFakeRepo(confirmedReservation(1, 7)), nopLogger{})

	reason := strings.Repeat("x", domain.MaxCancelReasonLength+1)
	err := svc.CancelReservation(context.Background(), 1, ptr.Ptr(int64(7)), reason)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListReservations_ClientFilter(t *testing.T) {
	cancelled := confirmedReservation(3, 7)
	cancelled.Status = domain.StatusCancelled

	repo := newFakeRepo(
		confirmedReservation(1, 7),
		confirmedReservation(2, 8),
		cancelled,
	)
	svc := NewService(repo, nopLogger{})

	out, err := svc.ListReservations(context.Background(), domain.ReservationsFilter{ClientID: ptr.Ptr(int64(7))})
	require.NoError(t, err)
	assert.Len(t, out, 1)

	out, err = svc.ListReservations(context.Background(), domain.ReservationsFilter{
		ClientID:         ptr.Ptr(int64(7)),
		IncludeCancelled: true,
	})
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestListReservations_RepoFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.listErr = errors.New("connection refused")
	svc := NewService(repo, nopLogger{})

	_, err := svc.ListReservations(context.Background(), domain.ReservationsFilter{})
	assert.ErrorIs(t, err, ErrInternal)
}
