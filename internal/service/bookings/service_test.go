package bookings

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonmarket/booking-service/internal/domain"
	bookingRepo "github.com/salonmarket/booking-service/internal/infra/storage/booking"
	"github.com/salonmarket/booking-service/internal/integrations/catalogservice"
	"github.com/salonmarket/booking-service/internal/service/bookings/models"
)

// Фейки зависимостей

type fakeBookingRepo struct {
	booking       *domain.Booking
	cancelledID   int64
	cancelReason  string
	updatedStatus domain.BookingStatus
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.booking == nil {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) GetByCustomerID(_ context.Context, _ int64, _ *domain.BookingStatus) ([]*domain.Booking, error) {
	return nil, nil
}

func (f *fakeBookingRepo) GetByStaffWithFilter(_ context.Context, _ domain.StaffBookingsFilter) ([]*domain.Booking, error) {
	return nil, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, _ int64, status domain.BookingStatus) error {
	f.updatedStatus = status
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, reason string) error {
	f.cancelledID = id
	f.cancelReason = reason
	return nil
}

type fakeCatalog struct {
	managerIDs []int64
}

func (f *fakeCatalog) GetBusiness(_ context.Context, businessID int64) (*catalogservice.Business, error) {
	return &catalogservice.Business{ID: businessID, Active: true, ManagerIDs: f.managerIDs}, nil
}

type fakeMatcher struct {
	matched chan *domain.Booking
}

func (f *fakeMatcher) MatchCancellation(_ context.Context, booking *domain.Booking) {
	f.matched <- booking
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func confirmedBooking() *domain.Booking {
	return &domain.Booking{
		ID:          5,
		CustomerID:  10,
		BusinessID:  1,
		StaffID:     7,
		ServiceID:   2,
		BookingDate: time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		StartTime:   "10:00",
		Status:      domain.StatusConfirmed,
	}
}

func TestService_GetByID(t *testing.T) {
	t.Run("owner can read the booking", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: confirmedBooking()}
		svc := NewService(repo, &fakeCatalog{}, nil, nopLogger{})

		resp, err := svc.GetByID(context.Background(), 5, 10)

		require.NoError(t, err)
		assert.Equal(t, int64(5), resp.ID)
	})

	t.Run("manager of the business can read the booking", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: confirmedBooking()}
		svc := NewService(repo, &fakeCatalog{managerIDs: []int64{77}}, nil, nopLogger{})

		_, err := svc.GetByID(context.Background(), 5, 77)

		assert.NoError(t, err)
	})

	t.Run("stranger is denied", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: confirmedBooking()}
		svc := NewService(repo, &fakeCatalog{managerIDs: []int64{77}}, nil, nopLogger{})

		_, err := svc.GetByID(context.Background(), 5, 99)

		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestService_Cancel(t *testing.T) {
	t.Run("reason over the limit is rejected", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: confirmedBooking()}
		svc := NewService(repo, &fakeCatalog{}, nil, nopLogger{})

		err := svc.Cancel(context.Background(), 5, &models.CancelBookingRequest{
			UserID:             10,
			CancellationReason: strings.Repeat("a", domain.MaxCancellationReasonLength+1),
		})

		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Zero(t, repo.cancelledID)
	})

	t.Run("owner cancels and waitlist matching is triggered", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: confirmedBooking()}
		matcher := &fakeMatcher{matched: make(chan *domain.Booking, 1)}
		svc := NewService(repo, &fakeCatalog{}, matcher, nopLogger{})

		err := svc.Cancel(context.Background(), 5, &models.CancelBookingRequest{
			UserID:             10,
			CancellationReason: "планы изменились",
		})

		require.NoError(t, err)
		assert.Equal(t, int64(5), repo.cancelledID)
		assert.Equal(t, "планы изменились", repo.cancelReason)

		select {
		case b := <-matcher.matched:
			assert.Equal(t, int64(5), b.ID)
		case <-time.After(time.Second):
			t.Fatal("waitlist matching was not triggered")
		}
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: confirmedBooking()}
		svc := NewService(repo, &fakeCatalog{managerIDs: []int64{77}}, nil, nopLogger{})

		err := svc.Cancel(context.Background(), 5, &models.CancelBookingRequest{UserID: 99})

		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Zero(t, repo.cancelledID)
	})

	t.Run("completed booking cannot be cancelled", func(t *testing.T) {
		completed := confirmedBooking()
		completed.Status = domain.StatusCompleted
		repo := &fakeBookingRepo{booking: completed}
		svc := NewService(repo, &fakeCatalog{}, nil, nopLogger{})

		err := svc.Cancel(context.Background(), 5, &models.CancelBookingRequest{UserID: 10})

		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("missing booking", func(t *testing.T) {
		svc := NewService(&fakeBookingRepo{}, &fakeCatalog{}, nil, nopLogger{})

		err := svc.Cancel(context.Background(), 5, &models.CancelBookingRequest{UserID: 10})

		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestService_UpdateStatus(t *testing.T) {
	t.Run("manager updates the status", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: confirmedBooking()}
		svc := NewService(repo, &fakeCatalog{managerIDs: []int64{77}}, nil, nopLogger{})

		err := svc.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{
			UserID: 77,
			Status: "completed",
		})

		require.NoError(t, err)
		assert.Equal(t, domain.StatusCompleted, repo.updatedStatus)
	})

	t.Run("customer cannot update the status", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: confirmedBooking()}
		svc := NewService(repo, &fakeCatalog{managerIDs: []int64{77}}, nil, nopLogger{})

		err := svc.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{
			UserID: 10,
			Status: "completed",
		})

		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: confirmedBooking()}
		svc := NewService(repo, &fakeCatalog{managerIDs: []int64{77}}, nil, nopLogger{})

		err := svc.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{
			UserID: 77,
			Status: "finished",
		})

		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	// Освободившийся после отмены интервал мог быть занят новым
	// бронированием, поэтому отмененное не возвращается в confirmed
	t.Run("cancelled booking cannot be confirmed again", func(t *testing.T) {
		cancelled := confirmedBooking()
		cancelled.Status = domain.StatusCancelled
		repo := &fakeBookingRepo{booking: cancelled}
		svc := NewService(repo, &fakeCatalog{managerIDs: []int64{77}}, nil, nopLogger{})

		err := svc.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{
			UserID: 77,
			Status: "confirmed",
		})

		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Empty(t, repo.updatedStatus)
	})

	t.Run("no-show booking cannot return to pending", func(t *testing.T) {
		noShow := confirmedBooking()
		noShow.Status = domain.StatusNoShow
		repo := &fakeBookingRepo{booking: noShow}
		svc := NewService(repo, &fakeCatalog{managerIDs: []int64{77}}, nil, nopLogger{})

		err := svc.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{
			UserID: 77,
			Status: "pending",
		})

		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("confirmed booking can be marked no-show", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: confirmedBooking()}
		svc := NewService(repo, &fakeCatalog{managerIDs: []int64{77}}, nil, nopLogger{})

		err := svc.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{
			UserID: 77,
			Status: "no_show",
		})

		require.NoError(t, err)
		assert.Equal(t, domain.StatusNoShow, repo.updatedStatus)
	})
}
