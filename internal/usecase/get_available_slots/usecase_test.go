package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonmarket/booking-service/internal/availability"
	"github.com/salonmarket/booking-service/internal/domain"
	"github.com/salonmarket/booking-service/internal/integrations/catalogservice"
	"github.com/salonmarket/booking-service/pkg/types"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetByStaffWithFilter(_ context.Context, _ domain.StaffBookingsFilter) ([]*domain.Booking, error) {
	return f.bookings, nil
}

type fakeResolver struct {
	day availability.ResolvedDay
}

func (f *fakeResolver) ResolveDay(_ context.Context, _, _ int64, _ time.Time) (availability.ResolvedDay, error) {
	return f.day, nil
}

type fakeCatalog struct {
	staffErr      error
	staffInactive bool
	eligibleStaff []int64
	duration      int
}

func (f *fakeCatalog) GetBusiness(_ context.Context, businessID int64) (*catalogservice.Business, error) {
	return &catalogservice.Business{ID: businessID, Active: true}, nil
}

func (f *fakeCatalog) GetStaff(_ context.Context, _, staffID int64) (*catalogservice.Staff, error) {
	if f.staffErr != nil {
		return nil, f.staffErr
	}
	return &catalogservice.Staff{ID: staffID, Active: !f.staffInactive}, nil
}

func (f *fakeCatalog) GetService(_ context.Context, _, serviceID int64) (*catalogservice.Service, error) {
	duration := f.duration
	if duration == 0 {
		duration = 60
	}
	return &catalogservice.Service{
		ID:              serviceID,
		DurationMinutes: duration,
		Active:          true,
		StaffIDs:        f.eligibleStaff,
	}, nil
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(repo *fakeBookingRepo, resolver *fakeResolver, catalog *fakeCatalog, now time.Time) *UseCase {
	uc := NewUseCase(repo, resolver, catalog, nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func validRequest() *Request {
	return &Request{
		UserID:     10,
		BusinessID: 1,
		StaffID:    7,
		ServiceID:  2,
		Date:       time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
	}
}

func TestUseCase_Execute(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	catalog := &fakeCatalog{eligibleStaff: []int64{7}}

	t.Run("returns free starts excluding breaks and bookings", func(t *testing.T) {
		repo := &fakeBookingRepo{bookings: []*domain.Booking{{
			StartTime:       types.TimeString("09:30"),
			DurationMinutes: 30,
			Status:          domain.StatusConfirmed,
		}}}
		resolver := &fakeResolver{day: availability.ResolvedDay{
			Open:   true,
			Start:  types.TimeString("09:00"),
			End:    types.TimeString("13:00"),
			Breaks: []domain.BreakInterval{{Start: types.TimeString("11:00"), End: types.TimeString("12:00")}},
		}}
		uc := newTestUseCase(repo, resolver, catalog, now)

		resp, err := uc.Execute(context.Background(), validRequest())

		require.NoError(t, err)
		assert.Equal(t, 60, resp.DurationMinutes)
		require.Len(t, resp.Slots, 2)
		assert.Equal(t, types.TimeString("10:00"), resp.Slots[0].StartTime)
		assert.Equal(t, types.TimeString("12:00"), resp.Slots[1].StartTime)
	})

	t.Run("closed day gives empty slot list", func(t *testing.T) {
		resolver := &fakeResolver{day: availability.Closed()}
		uc := newTestUseCase(&fakeBookingRepo{}, resolver, catalog, now)

		resp, err := uc.Execute(context.Background(), validRequest())

		require.NoError(t, err)
		assert.Empty(t, resp.Slots)
	})

	t.Run("ineligible staff is rejected", func(t *testing.T) {
		resolver := &fakeResolver{day: availability.Closed()}
		otherStaff := &fakeCatalog{eligibleStaff: []int64{8}}
		uc := newTestUseCase(&fakeBookingRepo{}, resolver, otherStaff, now)

		_, err := uc.Execute(context.Background(), validRequest())

		assert.ErrorIs(t, err, ErrStaffNotEligible)
	})

	t.Run("inactive staff is treated as not found", func(t *testing.T) {
		resolver := &fakeResolver{day: availability.Closed()}
		inactive := &fakeCatalog{eligibleStaff: []int64{7}, staffInactive: true}
		uc := newTestUseCase(&fakeBookingRepo{}, resolver, inactive, now)

		_, err := uc.Execute(context.Background(), validRequest())

		assert.ErrorIs(t, err, ErrStaffNotFound)
	})

	t.Run("past date is rejected", func(t *testing.T) {
		resolver := &fakeResolver{day: availability.Closed()}
		uc := newTestUseCase(&fakeBookingRepo{}, resolver, catalog, now)
		req := validRequest()
		req.Date = time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

		_, err := uc.Execute(context.Background(), req)

		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("service duration out of range is rejected", func(t *testing.T) {
		brokenCatalog := &fakeCatalog{eligibleStaff: []int64{7}, duration: 10}
		resolver := &fakeResolver{day: availability.Closed()}
		uc := newTestUseCase(&fakeBookingRepo{}, resolver, brokenCatalog, now)

		_, err := uc.Execute(context.Background(), validRequest())

		assert.ErrorIs(t, err, ErrInternal)
	})
}
