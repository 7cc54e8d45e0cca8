package get_combined_availability

import (
	"context"
	"errors"
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
	byStaff map[int64][]*domain.Booking
}

func (f *fakeBookingRepo) GetByStaffWithFilter(_ context.Context, filter domain.StaffBookingsFilter) ([]*domain.Booking, error) {
	if filter.StaffID == nil {
		return nil, nil
	}
	return f.byStaff[*filter.StaffID], nil
}

type fakeResolver struct {
	days map[int64]availability.ResolvedDay
	errs map[int64]error
}

func (f *fakeResolver) ResolveDay(_ context.Context, _, staffID int64, _ time.Time) (availability.ResolvedDay, error) {
	if err := f.errs[staffID]; err != nil {
		return availability.ResolvedDay{}, err
	}
	day, ok := f.days[staffID]
	if !ok {
		return availability.Closed(), nil
	}
	return day, nil
}

type fakeCatalog struct {
	staffIDs      []int64
	inactiveStaff map[int64]bool
}

func (f *fakeCatalog) GetBusiness(_ context.Context, businessID int64) (*catalogservice.Business, error) {
	return &catalogservice.Business{ID: businessID, Active: true}, nil
}

func (f *fakeCatalog) GetStaff(_ context.Context, _, staffID int64) (*catalogservice.Staff, error) {
	return &catalogservice.Staff{ID: staffID, Active: !f.inactiveStaff[staffID]}, nil
}

func (f *fakeCatalog) GetService(_ context.Context, _, serviceID int64) (*catalogservice.Service, error) {
	return &catalogservice.Service{
		ID:              serviceID,
		DurationMinutes: 60,
		Active:          true,
		StaffIDs:        f.staffIDs,
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

func morningDay(end string) availability.ResolvedDay {
	return availability.ResolvedDay{
		Open:  true,
		Start: types.TimeString("09:00"),
		End:   types.TimeString(end),
	}
}

func newTestUseCase(repo *fakeBookingRepo, resolver *fakeResolver, catalog *fakeCatalog, now time.Time) *UseCase {
	uc := NewUseCase(repo, resolver, catalog, nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func validRequest() *Request {
	return &Request{
		UserID:     10,
		BusinessID: 1,
		ServiceID:  2,
		Date:       time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
	}
}

func TestUseCase_Execute(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	t.Run("keeps staff availabilities separate, sorted by staff id", func(t *testing.T) {
		catalog := &fakeCatalog{staffIDs: []int64{7, 3}}
		resolver := &fakeResolver{days: map[int64]availability.ResolvedDay{
			3: morningDay("10:15"), // кандидаты 09:00 и 09:15
			7: morningDay("10:00"), // кандидат 09:00
		}}
		uc := newTestUseCase(&fakeBookingRepo{}, resolver, catalog, now)

		resp, err := uc.Execute(context.Background(), validRequest())

		require.NoError(t, err)
		require.Len(t, resp.Staff, 2)

		assert.Equal(t, int64(3), resp.Staff[0].StaffID)
		assert.Equal(t, []types.TimeString{"09:00", "09:15"}, resp.Staff[0].Slots)

		assert.Equal(t, int64(7), resp.Staff[1].StaffID)
		assert.Equal(t, []types.TimeString{"09:00"}, resp.Staff[1].Slots)
	})

	t.Run("staff bookings narrow only that staff member", func(t *testing.T) {
		catalog := &fakeCatalog{staffIDs: []int64{3, 7}}
		resolver := &fakeResolver{days: map[int64]availability.ResolvedDay{
			3: morningDay("10:00"),
			7: morningDay("10:00"),
		}}
		repo := &fakeBookingRepo{byStaff: map[int64][]*domain.Booking{
			3: {{
				StartTime:       types.TimeString("09:00"),
				DurationMinutes: 60,
				Status:          domain.StatusConfirmed,
			}},
		}}
		uc := newTestUseCase(repo, resolver, catalog, now)

		resp, err := uc.Execute(context.Background(), validRequest())

		require.NoError(t, err)
		require.Len(t, resp.Staff, 1)
		assert.Equal(t, int64(7), resp.Staff[0].StaffID)
	})

	t.Run("staff without a single slot is omitted", func(t *testing.T) {
		catalog := &fakeCatalog{staffIDs: []int64{3, 7}}
		resolver := &fakeResolver{days: map[int64]availability.ResolvedDay{
			7: morningDay("10:00"),
			// сотрудник 3 в этот день не работает
		}}
		uc := newTestUseCase(&fakeBookingRepo{}, resolver, catalog, now)

		resp, err := uc.Execute(context.Background(), validRequest())

		require.NoError(t, err)
		require.Len(t, resp.Staff, 1)
		assert.Equal(t, int64(7), resp.Staff[0].StaffID)
	})

	t.Run("failing staff member is skipped, not fatal", func(t *testing.T) {
		catalog := &fakeCatalog{staffIDs: []int64{3, 7}}
		resolver := &fakeResolver{
			days: map[int64]availability.ResolvedDay{7: morningDay("10:00")},
			errs: map[int64]error{3: errors.New("schedule lookup failed")},
		}
		uc := newTestUseCase(&fakeBookingRepo{}, resolver, catalog, now)

		resp, err := uc.Execute(context.Background(), validRequest())

		require.NoError(t, err)
		require.Len(t, resp.Staff, 1)
		assert.Equal(t, int64(7), resp.Staff[0].StaffID)
	})

	t.Run("inactive staff member contributes nothing", func(t *testing.T) {
		catalog := &fakeCatalog{staffIDs: []int64{3, 7}, inactiveStaff: map[int64]bool{3: true}}
		resolver := &fakeResolver{days: map[int64]availability.ResolvedDay{
			3: morningDay("10:00"),
			7: morningDay("10:00"),
		}}
		uc := newTestUseCase(&fakeBookingRepo{}, resolver, catalog, now)

		resp, err := uc.Execute(context.Background(), validRequest())

		require.NoError(t, err)
		require.Len(t, resp.Staff, 1)
		assert.Equal(t, int64(7), resp.Staff[0].StaffID)
	})
}
