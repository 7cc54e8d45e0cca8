package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonmarket/booking-service/internal/availability"
	"github.com/salonmarket/booking-service/internal/domain"
	"github.com/salonmarket/booking-service/internal/integrations/catalogservice"
	"github.com/salonmarket/booking-service/pkg/ptr"
	"github.com/salonmarket/booking-service/pkg/simpletxmanager"
	"github.com/salonmarket/booking-service/pkg/txmanager"
	"github.com/salonmarket/booking-service/pkg/types"
)

// Фейки зависимостей

type fakeBookingRepo struct {
	existing []*domain.Booking
	created  *domain.Booking
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	booking.ID = 42
	f.created = booking
	return booking, nil
}

func (f *fakeBookingRepo) GetByStaffWithFilter(_ context.Context, _ domain.StaffBookingsFilter) ([]*domain.Booking, error) {
	return f.existing, nil
}

type fakeResolver struct {
	day availability.ResolvedDay
}

func (f *fakeResolver) ResolveDay(_ context.Context, _, _ int64, _ time.Time) (availability.ResolvedDay, error) {
	return f.day, nil
}

type fakeCatalog struct {
	staffInactive bool
	eligibleStaff []int64
	duration      int
}

func (f *fakeCatalog) GetBusiness(_ context.Context, businessID int64) (*catalogservice.Business, error) {
	return &catalogservice.Business{ID: businessID, Active: true}, nil
}

func (f *fakeCatalog) GetStaff(_ context.Context, _, staffID int64) (*catalogservice.Staff, error) {
	return &catalogservice.Staff{ID: staffID, Active: !f.staffInactive}, nil
}

func (f *fakeCatalog) GetService(_ context.Context, _, serviceID int64) (*catalogservice.Service, error) {
	duration := f.duration
	if duration == 0 {
		duration = 60
	}
	return &catalogservice.Service{
		ID:              serviceID,
		Name:            "Стрижка",
		DurationMinutes: duration,
		Price:           ptr.Ptr(1500.0),
		Active:          true,
		StaffIDs:        f.eligibleStaff,
	}, nil
}

type fakeTxManager struct {
	busyErr error
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.busyErr != nil {
		return f.busyErr
	}
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func openDay(start, end string, breaks ...domain.BreakInterval) availability.ResolvedDay {
	return availability.ResolvedDay{
		Open:   true,
		Start:  types.TimeString(start),
		End:    types.TimeString(end),
		Breaks: breaks,
	}
}

func newTestUseCase(repo *fakeBookingRepo, resolver *fakeResolver, catalog *fakeCatalog, txMgr *fakeTxManager, now time.Time) *UseCase {
	uc := NewUseCase(repo, resolver, catalog, txMgr, nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func validRequest() *Request {
	return &Request{
		CustomerID: 10,
		BusinessID: 1,
		StaffID:    7,
		ServiceID:  2,
		Date:       time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		StartTime:  types.TimeString("10:00"),
	}
}

func TestUseCase_Execute(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	catalog := &fakeCatalog{eligibleStaff: []int64{7}}

	t.Run("creates confirmed booking with denormalized service data", func(t *testing.T) {
		repo := &fakeBookingRepo{}
		resolver := &fakeResolver{day: openDay("09:00", "18:00")}
		uc := newTestUseCase(repo, resolver, catalog, &fakeTxManager{}, now)

		resp, err := uc.Execute(context.Background(), validRequest())

		require.NoError(t, err)
		assert.Equal(t, int64(42), resp.ID)
		assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
		assert.Equal(t, 60, resp.DurationMinutes)
		assert.Equal(t, "Стрижка", resp.ServiceName)
		require.NotNil(t, resp.ServicePrice)
		assert.InDelta(t, 1500.0, *resp.ServicePrice, 0.001)
		require.NotNil(t, repo.created)
		assert.Equal(t, domain.StatusConfirmed, repo.created.Status)
	})

	t.Run("occupied slot is rejected", func(t *testing.T) {
		repo := &fakeBookingRepo{existing: []*domain.Booking{{
			StartTime:       types.TimeString("10:30"),
			DurationMinutes: 60,
			Status:          domain.StatusConfirmed,
		}}}
		resolver := &fakeResolver{day: openDay("09:00", "18:00")}
		uc := newTestUseCase(repo, resolver, catalog, &fakeTxManager{}, now)

		_, err := uc.Execute(context.Background(), validRequest())

		assert.ErrorIs(t, err, ErrSlotNotAvailable)
	})

	t.Run("touching booking does not conflict", func(t *testing.T) {
		repo := &fakeBookingRepo{existing: []*domain.Booking{{
			StartTime:       types.TimeString("11:00"),
			DurationMinutes: 60,
			Status:          domain.StatusConfirmed,
		}}}
		resolver := &fakeResolver{day: openDay("09:00", "18:00")}
		uc := newTestUseCase(repo, resolver, catalog, &fakeTxManager{}, now)

		_, err := uc.Execute(context.Background(), validRequest())

		assert.NoError(t, err)
	})

	t.Run("closed day means staff not working", func(t *testing.T) {
		resolver := &fakeResolver{day: availability.Closed()}
		uc := newTestUseCase(&fakeBookingRepo{}, resolver, catalog, &fakeTxManager{}, now)

		_, err := uc.Execute(context.Background(), validRequest())

		assert.ErrorIs(t, err, ErrStaffNotWorking)
	})

	t.Run("misaligned start time is rejected", func(t *testing.T) {
		resolver := &fakeResolver{day: openDay("09:00", "18:00")}
		uc := newTestUseCase(&fakeBookingRepo{}, resolver, catalog, &fakeTxManager{}, now)
		req := validRequest()
		req.StartTime = types.TimeString("10:10")

		_, err := uc.Execute(context.Background(), req)

		assert.ErrorIs(t, err, ErrInvalidTimeSlot)
	})

	t.Run("slot sticking out of the window is rejected", func(t *testing.T) {
		resolver := &fakeResolver{day: openDay("09:00", "10:30")}
		uc := newTestUseCase(&fakeBookingRepo{}, resolver, catalog, &fakeTxManager{}, now)

		_, err := uc.Execute(context.Background(), validRequest())

		assert.ErrorIs(t, err, ErrInvalidTimeSlot)
	})

	t.Run("staff not eligible for the service", func(t *testing.T) {
		resolver := &fakeResolver{day: openDay("09:00", "18:00")}
		otherStaff := &fakeCatalog{eligibleStaff: []int64{8}}
		uc := newTestUseCase(&fakeBookingRepo{}, resolver, otherStaff, &fakeTxManager{}, now)

		_, err := uc.Execute(context.Background(), validRequest())

		assert.ErrorIs(t, err, ErrStaffNotEligible)
	})

	t.Run("past date is rejected", func(t *testing.T) {
		resolver := &fakeResolver{day: openDay("09:00", "18:00")}
		uc := newTestUseCase(&fakeBookingRepo{}, resolver, catalog, &fakeTxManager{}, now)
		req := validRequest()
		req.Date = time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

		_, err := uc.Execute(context.Background(), req)

		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("today requires start strictly after now", func(t *testing.T) {
		resolver := &fakeResolver{day: openDay("09:00", "18:00")}
		todayNoon := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)
		uc := newTestUseCase(&fakeBookingRepo{}, resolver, catalog, &fakeTxManager{}, todayNoon)

		_, err := uc.Execute(context.Background(), validRequest())

		assert.ErrorIs(t, err, ErrTooLateToBook)
	})

	t.Run("serialization retries exhausted map to busy", func(t *testing.T) {
		resolver := &fakeResolver{day: openDay("09:00", "18:00")}
		uc := newTestUseCase(&fakeBookingRepo{}, resolver, catalog, &fakeTxManager{busyErr: txmanager.ErrBusy}, now)

		_, err := uc.Execute(context.Background(), validRequest())

		assert.ErrorIs(t, err, ErrBusy)
	})

	// Без метрик main подключает simpletxmanager, его sentinel должен
	// приводить к тому же результату
	t.Run("simple manager retries exhausted map to busy", func(t *testing.T) {
		resolver := &fakeResolver{day: openDay("09:00", "18:00")}
		uc := newTestUseCase(&fakeBookingRepo{}, resolver, catalog, &fakeTxManager{busyErr: simpletxmanager.ErrBusy}, now)

		_, err := uc.Execute(context.Background(), validRequest())

		assert.ErrorIs(t, err, ErrBusy)
	})

	// Битая длительность услуги из каталога не должна доходить до расчета слота
	t.Run("service duration out of range is rejected", func(t *testing.T) {
		brokenCatalog := &fakeCatalog{eligibleStaff: []int64{7}, duration: 481}
		resolver := &fakeResolver{day: openDay("09:00", "18:00")}
		uc := newTestUseCase(&fakeBookingRepo{}, resolver, brokenCatalog, &fakeTxManager{}, now)

		_, err := uc.Execute(context.Background(), validRequest())

		assert.ErrorIs(t, err, ErrInternal)
	})
}
