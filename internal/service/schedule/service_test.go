package schedule

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonmarket/booking-service/internal/domain"
	scheduleRepo "github.com/salonmarket/booking-service/internal/infra/storage/schedule"
	timeoffRepo "github.com/salonmarket/booking-service/internal/infra/storage/timeoff"
	catalogClient "github.com/salonmarket/booking-service/internal/integrations/catalogservice"
	"github.com/salonmarket/booking-service/internal/service/schedule/models"
	"github.com/salonmarket/booking-service/pkg/ptr"
	"github.com/salonmarket/booking-service/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeScheduleRepo struct {
	week       *domain.WeeklySchedule
	getErr     error
	replaceErr error

	replacedStaffID    int64
	replacedBusinessID int64
	replaced           *domain.WeeklySchedule
}

func (f *fakeScheduleRepo) GetWeek(_ context.Context, staffID int64) (*domain.WeeklySchedule, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.week, nil
}

func (f *fakeScheduleRepo) ReplaceWeek(_ context.Context, staffID, businessID int64, week *domain.WeeklySchedule) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.replacedStaffID = staffID
	f.replacedBusinessID = businessID
	f.replaced = week
	return nil
}

type fakeTimeOffRepo struct {
	entries   []*domain.TimeOffEntry
	listErr   error
	createErr error
	deleteErr error

	created   *domain.TimeOffEntry
	deletedID int64
}

func (f *fakeTimeOffRepo) Create(_ context.Context, entry *domain.TimeOffEntry) (*domain.TimeOffEntry, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *entry
	created.ID = 77
	created.CreatedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f.created = &created
	return &created, nil
}

func (f *fakeTimeOffRepo) ListOverlapping(_ context.Context, businessID, staffID int64, from, to time.Time) ([]*domain.TimeOffEntry, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.entries, nil
}

func (f *fakeTimeOffRepo) Delete(_ context.Context, businessID, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedID = id
	return nil
}

type fakeTxManager struct {
	calls int
	err   error
}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
}

type fakeCatalog struct {
	managerIDs  []int64
	businessErr error
	staffErr    error
}

func (f *fakeCatalog) GetBusiness(_ context.Context, businessID int64) (*catalogClient.Business, error) {
	if f.businessErr != nil {
		return nil, f.businessErr
	}
	return &catalogClient.Business{ID: businessID, Active: true, ManagerIDs: f.managerIDs}, nil
}

func (f *fakeCatalog) GetStaff(_ context.Context, businessID, staffID int64) (*catalogClient.Staff, error) {
	if f.staffErr != nil {
		return nil, f.staffErr
	}
	return &catalogClient.Staff{ID: staffID, BusinessID: businessID, Active: true}, nil
}

func ts(t *testing.T, s string) types.TimeString {
	t.Helper()
	v, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return v
}

func workingWeek(t *testing.T) *domain.WeeklySchedule {
	t.Helper()
	day := domain.DaySchedule{IsWorking: true, Start: ts(t, "09:00"), End: ts(t, "18:00")}
	return &domain.WeeklySchedule{Monday: day, Tuesday: day, Wednesday: day, Thursday: day, Friday: day}
}

func validWeekRequest() *models.UpdateWeekRequest {
	day := models.DayDTO{IsWorking: true, Start: "09:00", End: "18:00"}
	return &models.UpdateWeekRequest{
		UserID:     10,
		BusinessID: 1,
		Monday:     day,
		Tuesday:    day,
		Wednesday:  day,
		Thursday:   day,
		Friday:     day,
	}
}

func TestService_GetWeek(t *testing.T) {
	ctx := context.Background()

	t.Run("возвращает сохраненное расписание", func(t *testing.T) {
		repo := &fakeScheduleRepo{week: workingWeek(t)}
		svc := NewService(repo, &fakeTimeOffRepo{}, &fakeCatalog{}, &fakeTxManager{}, nopLogger{})

		resp, err := svc.GetWeek(ctx, 1, 5)
		require.NoError(t, err)
		assert.Equal(t, int64(5), resp.StaffID)
		assert.True(t, resp.Monday.IsWorking)
		assert.Equal(t, "09:00", resp.Monday.Start)
		assert.False(t, resp.Saturday.IsWorking)
	})

	t.Run("сотрудник без расписания", func(t *testing.T) {
		repo := &fakeScheduleRepo{getErr: scheduleRepo.ErrScheduleNotFound}
		svc := NewService(repo, &fakeTimeOffRepo{}, &fakeCatalog{}, &fakeTxManager{}, nopLogger{})

		_, err := svc.GetWeek(ctx, 1, 5)
		assert.ErrorIs(t, err, ErrScheduleNotFound)
	})

	t.Run("сотрудник не принадлежит бизнесу", func(t *testing.T) {
		catalog := &fakeCatalog{staffErr: catalogClient.ErrStaffNotFound}
		svc := NewService(&fakeScheduleRepo{}, &fakeTimeOffRepo{}, catalog, &fakeTxManager{}, nopLogger{})

		_, err := svc.GetWeek(ctx, 1, 5)
		assert.ErrorIs(t, err, ErrStaffNotFound)
	})
}

func TestService_ReplaceWeek(t *testing.T) {
	ctx := context.Background()

	t.Run("менеджер заменяет расписание", func(t *testing.T) {
		repo := &fakeScheduleRepo{}
		catalog := &fakeCatalog{managerIDs: []int64{10}}
		svc := NewService(repo, &fakeTimeOffRepo{}, catalog, &fakeTxManager{}, nopLogger{})

		resp, err := svc.ReplaceWeek(ctx, 5, validWeekRequest())
		require.NoError(t, err)
		assert.Equal(t, int64(5), repo.replacedStaffID)
		assert.Equal(t, int64(1), repo.replacedBusinessID)
		require.NotNil(t, repo.replaced)
		assert.True(t, repo.replaced.Friday.IsWorking)
		assert.Equal(t, "18:00", resp.Friday.End)
	})

	t.Run("не менеджер получает отказ", func(t *testing.T) {
		catalog := &fakeCatalog{managerIDs: []int64{99}}
		svc := NewService(&fakeScheduleRepo{}, &fakeTimeOffRepo{}, catalog, &fakeTxManager{}, nopLogger{})

		_, err := svc.ReplaceWeek(ctx, 5, validWeekRequest())
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("замена выполняется внутри транзакции", func(t *testing.T) {
		repo := &fakeScheduleRepo{}
		txMgr := &fakeTxManager{}
		catalog := &fakeCatalog{managerIDs: []int64{10}}
		svc := NewService(repo, &fakeTimeOffRepo{}, catalog, txMgr, nopLogger{})

		_, err := svc.ReplaceWeek(ctx, 5, validWeekRequest())
		require.NoError(t, err)
		assert.Equal(t, 1, txMgr.calls)
	})

	t.Run("сбой транзакции не отдает частичный результат", func(t *testing.T) {
		txMgr := &fakeTxManager{err: errors.New("deadlock detected")}
		catalog := &fakeCatalog{managerIDs: []int64{10}}
		svc := NewService(&fakeScheduleRepo{}, &fakeTimeOffRepo{}, catalog, txMgr, nopLogger{})

		_, err := svc.ReplaceWeek(ctx, 5, validWeekRequest())
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("невалидное расписание отклоняется до проверки прав", func(t *testing.T) {
		req := validWeekRequest()
		req.Monday.End = "08:00" // раньше начала
		catalog := &fakeCatalog{businessErr: errors.New("catalog must not be called")}
		svc := NewService(&fakeScheduleRepo{}, &fakeTimeOffRepo{}, catalog, &fakeTxManager{}, nopLogger{})

		_, err := svc.ReplaceWeek(ctx, 5, req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("бизнес не найден", func(t *testing.T) {
		catalog := &fakeCatalog{businessErr: catalogClient.ErrBusinessNotFound}
		svc := NewService(&fakeScheduleRepo{}, &fakeTimeOffRepo{}, catalog, &fakeTxManager{}, nopLogger{})

		_, err := svc.ReplaceWeek(ctx, 5, validWeekRequest())
		assert.ErrorIs(t, err, ErrBusinessNotFound)
	})
}

func TestService_CreateTimeOff(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	validRequest := func() *models.CreateTimeOffRequest {
		return &models.CreateTimeOffRequest{
			UserID:     10,
			BusinessID: 1,
			StaffID:    ptr.Ptr(int64(5)),
			StartsAt:   start,
			EndsAt:     start.AddDate(0, 0, 7),
			Reason:     "vacation",
		}
	}

	t.Run("менеджер создает time-off для сотрудника", func(t *testing.T) {
		repo := &fakeTimeOffRepo{}
		catalog := &fakeCatalog{managerIDs: []int64{10}}
		svc := NewService(&fakeScheduleRepo{}, repo, catalog, &fakeTxManager{}, nopLogger{})

		resp, err := svc.CreateTimeOff(ctx, validRequest())
		require.NoError(t, err)
		assert.Equal(t, int64(77), resp.ID)
		require.NotNil(t, resp.StaffID)
		assert.Equal(t, int64(5), *resp.StaffID)
		assert.Equal(t, "vacation", resp.Reason)
	})

	t.Run("time-off на весь бизнес не требует сотрудника", func(t *testing.T) {
		req := validRequest()
		req.StaffID = nil
		repo := &fakeTimeOffRepo{}
		catalog := &fakeCatalog{managerIDs: []int64{10}, staffErr: errors.New("staff must not be requested")}
		svc := NewService(&fakeScheduleRepo{}, repo, catalog, &fakeTxManager{}, nopLogger{})

		resp, err := svc.CreateTimeOff(ctx, req)
		require.NoError(t, err)
		assert.Nil(t, resp.StaffID)
	})

	t.Run("конец раньше начала", func(t *testing.T) {
		req := validRequest()
		req.EndsAt = req.StartsAt
		svc := NewService(&fakeScheduleRepo{}, &fakeTimeOffRepo{}, &fakeCatalog{managerIDs: []int64{10}}, &fakeTxManager{}, nopLogger{})

		_, err := svc.CreateTimeOff(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("слишком длинная причина", func(t *testing.T) {
		req := validRequest()
		req.Reason = strings.Repeat("a", domain.MaxTimeOffReasonLength+1)
		svc := NewService(&fakeScheduleRepo{}, &fakeTimeOffRepo{}, &fakeCatalog{managerIDs: []int64{10}}, &fakeTxManager{}, nopLogger{})

		_, err := svc.CreateTimeOff(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("слишком длинный интервал", func(t *testing.T) {
		req := validRequest()
		req.EndsAt = req.StartsAt.AddDate(0, 0, 91)
		svc := NewService(&fakeScheduleRepo{}, &fakeTimeOffRepo{}, &fakeCatalog{managerIDs: []int64{10}}, &fakeTxManager{}, nopLogger{})

		_, err := svc.CreateTimeOff(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("не менеджер получает отказ", func(t *testing.T) {
		svc := NewService(&fakeScheduleRepo{}, &fakeTimeOffRepo{}, &fakeCatalog{managerIDs: []int64{99}}, &fakeTxManager{}, nopLogger{})

		_, err := svc.CreateTimeOff(ctx, validRequest())
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("сотрудник чужого бизнеса", func(t *testing.T) {
		catalog := &fakeCatalog{managerIDs: []int64{10}, staffErr: catalogClient.ErrStaffNotFound}
		svc := NewService(&fakeScheduleRepo{}, &fakeTimeOffRepo{}, catalog, &fakeTxManager{}, nopLogger{})

		_, err := svc.CreateTimeOff(ctx, validRequest())
		assert.ErrorIs(t, err, ErrStaffNotFound)
	})
}

func TestService_DeleteTimeOff(t *testing.T) {
	ctx := context.Background()

	t.Run("менеджер удаляет запись", func(t *testing.T) {
		repo := &fakeTimeOffRepo{}
		svc := NewService(&fakeScheduleRepo{}, repo, &fakeCatalog{managerIDs: []int64{10}}, &fakeTxManager{}, nopLogger{})

		err := svc.DeleteTimeOff(ctx, 1, 77, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(77), repo.deletedID)
	})

	t.Run("запись не найдена", func(t *testing.T) {
		repo := &fakeTimeOffRepo{deleteErr: timeoffRepo.ErrTimeOffNotFound}
		svc := NewService(&fakeScheduleRepo{}, repo, &fakeCatalog{managerIDs: []int64{10}}, &fakeTxManager{}, nopLogger{})

		err := svc.DeleteTimeOff(ctx, 1, 77, 10)
		assert.ErrorIs(t, err, ErrTimeOffNotFound)
	})

	t.Run("не менеджер получает отказ", func(t *testing.T) {
		svc := NewService(&fakeScheduleRepo{}, &fakeTimeOffRepo{}, &fakeCatalog{managerIDs: []int64{10}}, &fakeTxManager{}, nopLogger{})

		err := svc.DeleteTimeOff(ctx, 1, 77, 33)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestService_ResolveDay(t *testing.T) {
	ctx := context.Background()
	monday := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC) // понедельник

	t.Run("рабочий день без time-off", func(t *testing.T) {
		repo := &fakeScheduleRepo{week: workingWeek(t)}
		svc := NewService(repo, &fakeTimeOffRepo{}, &fakeCatalog{}, &fakeTxManager{}, nopLogger{})

		day, err := svc.ResolveDay(ctx, 1, 5, monday)
		require.NoError(t, err)
		assert.True(t, day.Open)
		assert.Equal(t, "09:00", day.Start.String())
	})

	t.Run("time-off закрывает день целиком", func(t *testing.T) {
		repo := &fakeScheduleRepo{week: workingWeek(t)}
		timeOff := &fakeTimeOffRepo{entries: []*domain.TimeOffEntry{{
			ID:         1,
			BusinessID: 1,
			StaffID:    ptr.Ptr(int64(5)),
			StartsAt:   monday.Add(13 * time.Hour),
			EndsAt:     monday.Add(15 * time.Hour),
		}}}
		svc := NewService(repo, timeOff, &fakeCatalog{}, &fakeTxManager{}, nopLogger{})

		day, err := svc.ResolveDay(ctx, 1, 5, monday)
		require.NoError(t, err)
		assert.False(t, day.Open)
	})

	t.Run("сотрудник без расписания считается нерабочим", func(t *testing.T) {
		repo := &fakeScheduleRepo{getErr: scheduleRepo.ErrScheduleNotFound}
		svc := NewService(repo, &fakeTimeOffRepo{}, &fakeCatalog{}, &fakeTxManager{}, nopLogger{})

		day, err := svc.ResolveDay(ctx, 1, 5, monday)
		require.NoError(t, err)
		assert.False(t, day.Open)
	})

	t.Run("ошибка репозитория time-off", func(t *testing.T) {
		repo := &fakeScheduleRepo{week: workingWeek(t)}
		timeOff := &fakeTimeOffRepo{listErr: errors.New("connection refused")}
		svc := NewService(repo, timeOff, &fakeCatalog{}, &fakeTxManager{}, nopLogger{})

		_, err := svc.ResolveDay(ctx, 1, 5, monday)
		assert.ErrorIs(t, err, ErrInternal)
	})
}
