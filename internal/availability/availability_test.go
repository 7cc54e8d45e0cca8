package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonmarket/booking-service/internal/domain"
	"github.com/salonmarket/booking-service/pkg/types"
)

func workingDay(start, end string, breaks ...domain.BreakInterval) ResolvedDay {
	return ResolvedDay{
		Open:   true,
		Start:  types.TimeString(start),
		End:    types.TimeString(end),
		Breaks: breaks,
	}
}

func breakInterval(start, end string) domain.BreakInterval {
	return domain.BreakInterval{Start: types.TimeString(start), End: types.TimeString(end)}
}

func activeBooking(start string, durationMinutes int) *domain.Booking {
	return &domain.Booking{
		StartTime:       types.TimeString(start),
		DurationMinutes: durationMinutes,
		Status:          domain.StatusConfirmed,
	}
}

func timeStrings(values ...string) []types.TimeString {
	result := make([]types.TimeString, 0, len(values))
	for _, v := range values {
		result = append(result, types.TimeString(v))
	}
	return result
}

func TestGenerateStarts(t *testing.T) {
	t.Run("steps through the working window", func(t *testing.T) {
		day := workingDay("09:00", "11:00")

		starts, err := GenerateStarts(day, 60, 15)

		require.NoError(t, err)
		// Последний кандидат 10:00: слот 10:00-11:00 ровно помещается в окно
		assert.Equal(t, timeStrings("09:00", "09:15", "09:30", "09:45", "10:00"), starts)
	})

	t.Run("closed day has no candidates", func(t *testing.T) {
		starts, err := GenerateStarts(Closed(), 60, 15)

		require.NoError(t, err)
		assert.Empty(t, starts)
	})

	t.Run("duration longer than window has no candidates", func(t *testing.T) {
		day := workingDay("09:00", "10:00")

		starts, err := GenerateStarts(day, 90, 15)

		require.NoError(t, err)
		assert.Empty(t, starts)
	})
}

func TestIsSlotFree(t *testing.T) {
	t.Run("touching break boundary is not a conflict", func(t *testing.T) {
		breaks := []domain.BreakInterval{breakInterval("12:00", "13:00")}

		free, err := IsSlotFree(types.TimeString("11:00"), 60, breaks, nil)

		require.NoError(t, err)
		assert.True(t, free)
	})

	t.Run("overlapping break blocks the slot", func(t *testing.T) {
		breaks := []domain.BreakInterval{breakInterval("12:00", "13:00")}

		free, err := IsSlotFree(types.TimeString("11:30"), 60, breaks, nil)

		require.NoError(t, err)
		assert.False(t, free)
	})

	t.Run("confirmed booking blocks the slot", func(t *testing.T) {
		bookings := []*domain.Booking{activeBooking("10:00", 60)}

		free, err := IsSlotFree(types.TimeString("10:30"), 60, nil, bookings)

		require.NoError(t, err)
		assert.False(t, free)
	})

	t.Run("touching booking boundary is not a conflict", func(t *testing.T) {
		bookings := []*domain.Booking{activeBooking("10:00", 60)}

		free, err := IsSlotFree(types.TimeString("11:00"), 60, nil, bookings)

		require.NoError(t, err)
		assert.True(t, free)
	})

	t.Run("cancelled booking does not block the slot", func(t *testing.T) {
		cancelled := activeBooking("10:00", 60)
		cancelled.Status = domain.StatusCancelled

		free, err := IsSlotFree(types.TimeString("10:00"), 60, nil, []*domain.Booking{cancelled})

		require.NoError(t, err)
		assert.True(t, free)
	})
}

func TestAvailableStarts(t *testing.T) {
	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC) // понедельник
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	t.Run("excludes breaks and bookings", func(t *testing.T) {
		day := workingDay("09:00", "13:00", breakInterval("11:00", "12:00"))
		bookings := []*domain.Booking{activeBooking("09:30", 30)}

		starts, err := AvailableStarts(day, 60, bookings, date, now)

		require.NoError(t, err)
		// 09:00 и 09:15 конфликтуют с бронированием 09:30-10:00,
		// 10:15..11:45 - с перерывом 11:00-12:00, 12:00 - последний влезающий
		assert.Equal(t, timeStrings("10:00", "12:00"), starts)
	})

	t.Run("closed day gives empty result", func(t *testing.T) {
		starts, err := AvailableStarts(Closed(), 60, nil, date, now)

		require.NoError(t, err)
		assert.Empty(t, starts)
	})

	t.Run("past date gives empty result", func(t *testing.T) {
		day := workingDay("09:00", "18:00")
		pastDate := now.AddDate(0, 0, -1)

		starts, err := AvailableStarts(day, 60, nil, pastDate, now)

		require.NoError(t, err)
		assert.Empty(t, starts)
	})

	t.Run("today only slots strictly after now", func(t *testing.T) {
		day := workingDay("09:00", "11:00")
		nowToday := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)

		starts, err := AvailableStarts(day, 30, nil, date, nowToday)

		require.NoError(t, err)
		// Слот ровно в 10:00 не предлагается - начало должно быть строго позже
		assert.Equal(t, timeStrings("10:15", "10:30"), starts)
	})
}

func TestResolveDay(t *testing.T) {
	staffID := int64(7)
	monday := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	week := domain.WeeklySchedule{
		Monday: domain.DaySchedule{
			IsWorking: true,
			Start:     types.TimeString("09:00"),
			End:       types.TimeString("18:00"),
			Breaks:    []domain.BreakInterval{breakInterval("13:00", "14:00")},
		},
	}

	t.Run("working day resolves to its window", func(t *testing.T) {
		day := ResolveDay(week, nil, staffID, monday)

		require.True(t, day.Open)
		assert.Equal(t, types.TimeString("09:00"), day.Start)
		assert.Equal(t, types.TimeString("18:00"), day.End)
		assert.Len(t, day.Breaks, 1)
	})

	t.Run("non-working weekday is closed", func(t *testing.T) {
		tuesday := monday.AddDate(0, 0, 1)

		day := ResolveDay(week, nil, staffID, tuesday)

		assert.False(t, day.Open)
	})

	t.Run("partial day time off closes the whole day", func(t *testing.T) {
		timeOff := []domain.TimeOffEntry{{
			StaffID:  &staffID,
			StartsAt: monday.Add(14 * time.Hour),
			EndsAt:   monday.Add(16 * time.Hour),
		}}

		day := ResolveDay(week, timeOff, staffID, monday)

		assert.False(t, day.Open)
	})

	t.Run("business wide time off closes the day for everyone", func(t *testing.T) {
		timeOff := []domain.TimeOffEntry{{
			StaffID:  nil,
			StartsAt: monday,
			EndsAt:   monday.AddDate(0, 0, 2),
		}}

		day := ResolveDay(week, timeOff, staffID, monday)

		assert.False(t, day.Open)
	})

	t.Run("time off for another staff member is ignored", func(t *testing.T) {
		otherStaff := int64(99)
		timeOff := []domain.TimeOffEntry{{
			StaffID:  &otherStaff,
			StartsAt: monday,
			EndsAt:   monday.AddDate(0, 0, 1),
		}}

		day := ResolveDay(week, timeOff, staffID, monday)

		assert.True(t, day.Open)
	})

	t.Run("time off ending exactly at midnight does not touch the day", func(t *testing.T) {
		timeOff := []domain.TimeOffEntry{{
			StaffID:  &staffID,
			StartsAt: monday.AddDate(0, 0, -1),
			EndsAt:   monday,
		}}

		day := ResolveDay(week, timeOff, staffID, monday)

		assert.True(t, day.Open)
	})
}
