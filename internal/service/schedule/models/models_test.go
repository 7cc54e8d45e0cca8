package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonmarket/booking-service/pkg/types"
)

func workingDayDTO(start, end string, breaks ...BreakDTO) DayDTO {
	return DayDTO{IsWorking: true, Start: start, End: end, Breaks: breaks}
}

func weekRequest(monday DayDTO) *UpdateWeekRequest {
	return &UpdateWeekRequest{Monday: monday}
}

func TestUpdateWeekRequest_ToDomainWeek(t *testing.T) {
	t.Run("valid week converts", func(t *testing.T) {
		req := weekRequest(workingDayDTO("09:00", "18:00", BreakDTO{Start: "13:00", End: "14:00"}))

		week, err := req.ToDomainWeek()

		require.NoError(t, err)
		assert.True(t, week.Monday.IsWorking)
		assert.Equal(t, types.TimeString("09:00"), week.Monday.Start)
		assert.Equal(t, types.TimeString("18:00"), week.Monday.End)
		require.Len(t, week.Monday.Breaks, 1)
		assert.False(t, week.Tuesday.IsWorking)
	})

	t.Run("non-working day ignores window fields", func(t *testing.T) {
		req := weekRequest(DayDTO{IsWorking: false})

		week, err := req.ToDomainWeek()

		require.NoError(t, err)
		assert.False(t, week.Monday.IsWorking)
	})

	t.Run("start must be before end", func(t *testing.T) {
		req := weekRequest(workingDayDTO("18:00", "09:00"))

		_, err := req.ToDomainWeek()

		assert.ErrorIs(t, err, ErrInvalidDay)
	})

	t.Run("invalid time format", func(t *testing.T) {
		req := weekRequest(workingDayDTO("9am", "18:00"))

		_, err := req.ToDomainWeek()

		assert.ErrorIs(t, err, ErrInvalidTime)
	})

	t.Run("break outside the working window", func(t *testing.T) {
		req := weekRequest(workingDayDTO("09:00", "18:00", BreakDTO{Start: "08:00", End: "10:00"}))

		_, err := req.ToDomainWeek()

		assert.ErrorIs(t, err, ErrInvalidDay)
	})

	t.Run("overlapping breaks are rejected", func(t *testing.T) {
		req := weekRequest(workingDayDTO("09:00", "18:00",
			BreakDTO{Start: "12:00", End: "14:00"},
			BreakDTO{Start: "13:00", End: "15:00"},
		))

		_, err := req.ToDomainWeek()

		assert.ErrorIs(t, err, ErrInvalidDay)
	})

	t.Run("touching breaks are allowed", func(t *testing.T) {
		req := weekRequest(workingDayDTO("09:00", "18:00",
			BreakDTO{Start: "12:00", End: "13:00"},
			BreakDTO{Start: "13:00", End: "14:00"},
		))

		_, err := req.ToDomainWeek()

		assert.NoError(t, err)
	})
}
