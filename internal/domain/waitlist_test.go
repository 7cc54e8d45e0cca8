package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeRangeForHour(t *testing.T) {
	cases := []struct {
		hour     int
		expected TimeRange
	}{
		{7, ""},
		{8, TimeRangeMorning},
		{11, TimeRangeMorning},
		{12, TimeRangeAfternoon},
		{16, TimeRangeAfternoon},
		{17, TimeRangeEvening},
		{21, TimeRangeEvening},
		{22, ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, TimeRangeForHour(tc.hour), "hour %d", tc.hour)
	}
}

func TestTimeRange_Matches(t *testing.T) {
	assert.True(t, TimeRangeAny.Matches(TimeRangeMorning))
	assert.True(t, TimeRangeAny.Matches(""))
	assert.True(t, TimeRangeMorning.Matches(TimeRangeMorning))
	assert.False(t, TimeRangeMorning.Matches(TimeRangeEvening))
	assert.False(t, TimeRangeEvening.Matches(""))
}

func TestWaitlistEntry_HasContact(t *testing.T) {
	email := "client@example.com"
	phone := "+79990001122"
	empty := ""

	assert.True(t, (&WaitlistEntry{Email: &email}).HasContact())
	assert.True(t, (&WaitlistEntry{Phone: &phone}).HasContact())
	assert.False(t, (&WaitlistEntry{}).HasContact())
	assert.False(t, (&WaitlistEntry{Email: &empty, Phone: &empty}).HasContact())
}

func TestBooking_BlocksSlot(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusPending}).BlocksSlot())
	assert.True(t, (&Booking{Status: StatusConfirmed}).BlocksSlot())
	assert.False(t, (&Booking{Status: StatusCompleted}).BlocksSlot())
	assert.False(t, (&Booking{Status: StatusCancelled}).BlocksSlot())
	assert.False(t, (&Booking{Status: StatusNoShow}).BlocksSlot())
}
