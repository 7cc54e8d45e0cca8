package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	t.Run("valid time", func(t *testing.T) {
		ts, err := NewTimeStringFromString("09:30")

		require.NoError(t, err)
		assert.Equal(t, "09:30", ts.String())
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		for _, input := range []string{"25:00", "09:60", "9:30", "abc", ""} {
			_, err := NewTimeStringFromString(input)
			assert.Error(t, err, "input %q", input)
		}
	})
}

func TestTimeString_AddMinutes(t *testing.T) {
	t.Run("adds within the day", func(t *testing.T) {
		result, err := TimeString("10:45").AddMinutes(30)

		require.NoError(t, err)
		assert.Equal(t, TimeString("11:15"), result)
	})

	t.Run("fails when crossing midnight", func(t *testing.T) {
		_, err := TimeString("23:30").AddMinutes(45)

		assert.Error(t, err)
	})
}

func TestTimeString_Comparison(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore(TimeString("10:00")))
	assert.False(t, TimeString("10:00").IsBefore(TimeString("10:00")))
	assert.True(t, TimeString("10:15").IsAfter(TimeString("10:00")))
	assert.False(t, TimeString("10:00").IsAfter(TimeString("10:00")))
}

func TestTimeString_MinutesFromMidnight(t *testing.T) {
	minutes, err := TimeString("13:45").MinutesFromMidnight()

	require.NoError(t, err)
	assert.Equal(t, 13*60+45, minutes)
}

func TestTimeString_OnDate(t *testing.T) {
	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	result, err := TimeString("10:30").OnDate(date)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 14, 10, 30, 0, 0, time.UTC), result)
}

func TestTimeString_Scan(t *testing.T) {
	t.Run("trims seconds from driver value", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan("15:04:00"))
		assert.Equal(t, TimeString("15:04"), ts)
	})

	t.Run("accepts byte slice", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan([]byte("08:00:00")))
		assert.Equal(t, TimeString("08:00"), ts)
	})

	t.Run("accepts time.Time", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan(time.Date(2026, 9, 14, 9, 15, 0, 0, time.UTC)))
		assert.Equal(t, TimeString("09:15"), ts)
	})

	t.Run("nil resets the value", func(t *testing.T) {
		ts := TimeString("10:00")
		require.NoError(t, ts.Scan(nil))
		assert.True(t, ts.IsZero())
	})
}

func TestTimeString_Value(t *testing.T) {
	t.Run("valid value", func(t *testing.T) {
		v, err := TimeString("10:00").Value()

		require.NoError(t, err)
		assert.Equal(t, "10:00", v)
	})

	t.Run("zero value maps to NULL", func(t *testing.T) {
		v, err := TimeString("").Value()

		require.NoError(t, err)
		assert.Nil(t, v)
	})
}
