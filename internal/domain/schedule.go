package domain

import (
	"time"

	"github.com/salonmarket/booking-service/pkg/types"
)

// BreakInterval is a sub-interval within a working day during which
// the staff member is unavailable. Half-open: [Start, End).
type BreakInterval struct {
	Start types.TimeString
	End   types.TimeString
}

// DaySchedule describes one weekday of a staff member's recurring schedule.
// When IsWorking is false the other fields are ignored.
type DaySchedule struct {
	IsWorking bool
	Start     types.TimeString
	End       types.TimeString
	Breaks    []BreakInterval
}

// WeeklySchedule is a staff member's recurring weekly schedule
type WeeklySchedule struct {
	Monday    DaySchedule
	Tuesday   DaySchedule
	Wednesday DaySchedule
	Thursday  DaySchedule
	Friday    DaySchedule
	Saturday  DaySchedule
	Sunday    DaySchedule
}

// ForWeekday returns the schedule for the given weekday
func (w *WeeklySchedule) ForWeekday(weekday time.Weekday) DaySchedule {
	switch weekday {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	case time.Sunday:
		return w.Sunday
	default:
		return DaySchedule{IsWorking: false}
	}
}

// SetDay replaces the schedule for the given weekday
func (w *WeeklySchedule) SetDay(weekday time.Weekday, day DaySchedule) {
	switch weekday {
	case time.Monday:
		w.Monday = day
	case time.Tuesday:
		w.Tuesday = day
	case time.Wednesday:
		w.Wednesday = day
	case time.Thursday:
		w.Thursday = day
	case time.Friday:
		w.Friday = day
	case time.Saturday:
		w.Saturday = day
	case time.Sunday:
		w.Sunday = day
	}
}

// TimeOffEntry marks a staff member (or the whole business when StaffID is nil)
// as fully unavailable for an interval, overriding the weekly schedule.
type TimeOffEntry struct {
	ID         int64
	BusinessID int64
	StaffID    *int64 // nil = time off for the whole business
	StartsAt   time.Time
	EndsAt     time.Time
	Reason     string
	CreatedAt  time.Time
}

// CoversStaff returns true if the entry applies to the given staff member
func (t *TimeOffEntry) CoversStaff(staffID int64) bool {
	return t.StaffID == nil || *t.StaffID == staffID
}

// Overlaps reports whether the entry intersects the half-open interval [from, to)
func (t *TimeOffEntry) Overlaps(from, to time.Time) bool {
	return t.StartsAt.Before(to) && from.Before(t.EndsAt)
}
