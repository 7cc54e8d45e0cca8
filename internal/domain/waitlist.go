package domain

import "time"

// TimeRange is a customer's preferred time of day for a waitlist entry
type TimeRange string

const (
	TimeRangeAny       TimeRange = "any"
	TimeRangeMorning   TimeRange = "morning"
	TimeRangeAfternoon TimeRange = "afternoon"
	TimeRangeEvening   TimeRange = "evening"
)

// IsValid returns true for a known time range value
func (r TimeRange) IsValid() bool {
	switch r {
	case TimeRangeAny, TimeRangeMorning, TimeRangeAfternoon, TimeRangeEvening:
		return true
	}
	return false
}

// Matches reports whether a preference is satisfied by the given bucket.
// TimeRangeAny matches everything, including hours outside the named buckets.
func (r TimeRange) Matches(bucket TimeRange) bool {
	if r == TimeRangeAny {
		return true
	}
	return bucket != "" && r == bucket
}

// TimeRangeForHour classifies an hour of day into a named bucket:
// morning [8,12), afternoon [12,17), evening [17,22).
// Hours outside those bounds belong to no bucket and only match
// entries with the "any" preference.
func TimeRangeForHour(hour int) TimeRange {
	switch {
	case hour >= MorningStartHour && hour < AfternoonStartHour:
		return TimeRangeMorning
	case hour >= AfternoonStartHour && hour < EveningStartHour:
		return TimeRangeAfternoon
	case hour >= EveningStartHour && hour < EveningEndHour:
		return TimeRangeEvening
	default:
		return ""
	}
}

// WaitlistStatus lifecycle of a waitlist entry
type WaitlistStatus string

const (
	WaitlistStatusPending  WaitlistStatus = "pending"
	WaitlistStatusNotified WaitlistStatus = "notified"
	WaitlistStatusExpired  WaitlistStatus = "expired"
)

// WaitlistEntry is a customer's request to be notified when a slot
// frees up for a service on a specific date.
type WaitlistEntry struct {
	ID                 int64
	BusinessID         int64
	ServiceID          int64
	CustomerName       string
	Email              *string
	Phone              *string
	Date               time.Time // calendar day, time component is ignored
	PreferredTimeRange TimeRange
	Status             WaitlistStatus
	CreatedAt          time.Time
	NotifiedAt         *time.Time
}

// HasContact returns true if the entry carries at least one contact channel
func (e *WaitlistEntry) HasContact() bool {
	return (e.Email != nil && *e.Email != "") || (e.Phone != nil && *e.Phone != "")
}
