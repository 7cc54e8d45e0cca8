package domain

import (
	"time"

	"github.com/salonmarket/booking-service/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusNoShow    BookingStatus = "no_show"
)

// Booking represents a service booking with a specific staff member
type Booking struct {
	ID              int64
	CustomerID      int64
	BusinessID      int64
	StaffID         int64
	ServiceID       int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus

	// Denormalized data for history and notifications
	ServiceName  string
	ServicePrice *float64
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BlocksSlot returns true if the booking occupies its interval:
// only pending and confirmed bookings make a slot unavailable.
func (b *Booking) BlocksSlot() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanTransitionTo reports whether the status change is allowed.
// Cancelled and no-show bookings never return to a blocking status:
// their interval may already be taken by a newer booking.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	if b.Status == StatusCancelled || b.Status == StatusNoShow {
		return next != StatusPending && next != StatusConfirmed
	}
	return true
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// EndTime returns the end of the booking interval (start + duration)
func (b *Booking) EndTime() (types.TimeString, error) {
	return b.StartTime.AddMinutes(b.DurationMinutes)
}

// StaffBookingsFilter фильтр для выборки бронирований по сотруднику/бизнесу
type StaffBookingsFilter struct {
	BusinessID      int64          // Обязательный параметр
	StaffID         *int64         // Фильтр по сотруднику (nil - все сотрудники бизнеса)
	StartDate       *time.Time     // Начало периода (nil - без ограничения)
	EndDate         *time.Time     // Конец периода (nil - без ограничения)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли завершенные/отмененные бронирования
}
