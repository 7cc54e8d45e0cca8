package create_booking

import (
	"fmt"
	"time"

	"github.com/salonmarket/booking-service/internal/availability"
	"github.com/salonmarket/booking-service/internal/domain"
	"github.com/salonmarket/booking-service/internal/integrations/catalogservice"
	"github.com/salonmarket/booking-service/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что дата не находится в прошлом
func validateDate(bookingDate time.Time, now time.Time) error {
	if isDateInPast(bookingDate, now) {
		return ErrInvalidDate
	}
	return nil
}

// validateBookingTime проверяет, что для сегодняшней даты время начала
// строго позже текущего момента
func validateBookingTime(bookingDate time.Time, startTime types.TimeString, now time.Time) error {
	if !isSameDay(bookingDate, now) {
		return nil
	}

	currentTime := types.NewTimeString(now)
	if !startTime.IsAfter(currentTime) {
		return ErrTooLateToBook
	}

	return nil
}

// validateSlotFits проверяет, что запрошенный слот лежит в рабочем окне
// и выровнен по сетке генерации
func validateSlotFits(day availability.ResolvedDay, startTime types.TimeString, durationMinutes int) error {
	minutes, err := startTime.MinutesFromMidnight()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}
	if minutes%domain.SlotStepMinutes != 0 {
		return fmt.Errorf("%w: startTime must be aligned to %d minutes", ErrInvalidTimeSlot, domain.SlotStepMinutes)
	}

	if startTime.IsBefore(day.Start) {
		return fmt.Errorf("%w: startTime is before the working window", ErrInvalidTimeSlot)
	}

	slotEnd, err := startTime.AddMinutes(durationMinutes)
	if err != nil {
		return fmt.Errorf("%w: slot does not fit into the day", ErrInvalidTimeSlot)
	}
	if slotEnd.IsAfter(day.End) {
		return fmt.Errorf("%w: slot does not fit into the working window", ErrInvalidTimeSlot)
	}

	return nil
}

// validateStaffEligible проверяет, что сотрудник оказывает услугу
func validateStaffEligible(service *catalogservice.Service, staffID int64) error {
	if !service.EligibleStaff(staffID) {
		return ErrStaffNotEligible
	}
	return nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
