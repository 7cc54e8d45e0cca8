package availability

import (
	"github.com/salonmarket/booking-service/internal/domain"
	"github.com/salonmarket/booking-service/pkg/types"
)

// IsSlotFree решает, свободен ли интервал-кандидат [start, start+duration):
// он не должен пересекаться ни с одним перерывом и ни с одним бронированием
// в блокирующем статусе (pending, confirmed).
//
// Пересечение полуоткрытых интервалов [a1,a2) и [b1,b2) есть только при
// a1 < b2 И b1 < a2 - касание границ (одно заканчивается ровно там, где
// начинается другое) конфликтом НЕ считается.
//
// Примеры:
// - Кандидат 11:00-12:00, перерыв 12:00-13:00 → свободен (граничат)
// - Кандидат 11:30-12:30, перерыв 12:00-13:00 → занят (пересечение 12:00-12:30)
func IsSlotFree(start types.TimeString, durationMinutes int, breaks []domain.BreakInterval, bookings []*domain.Booking) (bool, error) {
	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return false, err
	}

	for _, br := range breaks {
		if overlaps(start, end, br.Start, br.End) {
			return false, nil
		}
	}

	for _, booking := range bookings {
		if !booking.BlocksSlot() {
			continue
		}

		bookingEnd, err := booking.EndTime()
		if err != nil {
			// Бронирование с некорректным временем не можем проверить - пропускаем
			continue
		}

		if overlaps(start, end, booking.StartTime, bookingEnd) {
			return false, nil
		}
	}

	return true, nil
}

// overlaps проверяет пересечение полуоткрытых интервалов строгими неравенствами
func overlaps(aStart, aEnd, bStart, bEnd types.TimeString) bool {
	return aStart.IsBefore(bEnd) && bStart.IsBefore(aEnd)
}
