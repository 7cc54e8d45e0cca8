package availability

import (
	"time"

	"github.com/salonmarket/booking-service/internal/domain"
	"github.com/salonmarket/booking-service/pkg/types"
)

// AvailableStarts вычисляет отсортированный список доступных времен начала
// слота для сотрудника на дату: кандидаты рабочего окна минус конфликты
// с перерывами и бронированиями, минус уже прошедшее время.
//
// Слот предлагается, только если он начинается СТРОГО позже текущего
// момента; дата целиком в прошлом дает пустой результат.
// Пустой список - валидный результат, а не ошибка
func AvailableStarts(
	day ResolvedDay,
	durationMinutes int,
	bookings []*domain.Booking,
	date time.Time,
	now time.Time,
) ([]types.TimeString, error) {
	empty := make([]types.TimeString, 0)

	if !day.Open {
		return empty, nil
	}

	if isDateInPast(date, now) {
		return empty, nil
	}

	candidates, err := generateCandidates(day, durationMinutes)
	if err != nil {
		return nil, err
	}

	// Для сегодняшней даты отсекаем слоты, начинающиеся не позже текущего времени
	var minStart types.TimeString
	if isSameDay(date, now) {
		minStart = types.NewTimeString(now)
	}

	starts := make([]types.TimeString, 0, len(candidates))
	for _, candidate := range candidates {
		if !minStart.IsZero() && !candidate.IsAfter(minStart) {
			continue
		}

		free, err := IsSlotFree(candidate, durationMinutes, day.Breaks, bookings)
		if err != nil {
			return nil, err
		}
		if free {
			starts = append(starts, candidate)
		}
	}

	return starts, nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
