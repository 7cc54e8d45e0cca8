package availability

import (
	"github.com/salonmarket/booking-service/internal/domain"
	"github.com/salonmarket/booking-service/pkg/types"
)

// GenerateStarts генерирует кандидатов времени начала слота для рабочего окна:
// от начала окна с фиксированным шагом stepMinutes, пока слот целиком
// помещается в окно (start + duration <= end).
// Кандидаты не учитывают ни перерывы, ни бронирования - только геометрию окна
func GenerateStarts(day ResolvedDay, durationMinutes, stepMinutes int) ([]types.TimeString, error) {
	starts := make([]types.TimeString, 0)

	if !day.Open || durationMinutes <= 0 || stepMinutes <= 0 {
		return starts, nil
	}

	current := day.Start
	for current.IsBefore(day.End) {
		slotEnd, err := current.AddMinutes(durationMinutes)
		if err != nil {
			// Слот вышел за границу суток - дальше кандидатов не будет
			break
		}
		if slotEnd.IsAfter(day.End) {
			break
		}

		starts = append(starts, current)

		next, err := current.AddMinutes(stepMinutes)
		if err != nil {
			break
		}
		current = next
	}

	return starts, nil
}

// generateCandidates генерирует кандидатов с фиксированным шагом domain.SlotStepMinutes
func generateCandidates(day ResolvedDay, durationMinutes int) ([]types.TimeString, error) {
	return GenerateStarts(day, durationMinutes, domain.SlotStepMinutes)
}
