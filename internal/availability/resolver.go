// Package availability реализует движок расчета доступности:
// резолв рабочего окна сотрудника на дату, генерацию кандидатов слотов
// и проверку конфликтов с перерывами и существующими бронированиями.
// Все функции чистые и безопасны для параллельного вызова.
package availability

import (
	"time"

	"github.com/salonmarket/booking-service/internal/domain"
	"github.com/salonmarket/booking-service/pkg/types"
)

// ResolvedDay результат резолва расписания сотрудника на конкретную дату:
// либо день закрыт, либо рабочее окно [Start, End) с перерывами
type ResolvedDay struct {
	Open   bool
	Start  types.TimeString
	End    types.TimeString
	Breaks []domain.BreakInterval
}

// Closed возвращает закрытый день
func Closed() ResolvedDay {
	return ResolvedDay{Open: false}
}

// ResolveDay резолвит рабочее окно сотрудника на дату:
// 1. День недели берется из недельного расписания; нерабочий день - Closed
// 2. Любая запись time-off (по сотруднику или по всему бизнесу),
//    пересекающая 24-часовой интервал даты, закрывает весь день целиком,
//    даже если time-off покрывает только часть дня
// 3. Иначе возвращается окно и перерывы из расписания
func ResolveDay(week domain.WeeklySchedule, timeOff []domain.TimeOffEntry, staffID int64, date time.Time) ResolvedDay {
	day := week.ForWeekday(date.Weekday())
	if !day.IsWorking {
		return Closed()
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	for i := range timeOff {
		entry := &timeOff[i]
		if entry.CoversStaff(staffID) && entry.Overlaps(dayStart, dayEnd) {
			return Closed()
		}
	}

	return ResolvedDay{
		Open:   true,
		Start:  day.Start,
		End:    day.End,
		Breaks: day.Breaks,
	}
}
