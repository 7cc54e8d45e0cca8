package delete_time_off

import "context"

// ScheduleService интерфейс сервиса расписаний
type ScheduleService interface {
	DeleteTimeOff(ctx context.Context, businessID, timeOffID, userID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}
