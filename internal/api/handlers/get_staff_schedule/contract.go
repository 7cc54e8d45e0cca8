package get_staff_schedule

import (
	"context"

	"github.com/salonmarket/booking-service/internal/service/schedule/models"
)

// ScheduleService интерфейс сервиса расписаний
type ScheduleService interface {
	GetWeek(ctx context.Context, businessID, staffID int64) (*models.WeekResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}
