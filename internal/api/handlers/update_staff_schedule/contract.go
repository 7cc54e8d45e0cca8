package update_staff_schedule

import (
	"context"

	"github.com/salonmarket/booking-service/internal/service/schedule/models"
)

// ScheduleService интерфейс сервиса расписаний
type ScheduleService interface {
	ReplaceWeek(ctx context.Context, staffID int64, req *models.UpdateWeekRequest) (*models.WeekResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}
