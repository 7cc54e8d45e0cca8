package join_waitlist

import (
	"context"

	"github.com/salonmarket/booking-service/internal/service/waitlist/models"
)

// WaitlistService интерфейс сервиса листа ожидания
type WaitlistService interface {
	Join(ctx context.Context, req *models.JoinWaitlistRequest) (*models.WaitlistEntryResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}
