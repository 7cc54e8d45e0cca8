package get_available_slots

import (
	"context"

	getAvailableSlots "github.com/salonmarket/booking-service/internal/usecase/get_available_slots"
)

// GetAvailableSlotsUseCase интерфейс сценария подбора свободных слотов
type GetAvailableSlotsUseCase interface {
	Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}
