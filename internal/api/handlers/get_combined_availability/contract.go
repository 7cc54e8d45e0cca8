package get_combined_availability

import (
	"context"

	getCombinedAvailability "github.com/salonmarket/booking-service/internal/usecase/get_combined_availability"
)

type GetCombinedAvailabilityUseCase interface {
	Execute(ctx context.Context, req *getCombinedAvailability.Request) (*getCombinedAvailability.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
