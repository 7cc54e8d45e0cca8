package schedule

import (
	"context"
	"time"

	"github.com/salonmarket/booking-service/internal/domain"
	"github.com/salonmarket/booking-service/internal/integrations/catalogservice"
)

// ScheduleRepository интерфейс репозитория недельных расписаний
type ScheduleRepository interface {
	GetWeek(ctx context.Context, staffID int64) (*domain.WeeklySchedule, error)
	ReplaceWeek(ctx context.Context, staffID, businessID int64, week *domain.WeeklySchedule) error
}

// TimeOffRepository интерфейс репозитория записей time-off
type TimeOffRepository interface {
	Create(ctx context.Context, entry *domain.TimeOffEntry) (*domain.TimeOffEntry, error)
	ListOverlapping(ctx context.Context, businessID, staffID int64, from, to time.Time) ([]*domain.TimeOffEntry, error)
	Delete(ctx context.Context, businessID, id int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// CatalogServiceClient интерфейс клиента для CatalogService
type CatalogServiceClient interface {
	GetBusiness(ctx context.Context, businessID int64) (*catalogservice.Business, error)
	GetStaff(ctx context.Context, businessID, staffID int64) (*catalogservice.Staff, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
