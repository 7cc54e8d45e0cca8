package get_combined_availability

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/salonmarket/booking-service/internal/availability"
	"github.com/salonmarket/booking-service/internal/domain"
	catalogClient "github.com/salonmarket/booking-service/internal/integrations/catalogservice"
	"github.com/salonmarket/booking-service/pkg/types"
)

// UseCase use case для получения сводной доступности услуги:
// объединение доступных слотов всех сотрудников, оказывающих услугу
type UseCase struct {
	bookingRepo   BookingRepository
	resolver      ScheduleResolver
	catalogClient CatalogServiceClient
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	resolver ScheduleResolver,
	catalogClient CatalogServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		resolver:      resolver,
		catalogClient: catalogClient,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case получения сводной доступности.
// Ошибка расчета по одному сотруднику не роняет весь запрос:
// такой сотрудник исключается из результата с записью в лог
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetCombinedAvailability: user=%d, business=%d, service=%d, date=%s",
		req.UserID, req.BusinessID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetCombinedAvailability: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("GetCombinedAvailability: date validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем бизнес и услугу
	if _, err := uc.catalogClient.GetBusiness(ctx, req.BusinessID); err != nil {
		if errors.Is(err, catalogClient.ErrBusinessNotFound) {
			uc.logger.Warn("GetCombinedAvailability: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("GetCombinedAvailability: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	service, err := uc.catalogClient.GetService(ctx, req.BusinessID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("GetCombinedAvailability: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetCombinedAvailability: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.Active {
		uc.logger.Warn("GetCombinedAvailability: service id=%d is not active", req.ServiceID)
		return nil, ErrServiceNotFound
	}
	if !service.ValidDuration() {
		uc.logger.Error("GetCombinedAvailability: service id=%d has invalid duration %d minutes",
			req.ServiceID, service.DurationMinutes)
		return nil, fmt.Errorf("%w: service duration is out of range", ErrInternal)
	}

	// 3. Считаем доступность каждого подходящего сотрудника независимо.
	// Слоты разных сотрудников не объединяются: клиент видит,
	// к кому именно он может записаться
	staffSlots := make([]StaffSlots, 0, len(service.StaffIDs))
	for _, staffID := range service.StaffIDs {
		starts, err := uc.staffStarts(ctx, req, staffID, service.DurationMinutes, now)
		if err != nil {
			uc.logger.Error("GetCombinedAvailability: skipping staff id=%d: %v", staffID, err)
			continue
		}
		// Сотрудники без единого слота в ответ не попадают
		if len(starts) == 0 {
			continue
		}

		staffSlots = append(staffSlots, StaffSlots{StaffID: staffID, Slots: starts})
	}

	sort.Slice(staffSlots, func(i, j int) bool {
		return staffSlots[i].StaffID < staffSlots[j].StaffID
	})

	uc.logger.Info("GetCombinedAvailability: %d staff with availability for service=%d, date=%s",
		len(staffSlots), req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:            req.Date,
		BusinessID:      req.BusinessID,
		ServiceID:       req.ServiceID,
		DurationMinutes: service.DurationMinutes,
		Staff:           staffSlots,
	}, nil
}

// staffStarts вычисляет доступные времена начала для одного сотрудника
func (uc *UseCase) staffStarts(ctx context.Context, req *Request, staffID int64, durationMinutes int, now time.Time) ([]types.TimeString, error) {
	staff, err := uc.catalogClient.GetStaff(ctx, req.BusinessID, staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}
	if !staff.Active {
		return nil, nil
	}

	day, err := uc.resolver.ResolveDay(ctx, req.BusinessID, staffID, req.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve schedule: %w", err)
	}
	if !day.Open {
		return nil, nil
	}

	filter := domain.StaffBookingsFilter{
		BusinessID:      req.BusinessID,
		StaffID:         &staffID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false,
	}

	bookings, err := uc.bookingRepo.GetByStaffWithFilter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	return availability.AvailableStarts(day, durationMinutes, bookings, req.Date, now)
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}

// validateDate проверяет, что дата не находится в прошлом
func validateDate(requestDate time.Time, now time.Time) error {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	requestDateOnly := time.Date(requestDate.Year(), requestDate.Month(), requestDate.Day(), 0, 0, 0, 0, requestDate.Location())

	if requestDateOnly.Before(today) {
		return ErrInvalidDate
	}

	return nil
}
