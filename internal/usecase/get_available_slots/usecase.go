package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/salonmarket/booking-service/internal/availability"
	"github.com/salonmarket/booking-service/internal/domain"
	catalogClient "github.com/salonmarket/booking-service/internal/integrations/catalogservice"
)

// UseCase use case для получения доступных слотов сотрудника
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

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%d, business=%d, staff=%d, service=%d, date=%s",
		req.UserID, req.BusinessID, req.StaffID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Валидация даты
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 4. Получаем бизнес
	if _, err := uc.catalogClient.GetBusiness(ctx, req.BusinessID); err != nil {
		if errors.Is(err, catalogClient.ErrBusinessNotFound) {
			uc.logger.Warn("GetAvailableSlots: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	// 5. Получаем сотрудника
	staff, err := uc.catalogClient.GetStaff(ctx, req.BusinessID, req.StaffID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrStaffNotFound) {
			uc.logger.Warn("GetAvailableSlots: staff id=%d not found in business=%d", req.StaffID, req.BusinessID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if !staff.Active {
		uc.logger.Warn("GetAvailableSlots: staff id=%d is not active", req.StaffID)
		return nil, ErrStaffNotFound
	}

	// 6. Получаем услугу
	service, err := uc.catalogClient.GetService(ctx, req.BusinessID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.Active {
		uc.logger.Warn("GetAvailableSlots: service id=%d is not active", req.ServiceID)
		return nil, ErrServiceNotFound
	}
	if !service.ValidDuration() {
		uc.logger.Error("GetAvailableSlots: service id=%d has invalid duration %d minutes",
			req.ServiceID, service.DurationMinutes)
		return nil, fmt.Errorf("%w: service duration is out of range", ErrInternal)
	}

	// 7. Проверяем, что сотрудник оказывает услугу
	if err := validateStaffEligible(service, req.StaffID); err != nil {
		uc.logger.Warn("GetAvailableSlots: staff id=%d is not eligible for service id=%d",
			req.StaffID, req.ServiceID)
		return nil, err
	}

	// 8. Резолвим рабочее окно сотрудника на дату
	day, err := uc.resolver.ResolveDay(ctx, req.BusinessID, req.StaffID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to resolve schedule for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to resolve schedule: %v", ErrInternal, err)
	}

	if !day.Open {
		uc.logger.Info("GetAvailableSlots: staff id=%d is not working on %s",
			req.StaffID, req.Date.Format(domain.DateFormat))
		return uc.emptyResponse(req, service.DurationMinutes), nil
	}

	// 9. Получаем активные бронирования сотрудника на дату
	filter := domain.StaffBookingsFilter{
		BusinessID:      req.BusinessID,
		StaffID:         &req.StaffID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false, // Только активные бронирования
	}

	bookings, err := uc.bookingRepo.GetByStaffWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 10. Вычисляем доступные времена начала
	starts, err := availability.AvailableStarts(day, service.DurationMinutes, bookings, req.Date, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to compute available starts: %v", err)
		return nil, fmt.Errorf("%w: failed to compute available starts: %v", ErrInternal, err)
	}

	slots := make([]Slot, 0, len(starts))
	for _, start := range starts {
		slots = append(slots, Slot{StartTime: start})
	}

	uc.logger.Info("GetAvailableSlots: found %d slots for staff=%d, service=%d, date=%s",
		len(slots), req.StaffID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:            req.Date,
		BusinessID:      req.BusinessID,
		StaffID:         req.StaffID,
		ServiceID:       req.ServiceID,
		DurationMinutes: service.DurationMinutes,
		Slots:           slots,
	}, nil
}

// emptyResponse возвращает ответ без слотов
func (uc *UseCase) emptyResponse(req *Request, durationMinutes int) *Response {
	return &Response{
		Date:            req.Date,
		BusinessID:      req.BusinessID,
		StaffID:         req.StaffID,
		ServiceID:       req.ServiceID,
		DurationMinutes: durationMinutes,
		Slots:           []Slot{},
	}
}
