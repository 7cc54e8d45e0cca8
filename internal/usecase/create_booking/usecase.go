package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/salonmarket/booking-service/internal/availability"
	"github.com/salonmarket/booking-service/internal/domain"
	catalogClient "github.com/salonmarket/booking-service/internal/integrations/catalogservice"
	"github.com/salonmarket/booking-service/pkg/simpletxmanager"
	"github.com/salonmarket/booking-service/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	resolver      ScheduleResolver
	catalogClient CatalogServiceClient
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	resolver ScheduleResolver,
	catalogClient CatalogServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		resolver:      resolver,
		catalogClient: catalogClient,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка занятости слота и вставка выполняются в одной сериализуемой
// транзакции с блокировкой бронирований сотрудника на дату, чтобы два
// конкурентных запроса не смогли занять один и тот же слот
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%d, business=%d, staff=%d, service=%d, date=%s, time=%s",
		req.CustomerID, req.BusinessID, req.StaffID, req.ServiceID,
		req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Валидация даты и времени
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}
	if err := validateBookingTime(req.Date, req.StartTime, now); err != nil {
		uc.logger.Warn("CreateBooking: booking time validation failed: %v", err)
		return nil, err
	}

	// 4. Получаем бизнес
	if _, err := uc.catalogClient.GetBusiness(ctx, req.BusinessID); err != nil {
		if errors.Is(err, catalogClient.ErrBusinessNotFound) {
			uc.logger.Warn("CreateBooking: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("CreateBooking: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	// 5. Получаем сотрудника
	staff, err := uc.catalogClient.GetStaff(ctx, req.BusinessID, req.StaffID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrStaffNotFound) {
			uc.logger.Warn("CreateBooking: staff id=%d not found in business=%d", req.StaffID, req.BusinessID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("CreateBooking: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if !staff.Active {
		uc.logger.Warn("CreateBooking: staff id=%d is not active", req.StaffID)
		return nil, ErrStaffNotFound
	}

	// 6. Получаем услугу
	service, err := uc.catalogClient.GetService(ctx, req.BusinessID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.Active {
		uc.logger.Warn("CreateBooking: service id=%d is not active", req.ServiceID)
		return nil, ErrServiceNotFound
	}
	if !service.ValidDuration() {
		uc.logger.Error("CreateBooking: service id=%d has invalid duration %d minutes",
			req.ServiceID, service.DurationMinutes)
		return nil, fmt.Errorf("%w: service duration is out of range", ErrInternal)
	}

	// 7. Проверяем, что сотрудник оказывает услугу
	if err := validateStaffEligible(service, req.StaffID); err != nil {
		uc.logger.Warn("CreateBooking: staff id=%d is not eligible for service id=%d",
			req.StaffID, req.ServiceID)
		return nil, err
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 8. Проверка занятости и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Резолвим рабочее окно сотрудника на дату
		day, err := uc.resolver.ResolveDay(txCtx, req.BusinessID, req.StaffID, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to resolve schedule for staff=%d: %v", req.StaffID, err)
			return fmt.Errorf("%w: failed to resolve schedule: %v", ErrInternal, err)
		}
		if !day.Open {
			uc.logger.Warn("CreateBooking: staff id=%d is not working on %s",
				req.StaffID, req.Date.Format(domain.DateFormat))
			return ErrStaffNotWorking
		}

		// 8.2. Проверяем, что слот лежит в рабочем окне и выровнен по сетке
		if err := validateSlotFits(day, req.StartTime, service.DurationMinutes); err != nil {
			uc.logger.Warn("CreateBooking: slot validation failed: %v", err)
			return err
		}

		// 8.3. Получаем активные бронирования сотрудника на дату с блокировкой (FOR UPDATE)
		filter := domain.StaffBookingsFilter{
			BusinessID:      req.BusinessID,
			StaffID:         &req.StaffID,
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false, // Только активные бронирования
		}

		bookings, err := uc.bookingRepo.GetByStaffWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 8.4. Проверяем, что слот свободен
		free, err := availability.IsSlotFree(req.StartTime, service.DurationMinutes, day.Breaks, bookings)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to check slot: %v", err)
			return fmt.Errorf("%w: failed to check slot: %v", ErrInternal, err)
		}
		if !free {
			uc.logger.Warn("CreateBooking: slot %s is not available for staff=%d on %s",
				req.StartTime, req.StaffID, req.Date.Format(domain.DateFormat))
			return ErrSlotNotAvailable
		}

		// 8.5. Создаем бронирование с денормализацией данных услуги
		booking := &domain.Booking{
			CustomerID:      req.CustomerID,
			BusinessID:      req.BusinessID,
			StaffID:         req.StaffID,
			ServiceID:       req.ServiceID,
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: service.DurationMinutes,
			Status:          domain.StatusConfirmed,
			ServiceName:     service.Name,
			ServicePrice:    service.Price,
			Notes:           req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Сериализуемая транзакция исчерпала попытки из-за конкурентных запросов.
		// Оба менеджера транзакций сигнализируют об этом своим sentinel
		if errors.Is(err, txmanager.ErrBusy) || errors.Is(err, simpletxmanager.ErrBusy) {
			uc.logger.Warn("CreateBooking: transaction retries exhausted for staff=%d, date=%s",
				req.StaffID, req.Date.Format(domain.DateFormat))
			return nil, ErrBusy
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// Конвертируем в response
	return &Response{
		ID:              result.ID,
		CustomerID:      result.CustomerID,
		BusinessID:      result.BusinessID,
		StaffID:         result.StaffID,
		ServiceID:       result.ServiceID,
		BookingDate:     result.BookingDate,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		ServicePrice:    result.ServicePrice,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}
