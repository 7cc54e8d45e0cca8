package waitlist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/salonmarket/booking-service/internal/domain"
	catalogClient "github.com/salonmarket/booking-service/internal/integrations/catalogservice"
	"github.com/salonmarket/booking-service/internal/service/waitlist/models"
)

// Service сервис листа ожидания: запись клиентов, подбор после отмены
// бронирования и протухание устаревших записей
type Service struct {
	waitlistRepo  WaitlistRepository
	catalogClient CatalogServiceClient
	notifier      Notifier
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса листа ожидания
func NewService(
	waitlistRepo WaitlistRepository,
	catalogClient CatalogServiceClient,
	notifier Notifier,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		waitlistRepo:  waitlistRepo,
		catalogClient: catalogClient,
		notifier:      notifier,
		timeProvider:  timeProvider,
		logger:        logger,
	}
}

// Join добавляет клиента в лист ожидания на дату
func (s *Service) Join(ctx context.Context, req *models.JoinWaitlistRequest) (*models.WaitlistEntryResponse, error) {
	s.logger.Info("Join: adding %q to waitlist for business=%d, service=%d, date=%s",
		req.CustomerName, req.BusinessID, req.ServiceID, req.Date)

	// 1. Валидируем входные данные
	entry, err := s.validateJoinRequest(req)
	if err != nil {
		s.logger.Warn("Join: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование бизнеса и услуги
	if _, err := s.catalogClient.GetBusiness(ctx, req.BusinessID); err != nil {
		if errors.Is(err, catalogClient.ErrBusinessNotFound) {
			s.logger.Warn("Join: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		s.logger.Error("Join: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: Join - failed to get business: %v", ErrInternal, err)
	}

	service, err := s.catalogClient.GetService(ctx, req.BusinessID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			s.logger.Warn("Join: service id=%d not found in business=%d", req.ServiceID, req.BusinessID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Join: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: Join - failed to get service: %v", ErrInternal, err)
	}
	if !service.Active {
		s.logger.Warn("Join: service id=%d is not active", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 3. Создаем запись
	created, err := s.waitlistRepo.Create(ctx, entry)
	if err != nil {
		s.logger.Error("Join: repository error: %v", err)
		return nil, fmt.Errorf("%w: Join - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Join: successfully created waitlist entry id=%d", created.ID)
	return models.FromDomainEntry(created), nil
}

// MatchCancellation подбирает участников листа ожидания под освободившийся
// слот после отмены бронирования и уведомляет их.
//
// Правила подбора:
// - кандидаты: pending записи на тот же бизнес, услугу и дату, старые первыми
// - временное предпочтение записи должно покрывать время отмененного слота
// - уведомляется не более domain.MaxWaitlistNotifications участников
// - уведомленная запись переходит в notified и выбывает из будущих подборов
//
// Ошибки подбора логируются и не прерывают обработку остальных кандидатов
func (s *Service) MatchCancellation(ctx context.Context, booking *domain.Booking) {
	s.logger.Info("MatchCancellation: matching waitlist for cancelled booking id=%d (business=%d, service=%d, date=%s, time=%s)",
		booking.ID, booking.BusinessID, booking.ServiceID,
		booking.BookingDate.Format(domain.DateFormat), booking.StartTime)

	entries, err := s.waitlistRepo.GetPendingByTarget(ctx, booking.BusinessID, booking.ServiceID, booking.BookingDate)
	if err != nil {
		s.logger.Error("MatchCancellation: failed to fetch waitlist for booking id=%d: %v", booking.ID, err)
		return
	}

	if len(entries) == 0 {
		s.logger.Info("MatchCancellation: no pending waitlist entries for booking id=%d", booking.ID)
		return
	}

	hour, err := booking.StartTime.Hour()
	if err != nil {
		s.logger.Error("MatchCancellation: invalid start time %q for booking id=%d: %v",
			booking.StartTime, booking.ID, err)
		return
	}
	bucket := domain.TimeRangeForHour(hour)

	notified := 0
	for _, entry := range entries {
		if notified >= domain.MaxWaitlistNotifications {
			break
		}

		if !entry.PreferredTimeRange.Matches(bucket) {
			continue
		}

		if !entry.HasContact() {
			s.logger.Warn("MatchCancellation: waitlist entry id=%d has no contact, skipping", entry.ID)
			continue
		}

		if err := s.notifier.NotifySlotOpened(*entry, booking.ServiceName, booking.StartTime.String()); err != nil {
			s.logger.Error("MatchCancellation: failed to notify waitlist entry id=%d: %v", entry.ID, err)
			continue
		}

		if err := s.waitlistRepo.MarkNotified(ctx, entry.ID); err != nil {
			s.logger.Error("MatchCancellation: failed to mark entry id=%d as notified: %v", entry.ID, err)
			continue
		}

		notified++
	}

	s.logger.Info("MatchCancellation: notified %d waitlist entries for booking id=%d", notified, booking.ID)
}

// ExpireStale переводит в expired все pending записи на уже прошедшие даты.
// Запускается периодически по расписанию
func (s *Service) ExpireStale(ctx context.Context) {
	now := s.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	count, err := s.waitlistRepo.ExpireBefore(ctx, today)
	if err != nil {
		s.logger.Error("ExpireStale: failed to expire waitlist entries: %v", err)
		return
	}

	if count > 0 {
		s.logger.Info("ExpireStale: expired %d stale waitlist entries", count)
	}
}

// validateJoinRequest валидирует запрос на вступление в лист ожидания
// и конвертирует его в domain модель
func (s *Service) validateJoinRequest(req *models.JoinWaitlistRequest) (*domain.WaitlistEntry, error) {
	if req.BusinessID <= 0 {
		return nil, fmt.Errorf("%w: businessId is required", ErrInvalidInput)
	}
	if req.ServiceID <= 0 {
		return nil, fmt.Errorf("%w: serviceId is required", ErrInvalidInput)
	}
	if req.CustomerName == "" {
		return nil, fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}
	if len(req.CustomerName) > domain.MaxCustomerNameLength {
		return nil, fmt.Errorf("%w: customerName is too long", ErrInvalidInput)
	}

	hasEmail := req.Email != nil && *req.Email != ""
	hasPhone := req.Phone != nil && *req.Phone != ""
	if !hasEmail && !hasPhone {
		return nil, ErrNoContact
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", ErrInvalidInput)
	}

	now := s.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if date.Before(today) {
		return nil, fmt.Errorf("%w: date must not be in the past", ErrInvalidInput)
	}

	timeRange := domain.TimeRangeAny
	if req.PreferredTimeRange != "" {
		timeRange = domain.TimeRange(req.PreferredTimeRange)
		if !timeRange.IsValid() {
			return nil, fmt.Errorf("%w: invalid preferredTimeRange", ErrInvalidInput)
		}
	}

	return &domain.WaitlistEntry{
		BusinessID:         req.BusinessID,
		ServiceID:          req.ServiceID,
		CustomerName:       req.CustomerName,
		Email:              req.Email,
		Phone:              req.Phone,
		Date:               date,
		PreferredTimeRange: timeRange,
		Status:             domain.WaitlistStatusPending,
	}, nil
}
