package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/salonmarket/booking-service/internal/availability"
	"github.com/salonmarket/booking-service/internal/domain"
	scheduleRepo "github.com/salonmarket/booking-service/internal/infra/storage/schedule"
	timeoffRepo "github.com/salonmarket/booking-service/internal/infra/storage/timeoff"
	catalogClient "github.com/salonmarket/booking-service/internal/integrations/catalogservice"
	"github.com/salonmarket/booking-service/internal/service/schedule/models"
)

// maxTimeOffDuration ограничивает длину одной записи time-off
const maxTimeOffDuration = 90 * 24 * time.Hour

// Service сервис для работы с расписаниями сотрудников и time-off
type Service struct {
	scheduleRepo  ScheduleRepository
	timeOffRepo   TimeOffRepository
	catalogClient CatalogServiceClient
	txManager     TransactionManager
	logger        Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	scheduleRepo ScheduleRepository,
	timeOffRepo TimeOffRepository,
	catalogClient CatalogServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo:  scheduleRepo,
		timeOffRepo:   timeOffRepo,
		catalogClient: catalogClient,
		txManager:     txManager,
		logger:        logger,
	}
}

// GetWeek получает недельное расписание сотрудника
// Публичный метод - доступен всем
func (s *Service) GetWeek(ctx context.Context, businessID, staffID int64) (*models.WeekResponse, error) {
	s.logger.Info("GetWeek: fetching schedule for staff=%d, business=%d", staffID, businessID)

	// Проверяем, что сотрудник принадлежит бизнесу
	if _, err := s.getStaff(ctx, businessID, staffID); err != nil {
		return nil, err
	}

	week, err := s.scheduleRepo.GetWeek(ctx, staffID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("GetWeek: schedule not found for staff=%d", staffID)
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("GetWeek: repository error for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: GetWeek - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetWeek: successfully fetched schedule for staff=%d", staffID)
	return models.FromDomainWeek(staffID, week), nil
}

// ReplaceWeek заменяет недельное расписание сотрудника целиком
// Доступно только менеджерам бизнеса
func (s *Service) ReplaceWeek(ctx context.Context, staffID int64, req *models.UpdateWeekRequest) (*models.WeekResponse, error) {
	s.logger.Info("ReplaceWeek: updating schedule for staff=%d, business=%d by user=%d",
		staffID, req.BusinessID, req.UserID)

	// 1. Валидируем и конвертируем расписание
	week, err := req.ToDomainWeek()
	if err != nil {
		s.logger.Warn("ReplaceWeek: validation failed for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Проверяем права доступа (только менеджер бизнеса)
	if err := s.checkManagerAccess(ctx, req.BusinessID, req.UserID); err != nil {
		return nil, err
	}

	// 3. Проверяем, что сотрудник принадлежит бизнесу
	if _, err := s.getStaff(ctx, req.BusinessID, staffID); err != nil {
		return nil, err
	}

	// 4. Заменяем расписание. Удаление старых строк и вставка новых
	// выполняются в одной транзакции, иначе сбой между ними оставит
	// сотрудника с пустым расписанием
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.scheduleRepo.ReplaceWeek(txCtx, staffID, req.BusinessID, week)
	})
	if err != nil {
		s.logger.Error("ReplaceWeek: repository error for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: ReplaceWeek - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ReplaceWeek: successfully updated schedule for staff=%d", staffID)
	return models.FromDomainWeek(staffID, week), nil
}

// CreateTimeOff создает запись time-off для сотрудника или всего бизнеса
// Доступно только менеджерам бизнеса
func (s *Service) CreateTimeOff(ctx context.Context, req *models.CreateTimeOffRequest) (*models.TimeOffResponse, error) {
	s.logger.Info("CreateTimeOff: creating time off for business=%d, staff=%v by user=%d",
		req.BusinessID, req.StaffID, req.UserID)

	// 1. Валидируем интервал
	if !req.EndsAt.After(req.StartsAt) {
		s.logger.Warn("CreateTimeOff: invalid interval for business=%d", req.BusinessID)
		return nil, fmt.Errorf("%w: endsAt must be after startsAt", ErrInvalidInput)
	}
	if req.EndsAt.Sub(req.StartsAt) > maxTimeOffDuration {
		s.logger.Warn("CreateTimeOff: interval too long for business=%d", req.BusinessID)
		return nil, fmt.Errorf("%w: time off interval is too long", ErrInvalidInput)
	}
	if len(req.Reason) > domain.MaxTimeOffReasonLength {
		s.logger.Warn("CreateTimeOff: reason too long for business=%d", req.BusinessID)
		return nil, fmt.Errorf("%w: reason must not exceed %d characters",
			ErrInvalidInput, domain.MaxTimeOffReasonLength)
	}

	// 2. Проверяем права доступа (только менеджер бизнеса)
	if err := s.checkManagerAccess(ctx, req.BusinessID, req.UserID); err != nil {
		return nil, err
	}

	// 3. Если указан сотрудник, проверяем его принадлежность бизнесу
	if req.StaffID != nil {
		if _, err := s.getStaff(ctx, req.BusinessID, *req.StaffID); err != nil {
			return nil, err
		}
	}

	// 4. Создаем запись
	entry, err := s.timeOffRepo.Create(ctx, req.ToDomainTimeOff())
	if err != nil {
		s.logger.Error("CreateTimeOff: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: CreateTimeOff - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateTimeOff: successfully created time off id=%d", entry.ID)
	return models.FromDomainTimeOff(entry), nil
}

// DeleteTimeOff удаляет запись time-off
// Доступно только менеджерам бизнеса
func (s *Service) DeleteTimeOff(ctx context.Context, businessID, timeOffID, userID int64) error {
	s.logger.Info("DeleteTimeOff: deleting time off id=%d for business=%d by user=%d",
		timeOffID, businessID, userID)

	// Проверяем права доступа (только менеджер бизнеса)
	if err := s.checkManagerAccess(ctx, businessID, userID); err != nil {
		return err
	}

	if err := s.timeOffRepo.Delete(ctx, businessID, timeOffID); err != nil {
		if errors.Is(err, timeoffRepo.ErrTimeOffNotFound) {
			s.logger.Warn("DeleteTimeOff: time off id=%d not found for business=%d", timeOffID, businessID)
			return ErrTimeOffNotFound
		}
		s.logger.Error("DeleteTimeOff: repository error for time off id=%d: %v", timeOffID, err)
		return fmt.Errorf("%w: DeleteTimeOff - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteTimeOff: successfully deleted time off id=%d", timeOffID)
	return nil
}

// ResolveDay резолвит рабочее окно сотрудника на дату с учетом
// недельного расписания и записей time-off.
// Сотрудник без сохраненного расписания считается нерабочим
func (s *Service) ResolveDay(ctx context.Context, businessID, staffID int64, date time.Time) (availability.ResolvedDay, error) {
	week, err := s.scheduleRepo.GetWeek(ctx, staffID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("ResolveDay: schedule not found for staff=%d, treating day as closed", staffID)
			return availability.Closed(), nil
		}
		s.logger.Error("ResolveDay: repository error for staff=%d: %v", staffID, err)
		return availability.Closed(), fmt.Errorf("%w: ResolveDay - repository error: %v", ErrInternal, err)
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	timeOff, err := s.timeOffRepo.ListOverlapping(ctx, businessID, staffID, dayStart, dayEnd)
	if err != nil {
		s.logger.Error("ResolveDay: failed to list time off for staff=%d: %v", staffID, err)
		return availability.Closed(), fmt.Errorf("%w: ResolveDay - failed to list time off: %v", ErrInternal, err)
	}

	entries := make([]domain.TimeOffEntry, 0, len(timeOff))
	for _, e := range timeOff {
		entries = append(entries, *e)
	}

	return availability.ResolveDay(*week, entries, staffID, date), nil
}

// Вспомогательные методы

// checkManagerAccess проверяет, что пользователь является менеджером бизнеса
func (s *Service) checkManagerAccess(ctx context.Context, businessID, userID int64) error {
	business, err := s.catalogClient.GetBusiness(ctx, businessID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrBusinessNotFound) {
			s.logger.Warn("checkManagerAccess: business id=%d not found", businessID)
			return ErrBusinessNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get business id=%d: %v", businessID, err)
		return fmt.Errorf("%w: checkManagerAccess - failed to get business: %v", ErrInternal, err)
	}

	for _, managerID := range business.ManagerIDs {
		if managerID == userID {
			return nil
		}
	}

	s.logger.Warn("checkManagerAccess: user=%d is not a manager of business=%d", userID, businessID)
	return ErrAccessDenied
}

// getStaff получает сотрудника бизнеса через CatalogService
func (s *Service) getStaff(ctx context.Context, businessID, staffID int64) (*catalogClient.Staff, error) {
	staff, err := s.catalogClient.GetStaff(ctx, businessID, staffID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrStaffNotFound) {
			s.logger.Warn("getStaff: staff id=%d not found in business=%d", staffID, businessID)
			return nil, ErrStaffNotFound
		}
		s.logger.Error("getStaff: failed to get staff id=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: getStaff - failed to get staff: %v", ErrInternal, err)
	}

	return staff, nil
}
