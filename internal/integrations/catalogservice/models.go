package catalogservice

import "github.com/salonmarket/booking-service/internal/domain"

// Business модель бизнеса (салона) из CatalogService
type Business struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Timezone   string  `json:"timezone"`
	Active     bool    `json:"active"`
	ManagerIDs []int64 `json:"manager_ids"`
}

// Staff модель сотрудника из CatalogService
type Staff struct {
	ID         int64    `json:"id"`
	BusinessID int64    `json:"business_id"`
	Name       string   `json:"name"`
	Active     bool     `json:"active"`
	Skills     []string `json:"skills"`
}

// Service модель услуги из CatalogService
// StaffIDs - список сотрудников, которые могут выполнять услугу;
// бронирование возможно только с сотрудником из этого списка
type Service struct {
	ID              int64    `json:"id"`
	BusinessID      int64    `json:"business_id"`
	Name            string   `json:"name"`
	DurationMinutes int      `json:"duration_minutes"`
	Price           *float64 `json:"price,omitempty"`
	Active          bool     `json:"active"`
	StaffIDs        []int64  `json:"staff_ids"`
	RequiredSkill   *string  `json:"required_skill,omitempty"`
}

// EligibleStaff проверяет, что сотрудник входит в список исполнителей услуги
func (s *Service) EligibleStaff(staffID int64) bool {
	for _, id := range s.StaffIDs {
		if id == staffID {
			return true
		}
	}
	return false
}

// ValidDuration проверяет, что длительность услуги в допустимых пределах.
// CatalogService может отдать услугу с битой длительностью, расчет
// слотов по ней не имеет смысла
func (s *Service) ValidDuration() bool {
	return s.DurationMinutes >= domain.MinServiceDurationMinutes &&
		s.DurationMinutes <= domain.MaxServiceDurationMinutes
}

// ErrorResponse модель ошибки от CatalogService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
