package get_combined_availability

import (
	"time"

	"github.com/salonmarket/booking-service/internal/domain"
	getCombinedAvailability "github.com/salonmarket/booking-service/internal/usecase/get_combined_availability"
)

// CombinedAvailabilityResponse HTTP response model
type CombinedAvailabilityResponse struct {
	Date            string            `json:"date"`
	BusinessID      int64             `json:"businessId"`
	ServiceID       int64             `json:"serviceId"`
	DurationMinutes int               `json:"durationMinutes"`
	Staff           []StaffSlotsModel `json:"staff"`
}

// StaffSlotsModel доступные времена начала одного сотрудника
type StaffSlotsModel struct {
	StaffID int64    `json:"staffId"`
	Slots   []string `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getCombinedAvailability.Response) *CombinedAvailabilityResponse {
	staff := make([]StaffSlotsModel, len(resp.Staff))
	for i, s := range resp.Staff {
		slots := make([]string, len(s.Slots))
		for j, slot := range s.Slots {
			slots[j] = slot.String()
		}
		staff[i] = StaffSlotsModel{StaffID: s.StaffID, Slots: slots}
	}

	return &CombinedAvailabilityResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		BusinessID:      resp.BusinessID,
		ServiceID:       resp.ServiceID,
		DurationMinutes: resp.DurationMinutes,
		Staff:           staff,
	}
}

// ToUseCaseRequest создает запрос use case из параметров маршрута
func ToUseCaseRequest(businessID, serviceID int64, dateStr string) (*getCombinedAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getCombinedAvailability.Request{
		BusinessID: businessID,
		ServiceID:  serviceID,
		Date:       date,
	}, nil
}
