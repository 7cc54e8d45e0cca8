package models

import (
	"time"

	"github.com/salonmarket/booking-service/internal/domain"
)

// Request модели

// JoinWaitlistRequest запрос на добавление в лист ожидания
type JoinWaitlistRequest struct {
	BusinessID         int64   `json:"businessId"`
	ServiceID          int64   `json:"serviceId"`
	CustomerName       string  `json:"customerName"`
	Email              *string `json:"email,omitempty"`
	Phone              *string `json:"phone,omitempty"`
	Date               string  `json:"date"`                         // "2025-10-15"
	PreferredTimeRange string  `json:"preferredTimeRange,omitempty"` // any, morning, afternoon, evening
}

// Response модели

// WaitlistEntryResponse ответ с данными записи листа ожидания
type WaitlistEntryResponse struct {
	ID                 int64      `json:"id"`
	BusinessID         int64      `json:"businessId"`
	ServiceID          int64      `json:"serviceId"`
	CustomerName       string     `json:"customerName"`
	Email              *string    `json:"email,omitempty"`
	Phone              *string    `json:"phone,omitempty"`
	Date               string     `json:"date"`
	PreferredTimeRange string     `json:"preferredTimeRange"`
	Status             string     `json:"status"`
	CreatedAt          time.Time  `json:"createdAt"`
	NotifiedAt         *time.Time `json:"notifiedAt,omitempty"`
}

// Методы конвертации

// FromDomainEntry конвертирует domain модель в DTO
func FromDomainEntry(e *domain.WaitlistEntry) *WaitlistEntryResponse {
	if e == nil {
		return nil
	}

	return &WaitlistEntryResponse{
		ID:                 e.ID,
		BusinessID:         e.BusinessID,
		ServiceID:          e.ServiceID,
		CustomerName:       e.CustomerName,
		Email:              e.Email,
		Phone:              e.Phone,
		Date:               e.Date.Format(domain.DateFormat),
		PreferredTimeRange: string(e.PreferredTimeRange),
		Status:             string(e.Status),
		CreatedAt:          e.CreatedAt,
		NotifiedAt:         e.NotifiedAt,
	}
}
