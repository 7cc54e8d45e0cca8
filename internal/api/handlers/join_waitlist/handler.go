package join_waitlist

import (
	"errors"
	"net/http"

	"github.com/salonmarket/booking-service/internal/api/handlers"
	"github.com/salonmarket/booking-service/internal/service/waitlist"
	"github.com/salonmarket/booking-service/internal/service/waitlist/models"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgBusinessNotFound    = "бизнес не найден"
	msgServiceNotFound     = "услуга не найдена"
	msgNoContact           = "необходимо указать email или телефон"
	msgInvalidWaitlistData = "некорректные данные листа ожидания"
)

type Handler struct {
	service WaitlistService
	logger  Logger
}

func NewHandler(service WaitlistService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/waitlist
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.JoinWaitlistRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /waitlist - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	entry, err := h.service.Join(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, waitlist.ErrBusinessNotFound):
			h.logger.Warn("POST /waitlist - Business not found: business_id=%d", req.BusinessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, waitlist.ErrServiceNotFound):
			h.logger.Warn("POST /waitlist - Service not found: business_id=%d, service_id=%d",
				req.BusinessID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, waitlist.ErrNoContact):
			h.logger.Warn("POST /waitlist - No contact provided: business_id=%d", req.BusinessID)
			handlers.RespondBadRequest(w, msgNoContact)

		case errors.Is(err, waitlist.ErrInvalidInput):
			h.logger.Warn("POST /waitlist - Invalid input: business_id=%d, error=%v", req.BusinessID, err)
			handlers.RespondBadRequest(w, msgInvalidWaitlistData)

		default:
			h.logger.Error("POST /waitlist - Failed to join waitlist: business_id=%d, error=%v",
				req.BusinessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /waitlist - Entry created successfully: entry_id=%d, business_id=%d, date=%s",
		entry.ID, entry.BusinessID, entry.Date)
	handlers.RespondJSON(w, http.StatusCreated, entry)
}
