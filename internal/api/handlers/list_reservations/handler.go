package list_reservations

import (
	"net/http"
	"time"

	"github.com/manueles91/stella-booking-service/internal/api/handlers"
	getReservation "github.com/manueles91/stella-booking-service/internal/api/handlers/get_reservation"
	"github.com/manueles91/stella-booking-service/internal/api/middleware"
	"github.com/manueles91/stella-booking-service/internal/domain"
	"github.com/manueles91/stella-booking-service/pkg/ptr"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidStatus = "некорректный статус записи"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// ListResponse HTTP модель ответа со списком записей
type ListResponse struct {
	Reservations []*getReservation.ReservationResponse `json:"reservations"`
}

// Handle GET /api/v1/reservations
// Query params: startDate, endDate (YYYY-MM-DD), status, includeCancelled -
// все опциональны. Клиент всегда видит только собственные записи.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()

	filter := domain.ReservationsFilter{
		ClientID:         ptr.Ptr(clientID),
		IncludeCancelled: query.Get("includeCancelled") == "true",
	}

	if startDateStr := query.Get("startDate"); startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			h.logger.Warn("GET /reservations - Invalid start date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		filter.StartDate = &startDate
	}

	if endDateStr := query.Get("endDate"); endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			h.logger.Warn("GET /reservations - Invalid end date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		filter.EndDate = &endDate
	}

	if statusStr := query.Get("status"); statusStr != "" {
		status := domain.ReservationStatus(statusStr)
		if !domain.ValidStatus(status) {
			h.logger.Warn("GET /reservations - Invalid status: %q", statusStr)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		filter.Status = &status
	}

	reservations, err := h.service.ListReservations(r.Context(), filter)
	if err != nil {
		h.logger.Error("GET /reservations - Failed to list reservations: client_id=%d, error=%v", clientID, err)
		handlers.RespondInternalError(w)
		return
	}

	resp := &ListResponse{Reservations: make([]*getReservation.ReservationResponse, 0, len(reservations))}
	for _, res := range reservations {
		resp.Reservations = append(resp.Reservations, getReservation.FromDomainReservation(res))
	}

	h.logger.Info("GET /reservations - Reservations retrieved successfully: client_id=%d, count=%d",
		clientID, len(reservations))
	handlers.RespondJSON(w, http.StatusOK, resp)
}
