package get_month_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/manueles91/stella-booking-service/internal/api/handlers"
	"github.com/manueles91/stella-booking-service/internal/domain"
	getMonthAvailability "github.com/manueles91/stella-booking-service/internal/usecase/get_month_availability"
	"github.com/manueles91/stella-booking-service/pkg/ptr"
)

const (
	msgInvalidItemType   = "некорректный тип позиции, ожидается service или combo"
	msgMissingItemID     = "ID позиции обязателен"
	msgInvalidItemID     = "некорректный ID позиции"
	msgInvalidYear       = "некорректный год"
	msgInvalidMonth      = "некорректный месяц, ожидается 1-12"
	msgInvalidEmployeeID = "некорректный ID мастера"
	msgItemNotFound      = "позиция не найдена"
	msgTemporarilyDown   = "сервис временно недоступен, попробуйте позже"
)

type Handler struct {
	useCase GetMonthAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetMonthAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/month
// Query params: itemType (required), itemId (required), year (required),
// month (required, 1-12), employeeId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	itemType := domain.ItemType(query.Get("itemType"))
	if itemType != domain.ItemService && itemType != domain.ItemCombo {
		h.logger.Warn("GET /availability/month - Invalid item type: %q", query.Get("itemType"))
		handlers.RespondBadRequest(w, msgInvalidItemType)
		return
	}

	itemIDStr := query.Get("itemId")
	if itemIDStr == "" {
		h.logger.Warn("GET /availability/month - Missing item ID")
		handlers.RespondBadRequest(w, msgMissingItemID)
		return
	}

	itemID, err := strconv.ParseInt(itemIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /availability/month - Invalid item ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidItemID)
		return
	}

	year, err := strconv.Atoi(query.Get("year"))
	if err != nil {
		h.logger.Warn("GET /availability/month - Invalid year: %v", err)
		handlers.RespondBadRequest(w, msgInvalidYear)
		return
	}

	monthNum, err := strconv.Atoi(query.Get("month"))
	if err != nil || monthNum < 1 || monthNum > 12 {
		h.logger.Warn("GET /availability/month - Invalid month: %q", query.Get("month"))
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	var employeeID *int64
	if employeeIDStr := query.Get("employeeId"); employeeIDStr != "" {
		id, err := strconv.ParseInt(employeeIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /availability/month - Invalid employee ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidEmployeeID)
			return
		}
		employeeID = ptr.Ptr(id)
	}

	result, err := h.useCase.Execute(r.Context(), &getMonthAvailability.Request{
		ItemType:   itemType,
		ItemID:     itemID,
		Year:       year,
		Month:      time.Month(monthNum),
		EmployeeID: employeeID,
	})
	if err != nil {
		switch {
		case errors.Is(err, getMonthAvailability.ErrItemNotFound):
			h.logger.Warn("GET /availability/month - Item not found: type=%s, id=%d", itemType, itemID)
			handlers.RespondNotFound(w, msgItemNotFound)

		case errors.Is(err, getMonthAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability/month - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, getMonthAvailability.ErrUpstreamUnavailable):
			h.logger.Error("GET /availability/month - Upstream unavailable: type=%s, id=%d, error=%v",
				itemType, itemID, err)
			handlers.RespondServiceUnavailable(w, msgTemporarilyDown)

		default:
			h.logger.Error("GET /availability/month - Failed to get month availability: type=%s, id=%d, error=%v",
				itemType, itemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability/month - Month availability retrieved successfully: type=%s, id=%d, month=%d-%02d, failed_days=%d",
		itemType, itemID, year, monthNum, result.FailedDays)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
