package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/manueles91/stella-booking-service/internal/api/handlers"
	"github.com/manueles91/stella-booking-service/internal/domain"
	getAvailableSlots "github.com/manueles91/stella-booking-service/internal/usecase/get_available_slots"
	"github.com/manueles91/stella-booking-service/pkg/ptr"
)

const (
	msgInvalidItemType   = "некорректный тип позиции, ожидается service или combo"
	msgMissingItemID     = "ID позиции обязателен"
	msgInvalidItemID     = "некорректный ID позиции"
	msgMissingDate       = "дата обязательна"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidEmployeeID = "некорректный ID мастера"
	msgItemNotFound      = "позиция не найдена"
	msgEmployeeNotFound  = "мастер не найден"
	msgTemporarilyDown   = "сервис временно недоступен, попробуйте позже"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/slots
// Query params: itemType (required), itemId (required), date (required, YYYY-MM-DD),
// employeeId (optional), discountCode (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	itemType := domain.ItemType(query.Get("itemType"))
	if itemType != domain.ItemService && itemType != domain.ItemCombo {
		h.logger.Warn("GET /availability/slots - Invalid item type: %q", query.Get("itemType"))
		handlers.RespondBadRequest(w, msgInvalidItemType)
		return
	}

	itemIDStr := query.Get("itemId")
	if itemIDStr == "" {
		h.logger.Warn("GET /availability/slots - Missing item ID")
		handlers.RespondBadRequest(w, msgMissingItemID)
		return
	}

	itemID, err := strconv.ParseInt(itemIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /availability/slots - Invalid item ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidItemID)
		return
	}

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /availability/slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Фильтр по мастеру (опционально)
	var employeeID *int64
	if employeeIDStr := query.Get("employeeId"); employeeIDStr != "" {
		id, err := strconv.ParseInt(employeeIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /availability/slots - Invalid employee ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidEmployeeID)
			return
		}
		employeeID = ptr.Ptr(id)
	}

	useCaseReq, err := ToUseCaseRequest(itemType, itemID, dateStr, employeeID, query.Get("discountCode"))
	if err != nil {
		h.logger.Warn("GET /availability/slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrItemNotFound):
			h.logger.Warn("GET /availability/slots - Item not found: type=%s, id=%d", itemType, itemID)
			handlers.RespondNotFound(w, msgItemNotFound)

		case errors.Is(err, getAvailableSlots.ErrEmployeeNotFound):
			h.logger.Warn("GET /availability/slots - Employee not found: employee_id=%v", employeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /availability/slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, getAvailableSlots.ErrUpstreamUnavailable):
			h.logger.Error("GET /availability/slots - Upstream unavailable: type=%s, id=%d, error=%v",
				itemType, itemID, err)
			handlers.RespondServiceUnavailable(w, msgTemporarilyDown)

		default:
			h.logger.Error("GET /availability/slots - Failed to get slots: type=%s, id=%d, error=%v",
				itemType, itemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability/slots - Slots retrieved successfully: type=%s, id=%d, date=%s, slots_count=%d",
		itemType, itemID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
