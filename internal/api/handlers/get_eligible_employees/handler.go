package get_eligible_employees

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/manueles91/stella-booking-service/internal/api/handlers"
	"github.com/manueles91/stella-booking-service/internal/domain"
	catalogSvc "github.com/manueles91/stella-booking-service/internal/service/catalog"
)

const (
	msgInvalidItemType = "некорректный тип позиции, ожидается service или combo"
	msgInvalidItemID   = "некорректный ID позиции"
	msgItemNotFound    = "позиция не найдена"
)

type Handler struct {
	catalogService CatalogService
	staffService   StaffService
	logger         Logger
}

func NewHandler(catalogService CatalogService, staffService StaffService, logger Logger) *Handler {
	return &Handler{
		catalogService: catalogService,
		staffService:   staffService,
		logger:         logger,
	}
}

// Handle GET /api/v1/catalog/items/{itemType}/{itemId}/employees
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	itemType := domain.ItemType(vars["itemType"])
	if itemType != domain.ItemService && itemType != domain.ItemCombo {
		h.logger.Warn("GET /catalog/items/{type}/{id}/employees - Invalid item type: %q", vars["itemType"])
		handlers.RespondBadRequest(w, msgInvalidItemType)
		return
	}

	itemID, err := strconv.ParseInt(vars["itemId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /catalog/items/{type}/{id}/employees - Invalid item ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidItemID)
		return
	}

	// Позиция нужна, чтобы знать состав услуг для проверки сертификации
	item, err := h.catalogService.GetBookableItem(r.Context(), itemType, itemID, "")
	if err != nil {
		switch {
		case errors.Is(err, catalogSvc.ErrItemNotFound):
			h.logger.Warn("GET /catalog/items/{type}/{id}/employees - Item not found: type=%s, id=%d", itemType, itemID)
			handlers.RespondNotFound(w, msgItemNotFound)

		default:
			h.logger.Error("GET /catalog/items/{type}/{id}/employees - Failed to get item: type=%s, id=%d, error=%v",
				itemType, itemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	employees, err := h.staffService.ListEligibleEmployees(r.Context(), item)
	if err != nil {
		h.logger.Error("GET /catalog/items/{type}/{id}/employees - Failed to list employees: type=%s, id=%d, error=%v",
			itemType, itemID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /catalog/items/{type}/{id}/employees - Employees retrieved successfully: type=%s, id=%d, count=%d",
		itemType, itemID, len(employees))
	handlers.RespondJSON(w, http.StatusOK, FromDomainEmployees(employees))
}
