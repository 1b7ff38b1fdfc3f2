package get_bookable_item

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/manueles91/stella-booking-service/internal/api/handlers"
	getBookableItems "github.com/manueles91/stella-booking-service/internal/api/handlers/get_bookable_items"
	"github.com/manueles91/stella-booking-service/internal/domain"
	catalogSvc "github.com/manueles91/stella-booking-service/internal/service/catalog"
)

const (
	msgInvalidItemType = "некорректный тип позиции, ожидается service или combo"
	msgInvalidItemID   = "некорректный ID позиции"
	msgItemNotFound    = "позиция не найдена"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/catalog/items/{itemType}/{itemId}
// Query params: discountCode (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	itemType := domain.ItemType(vars["itemType"])
	if itemType != domain.ItemService && itemType != domain.ItemCombo {
		h.logger.Warn("GET /catalog/items/{type}/{id} - Invalid item type: %q", vars["itemType"])
		handlers.RespondBadRequest(w, msgInvalidItemType)
		return
	}

	itemID, err := strconv.ParseInt(vars["itemId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /catalog/items/{type}/{id} - Invalid item ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidItemID)
		return
	}

	discountCode := r.URL.Query().Get("discountCode")

	item, err := h.service.GetBookableItem(r.Context(), itemType, itemID, discountCode)
	if err != nil {
		switch {
		case errors.Is(err, catalogSvc.ErrItemNotFound):
			h.logger.Warn("GET /catalog/items/{type}/{id} - Item not found: type=%s, id=%d", itemType, itemID)
			handlers.RespondNotFound(w, msgItemNotFound)

		default:
			h.logger.Error("GET /catalog/items/{type}/{id} - Failed to get item: type=%s, id=%d, error=%v",
				itemType, itemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /catalog/items/{type}/{id} - Item retrieved successfully: type=%s, id=%d", itemType, itemID)
	handlers.RespondJSON(w, http.StatusOK, getBookableItems.FromDomainItem(item))
}
