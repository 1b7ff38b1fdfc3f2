package get_bookable_items

import (
	"net/http"
	"strconv"

	"github.com/manueles91/stella-booking-service/internal/api/handlers"
	catalogSvc "github.com/manueles91/stella-booking-service/internal/service/catalog"
	"github.com/manueles91/stella-booking-service/pkg/ptr"
)

const (
	msgInvalidCategoryID = "некорректный ID категории"
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

// Handle GET /api/v1/catalog/items
// Query params: categoryId (optional), discountCode (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	opts := catalogSvc.ListOptions{
		DiscountCode: r.URL.Query().Get("discountCode"),
	}

	// Фильтр по категории (опционально)
	if categoryIDStr := r.URL.Query().Get("categoryId"); categoryIDStr != "" {
		categoryID, err := strconv.ParseInt(categoryIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /catalog/items - Invalid category ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCategoryID)
			return
		}
		opts.CategoryID = ptr.Ptr(categoryID)
	}

	items, err := h.service.ListBookableItems(r.Context(), opts)
	if err != nil {
		h.logger.Error("GET /catalog/items - Failed to list items: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /catalog/items - Items retrieved successfully: count=%d", len(items))
	handlers.RespondJSON(w, http.StatusOK, FromDomainItems(items))
}
