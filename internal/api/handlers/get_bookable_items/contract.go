package get_bookable_items

import (
	"context"

	"github.com/manueles91/stella-booking-service/internal/domain"
	catalogSvc "github.com/manueles91/stella-booking-service/internal/service/catalog"
)

type CatalogService interface {
	ListBookableItems(ctx context.Context, opts catalogSvc.ListOptions) ([]*domain.BookableItem, error)
	ListCategories(ctx context.Context) ([]*domain.Category, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
