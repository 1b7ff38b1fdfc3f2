package get_bookable_item

import (
	"context"

	"github.com/manueles91/stella-booking-service/internal/domain"
)

type CatalogService interface {
	GetBookableItem(ctx context.Context, itemType domain.ItemType, itemID int64, discountCode string) (*domain.BookableItem, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
