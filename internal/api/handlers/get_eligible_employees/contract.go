package get_eligible_employees

import (
	"context"

	"github.com/manueles91/stella-booking-service/internal/domain"
)

type CatalogService interface {
	GetBookableItem(ctx context.Context, itemType domain.ItemType, itemID int64, discountCode string) (*domain.BookableItem, error)
}

type StaffService interface {
	ListEligibleEmployees(ctx context.Context, item *domain.BookableItem) ([]*domain.Employee, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
