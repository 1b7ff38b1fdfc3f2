package catalog

import (
	"context"
	"time"

	"github.com/manueles91/stella-booking-service/internal/domain"
)

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	ListActiveServices(ctx context.Context) ([]*domain.Service, error)
	GetServiceByID(ctx context.Context, id int64) (*domain.Service, error)
	ListOfferableCombos(ctx context.Context, day time.Time) ([]*domain.Combo, error)
	GetComboByID(ctx context.Context, id int64) (*domain.Combo, error)
	ListActiveDiscounts(ctx context.Context) ([]*domain.Discount, error)
	ListCategories(ctx context.Context) ([]*domain.Category, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
