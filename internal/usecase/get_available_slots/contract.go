package get_available_slots

import (
	"context"
	"time"

	"github.com/manueles91/stella-booking-service/internal/domain"
)

// CatalogService интерфейс сервиса каталога
type CatalogService interface {
	// GetBookableItem возвращает позицию с длительностью и ценой
	GetBookableItem(ctx context.Context, itemType domain.ItemType, itemID int64, discountCode string) (*domain.BookableItem, error)
}

// StaffService интерфейс сервиса персонала
type StaffService interface {
	// ListEligibleEmployees возвращает мастеров, способных выполнить позицию целиком
	ListEligibleEmployees(ctx context.Context, item *domain.BookableItem) ([]*domain.Employee, error)
}

// AvailabilityRepository интерфейс репозитория недельных расписаний
type AvailabilityRepository interface {
	ListAvailabilityForWeekday(ctx context.Context, employeeIDs []int64, weekday int) ([]*domain.EmployeeAvailability, error)
}

// CommitmentsRepository интерфейс репозитория обязательств
type CommitmentsRepository interface {
	ListByEmployeesAndDate(ctx context.Context, employeeIDs []int64, date time.Time) ([]*domain.Reservation, error)
	ListBlockedByEmployeesAndDate(ctx context.Context, employeeIDs []int64, date time.Time) ([]*domain.BlockedInterval, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// MetricsRecorder интерфейс доменных метрик (опционален, допускается nil)
type MetricsRecorder interface {
	ObserveSlotQuery(result string)
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
