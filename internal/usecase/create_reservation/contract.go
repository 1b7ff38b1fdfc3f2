package create_reservation

import (
	"context"
	"time"

	"github.com/manueles91/stella-booking-service/internal/domain"
)

// CatalogService интерфейс сервиса каталога
type CatalogService interface {
	// GetBookableItem возвращает позицию с итоговой ценой и длительностью
	GetBookableItem(ctx context.Context, itemType domain.ItemType, itemID int64, discountCode string) (*domain.BookableItem, error)
}

// StaffService интерфейс сервиса персонала
type StaffService interface {
	GetEmployee(ctx context.Context, id int64) (*domain.Employee, error)
}

// AvailabilityRepository интерфейс репозитория недельных расписаний
type AvailabilityRepository interface {
	ListAvailabilityForWeekday(ctx context.Context, employeeIDs []int64, weekday int) ([]*domain.EmployeeAvailability, error)
}

// CommitmentsRepository интерфейс репозитория обязательств
type CommitmentsRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	ListByEmployeesAndDate(ctx context.Context, employeeIDs []int64, date time.Time) ([]*domain.Reservation, error)
	ListBlockedByEmployeesAndDate(ctx context.Context, employeeIDs []int64, date time.Time) ([]*domain.BlockedInterval, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
