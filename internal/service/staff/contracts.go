package staff

import (
	"context"

	"github.com/manueles91/stella-booking-service/internal/domain"
)

// StaffRepository интерфейс репозитория персонала
type StaffRepository interface {
	ListActiveEmployees(ctx context.Context) ([]*domain.Employee, error)
	GetEmployeeByID(ctx context.Context, id int64) (*domain.Employee, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
