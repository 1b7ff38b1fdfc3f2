package get_month_availability

import (
	"context"
	"time"

	getAvailableSlots "github.com/manueles91/stella-booking-service/internal/usecase/get_available_slots"
)

// SlotsUseCase интерфейс usecase генерации слотов.
// Прекомпьют месяца - это тот же генератор, вызванный по разу на каждый день.
type SlotsUseCase interface {
	Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// MetricsRecorder интерфейс доменных метрик (опционален, допускается nil)
type MetricsRecorder interface {
	ObserveMonthPrecompute(duration time.Duration, failedDays int)
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
