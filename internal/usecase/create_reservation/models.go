package create_reservation

import (
	"time"

	"github.com/manueles91/stella-booking-service/internal/domain"
	"github.com/manueles91/stella-booking-service/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	ClientID     int64            // ID клиента
	EmployeeID   int64            // ID мастера
	ItemType     domain.ItemType  // Тип позиции (service/combo)
	ItemID       int64            // ID позиции
	Date         time.Time        // Дата записи (без времени)
	StartTime    types.TimeString // Время начала слота (например, "10:00")
	DiscountCode string           // Код приватной скидки (опционально)
	Notes        *string          // Пожелания клиента (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64            // ID созданной записи
	ClientID        int64            // ID клиента
	EmployeeID      int64            // ID мастера
	ItemType        domain.ItemType  // Тип позиции
	ItemID          int64            // ID позиции
	Date            time.Time        // Дата записи
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус записи

	// Денормализованный снимок позиции на момент записи
	ItemName   string // Название позиции
	PriceCents int64  // Итоговая цена в центах (после скидки)
	Notes      *string

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}

// Policy бизнес-параметры записи, задаются конфигурацией
type Policy struct {
	// CadenceMinutes шаг сетки слотов; время начала обязано лежать на сетке
	CadenceMinutes int
	// BusinessHours рабочие часы салона - fallback, когда у мастера
	// нет расписания на этот день недели, и якорь сетки слотов
	BusinessHours types.Interval
	// ClosedWeekdays дни недели, когда салон закрыт всегда (0=воскресенье)
	ClosedWeekdays []int
	// PendingBlocks блокируют ли слот брони в статусе pending
	PendingBlocks bool
}

// IsClosedWeekday сообщает, закрыт ли салон в этот день недели
func (p Policy) IsClosedWeekday(weekday time.Weekday) bool {
	for _, wd := range p.ClosedWeekdays {
		if int(weekday) == wd {
			return true
		}
	}
	return false
}
