package get_available_slots

import (
	"time"

	"github.com/manueles91/stella-booking-service/internal/domain"
	"github.com/manueles91/stella-booking-service/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ClientID     int64            // ID клиента (для логирования, на результат не влияет)
	ItemType     domain.ItemType  // Тип позиции: услуга или комбо
	ItemID       int64            // ID позиции
	Date         time.Time        // Дата (без времени)
	EmployeeID   *int64           // Фильтр по мастеру (опционально)
	DiscountCode string           // Код скидки (влияет только на цену в ответе)
}

// Reason машиночитаемая причина пустого списка слотов.
// "Нет доступности" - нормальное состояние UI, а не ошибка, поэтому причина
// возвращается в ответе, а не через error.
type Reason string

const (
	ReasonNone            Reason = ""
	ReasonDateInPast      Reason = "date_in_past"
	ReasonClosedWeekday   Reason = "closed_weekday"
	ReasonNoEligibleStaff Reason = "no_eligible_staff"
	ReasonNoAvailability  Reason = "no_availability"
)

// Response модель ответа со списком доступных слотов
type Response struct {
	Date  time.Time            // Дата, на которую запрашивались слоты
	Item  *domain.BookableItem // Позиция с рассчитанной ценой (nil при пустом ответе до её загрузки)
	Slots []domain.Slot        // Доступные слоты, отсортированные по времени начала
	// Reason причина пустого списка; ReasonNone, если слоты есть
	Reason Reason
}

// Policy бизнес-параметры генерации слотов, задаются конфигурацией
type Policy struct {
	// CadenceMinutes шаг сетки слотов
	CadenceMinutes int
	// BusinessHours рабочие часы салона - fallback, когда у мастера
	// нет расписания на этот день недели
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
