package get_month_availability

import (
	"time"

	"github.com/manueles91/stella-booking-service/internal/domain"
)

// Request модель запроса прекомпьюта доступности месяца
type Request struct {
	ClientID   int64           // ID клиента (для логирования)
	ItemType   domain.ItemType // Тип позиции
	ItemID     int64           // ID позиции
	Year       int             // Год (например, 2026)
	Month      time.Month      // Месяц 1..12
	EmployeeID *int64          // Фильтр по мастеру (опционально)
}

// DayAvailability результат проверки одного дня
type DayAvailability struct {
	// Bookable есть ли хотя бы один свободный слот
	Bookable bool
	// Failed не удалось обсчитать день (ошибка чтения или таймаут).
	// Вызывающий обязан отличать "нет слотов" от "не удалось узнать".
	Failed bool
}

// Response карта доступности по дням месяца для календарного виджета
type Response struct {
	Year  int
	Month time.Month
	// Days ключ - дата в формате YYYY-MM-DD, по записи на каждый день месяца
	Days map[string]DayAvailability
	// FailedDays количество дней, которые не удалось обсчитать
	FailedDays int
}

// Policy параметры параллельного обсчета месяца
type Policy struct {
	// Workers максимум одновременно обсчитываемых дней
	Workers int
	// DayTimeout бюджет времени на один день; один медленный день
	// не должен завешивать весь календарь
	DayTimeout time.Duration
	// FetchRate и FetchBurst бюджет запросов к хранилищу (token bucket),
	// чтобы прекомпьют не выедал БД под нагрузкой
	FetchRate  float64
	FetchBurst int
}
