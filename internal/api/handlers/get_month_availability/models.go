package get_month_availability

import (
	getMonthAvailability "github.com/manueles91/stella-booking-service/internal/usecase/get_month_availability"
)

// DayResponse HTTP модель доступности одного дня
type DayResponse struct {
	Bookable bool `json:"bookable"`
	// Failed день не удалось обсчитать; bookable в этом случае неизвестен
	Failed bool `json:"failed,omitempty"`
}

// MonthResponse HTTP модель ответа с доступностью месяца
type MonthResponse struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	// Days ключ - дата в формате YYYY-MM-DD
	Days       map[string]DayResponse `json:"days"`
	FailedDays int                    `json:"failedDays,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getMonthAvailability.Response) *MonthResponse {
	out := &MonthResponse{
		Year:       resp.Year,
		Month:      int(resp.Month),
		Days:       make(map[string]DayResponse, len(resp.Days)),
		FailedDays: resp.FailedDays,
	}

	for date, day := range resp.Days {
		out.Days[date] = DayResponse{
			Bookable: day.Bookable,
			Failed:   day.Failed,
		}
	}

	return out
}
