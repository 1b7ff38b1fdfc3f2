package get_available_slots

import (
	"time"

	"github.com/manueles91/stella-booking-service/internal/domain"
	getAvailableSlots "github.com/manueles91/stella-booking-service/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель одного слота
type SlotResponse struct {
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	EmployeeID      int64  `json:"employeeId"`
	EmployeeName    string `json:"employeeName"`
}

// SlotsResponse HTTP модель ответа со слотами на дату
type SlotsResponse struct {
	Date  string         `json:"date"`
	Slots []SlotResponse `json:"slots"`
	// Reason машиночитаемая причина пустого списка; пустая строка, если слоты есть
	Reason string `json:"reason,omitempty"`
}

// ToUseCaseRequest собирает запрос к use case из параметров HTTP запроса
func ToUseCaseRequest(itemType domain.ItemType, itemID int64, dateStr string, employeeID *int64, discountCode string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		ItemType:     itemType,
		ItemID:       itemID,
		Date:         date,
		EmployeeID:   employeeID,
		DiscountCode: discountCode,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	out := &SlotsResponse{
		Date:   resp.Date.Format(domain.DateFormat),
		Slots:  make([]SlotResponse, 0, len(resp.Slots)),
		Reason: string(resp.Reason),
	}

	for _, slot := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			StartTime:       slot.StartTime.String(),
			DurationMinutes: slot.DurationMinutes,
			EmployeeID:      slot.EmployeeID,
			EmployeeName:    slot.EmployeeName,
		})
	}

	return out
}
