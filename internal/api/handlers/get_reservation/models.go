package get_reservation

import (
	"time"

	"github.com/manueles91/stella-booking-service/internal/domain"
)

// ReservationResponse HTTP модель записи
type ReservationResponse struct {
	ID                 int64   `json:"id"`
	ClientID           int64   `json:"clientId"`
	EmployeeID         int64   `json:"employeeId"`
	ItemType           string  `json:"itemType"`
	ItemID             int64   `json:"itemId"`
	Date               string  `json:"date"`
	StartTime          string  `json:"startTime"`
	DurationMinutes    int     `json:"durationMinutes"`
	Status             string  `json:"status"`
	ItemName           string  `json:"itemName"`
	PriceCents         int64   `json:"priceCents"`
	Notes              *string `json:"notes,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`
	CreatedAt          string  `json:"createdAt"`
	UpdatedAt          string  `json:"updatedAt"`
}

// FromDomainReservation конвертирует доменную запись в HTTP модель
func FromDomainReservation(res *domain.Reservation) *ReservationResponse {
	resp := &ReservationResponse{
		ID:                 res.ID,
		ClientID:           res.ClientID,
		EmployeeID:         res.EmployeeID,
		ItemType:           string(res.ItemType),
		ItemID:             res.ItemID,
		Date:               res.Date.Format(domain.DateFormat),
		StartTime:          res.StartTime.String(),
		DurationMinutes:    res.DurationMinutes,
		Status:             string(res.Status),
		ItemName:           res.ItemName,
		PriceCents:         res.PriceCents,
		Notes:              res.Notes,
		CancellationReason: res.CancellationReason,
		CreatedAt:          res.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          res.UpdatedAt.Format(time.RFC3339),
	}

	if res.CancelledAt != nil {
		cancelledAt := res.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}

	return resp
}
