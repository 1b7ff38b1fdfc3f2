package create_reservation

import (
	"time"

	"github.com/manueles91/stella-booking-service/internal/domain"
	createReservation "github.com/manueles91/stella-booking-service/internal/usecase/create_reservation"
	"github.com/manueles91/stella-booking-service/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	EmployeeID   int64   `json:"employeeId"`
	ItemType     string  `json:"itemType"` // "service" | "combo"
	ItemID       int64   `json:"itemId"`
	Date         string  `json:"date"`      // "2026-09-15"
	StartTime    string  `json:"startTime"` // "10:00"
	DiscountCode string  `json:"discountCode,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID              int64   `json:"id"`
	ClientID        int64   `json:"clientId"`
	EmployeeID      int64   `json:"employeeId"`
	ItemType        string  `json:"itemType"`
	ItemID          int64   `json:"itemId"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ItemName        string  `json:"itemName"`
	PriceCents      int64   `json:"priceCents"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(clientID int64) (*createReservation.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.ParseTimeString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		ClientID:     clientID,
		EmployeeID:   r.EmployeeID,
		ItemType:     domain.ItemType(r.ItemType),
		ItemID:       r.ItemID,
		Date:         date,
		StartTime:    startTime,
		DiscountCode: r.DiscountCode,
		Notes:        r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:              resp.ID,
		ClientID:        resp.ClientID,
		EmployeeID:      resp.EmployeeID,
		ItemType:        string(resp.ItemType),
		ItemID:          resp.ItemID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ItemName:        resp.ItemName,
		PriceCents:      resp.PriceCents,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
