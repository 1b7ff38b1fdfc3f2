package get_bookable_items

import (
	"github.com/manueles91/stella-booking-service/internal/domain"
)

// AppliedDiscountResponse HTTP модель применённой скидки
type AppliedDiscountResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	Value        int64  `json:"value"`
	SavingsCents int64  `json:"savingsCents"`
}

// ConstituentResponse HTTP модель услуги в составе комбо
type ConstituentResponse struct {
	ServiceID       int64  `json:"serviceId"`
	Name            string `json:"name"`
	Quantity        int    `json:"quantity"`
	DurationMinutes int    `json:"durationMinutes"`
}

// BookableItemResponse HTTP модель бронируемой позиции
type BookableItemResponse struct {
	Type               string                   `json:"type"`
	ID                 int64                    `json:"id"`
	Name               string                   `json:"name"`
	DurationMinutes    int                      `json:"durationMinutes"`
	OriginalPriceCents int64                    `json:"originalPriceCents"`
	FinalPriceCents    int64                    `json:"finalPriceCents"`
	SavingsCents       int64                    `json:"savingsCents"`
	CategoryID         *int64                   `json:"categoryId,omitempty"`
	AppliedDiscount    *AppliedDiscountResponse `json:"appliedDiscount,omitempty"`
	Constituents       []ConstituentResponse    `json:"constituents,omitempty"`
}

// ListResponse HTTP модель ответа со списком позиций
type ListResponse struct {
	Items []BookableItemResponse `json:"items"`
}

// FromDomainItem конвертирует доменную позицию в HTTP модель
func FromDomainItem(item *domain.BookableItem) BookableItemResponse {
	resp := BookableItemResponse{
		Type:               string(item.Type),
		ID:                 item.ID,
		Name:               item.Name,
		DurationMinutes:    item.DurationMinutes,
		OriginalPriceCents: item.OriginalPriceCents,
		FinalPriceCents:    item.FinalPriceCents,
		SavingsCents:       item.SavingsCents,
		CategoryID:         item.CategoryID,
	}

	if item.AppliedDiscount != nil {
		resp.AppliedDiscount = &AppliedDiscountResponse{
			ID:           item.AppliedDiscount.ID,
			Name:         item.AppliedDiscount.Name,
			Type:         string(item.AppliedDiscount.Type),
			Value:        item.AppliedDiscount.Value,
			SavingsCents: item.AppliedDiscount.SavingsCents,
		}
	}

	for _, c := range item.Constituents {
		resp.Constituents = append(resp.Constituents, ConstituentResponse{
			ServiceID:       c.ServiceID,
			Name:            c.Name,
			Quantity:        c.Quantity,
			DurationMinutes: c.DurationMinutes,
		})
	}

	return resp
}

// FromDomainItems конвертирует список позиций в HTTP модель
func FromDomainItems(items []*domain.BookableItem) *ListResponse {
	resp := &ListResponse{Items: make([]BookableItemResponse, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, FromDomainItem(item))
	}
	return resp
}
