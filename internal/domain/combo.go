package domain

import (
	"fmt"
	"time"
)

// ComboItem is one constituent of a combo: a service taken Quantity times.
type ComboItem struct {
	ServiceID int64
	Quantity  int
}

// Combo bundles several services under one authored price. The original
// price is informational (sum of constituents at list price); TotalPriceCents
// is what the customer actually pays. Duration is always derived from the
// constituent services, never authored.
type Combo struct {
	ID    int64
	Name  string
	Items []ComboItem
	// Authored sum of constituent list prices
	OriginalPriceCents int64
	// Authored charge, by convention <= OriginalPriceCents (not enforced)
	TotalPriceCents int64
	StartDate       time.Time
	EndDate         time.Time
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate checks the data-integrity invariants of a combo row.
func (c *Combo) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("combo id=%d: empty name", c.ID)
	}
	if len(c.Items) == 0 {
		return fmt.Errorf("combo id=%d: no constituent services", c.ID)
	}
	for _, item := range c.Items {
		if item.Quantity < 1 {
			return fmt.Errorf("combo id=%d: service id=%d quantity %d must be >= 1",
				c.ID, item.ServiceID, item.Quantity)
		}
		if item.Quantity > MaxComboItemQuantity {
			return fmt.Errorf("combo id=%d: service id=%d quantity %d exceeds %d",
				c.ID, item.ServiceID, item.Quantity, MaxComboItemQuantity)
		}
	}
	if c.TotalPriceCents < 0 {
		return fmt.Errorf("combo id=%d: negative total price %d", c.ID, c.TotalPriceCents)
	}
	return nil
}

// IsOfferable reports whether the combo may be sold on the given day:
// the active flag is set and the day falls inside the inclusive date window.
func (c *Combo) IsOfferable(today time.Time) bool {
	return c.IsActive && dateWithin(today, c.StartDate, c.EndDate)
}

// SavingsCents is the advertised saving. A misconfigured combo may yield a
// non-positive value; callers report that as a data-integrity warning.
func (c *Combo) SavingsCents() int64 {
	return c.OriginalPriceCents - c.TotalPriceCents
}
