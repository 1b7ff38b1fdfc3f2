package domain

import (
	"fmt"
	"time"
)

// DiscountType distinguishes percentage from flat-amount discounts.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFlat       DiscountType = "flat"
)

// Discount is attached to exactly one service. Public discounts apply
// automatically; private ones require a matching code. The activation window
// [StartDate, EndDate] is inclusive and compared by calendar date only.
type Discount struct {
	ID        int64
	ServiceID int64
	Name      string
	Type      DiscountType
	// Percent 0..100 for percentage discounts, cents for flat ones
	Value     int64
	IsPublic  bool
	Code      *string
	StartDate time.Time
	EndDate   time.Time
	IsActive  bool
	CreatedAt time.Time
}

// Validate checks the data-integrity invariants of a discount row.
// An invalid discount is a data error to report, not one to skip silently.
func (d *Discount) Validate() error {
	switch d.Type {
	case DiscountPercentage:
		if d.Value < 0 || d.Value > 100 {
			return fmt.Errorf("discount id=%d: percentage value %d out of range [0, 100]", d.ID, d.Value)
		}
	case DiscountFlat:
		if d.Value < 0 {
			return fmt.Errorf("discount id=%d: negative flat value %d", d.ID, d.Value)
		}
	default:
		return fmt.Errorf("discount id=%d: unknown type %q", d.ID, d.Type)
	}
	if !d.IsPublic && (d.Code == nil || *d.Code == "") {
		return fmt.Errorf("discount id=%d: private discount without code", d.ID)
	}
	return nil
}

// IsEligible reports whether the discount may be applied on the given day
// with the supplied code ("" when the customer entered none).
func (d *Discount) IsEligible(today time.Time, suppliedCode string) bool {
	if !d.IsActive {
		return false
	}
	if !dateWithin(today, d.StartDate, d.EndDate) {
		return false
	}
	if d.IsPublic {
		return true
	}
	return d.Code != nil && *d.Code != "" && *d.Code == suppliedCode
}

// dateWithin compares calendar dates only, boundaries inclusive.
func dateWithin(day, start, end time.Time) bool {
	d := truncateToDay(day)
	return !d.Before(truncateToDay(start)) && !d.After(truncateToDay(end))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
