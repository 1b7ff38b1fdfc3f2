package domain

// ItemType distinguishes plain services from combos in the booking surface.
type ItemType string

const (
	ItemService ItemType = "service"
	ItemCombo   ItemType = "combo"
)

// AppliedDiscount describes the discount that won the price resolution for
// a service item.
type AppliedDiscount struct {
	ID           int64
	Name         string
	Type         DiscountType
	Value        int64
	SavingsCents int64
}

// ComboConstituent is a resolved combo part for display.
type ComboConstituent struct {
	ServiceID       int64
	Name            string
	Quantity        int
	DurationMinutes int
}

// BookableItem is the unit the booking UI works with: a service or combo with
// resolved pricing and duration. Derived on every catalog fetch, never
// persisted.
type BookableItem struct {
	Type               ItemType
	ID                 int64
	Name               string
	DurationMinutes    int
	OriginalPriceCents int64
	FinalPriceCents    int64
	SavingsCents       int64
	CategoryID         *int64

	// Set for services when a discount applied
	AppliedDiscount *AppliedDiscount
	// Set for combos
	Constituents []ComboConstituent
}

// ConstituentServiceIDs returns the service ids an employee must be certified
// for to perform this item.
func (i *BookableItem) ConstituentServiceIDs() []int64 {
	if i.Type == ItemService {
		return []int64{i.ID}
	}
	ids := make([]int64, 0, len(i.Constituents))
	for _, c := range i.Constituents {
		ids = append(ids, c.ServiceID)
	}
	return ids
}
