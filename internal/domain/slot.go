package domain

import "github.com/manueles91/stella-booking-service/pkg/types"

// Slot is a bookable start time for one employee. Slots are ephemeral values
// computed per request; holding one is not a reservation, the write path
// re-checks availability at booking time.
type Slot struct {
	StartTime       types.TimeString
	DurationMinutes int
	EmployeeID      int64
	EmployeeName    string
}

// End returns the derived end time of the slot.
func (s *Slot) End() (types.TimeString, error) {
	return s.StartTime.AddMinutes(s.DurationMinutes)
}
