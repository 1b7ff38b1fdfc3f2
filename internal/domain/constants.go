package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 hours
	MaxComboItemQuantity      = 20
	MaxNotesLength            = 500
	MaxCancelReasonLength     = 500
)

// BlockingStatuses lists reservation statuses that always make the reserved
// interval unavailable. Pending is handled separately: whether it blocks is a
// configuration decision (booking.pending_blocks).
var BlockingStatuses = []ReservationStatus{
	StatusConfirmed,
	StatusCompleted,
}

// InactiveStatuses lists statuses that never conflict with a candidate slot.
var InactiveStatuses = []ReservationStatus{
	StatusCancelled,
}
