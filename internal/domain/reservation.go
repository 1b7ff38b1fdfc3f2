package domain

import (
	"fmt"
	"time"

	"github.com/manueles91/stella-booking-service/pkg/types"
)

// ReservationStatus represents the lifecycle state of a reservation.
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCompleted ReservationStatus = "completed"
	StatusCancelled ReservationStatus = "cancelled"
)

// Reservation is a committed appointment for one employee on one date.
// Service name and price are denormalized at booking time so catalog edits
// never change the recorded history.
type Reservation struct {
	ID              int64
	ClientID        int64
	EmployeeID      int64
	ItemType        ItemType
	ItemID          int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          ReservationStatus

	// Denormalized snapshot for history
	ItemName   string
	PriceCents int64
	Notes      *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval returns the occupied time range.
func (r *Reservation) Interval() (types.Interval, error) {
	if r.DurationMinutes <= 0 {
		return types.Interval{}, fmt.Errorf("reservation id=%d: duration must be positive, got %d", r.ID, r.DurationMinutes)
	}
	end, err := r.StartTime.AddMinutes(r.DurationMinutes)
	if err != nil {
		return types.Interval{}, fmt.Errorf("reservation id=%d: %v", r.ID, err)
	}
	return types.Interval{Start: r.StartTime, End: end}, nil
}

// Blocks reports whether the reservation makes its interval unavailable.
// Cancelled never blocks; confirmed and completed always do; pending blocks
// only when the configured policy says so.
func (r *Reservation) Blocks(pendingBlocks bool) bool {
	switch r.Status {
	case StatusConfirmed, StatusCompleted:
		return true
	case StatusPending:
		return pendingBlocks
	default:
		return false
	}
}

// CanBeCancelled reports whether the reservation may still be cancelled.
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// IsCancelled reports whether the reservation has been cancelled.
func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCancelled
}

// ValidStatus reports whether s is one of the known statuses.
func ValidStatus(s ReservationStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ReservationsFilter describes a reservations query for back-office listings.
type ReservationsFilter struct {
	EmployeeID       *int64             // nil = all employees
	ClientID         *int64             // nil = all clients
	StartDate        *time.Time         // nil = no lower bound
	EndDate          *time.Time         // nil = no upper bound
	Status           *ReservationStatus // nil = any status
	IncludeCancelled bool
}

// BlockedInterval is an ad-hoc unavailable range for an employee on a date
// (lunch, training, sick leave). It always conflicts with candidate slots,
// regardless of any status.
type BlockedInterval struct {
	ID         int64
	EmployeeID int64
	Date       time.Time
	Window     types.Interval
	Reason     string
	CreatedAt  time.Time
}

// Validate checks the window invariant.
func (b *BlockedInterval) Validate() error {
	if err := b.Window.Validate(); err != nil {
		return fmt.Errorf("blocked interval id=%d: %v", b.ID, err)
	}
	return nil
}
