package domain

import (
	"fmt"
	"time"
)

// Category groups services in the catalog.
type Category struct {
	ID   int64
	Name string
}

// Service represents a single salon service (haircut, coloring, ...).
// Prices are integer cents; durations are whole minutes. Once a service has
// been referenced by a reservation its recorded name and price stay on the
// reservation row, so later edits never rewrite history.
type Service struct {
	ID              int64
	Name            string
	Description     *string
	DurationMinutes int
	BasePriceCents  int64
	CategoryID      *int64
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate checks the data-integrity invariants of a catalog row.
func (s *Service) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("service id=%d: empty name", s.ID)
	}
	if s.DurationMinutes <= 0 {
		return fmt.Errorf("service id=%d: duration must be positive, got %d", s.ID, s.DurationMinutes)
	}
	if s.BasePriceCents < 0 {
		return fmt.Errorf("service id=%d: negative base price %d", s.ID, s.BasePriceCents)
	}
	return nil
}
