package domain

import (
	"fmt"
	"time"

	"github.com/manueles91/stella-booking-service/pkg/types"
)

// Employee is a salon stylist with the set of services they are certified
// to perform.
type Employee struct {
	ID                  int64
	Name                string
	IsActive            bool
	CertifiedServiceIDs []int64
}

// IsCertifiedFor reports whether the employee may perform the service.
func (e *Employee) IsCertifiedFor(serviceID int64) bool {
	for _, id := range e.CertifiedServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

// IsCertifiedForAll reports whether the employee may perform every service
// in the list. Combos require one stylist capable of the whole bundle.
func (e *Employee) IsCertifiedForAll(serviceIDs []int64) bool {
	for _, id := range serviceIDs {
		if !e.IsCertifiedFor(id) {
			return false
		}
	}
	return true
}

// EmployeeAvailability is one weekly recurring working window:
// employee X is schedulable on weekday W between Start and End.
// An employee may have zero, one or several non-contiguous windows per
// weekday.
type EmployeeAvailability struct {
	ID          int64
	EmployeeID  int64
	Weekday     int // 0=Sunday ... 6=Saturday
	Window      types.Interval
	IsAvailable bool
	CreatedAt   time.Time
}

// Validate checks the window invariant. A malformed schedule row is skipped
// with a warning by the slot generator, never fatal.
func (a *EmployeeAvailability) Validate() error {
	if a.Weekday < 0 || a.Weekday > 6 {
		return fmt.Errorf("availability id=%d: weekday %d out of range [0, 6]", a.ID, a.Weekday)
	}
	if err := a.Window.Validate(); err != nil {
		return fmt.Errorf("availability id=%d: %v", a.ID, err)
	}
	return nil
}
