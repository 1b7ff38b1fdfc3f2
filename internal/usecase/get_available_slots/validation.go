package get_available_slots

import (
	"fmt"

	"github.com/manueles91/stella-booking-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ItemType != domain.ItemService && req.ItemType != domain.ItemCombo {
		return fmt.Errorf("%w: unknown item type %q", ErrInvalidInput, req.ItemType)
	}

	if req.ItemID <= 0 {
		return fmt.Errorf("%w: itemID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.EmployeeID != nil && *req.EmployeeID <= 0 {
		return fmt.Errorf("%w: employeeID must be positive", ErrInvalidInput)
	}

	return nil
}
