package create_reservation

import (
	"fmt"
	"time"

	"github.com/manueles91/stella-booking-service/internal/domain"
	"github.com/manueles91/stella-booking-service/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.EmployeeID <= 0 {
		return fmt.Errorf("%w: employeeID must be positive", ErrInvalidInput)
	}

	if req.ItemType != domain.ItemService && req.ItemType != domain.ItemCombo {
		return fmt.Errorf("%w: unknown item type %q", ErrInvalidInput, req.ItemType)
	}

	if req.ItemID <= 0 {
		return fmt.Errorf("%w: itemID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if _, err := req.StartTime.Minutes(); err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateOnGrid проверяет, что время начала лежит на сетке слотов,
// заякоренной на открытие салона
func validateOnGrid(startTime types.TimeString, policy Policy) error {
	startMin, err := startTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	anchorMin, err := policy.BusinessHours.Start.Minutes()
	if err != nil {
		return fmt.Errorf("%w: bad business hours: %v", ErrInternal, err)
	}

	offset := startMin - anchorMin
	if offset < 0 || offset%policy.CadenceMinutes != 0 {
		return fmt.Errorf("%w: start time %s is not on the %d-minute grid",
			ErrInvalidTimeSlot, startTime, policy.CadenceMinutes)
	}
	return nil
}

// buildWindows собирает рабочие окна мастера на день, обрезая их по рабочим
// часам салона. Без строк расписания мастер работает по часам салона; строка
// с IsAvailable=false - явный выходной, fallback она не включает.
func buildWindows(availability []*domain.EmployeeAvailability, businessHours types.Interval) []types.Interval {
	if len(availability) == 0 {
		return []types.Interval{businessHours}
	}

	windows := make([]types.Interval, 0, len(availability))
	for _, av := range availability {
		if !av.IsAvailable {
			continue
		}
		if err := av.Validate(); err != nil {
			continue
		}
		if clipped, ok := av.Window.Intersect(businessHours); ok {
			windows = append(windows, clipped)
		}
	}
	return windows
}

// fitsAnyWindow проверяет, что слот целиком помещается хотя бы в одно окно
func fitsAnyWindow(candidate types.Interval, windows []types.Interval) bool {
	for _, w := range windows {
		if w.Contains(candidate) {
			return true
		}
	}
	return false
}

// collectBusyIntervals собирает занятые интервалы мастера из записей
// и блокировок
func collectBusyIntervals(
	reservations []*domain.Reservation,
	blocked []*domain.BlockedInterval,
	pendingBlocks bool,
) ([]types.Interval, error) {
	busy := make([]types.Interval, 0, len(reservations)+len(blocked))

	for _, res := range reservations {
		if !res.Blocks(pendingBlocks) {
			continue
		}
		iv, err := res.Interval()
		if err != nil {
			return nil, err
		}
		busy = append(busy, iv)
	}

	for _, b := range blocked {
		if err := b.Validate(); err != nil {
			return nil, err
		}
		busy = append(busy, b.Window)
	}

	return busy, nil
}

// hasConflict проверяет пересечение кандидата с занятыми интервалами.
// Смежность (конец одного = начало другого) пересечением не считается.
func hasConflict(candidate types.Interval, busy []types.Interval) bool {
	for _, iv := range busy {
		if candidate.Overlaps(iv) {
			return true
		}
	}
	return false
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
