package get_available_slots

import (
	"sort"
	"time"

	"github.com/manueles91/stella-booking-service/internal/domain"
	"github.com/manueles91/stella-booking-service/pkg/types"
)

// employeeDay все данные, нужные для генерации слотов одного мастера на дату
type employeeDay struct {
	employee     *domain.Employee
	windows      []types.Interval
	reservations []*domain.Reservation
	blocked      []*domain.BlockedInterval
}

// buildWindows определяет рабочие окна мастера на день недели.
//
// Если у мастера есть записи недельного расписания - каждое доступное окно
// пересекается с рабочими часами салона; окно вне рабочих часов отбрасывается.
// Запись с IsAvailable=false - это явный выходной: она не дает окна, но и
// fallback не включает. Fallback на рабочие часы салона целиком срабатывает
// только при полном отсутствии записей на этот день недели. Некорректное окно
// (start >= end) пропускается с предупреждением, не фатально.
func buildWindows(availability []*domain.EmployeeAvailability, businessHours types.Interval, logger Logger) []types.Interval {
	if len(availability) == 0 {
		return []types.Interval{businessHours}
	}

	windows := make([]types.Interval, 0, len(availability))
	for _, a := range availability {
		if !a.IsAvailable {
			continue
		}
		if err := a.Validate(); err != nil {
			logger.Warn("GetAvailableSlots: skipping malformed schedule: %v", err)
			continue
		}
		if window, ok := a.Window.Intersect(businessHours); ok {
			windows = append(windows, window)
		}
	}
	return windows
}

// generateEmployeeSlots генерирует доступные слоты одного мастера.
// Кандидаты идут с шагом cadence от начала окна, пока слот целиком помещается
// в окно. Кандидат отбрасывается, если пересекается с бронью или блокировкой
// мастера либо начинается не строго в будущем (для сегодняшней даты).
func generateEmployeeSlots(
	day employeeDay,
	durationMinutes int,
	cadenceMinutes int,
	pendingBlocks bool,
	minStart *types.TimeString,
	logger Logger,
) []domain.Slot {
	busy := collectBusyIntervals(day, pendingBlocks, logger)

	slots := make([]domain.Slot, 0)

	for _, window := range day.windows {
		start := window.Start
		for {
			end, err := start.AddMinutes(durationMinutes)
			if err != nil || window.End.IsBefore(end) {
				break
			}

			candidate := types.Interval{Start: start, End: end}

			// Слоты, начинающиеся сейчас или раньше, исключаются:
			// бронировать можно только строго будущее время
			inPast := minStart != nil && !start.IsAfter(*minStart)

			if !inPast && !conflicts(candidate, busy) {
				slots = append(slots, domain.Slot{
					StartTime:       start,
					DurationMinutes: durationMinutes,
					EmployeeID:      day.employee.ID,
					EmployeeName:    day.employee.Name,
				})
			}

			next, err := start.AddMinutes(cadenceMinutes)
			if err != nil {
				break
			}
			start = next
		}
	}

	return slots
}

// collectBusyIntervals собирает занятые интервалы мастера:
// блокирующие брони и все блокировки времени
func collectBusyIntervals(day employeeDay, pendingBlocks bool, logger Logger) []types.Interval {
	busy := make([]types.Interval, 0, len(day.reservations)+len(day.blocked))

	for _, res := range day.reservations {
		if !res.Blocks(pendingBlocks) {
			continue
		}
		iv, err := res.Interval()
		if err != nil {
			logger.Warn("GetAvailableSlots: skipping malformed reservation: %v", err)
			continue
		}
		busy = append(busy, iv)
	}

	for _, b := range day.blocked {
		if err := b.Validate(); err != nil {
			logger.Warn("GetAvailableSlots: skipping malformed blocked interval: %v", err)
			continue
		}
		busy = append(busy, b.Window)
	}

	return busy
}

// conflicts проверяет пересечение кандидата с занятыми интервалами.
// Пересечение полуоткрытое: слот, начинающийся ровно в конце брони,
// конфликтом НЕ считается.
func conflicts(candidate types.Interval, busy []types.Interval) bool {
	for _, iv := range busy {
		if candidate.Overlaps(iv) {
			return true
		}
	}
	return false
}

// sortSlots сортирует слоты по времени начала; при равном времени
// слоты разных мастеров оба остаются в выдаче и упорядочиваются
// по имени мастера, затем по id
func sortSlots(slots []domain.Slot) {
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].StartTime != slots[j].StartTime {
			return slots[i].StartTime.IsBefore(slots[j].StartTime)
		}
		if slots[i].EmployeeName != slots[j].EmployeeName {
			return slots[i].EmployeeName < slots[j].EmployeeName
		}
		return slots[i].EmployeeID < slots[j].EmployeeID
	})
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
