package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	catalogSvc "github.com/manueles91/stella-booking-service/internal/service/catalog"

	"github.com/manueles91/stella-booking-service/internal/domain"
	"github.com/manueles91/stella-booking-service/pkg/types"
)

// UseCase use case получения доступных слотов.
//
// Движок отдает доступность на момент чтения (best effort), а не резерв:
// два клиента могут одновременно увидеть один и тот же свободный слот.
// Двойную запись предотвращает только перепроверка в транзакции на пути
// создания брони.
type UseCase struct {
	catalog      CatalogService
	staff        StaffService
	availability AvailabilityRepository
	commitments  CommitmentsRepository
	policy       Policy
	timeProvider TimeProvider
	metrics      MetricsRecorder
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// metrics может быть nil, если метрики выключены.
func NewUseCase(
	catalog CatalogService,
	staff StaffService,
	availability AvailabilityRepository,
	commitments CommitmentsRepository,
	policy Policy,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalog:      catalog,
		staff:        staff,
		availability: availability,
		commitments:  commitments,
		policy:       policy,
		timeProvider: &RealTimeProvider{},
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: client=%d, item=%s/%d, date=%s",
		req.ClientID, req.ItemType, req.ItemID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Дата в прошлом - нормальный пустой ответ, а не ошибка
	if isDateInPast(req.Date, now) {
		return uc.empty(req, nil, ReasonDateInPast), nil
	}

	// 4. Закрытые дни недели (по умолчанию воскресенье) всегда без слотов,
	// независимо от расписаний мастеров
	if uc.policy.IsClosedWeekday(req.Date.Weekday()) {
		return uc.empty(req, nil, ReasonClosedWeekday), nil
	}

	// 5. Получаем позицию с длительностью
	item, err := uc.catalog.GetBookableItem(ctx, req.ItemType, req.ItemID, req.DiscountCode)
	if err != nil {
		if errors.Is(err, catalogSvc.ErrItemNotFound) {
			uc.logger.Warn("GetAvailableSlots: item %s/%d not found", req.ItemType, req.ItemID)
			return nil, ErrItemNotFound
		}
		if errors.Is(err, catalogSvc.ErrDataIntegrity) {
			uc.logger.Error("GetAvailableSlots: item %s/%d integrity error: %v", req.ItemType, req.ItemID, err)
			return nil, fmt.Errorf("%w: %v", ErrDataIntegrity, err)
		}
		uc.logger.Error("GetAvailableSlots: failed to get item %s/%d: %v", req.ItemType, req.ItemID, err)
		return nil, fmt.Errorf("%w: failed to get item: %v", ErrUpstreamUnavailable, err)
	}

	// Позиция с неположительной длительностью - ошибка данных,
	// слоты для неё не генерируются
	if item.DurationMinutes <= 0 {
		uc.logger.Error("GetAvailableSlots: item %s/%d has non-positive duration %d",
			req.ItemType, req.ItemID, item.DurationMinutes)
		return nil, fmt.Errorf("%w: item %s/%d duration %d",
			ErrDataIntegrity, req.ItemType, req.ItemID, item.DurationMinutes)
	}

	// 6. Сужаем ростер до сертифицированных мастеров
	eligible, err := uc.staff.ListEligibleEmployees(ctx, item)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list eligible employees: %v", err)
		return nil, fmt.Errorf("%w: failed to list employees: %v", ErrUpstreamUnavailable, err)
	}

	// 7. Опциональный фильтр по конкретному мастеру
	if req.EmployeeID != nil {
		eligible = filterByID(eligible, *req.EmployeeID)
	}

	// Никаких мастеров-заглушек: пусто значит пусто
	if len(eligible) == 0 {
		uc.logger.Info("GetAvailableSlots: no eligible staff for %s/%d", req.ItemType, req.ItemID)
		return uc.empty(req, item, ReasonNoEligibleStaff), nil
	}

	employeeIDs := make([]int64, 0, len(eligible))
	for _, e := range eligible {
		employeeIDs = append(employeeIDs, e.ID)
	}

	// 8. Читаем расписания, брони и блокировки на дату одним снапшотом
	weekday := int(req.Date.Weekday())

	availability, err := uc.availability.ListAvailabilityForWeekday(ctx, employeeIDs, weekday)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list availability: %v", err)
		return nil, fmt.Errorf("%w: failed to list availability: %v", ErrUpstreamUnavailable, err)
	}

	reservations, err := uc.commitments.ListByEmployeesAndDate(ctx, employeeIDs, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to list reservations: %v", ErrUpstreamUnavailable, err)
	}

	blocked, err := uc.commitments.ListBlockedByEmployeesAndDate(ctx, employeeIDs, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list blocked intervals: %v", err)
		return nil, fmt.Errorf("%w: failed to list blocked intervals: %v", ErrUpstreamUnavailable, err)
	}

	availabilityByEmployee := groupAvailability(availability)
	reservationsByEmployee := groupReservations(reservations)
	blockedByEmployee := groupBlocked(blocked)

	// 9. Для сегодняшней даты слоты в прошлом исключаются:
	// слот ровно "сейчас" тоже не предлагается
	var minStart *types.TimeString
	if isSameDay(req.Date, now) {
		t := types.NewTimeString(now)
		minStart = &t
	}

	// 10. Генерируем слоты по каждому мастеру
	slots := make([]domain.Slot, 0)
	for _, e := range eligible {
		day := employeeDay{
			employee:     e,
			windows:      buildWindows(availabilityByEmployee[e.ID], uc.policy.BusinessHours, uc.logger),
			reservations: reservationsByEmployee[e.ID],
			blocked:      blockedByEmployee[e.ID],
		}
		slots = append(slots, generateEmployeeSlots(
			day, item.DurationMinutes, uc.policy.CadenceMinutes, uc.policy.PendingBlocks, minStart, uc.logger)...)
	}

	sortSlots(slots)

	uc.logger.Info("GetAvailableSlots: %d slots for %s/%d on %s",
		len(slots), req.ItemType, req.ItemID, req.Date.Format(domain.DateFormat))

	if len(slots) == 0 {
		uc.observe("empty")
		return uc.empty(req, item, ReasonNoAvailability), nil
	}

	uc.observe("ok")
	return &Response{
		Date:  req.Date,
		Item:  item,
		Slots: slots,
	}, nil
}

// empty собирает нормальный пустой ответ с машиночитаемой причиной
func (uc *UseCase) empty(req *Request, item *domain.BookableItem, reason Reason) *Response {
	return &Response{
		Date:   req.Date,
		Item:   item,
		Slots:  []domain.Slot{},
		Reason: reason,
	}
}

func (uc *UseCase) observe(result string) {
	if uc.metrics != nil {
		uc.metrics.ObserveSlotQuery(result)
	}
}

func filterByID(employees []*domain.Employee, id int64) []*domain.Employee {
	filtered := make([]*domain.Employee, 0, 1)
	for _, e := range employees {
		if e.ID == id {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

func groupAvailability(rows []*domain.EmployeeAvailability) map[int64][]*domain.EmployeeAvailability {
	grouped := make(map[int64][]*domain.EmployeeAvailability)
	for _, a := range rows {
		grouped[a.EmployeeID] = append(grouped[a.EmployeeID], a)
	}
	return grouped
}

func groupReservations(rows []*domain.Reservation) map[int64][]*domain.Reservation {
	grouped := make(map[int64][]*domain.Reservation)
	for _, r := range rows {
		grouped[r.EmployeeID] = append(grouped[r.EmployeeID], r)
	}
	return grouped
}

func groupBlocked(rows []*domain.BlockedInterval) map[int64][]*domain.BlockedInterval {
	grouped := make(map[int64][]*domain.BlockedInterval)
	for _, b := range rows {
		grouped[b.EmployeeID] = append(grouped[b.EmployeeID], b)
	}
	return grouped
}
