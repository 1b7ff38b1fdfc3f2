package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/manueles91/stella-booking-service/internal/domain"
	catalogSvc "github.com/manueles91/stella-booking-service/internal/service/catalog"
	staffSvc "github.com/manueles91/stella-booking-service/internal/service/staff"
	"github.com/manueles91/stella-booking-service/pkg/types"
)

// UseCase use case для создания записи
type UseCase struct {
	catalogSvc       CatalogService
	staffSvc         StaffService
	availabilityRepo AvailabilityRepository
	commitmentsRepo  CommitmentsRepository
	txManager        TransactionManager
	policy           Policy
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalog CatalogService,
	staff StaffService,
	availabilityRepo AvailabilityRepository,
	commitmentsRepo CommitmentsRepository,
	txManager TransactionManager,
	policy Policy,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogSvc:       catalog,
		staffSvc:         staff,
		availabilityRepo: availabilityRepo,
		commitmentsRepo:  commitmentsRepo,
		txManager:        txManager,
		policy:           policy,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case создания записи.
// Проверка занятости и вставка выполняются в сериализуемой транзакции
// с блокировкой строк (FOR UPDATE), чтобы два клиента не забронировали
// один слот одновременно.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: client=%d, employee=%d, item=%s/%d, date=%s, time=%s",
		req.ClientID, req.EmployeeID, req.ItemType, req.ItemID,
		req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем дату
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("CreateReservation: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	if uc.policy.IsClosedWeekday(req.Date.Weekday()) {
		uc.logger.Warn("CreateReservation: salon is closed on %s", req.Date.Weekday())
		return nil, ErrClosedWeekday
	}

	// 4. Проверяем, что время лежит на сетке слотов
	if err := validateOnGrid(req.StartTime, uc.policy); err != nil {
		uc.logger.Warn("CreateReservation: grid validation failed: %v", err)
		return nil, err
	}

	// 5. На сегодня нельзя записаться на уже прошедшее время
	if isSameDay(req.Date, now) {
		currentTime := types.NewTimeString(now)
		if !req.StartTime.IsAfter(currentTime) {
			uc.logger.Warn("CreateReservation: start time %s has already passed (now %s)",
				req.StartTime, currentTime)
			return nil, ErrTooLateToBook
		}
	}

	// 6. Получаем позицию с итоговой ценой (скидка резолвится здесь же)
	item, err := uc.catalogSvc.GetBookableItem(ctx, req.ItemType, req.ItemID, req.DiscountCode)
	if err != nil {
		if errors.Is(err, catalogSvc.ErrItemNotFound) {
			uc.logger.Warn("CreateReservation: item %s/%d not found", req.ItemType, req.ItemID)
			return nil, ErrItemNotFound
		}
		if errors.Is(err, catalogSvc.ErrDataIntegrity) {
			uc.logger.Error("CreateReservation: item %s/%d integrity error: %v", req.ItemType, req.ItemID, err)
			return nil, fmt.Errorf("%w: %v", ErrDataIntegrity, err)
		}
		uc.logger.Error("CreateReservation: failed to get item %s/%d: %v", req.ItemType, req.ItemID, err)
		return nil, fmt.Errorf("%w: failed to get item: %v", ErrInternal, err)
	}

	if item.DurationMinutes <= 0 {
		uc.logger.Error("CreateReservation: item %s/%d has non-positive duration %d",
			req.ItemType, req.ItemID, item.DurationMinutes)
		return nil, fmt.Errorf("%w: item %s/%d has non-positive duration", ErrDataIntegrity, req.ItemType, req.ItemID)
	}

	// 7. Проверяем мастера и его сертификацию на все услуги позиции
	employee, err := uc.staffSvc.GetEmployee(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, staffSvc.ErrEmployeeNotFound) {
			uc.logger.Warn("CreateReservation: employee id=%d not found", req.EmployeeID)
			return nil, ErrEmployeeNotFound
		}
		uc.logger.Error("CreateReservation: failed to get employee id=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
	}

	if !employee.IsCertifiedForAll(item.ConstituentServiceIDs()) {
		uc.logger.Warn("CreateReservation: employee id=%d is not certified for item %s/%d",
			req.EmployeeID, req.ItemType, req.ItemID)
		return nil, ErrEmployeeNotEligible
	}

	// 8. Интервал кандидата
	end, err := req.StartTime.AddMinutes(item.DurationMinutes)
	if err != nil {
		uc.logger.Warn("CreateReservation: slot does not fit into the day: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}
	candidate := types.Interval{Start: req.StartTime, End: end}

	var result *domain.Reservation

	// 9. Проверка занятости и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		employeeIDs := []int64{req.EmployeeID}

		// 9.1. Рабочие окна мастера на этот день недели
		availability, err := uc.availabilityRepo.ListAvailabilityForWeekday(txCtx, employeeIDs, int(req.Date.Weekday()))
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get availability: %v", err)
			return fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
		}

		windows := buildWindows(availability, uc.policy.BusinessHours)
		if !fitsAnyWindow(candidate, windows) {
			uc.logger.Warn("CreateReservation: slot %s-%s does not fit employee id=%d working windows",
				candidate.Start, candidate.End, req.EmployeeID)
			return ErrInvalidTimeSlot
		}

		// 9.2. Активные записи мастера на дату с блокировкой строк (FOR UPDATE)
		reservations, err := uc.commitmentsRepo.ListByEmployeesAndDate(txCtx, employeeIDs, req.Date)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		blocked, err := uc.commitmentsRepo.ListBlockedByEmployeesAndDate(txCtx, employeeIDs, req.Date)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get blocked intervals: %v", err)
			return fmt.Errorf("%w: failed to get blocked intervals: %v", ErrInternal, err)
		}

		// 9.3. Проверяем доступность слота
		busy, err := collectBusyIntervals(reservations, blocked, uc.policy.PendingBlocks)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to collect busy intervals: %v", err)
			return fmt.Errorf("%w: failed to collect busy intervals: %v", ErrInternal, err)
		}

		if hasConflict(candidate, busy) {
			uc.logger.Warn("CreateReservation: slot %s-%s is taken for employee id=%d",
				candidate.Start, candidate.End, req.EmployeeID)
			return ErrSlotNotAvailable
		}

		// 9.4. Создаем запись с денормализацией позиции
		reservation := &domain.Reservation{
			ClientID:        req.ClientID,
			EmployeeID:      req.EmployeeID,
			ItemType:        req.ItemType,
			ItemID:          req.ItemID,
			Date:            req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: item.DurationMinutes,
			Status:          domain.StatusConfirmed,
			// Денормализация: снимок названия и итоговой цены на момент записи
			ItemName:   item.Name,
			PriceCents: item.FinalPriceCents,
			Notes:      req.Notes,
		}

		created, err := uc.commitmentsRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d", result.ID)

	return &Response{
		ID:              result.ID,
		ClientID:        result.ClientID,
		EmployeeID:      result.EmployeeID,
		ItemType:        result.ItemType,
		ItemID:          result.ItemID,
		Date:            result.Date,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ItemName:        result.ItemName,
		PriceCents:      result.PriceCents,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}
