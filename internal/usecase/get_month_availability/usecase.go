package get_month_availability

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/manueles91/stella-booking-service/internal/domain"
	getAvailableSlots "github.com/manueles91/stella-booking-service/internal/usecase/get_available_slots"
)

// UseCase use case прекомпьюта доступности месяца для календаря.
//
// Каждый день месяца - независимая read-and-compute единица работы без
// общего изменяемого состояния, поэтому дни обсчитываются параллельно
// ограниченным пулом воркеров. Сбой одного дня не роняет весь месяц:
// возвращается частичный результат с по-дневным флагом Failed.
type UseCase struct {
	slots        SlotsUseCase
	policy       Policy
	limiter      *rate.Limiter
	timeProvider TimeProvider
	metrics      MetricsRecorder
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// metrics может быть nil, если метрики выключены.
func NewUseCase(slots SlotsUseCase, policy Policy, metrics MetricsRecorder, logger Logger) *UseCase {
	return &UseCase{
		slots:        slots,
		policy:       policy,
		limiter:      rate.NewLimiter(rate.Limit(policy.FetchRate), policy.FetchBurst),
		timeProvider: &RealTimeProvider{},
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute обсчитывает доступность каждого дня месяца
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetMonthAvailability: client=%d, item=%s/%d, month=%d-%02d",
		req.ClientID, req.ItemType, req.ItemID, req.Year, req.Month)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetMonthAvailability: validation failed: %v", err)
		return nil, err
	}

	started := uc.timeProvider.Now()

	first := time.Date(req.Year, req.Month, 1, 0, 0, 0, 0, time.Local)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	type dayResult struct {
		date   time.Time
		avail  DayAvailability
		fatal  error // не ретраябельная ошибка (позиция не найдена и т.п.)
	}

	results := make([]dayResult, daysInMonth)

	var wg sync.WaitGroup
	sem := make(chan struct{}, uc.policy.Workers)

	for i := 0; i < daysInMonth; i++ {
		date := first.AddDate(0, 0, i)

		// Уважаем отмену: пользователь мог уйти со страницы календаря
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: cancelled: %v", ErrUpstreamUnavailable, err)
		}

		wg.Add(1)
		sem <- struct{}{}

		go func(i int, date time.Time) {
			defer wg.Done()
			defer func() { <-sem }()

			avail, fatal := uc.checkDay(ctx, req, date)
			results[i] = dayResult{date: date, avail: avail, fatal: fatal}
		}(i, date)
	}

	wg.Wait()

	resp := &Response{
		Year:  req.Year,
		Month: req.Month,
		Days:  make(map[string]DayAvailability, daysInMonth),
	}

	for _, r := range results {
		// Позиция не найдена - ошибка всего запроса, а не одного дня
		if r.fatal != nil {
			return nil, r.fatal
		}
		resp.Days[r.date.Format(domain.DateFormat)] = r.avail
		if r.avail.Failed {
			resp.FailedDays++
		}
	}

	// Весь месяц обсчитать не удалось - это уже не частичный результат
	if resp.FailedDays == daysInMonth {
		uc.logger.Error("GetMonthAvailability: all %d days failed for item=%s/%d",
			daysInMonth, req.ItemType, req.ItemID)
		return nil, fmt.Errorf("%w: all days failed", ErrUpstreamUnavailable)
	}

	if uc.metrics != nil {
		uc.metrics.ObserveMonthPrecompute(uc.timeProvider.Now().Sub(started), resp.FailedDays)
	}

	uc.logger.Info("GetMonthAvailability: month=%d-%02d computed, failed_days=%d",
		req.Year, req.Month, resp.FailedDays)

	return resp, nil
}

// IsDateBookable дневной предикат: есть ли на дату хотя бы один свободный слот
func (uc *UseCase) IsDateBookable(ctx context.Context, req *Request, date time.Time) (bool, error) {
	resp, err := uc.slots.Execute(ctx, &getAvailableSlots.Request{
		ClientID:   req.ClientID,
		ItemType:   req.ItemType,
		ItemID:     req.ItemID,
		Date:       date,
		EmployeeID: req.EmployeeID,
	})
	if err != nil {
		return false, err
	}
	return len(resp.Slots) > 0, nil
}

// checkDay обсчитывает один день с собственным таймаутом и бюджетом запросов
func (uc *UseCase) checkDay(ctx context.Context, req *Request, date time.Time) (DayAvailability, error) {
	if err := uc.limiter.Wait(ctx); err != nil {
		return DayAvailability{Failed: true}, nil
	}

	dayCtx, cancel := context.WithTimeout(ctx, uc.policy.DayTimeout)
	defer cancel()

	bookable, err := uc.IsDateBookable(dayCtx, req, date)
	if err != nil {
		// Отсутствующая позиция или битые данные каталога не станут
		// валидными на соседнем дне - фейлим весь запрос
		if errors.Is(err, getAvailableSlots.ErrItemNotFound) {
			return DayAvailability{}, ErrItemNotFound
		}
		if errors.Is(err, getAvailableSlots.ErrDataIntegrity) || errors.Is(err, getAvailableSlots.ErrInvalidInput) {
			return DayAvailability{}, fmt.Errorf("%w: %v", ErrInternal, err)
		}

		uc.logger.Warn("GetMonthAvailability: day %s failed: %v", date.Format(domain.DateFormat), err)
		return DayAvailability{Failed: true}, nil
	}

	return DayAvailability{Bookable: bookable}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ItemType != domain.ItemService && req.ItemType != domain.ItemCombo {
		return fmt.Errorf("%w: unknown item type %q", ErrInvalidInput, req.ItemType)
	}
	if req.ItemID <= 0 {
		return fmt.Errorf("%w: itemID must be positive", ErrInvalidInput)
	}
	if req.Year < 2000 || req.Year > 2100 {
		return fmt.Errorf("%w: year %d out of range", ErrInvalidInput, req.Year)
	}
	if req.Month < time.January || req.Month > time.December {
		return fmt.Errorf("%w: month %d out of range", ErrInvalidInput, req.Month)
	}
	return nil
}
