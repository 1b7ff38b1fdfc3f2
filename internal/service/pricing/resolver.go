package pricing

import (
	"fmt"
	"time"

	"github.com/manueles91/stella-booking-service/internal/domain"
)

// Resolution результат подбора скидки для услуги
type Resolution struct {
	// Discount выигравшая скидка, nil если ни одна не подошла
	Discount        *domain.Discount
	FinalPriceCents int64
	SavingsCents    int64
}

// ResolveBestDiscount выбирает скидку с максимальной экономией для клиента.
//
// Правила:
//   - кандидат подходит, если активен, окно действия содержит сегодняшнюю дату
//     и скидка публичная либо код совпал;
//   - процентная скидка округляется до цента (round half up);
//   - фиксированная скидка не может превысить базовую цену;
//   - при равной экономии выигрывает скидка с более ранним created_at,
//     при равных created_at - с меньшим id. Результат не зависит от порядка
//     кандидатов.
//
// Скидка с некорректными данными - это ошибка данных, она возвращается
// вызывающему с id сущности, а не пропускается молча.
func ResolveBestDiscount(basePriceCents int64, candidates []*domain.Discount, today time.Time, suppliedCode string) (Resolution, error) {
	if basePriceCents < 0 {
		return Resolution{}, fmt.Errorf("%w: negative base price %d", ErrInvalidDiscount, basePriceCents)
	}

	var best *domain.Discount
	var bestSavings int64

	for _, d := range candidates {
		if err := d.Validate(); err != nil {
			return Resolution{}, fmt.Errorf("%w: %v", ErrInvalidDiscount, err)
		}
		if !d.IsEligible(today, suppliedCode) {
			continue
		}

		savings := savingsFor(d, basePriceCents)

		if best == nil || savings > bestSavings || (savings == bestSavings && createdEarlier(d, best)) {
			best = d
			bestSavings = savings
		}
	}

	if best == nil {
		return Resolution{FinalPriceCents: basePriceCents}, nil
	}

	final := basePriceCents - bestSavings
	if final < 0 {
		final = 0
	}

	return Resolution{
		Discount:        best,
		FinalPriceCents: final,
		SavingsCents:    bestSavings,
	}, nil
}

// savingsFor вычисляет экономию в центах для валидной скидки
func savingsFor(d *domain.Discount, basePriceCents int64) int64 {
	switch d.Type {
	case domain.DiscountPercentage:
		// Округление до цента: round half up
		return (basePriceCents*d.Value + 50) / 100
	case domain.DiscountFlat:
		if d.Value > basePriceCents {
			return basePriceCents
		}
		return d.Value
	default:
		return 0
	}
}

// createdEarlier детерминированный tie-break: более ранний created_at,
// при равенстве - меньший id
func createdEarlier(a, b *domain.Discount) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

// ComboDurationMinutes вычисляет длительность комбо как сумму длительностей
// составляющих услуг с учетом количества. Длительность комбо всегда
// производная, она не задается руками.
func ComboDurationMinutes(c *domain.Combo, servicesByID map[int64]*domain.Service) (int, error) {
	total := 0
	for _, item := range c.Items {
		svc, ok := servicesByID[item.ServiceID]
		if !ok {
			return 0, fmt.Errorf("%w: combo id=%d references service id=%d", ErrConstituentNotFound, c.ID, item.ServiceID)
		}
		if svc.DurationMinutes <= 0 {
			return 0, fmt.Errorf("%w: service id=%d duration %d", ErrInvalidDuration, svc.ID, svc.DurationMinutes)
		}
		total += svc.DurationMinutes * item.Quantity
	}
	return total, nil
}
