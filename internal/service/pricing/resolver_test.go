package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manueles91/stella-booking-service/internal/domain"
	"github.com/manueles91/stella-booking-service/pkg/ptr"
)

var (
	windowStart = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	windowEnd   = time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	today       = time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
)

func publicPercentage(id, value int64, createdAt time.Time) *domain.Discount {
	return &domain.Discount{
		ID:        id,
		Type:      domain.DiscountPercentage,
		Value:     value,
		IsPublic:  true,
		StartDate: windowStart,
		EndDate:   windowEnd,
		IsActive:  true,
		CreatedAt: createdAt,
	}
}

func publicFlat(id, cents int64, createdAt time.Time) *domain.Discount {
	return &domain.Discount{
		ID:        id,
		Type:      domain.DiscountFlat,
		Value:     cents,
		IsPublic:  true,
		StartDate: windowStart,
		EndDate:   windowEnd,
		IsActive:  true,
		CreatedAt: createdAt,
	}
}

func TestResolveBestDiscount_NoCandidates(t *testing.T) {
	res, err := ResolveBestDiscount(5000, nil, today, "")
	require.NoError(t, err)
	assert.Nil(t, res.Discount)
	assert.Equal(t, int64(5000), res.FinalPriceCents)
	assert.Equal(t, int64(0), res.SavingsCents)
}

func TestResolveBestDiscount_PercentageRounding(t *testing.T) {
	// 15% от 3333 = 499.95 центов, round half up -> 500
	res, err := ResolveBestDiscount(3333, []*domain.Discount{publicPercentage(1, 15, today)}, today, "")
	require.NoError(t, err)
	assert.Equal(t, int64(500), res.SavingsCents)
	assert.Equal(t, int64(2833), res.FinalPriceCents)
}

func TestResolveBestDiscount_FlatClampedToBase(t *testing.T) {
	res, err := ResolveBestDiscount(1000, []*domain.Discount{publicFlat(1, 2500, today)}, today, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), res.SavingsCents)
	assert.Equal(t, int64(0), res.FinalPriceCents)
}

func TestResolveBestDiscount_PicksLargestSavings(t *testing.T) {
	candidates := []*domain.Discount{
		publicPercentage(1, 10, today), // 500
		publicFlat(2, 700, today),      // 700
		publicPercentage(3, 5, today),  // 250
	}

	res, err := ResolveBestDiscount(5000, candidates, today, "")
	require.NoError(t, err)
	require.NotNil(t, res.Discount)
	assert.Equal(t, int64(2), res.Discount.ID)
	assert.Equal(t, int64(700), res.SavingsCents)
	assert.Equal(t, int64(4300), res.FinalPriceCents)
}

func TestResolveBestDiscount_TieBreakByCreatedAt(t *testing.T) {
	older := publicFlat(7, 500, today.Add(-48*time.Hour))
	newer := publicFlat(3, 500, today.Add(-time.Hour))

	// Результат не зависит от порядка кандидатов
	for _, candidates := range [][]*domain.Discount{
		{newer, older},
		{older, newer},
	} {
		res, err := ResolveBestDiscount(5000, candidates, today, "")
		require.NoError(t, err)
		require.NotNil(t, res.Discount)
		assert.Equal(t, int64(7), res.Discount.ID)
	}
}

func TestResolveBestDiscount_TieBreakAcrossTypes(t *testing.T) {
	// 20% от 10000 и flat 2000 экономят одинаково -
	// тип скидки роли не играет, выигрывает более ранняя
	percentage := publicPercentage(2, 20, today.Add(-72*time.Hour))
	flat := publicFlat(9, 2000, today.Add(-time.Hour))

	for _, candidates := range [][]*domain.Discount{
		{flat, percentage},
		{percentage, flat},
	} {
		res, err := ResolveBestDiscount(10000, candidates, today, "")
		require.NoError(t, err)
		require.NotNil(t, res.Discount)
		assert.Equal(t, int64(2), res.Discount.ID)
		assert.Equal(t, int64(2000), res.SavingsCents)
		assert.Equal(t, int64(8000), res.FinalPriceCents)
	}
}

func TestResolveBestDiscount_TieBreakByID(t *testing.T) {
	createdAt := today.Add(-time.Hour)
	a := publicFlat(12, 500, createdAt)
	b := publicFlat(4, 500, createdAt)

	res, err := ResolveBestDiscount(5000, []*domain.Discount{a, b}, today, "")
	require.NoError(t, err)
	require.NotNil(t, res.Discount)
	assert.Equal(t, int64(4), res.Discount.ID)
}

func TestResolveBestDiscount_PrivateRequiresCode(t *testing.T) {
	private := publicFlat(1, 500, today)
	private.IsPublic = false
	private.Code = ptr.Ptr("VIP2026")

	// Без кода скидка не подходит
	res, err := ResolveBestDiscount(5000, []*domain.Discount{private}, today, "")
	require.NoError(t, err)
	assert.Nil(t, res.Discount)

	// Неправильный код тоже не подходит
	res, err = ResolveBestDiscount(5000, []*domain.Discount{private}, today, "WRONG")
	require.NoError(t, err)
	assert.Nil(t, res.Discount)

	// С правильным кодом применяется
	res, err = ResolveBestDiscount(5000, []*domain.Discount{private}, today, "VIP2026")
	require.NoError(t, err)
	require.NotNil(t, res.Discount)
	assert.Equal(t, int64(500), res.SavingsCents)
}

func TestResolveBestDiscount_OutsideWindow(t *testing.T) {
	expired := publicFlat(1, 500, today)
	expired.EndDate = today.AddDate(0, 0, -1)

	res, err := ResolveBestDiscount(5000, []*domain.Discount{expired}, today, "")
	require.NoError(t, err)
	assert.Nil(t, res.Discount)
}

func TestResolveBestDiscount_WindowBoundariesInclusive(t *testing.T) {
	d := publicFlat(1, 500, today)
	d.StartDate = today
	d.EndDate = today

	res, err := ResolveBestDiscount(5000, []*domain.Discount{d}, today, "")
	require.NoError(t, err)
	require.NotNil(t, res.Discount)
}

func TestResolveBestDiscount_InvalidCandidateIsError(t *testing.T) {
	bad := publicPercentage(9, 140, today)

	_, err := ResolveBestDiscount(5000, []*domain.Discount{bad}, today, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDiscount)
	assert.Contains(t, err.Error(), "id=9")
}

func TestComboDurationMinutes(t *testing.T) {
	servicesByID := map[int64]*domain.Service{
		1: {ID: 1, DurationMinutes: 30},
		2: {ID: 2, DurationMinutes: 45},
	}

	combo := &domain.Combo{
		ID: 5,
		Items: []domain.ComboItem{
			{ServiceID: 1, Quantity: 2},
			{ServiceID: 2, Quantity: 1},
		},
	}

	total, err := ComboDurationMinutes(combo, servicesByID)
	require.NoError(t, err)
	assert.Equal(t, 105, total)
}

func TestComboDurationMinutes_MissingConstituent(t *testing.T) {
	combo := &domain.Combo{
		ID:    5,
		Items: []domain.ComboItem{{ServiceID: 99, Quantity: 1}},
	}

	_, err := ComboDurationMinutes(combo, map[int64]*domain.Service{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConstituentNotFound)
}
