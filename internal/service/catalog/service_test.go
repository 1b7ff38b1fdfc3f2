package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storage "github.com/manueles91/stella-booking-service/internal/infra/storage/catalog"

	"github.com/manueles91/stella-booking-service/internal/domain"
	"github.com/manueles91/stella-booking-service/pkg/ptr"
)

var testToday = time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)

type fakeTimeProvider struct{ now time.Time }

func (p *fakeTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// fakeRepo in-memory репозиторий каталога
type fakeRepo struct {
	services  []*domain.Service
	combos    []*domain.Combo
	discounts []*domain.Discount
}

func (r *fakeRepo) ListActiveServices(ctx context.Context) ([]*domain.Service, error) {
	var out []*domain.Service
	for _, s := range r.services {
		if s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetServiceByID(ctx context.Context, id int64) (*domain.Service, error) {
	for _, s := range r.services {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, storage.ErrServiceNotFound
}

func (r *fakeRepo) ListOfferableCombos(ctx context.Context, day time.Time) ([]*domain.Combo, error) {
	var out []*domain.Combo
	for _, c := range r.combos {
		if c.IsOfferable(day) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetComboByID(ctx context.Context, id int64) (*domain.Combo, error) {
	for _, c := range r.combos {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, storage.ErrComboNotFound
}

func (r *fakeRepo) ListActiveDiscounts(ctx context.Context) ([]*domain.Discount, error) {
	return r.discounts, nil
}

func (r *fakeRepo) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return nil, nil
}

func activeService(id int64, name string, duration int, priceCents int64) *domain.Service {
	return &domain.Service{
		ID:              id,
		Name:            name,
		DurationMinutes: duration,
		BasePriceCents:  priceCents,
		IsActive:        true,
	}
}

func offerableCombo(id int64, name string, items []domain.ComboItem, original, total int64) *domain.Combo {
	return &domain.Combo{
		ID:                 id,
		Name:               name,
		Items:              items,
		OriginalPriceCents: original,
		TotalPriceCents:    total,
		StartDate:          testToday.AddDate(0, -1, 0),
		EndDate:            testToday.AddDate(0, 1, 0),
		IsActive:           true,
	}
}

func newTestService(repo *fakeRepo) *Service {
	svc := NewService(repo, "es", nopLogger{})
	svc.timeProvider = &fakeTimeProvider{now: testToday}
	return svc
}

func TestListBookableItems_SortedByName(t *testing.T) {
	repo := &fakeRepo{
		services: []*domain.Service{
			activeService(1, "Corte de pelo", 30, 2000),
			activeService(2, "Balayage", 120, 15000),
			// С испанской коллацией ударение не ломает порядок
			activeService(3, "Ácido hialurónico", 45, 8000),
		},
	}

	items, err := newTestService(repo).ListBookableItems(context.Background(), ListOptions{})
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "Ácido hialurónico", items[0].Name)
	assert.Equal(t, "Balayage", items[1].Name)
	assert.Equal(t, "Corte de pelo", items[2].Name)
}

func TestListBookableItems_SkipsBrokenService(t *testing.T) {
	repo := &fakeRepo{
		services: []*domain.Service{
			activeService(1, "Corte de pelo", 30, 2000),
			activeService(2, "Manicura", 0, 3000), // некорректная длительность
		},
	}

	items, err := newTestService(repo).ListBookableItems(context.Background(), ListOptions{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), items[0].ID)
}

func TestListBookableItems_CategoryFilterExcludesCombos(t *testing.T) {
	hairCategory := int64(10)
	nailsCategory := int64(20)

	hair := activeService(1, "Corte de pelo", 30, 2000)
	hair.CategoryID = &hairCategory
	nails := activeService(2, "Manicura", 45, 3000)
	nails.CategoryID = &nailsCategory

	repo := &fakeRepo{
		services: []*domain.Service{hair, nails},
		combos: []*domain.Combo{
			offerableCombo(5, "Pack novia", []domain.ComboItem{{ServiceID: 1, Quantity: 1}, {ServiceID: 2, Quantity: 1}}, 5000, 4000),
		},
	}

	items, err := newTestService(repo).ListBookableItems(context.Background(), ListOptions{CategoryID: ptr.Ptr(hairCategory)})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, domain.ItemService, items[0].Type)
	assert.Equal(t, int64(1), items[0].ID)

	// Без фильтра комбо возвращается
	items, err = newTestService(repo).ListBookableItems(context.Background(), ListOptions{})
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestListBookableItems_AppliesBestDiscount(t *testing.T) {
	repo := &fakeRepo{
		services: []*domain.Service{activeService(1, "Balayage", 120, 10000)},
		discounts: []*domain.Discount{
			{
				ID: 1, ServiceID: 1, Name: "Otoño", Type: domain.DiscountPercentage, Value: 20,
				IsPublic: true, StartDate: testToday.AddDate(0, 0, -5), EndDate: testToday.AddDate(0, 0, 5),
				IsActive: true, CreatedAt: testToday.AddDate(0, 0, -5),
			},
		},
	}

	items, err := newTestService(repo).ListBookableItems(context.Background(), ListOptions{})
	require.NoError(t, err)
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, int64(10000), item.OriginalPriceCents)
	assert.Equal(t, int64(8000), item.FinalPriceCents)
	assert.Equal(t, int64(2000), item.SavingsCents)
	require.NotNil(t, item.AppliedDiscount)
	assert.Equal(t, int64(1), item.AppliedDiscount.ID)
}

func TestListBookableItems_DiscountScopedToItsService(t *testing.T) {
	repo := &fakeRepo{
		services: []*domain.Service{
			activeService(1, "Balayage", 120, 10000),
			activeService(2, "Corte de pelo", 30, 2000),
		},
		discounts: []*domain.Discount{
			{
				ID: 1, ServiceID: 1, Name: "Otoño", Type: domain.DiscountPercentage, Value: 20,
				IsPublic: true, StartDate: testToday.AddDate(0, 0, -5), EndDate: testToday.AddDate(0, 0, 5),
				IsActive: true, CreatedAt: testToday.AddDate(0, 0, -5),
			},
		},
	}

	items, err := newTestService(repo).ListBookableItems(context.Background(), ListOptions{})
	require.NoError(t, err)
	require.Len(t, items, 2)

	// Скидка услуги 1 не перетекает на услугу 2
	assert.Equal(t, int64(8000), items[0].FinalPriceCents)
	require.NotNil(t, items[0].AppliedDiscount)
	assert.Equal(t, int64(2000), items[1].FinalPriceCents)
	assert.Nil(t, items[1].AppliedDiscount)
}

func TestListBookableItems_ComboOverInactiveConstituent(t *testing.T) {
	retired := activeService(1, "Tratamiento antiguo", 30, 2000)
	retired.IsActive = false

	repo := &fakeRepo{
		services: []*domain.Service{retired},
		combos: []*domain.Combo{
			offerableCombo(5, "Pack clásico", []domain.ComboItem{{ServiceID: 1, Quantity: 2}}, 5000, 4000),
		},
	}

	// Комбо над услугой, снятой с продажи по отдельности, видно в каталоге...
	items, err := newTestService(repo).ListBookableItems(context.Background(), ListOptions{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, domain.ItemCombo, items[0].Type)
	assert.Equal(t, 60, items[0].DurationMinutes)

	// ...и по id возвращается та же позиция
	item, err := newTestService(repo).GetBookableItem(context.Background(), domain.ItemCombo, 5, "")
	require.NoError(t, err)
	assert.Equal(t, items[0].DurationMinutes, item.DurationMinutes)
	assert.Equal(t, items[0].FinalPriceCents, item.FinalPriceCents)
}

func TestGetBookableItem_ComboDurationDerived(t *testing.T) {
	repo := &fakeRepo{
		services: []*domain.Service{
			activeService(1, "Corte de pelo", 30, 2000),
			activeService(2, "Peinado", 45, 2500),
		},
		combos: []*domain.Combo{
			offerableCombo(5, "Pack evento",
				[]domain.ComboItem{{ServiceID: 1, Quantity: 1}, {ServiceID: 2, Quantity: 2}}, 7000, 6000),
		},
	}

	item, err := newTestService(repo).GetBookableItem(context.Background(), domain.ItemCombo, 5, "")
	require.NoError(t, err)

	assert.Equal(t, 120, item.DurationMinutes)
	assert.Equal(t, int64(6000), item.FinalPriceCents)
	assert.Equal(t, int64(1000), item.SavingsCents)
	require.Len(t, item.Constituents, 2)
	assert.Equal(t, []int64{1, 2}, item.ConstituentServiceIDs())
}

func TestGetBookableItem_InactiveServiceNotFound(t *testing.T) {
	inactive := activeService(1, "Corte de pelo", 30, 2000)
	inactive.IsActive = false

	repo := &fakeRepo{services: []*domain.Service{inactive}}

	_, err := newTestService(repo).GetBookableItem(context.Background(), domain.ItemService, 1, "")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestGetBookableItem_ExpiredComboNotFound(t *testing.T) {
	expired := offerableCombo(5, "Pack verano", []domain.ComboItem{{ServiceID: 1, Quantity: 1}}, 5000, 4000)
	expired.EndDate = testToday.AddDate(0, 0, -1)

	repo := &fakeRepo{
		services: []*domain.Service{activeService(1, "Corte de pelo", 30, 2000)},
		combos:   []*domain.Combo{expired},
	}

	_, err := newTestService(repo).GetBookableItem(context.Background(), domain.ItemCombo, 5, "")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestGetBookableItem_ComboMissingConstituent(t *testing.T) {
	repo := &fakeRepo{
		combos: []*domain.Combo{
			offerableCombo(5, "Pack roto", []domain.ComboItem{{ServiceID: 99, Quantity: 1}}, 5000, 4000),
		},
	}

	_, err := newTestService(repo).GetBookableItem(context.Background(), domain.ItemCombo, 5, "")
	assert.ErrorIs(t, err, ErrDataIntegrity)
}
