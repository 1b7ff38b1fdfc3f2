package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	storage "github.com/manueles91/stella-booking-service/internal/infra/storage/catalog"

	"github.com/manueles91/stella-booking-service/internal/domain"
	"github.com/manueles91/stella-booking-service/internal/service/pricing"
)

// Service сервис каталога: собирает услуги, комбо и скидки в единый
// список бронируемых позиций с рассчитанными ценами.
//
// Каталог - чистая функция трех входов (услуги, комбо, скидки) и текущей
// даты; список пересобирается на каждый запрос, ничего не кэшируется и
// не мутируется.
type Service struct {
	repo         CatalogRepository
	timeProvider TimeProvider
	lang         language.Tag
	logger       Logger
}

// NewService создает сервис каталога.
// locale - BCP 47 тег для локализованной сортировки названий (например "es").
func NewService(repo CatalogRepository, locale string, logger Logger) *Service {
	tag, err := language.Parse(locale)
	if err != nil {
		logger.Warn("Catalog: unknown collation locale %q, falling back to und", locale)
		tag = language.Und
	}
	return &Service{
		repo:         repo,
		timeProvider: &RealTimeProvider{},
		lang:         tag,
		logger:       logger,
	}
}

// ListOptions параметры выборки каталога
type ListOptions struct {
	// CategoryID фильтр по категории (nil - все категории)
	CategoryID *int64
	// DiscountCode введенный клиентом код скидки ("" - без кода)
	DiscountCode string
}

// ListBookableItems возвращает отсортированный список бронируемых позиций:
// активные услуги с лучшей подходящей скидкой и действующие комбо.
// Некорректная запись каталога пропускается с предупреждением - одна битая
// услуга не должна обнулять весь каталог.
func (s *Service) ListBookableItems(ctx context.Context, opts ListOptions) ([]*domain.BookableItem, error) {
	today := s.timeProvider.Now()

	services, err := s.repo.ListActiveServices(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list services: %v", ErrInternal, err)
	}

	combos, err := s.repo.ListOfferableCombos(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list combos: %v", ErrInternal, err)
	}

	discounts, err := s.repo.ListActiveDiscounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list discounts: %v", ErrInternal, err)
	}

	discountsByService := groupDiscounts(discounts)
	servicesByID := make(map[int64]*domain.Service, len(services))
	for _, svc := range services {
		servicesByID[svc.ID] = svc
	}

	items := make([]*domain.BookableItem, 0, len(services)+len(combos))

	for _, svc := range services {
		if opts.CategoryID != nil && (svc.CategoryID == nil || *svc.CategoryID != *opts.CategoryID) {
			continue
		}

		item, err := s.buildServiceItem(svc, discountsByService[svc.ID], today, opts.DiscountCode)
		if err != nil {
			s.logger.Warn("Catalog: skipping service id=%d: %v", svc.ID, err)
			continue
		}
		items = append(items, item)
	}

	// Комбо не участвуют в фильтре по категории: пакет может объединять
	// услуги из разных категорий
	if opts.CategoryID == nil {
		for _, combo := range combos {
			// Состав грузится отдельно: комбо с услугой, снятой с продажи
			// по отдельности, остается в каталоге, как и при запросе по id
			comboServices, err := s.constituentServices(ctx, combo, servicesByID)
			if err != nil {
				if errors.Is(err, ErrInternal) {
					return nil, err
				}
				s.logger.Warn("Catalog: skipping combo id=%d: %v", combo.ID, err)
				continue
			}

			item, err := s.buildComboItem(combo, comboServices)
			if err != nil {
				s.logger.Warn("Catalog: skipping combo id=%d: %v", combo.ID, err)
				continue
			}
			items = append(items, item)
		}
	}

	s.sortByName(items)

	return items, nil
}

// GetBookableItem возвращает одну позицию с рассчитанной ценой.
// Используется генератором слотов и усекейсом создания брони.
func (s *Service) GetBookableItem(ctx context.Context, itemType domain.ItemType, itemID int64, discountCode string) (*domain.BookableItem, error) {
	today := s.timeProvider.Now()

	switch itemType {
	case domain.ItemService:
		svc, err := s.repo.GetServiceByID(ctx, itemID)
		if err != nil {
			if errors.Is(err, storage.ErrServiceNotFound) {
				return nil, ErrItemNotFound
			}
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		if !svc.IsActive {
			return nil, ErrItemNotFound
		}

		discounts, err := s.repo.ListActiveDiscounts(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to list discounts: %v", ErrInternal, err)
		}

		item, err := s.buildServiceItem(svc, groupDiscounts(discounts)[svc.ID], today, discountCode)
		if err != nil {
			return nil, fmt.Errorf("%w: service id=%d: %v", ErrDataIntegrity, svc.ID, err)
		}
		return item, nil

	case domain.ItemCombo:
		combo, err := s.repo.GetComboByID(ctx, itemID)
		if err != nil {
			if errors.Is(err, storage.ErrComboNotFound) {
				return nil, ErrItemNotFound
			}
			return nil, fmt.Errorf("%w: failed to get combo: %v", ErrInternal, err)
		}
		if !combo.IsOfferable(today) {
			return nil, ErrItemNotFound
		}

		servicesByID, err := s.constituentServices(ctx, combo, nil)
		if err != nil {
			return nil, err
		}

		item, err := s.buildComboItem(combo, servicesByID)
		if err != nil {
			return nil, fmt.Errorf("%w: combo id=%d: %v", ErrDataIntegrity, combo.ID, err)
		}
		return item, nil

	default:
		return nil, fmt.Errorf("%w: unknown item type %q", ErrItemNotFound, itemType)
	}
}

// ListCategories возвращает категории каталога
func (s *Service) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list categories: %v", ErrInternal, err)
	}
	return categories, nil
}

// buildServiceItem собирает позицию из услуги, применяя лучшую скидку
func (s *Service) buildServiceItem(svc *domain.Service, candidates []*domain.Discount, today time.Time, code string) (*domain.BookableItem, error) {
	if err := svc.Validate(); err != nil {
		return nil, err
	}

	resolution, err := pricing.ResolveBestDiscount(svc.BasePriceCents, candidates, today, code)
	if err != nil {
		return nil, err
	}

	item := &domain.BookableItem{
		Type:               domain.ItemService,
		ID:                 svc.ID,
		Name:               svc.Name,
		DurationMinutes:    svc.DurationMinutes,
		OriginalPriceCents: svc.BasePriceCents,
		FinalPriceCents:    resolution.FinalPriceCents,
		SavingsCents:       resolution.SavingsCents,
		CategoryID:         svc.CategoryID,
	}

	if resolution.Discount != nil {
		item.AppliedDiscount = &domain.AppliedDiscount{
			ID:           resolution.Discount.ID,
			Name:         resolution.Discount.Name,
			Type:         resolution.Discount.Type,
			Value:        resolution.Discount.Value,
			SavingsCents: resolution.SavingsCents,
		}
	}

	return item, nil
}

// buildComboItem собирает позицию из комбо.
// Цена комбо авторская (total_price), скидки к комбо не применяются;
// длительность всегда производная от состава.
func (s *Service) buildComboItem(combo *domain.Combo, servicesByID map[int64]*domain.Service) (*domain.BookableItem, error) {
	if err := combo.Validate(); err != nil {
		return nil, err
	}

	duration, err := pricing.ComboDurationMinutes(combo, servicesByID)
	if err != nil {
		return nil, err
	}

	savings := combo.SavingsCents()
	if savings <= 0 {
		// Ошибка конфигурации, а не повод падать: комбо продается,
		// но бейдж экономии бессмысленен
		s.logger.Warn("Catalog: combo id=%d has non-positive savings (original=%d, total=%d)",
			combo.ID, combo.OriginalPriceCents, combo.TotalPriceCents)
	}

	constituents := make([]domain.ComboConstituent, 0, len(combo.Items))
	for _, comboItem := range combo.Items {
		svc := servicesByID[comboItem.ServiceID]
		constituents = append(constituents, domain.ComboConstituent{
			ServiceID:       svc.ID,
			Name:            svc.Name,
			Quantity:        comboItem.Quantity,
			DurationMinutes: svc.DurationMinutes,
		})
	}

	return &domain.BookableItem{
		Type:               domain.ItemCombo,
		ID:                 combo.ID,
		Name:               combo.Name,
		DurationMinutes:    duration,
		OriginalPriceCents: combo.OriginalPriceCents,
		FinalPriceCents:    combo.TotalPriceCents,
		SavingsCents:       savings,
		Constituents:       constituents,
	}, nil
}

// constituentServices загружает услуги состава комбо, включая неактивные:
// комбо с услугой, снятой с продажи по отдельности, остается валидным.
// known - уже загруженные услуги (может быть nil), недостающие дочитываются
// из репозитория.
func (s *Service) constituentServices(ctx context.Context, combo *domain.Combo, known map[int64]*domain.Service) (map[int64]*domain.Service, error) {
	servicesByID := make(map[int64]*domain.Service, len(combo.Items))
	for _, item := range combo.Items {
		if _, ok := servicesByID[item.ServiceID]; ok {
			continue
		}
		if svc, ok := known[item.ServiceID]; ok {
			servicesByID[item.ServiceID] = svc
			continue
		}
		svc, err := s.repo.GetServiceByID(ctx, item.ServiceID)
		if err != nil {
			if errors.Is(err, storage.ErrServiceNotFound) {
				return nil, fmt.Errorf("%w: combo id=%d references missing service id=%d",
					ErrDataIntegrity, combo.ID, item.ServiceID)
			}
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		servicesByID[svc.ID] = svc
	}
	return servicesByID, nil
}

// groupDiscounts группирует скидки по услуге, к которой каждая привязана
func groupDiscounts(discounts []*domain.Discount) map[int64][]*domain.Discount {
	byService := make(map[int64][]*domain.Discount, len(discounts))
	for _, d := range discounts {
		byService[d.ServiceID] = append(byService[d.ServiceID], d)
	}
	return byService
}

// sortByName сортирует позиции по названию с учетом локали
func (s *Service) sortByName(items []*domain.BookableItem) {
	// Коллатор не потокобезопасен, создаем на каждый вызов
	coll := collate.New(s.lang)
	sort.SliceStable(items, func(i, j int) bool {
		if c := coll.CompareString(items[i].Name, items[j].Name); c != 0 {
			return c < 0
		}
		// Одинаковые названия: услуги перед комбо, затем по id
		if items[i].Type != items[j].Type {
			return items[i].Type == domain.ItemService
		}
		return items[i].ID < items[j].ID
	})
}
