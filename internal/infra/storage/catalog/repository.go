package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/manueles91/stella-booking-service/internal/domain"
	"github.com/manueles91/stella-booking-service/pkg/dbmetrics"
	"github.com/manueles91/stella-booking-service/pkg/psqlbuilder"
)

// Repository репозиторий каталога: услуги, комбо и скидки
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var serviceColumns = []string{
	"id",
	"name",
	"description",
	"duration_minutes",
	"base_price_cents",
	"category_id",
	"is_active",
	"created_at",
	"updated_at",
}

// ListActiveServices возвращает все активные услуги
func (r *Repository) ListActiveServices(ctx context.Context) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanServices(rows)
}

// GetServiceByID получает услугу по ID
func (r *Repository) GetServiceByID(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - build select query: %v", ErrBuildQuery, err)
	}

	var svc domain.Service
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&svc.ID,
		&svc.Name,
		&svc.Description,
		&svc.DurationMinutes,
		&svc.BasePriceCents,
		&svc.CategoryID,
		&svc.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - scan service: %v", ErrScanRow, err)
	}

	svc.CreatedAt = createdAt.Time
	svc.UpdatedAt = updatedAt.Time

	return &svc, nil
}

// ListOfferableCombos возвращает активные комбо, чье окно действия содержит дату
// Состав комбо загружается вторым запросом
func (r *Repository) ListOfferableCombos(ctx context.Context, day time.Time) ([]*domain.Combo, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"original_price_cents",
		"total_price_cents",
		"start_date",
		"end_date",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("combos").
		Where(squirrel.Eq{"is_active": true}).
		Where(squirrel.LtOrEq{"start_date": day}).
		Where(squirrel.GtOrEq{"end_date": day}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOfferableCombos - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOfferableCombos - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	combos := make([]*domain.Combo, 0)
	byID := make(map[int64]*domain.Combo)

	for rows.Next() {
		var combo domain.Combo
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(
			&combo.ID,
			&combo.Name,
			&combo.OriginalPriceCents,
			&combo.TotalPriceCents,
			&combo.StartDate,
			&combo.EndDate,
			&combo.IsActive,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListOfferableCombos - scan combo: %v", ErrScanRow, err)
		}

		combo.CreatedAt = createdAt.Time
		combo.UpdatedAt = updatedAt.Time
		combos = append(combos, &combo)
		byID[combo.ID] = &combo
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOfferableCombos - rows error: %v", ErrScanRow, err)
	}

	if len(combos) == 0 {
		return combos, nil
	}

	if err := r.loadComboItems(ctx, byID); err != nil {
		return nil, err
	}

	return combos, nil
}

// GetComboByID получает комбо с составом по ID
func (r *Repository) GetComboByID(ctx context.Context, id int64) (*domain.Combo, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"original_price_cents",
		"total_price_cents",
		"start_date",
		"end_date",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("combos").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetComboByID - build select query: %v", ErrBuildQuery, err)
	}

	var combo domain.Combo
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&combo.ID,
		&combo.Name,
		&combo.OriginalPriceCents,
		&combo.TotalPriceCents,
		&combo.StartDate,
		&combo.EndDate,
		&combo.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrComboNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetComboByID - scan combo: %v", ErrScanRow, err)
	}

	combo.CreatedAt = createdAt.Time
	combo.UpdatedAt = updatedAt.Time

	if err := r.loadComboItems(ctx, map[int64]*domain.Combo{combo.ID: &combo}); err != nil {
		return nil, err
	}

	return &combo, nil
}

// loadComboItems подгружает состав для набора комбо одним запросом
func (r *Repository) loadComboItems(ctx context.Context, byID map[int64]*domain.Combo) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	ids := make([]int64, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}

	query, args, err := psqlbuilder.Select(
		"combo_id",
		"service_id",
		"quantity",
	).
		From("combo_services").
		Where(squirrel.Eq{"combo_id": ids}).
		OrderBy("combo_id ASC, position ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: loadComboItems - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadComboItems - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var comboID int64
		var item domain.ComboItem
		if err := rows.Scan(&comboID, &item.ServiceID, &item.Quantity); err != nil {
			return fmt.Errorf("%w: loadComboItems - scan item: %v", ErrScanRow, err)
		}
		if combo, ok := byID[comboID]; ok {
			combo.Items = append(combo.Items, item)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadComboItems - rows error: %v", ErrScanRow, err)
	}

	return nil
}

// ListActiveDiscounts возвращает все активные скидки
// Проверка окна действия и кода выполняется на уровне сервиса ценообразования
func (r *Repository) ListActiveDiscounts(ctx context.Context) ([]*domain.Discount, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"service_id",
		"name",
		"discount_type",
		"value",
		"is_public",
		"code",
		"start_date",
		"end_date",
		"is_active",
		"created_at",
	).
		From("discounts").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("created_at ASC, id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveDiscounts - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveDiscounts - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	discounts := make([]*domain.Discount, 0)
	for rows.Next() {
		var d domain.Discount
		var createdAt sql.NullTime

		if err := rows.Scan(
			&d.ID,
			&d.ServiceID,
			&d.Name,
			&d.Type,
			&d.Value,
			&d.IsPublic,
			&d.Code,
			&d.StartDate,
			&d.EndDate,
			&d.IsActive,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListActiveDiscounts - scan discount: %v", ErrScanRow, err)
		}

		d.CreatedAt = createdAt.Time
		discounts = append(discounts, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveDiscounts - rows error: %v", ErrScanRow, err)
	}

	return discounts, nil
}

// ListCategories возвращает все категории каталога
func (r *Repository) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name").
		From("categories").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListCategories - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListCategories - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	categories := make([]*domain.Category, 0)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("%w: ListCategories - scan category: %v", ErrScanRow, err)
		}
		categories = append(categories, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListCategories - rows error: %v", ErrScanRow, err)
	}

	return categories, nil
}

func scanServices(rows *sql.Rows) ([]*domain.Service, error) {
	services := make([]*domain.Service, 0)

	for rows.Next() {
		var svc domain.Service
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(
			&svc.ID,
			&svc.Name,
			&svc.Description,
			&svc.DurationMinutes,
			&svc.BasePriceCents,
			&svc.CategoryID,
			&svc.IsActive,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scan service: %v", ErrScanRow, err)
		}

		svc.CreatedAt = createdAt.Time
		svc.UpdatedAt = updatedAt.Time
		services = append(services, &svc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %v", ErrScanRow, err)
	}

	return services, nil
}
