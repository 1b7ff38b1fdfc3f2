package staff

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/manueles91/stella-booking-service/internal/domain"
	"github.com/manueles91/stella-booking-service/pkg/dbmetrics"
	"github.com/manueles91/stella-booking-service/pkg/psqlbuilder"
)

// Repository репозиторий персонала: мастера, их сертификации и недельные расписания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория персонала
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListActiveEmployees возвращает активных мастеров вместе с наборами
// сертифицированных услуг (вторым запросом, без N+1)
func (r *Repository) ListActiveEmployees(ctx context.Context) ([]*domain.Employee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "is_active").
		From("employees").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveEmployees - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveEmployees - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	byID := make(map[int64]*domain.Employee)

	for rows.Next() {
		var e domain.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.IsActive); err != nil {
			return nil, fmt.Errorf("%w: ListActiveEmployees - scan employee: %v", ErrScanRow, err)
		}
		employees = append(employees, &e)
		byID[e.ID] = &e
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveEmployees - rows error: %v", ErrScanRow, err)
	}

	if len(employees) == 0 {
		return employees, nil
	}

	if err := r.loadCertifications(ctx, byID); err != nil {
		return nil, err
	}

	return employees, nil
}

// GetEmployeeByID получает мастера с набором сертифицированных услуг
func (r *Repository) GetEmployeeByID(ctx context.Context, id int64) (*domain.Employee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "is_active").
		From("employees").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetEmployeeByID - build select query: %v", ErrBuildQuery, err)
	}

	var e domain.Employee
	err = executor.QueryRowContext(ctx, query, args...).Scan(&e.ID, &e.Name, &e.IsActive)
	if err == sql.ErrNoRows {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetEmployeeByID - scan employee: %v", ErrScanRow, err)
	}

	if err := r.loadCertifications(ctx, map[int64]*domain.Employee{e.ID: &e}); err != nil {
		return nil, err
	}

	return &e, nil
}

// loadCertifications подгружает наборы сертифицированных услуг одним запросом
func (r *Repository) loadCertifications(ctx context.Context, byID map[int64]*domain.Employee) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	ids := make([]int64, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}

	query, args, err := psqlbuilder.Select("employee_id", "service_id").
		From("employee_services").
		Where(squirrel.Eq{"employee_id": ids}).
		OrderBy("employee_id ASC, service_id ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: loadCertifications - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadCertifications - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var employeeID, serviceID int64
		if err := rows.Scan(&employeeID, &serviceID); err != nil {
			return fmt.Errorf("%w: loadCertifications - scan row: %v", ErrScanRow, err)
		}
		if e, ok := byID[employeeID]; ok {
			e.CertifiedServiceIDs = append(e.CertifiedServiceIDs, serviceID)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadCertifications - rows error: %v", ErrScanRow, err)
	}

	return nil
}

// ListAvailabilityForWeekday возвращает недельные записи расписания мастеров
// на день недели (0=воскресенье ... 6=суббота). У мастера может быть ноль,
// одна или несколько несмежных записей на день. Записи с is_available=false
// тоже возвращаются: наличие такой записи означает выходной, а не отсутствие
// расписания.
func (r *Repository) ListAvailabilityForWeekday(ctx context.Context, employeeIDs []int64, weekday int) ([]*domain.EmployeeAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if len(employeeIDs) == 0 {
		return []*domain.EmployeeAvailability{}, nil
	}

	query, args, err := psqlbuilder.Select(
		"id",
		"employee_id",
		"weekday",
		"start_time",
		"end_time",
		"is_available",
		"created_at",
	).
		From("employee_availability").
		Where(squirrel.Eq{"employee_id": employeeIDs}).
		Where(squirrel.Eq{"weekday": weekday}).
		OrderBy("employee_id ASC, start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailabilityForWeekday - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailabilityForWeekday - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]*domain.EmployeeAvailability, 0)
	for rows.Next() {
		var a domain.EmployeeAvailability
		var createdAt sql.NullTime

		if err := rows.Scan(
			&a.ID,
			&a.EmployeeID,
			&a.Weekday,
			&a.Window.Start,
			&a.Window.End,
			&a.IsAvailable,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListAvailabilityForWeekday - scan row: %v", ErrScanRow, err)
		}

		a.CreatedAt = createdAt.Time
		windows = append(windows, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAvailabilityForWeekday - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}
