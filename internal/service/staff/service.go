package staff

import (
	"context"
	"errors"
	"fmt"

	storage "github.com/manueles91/stella-booking-service/internal/infra/storage/staff"

	"github.com/manueles91/stella-booking-service/internal/domain"
)

// Service сервис персонала: сужает ростер до мастеров, способных выполнить
// выбранную позицию целиком.
type Service struct {
	repo   StaffRepository
	logger Logger
}

// NewService создает сервис персонала
func NewService(repo StaffRepository, logger Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ListEligibleEmployees возвращает мастеров, сертифицированных для КАЖДОЙ
// услуги позиции. Для комбо требуется один мастер на весь пакет (И, а не ИЛИ).
//
// Пустой результат - нормальный ответ ("нет подходящих мастеров"), никакого
// мастера-заглушки сервис не придумывает.
func (s *Service) ListEligibleEmployees(ctx context.Context, item *domain.BookableItem) ([]*domain.Employee, error) {
	roster, err := s.repo.ListActiveEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list employees: %v", ErrInternal, err)
	}

	required := item.ConstituentServiceIDs()

	eligible := make([]*domain.Employee, 0, len(roster))
	for _, e := range roster {
		if e.IsCertifiedForAll(required) {
			eligible = append(eligible, e)
		}
	}

	if len(eligible) == 0 {
		s.logger.Info("Staff: no eligible employees for %s id=%d", item.Type, item.ID)
	}

	return eligible, nil
}

// GetEmployee получает мастера по ID
func (s *Service) GetEmployee(ctx context.Context, id int64) (*domain.Employee, error) {
	e, err := s.repo.GetEmployeeByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrEmployeeNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
	}
	return e, nil
}
