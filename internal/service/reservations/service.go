package reservations

import (
	"context"
	"errors"
	"fmt"

	storage "github.com/manueles91/stella-booking-service/internal/infra/storage/commitments"

	"github.com/manueles91/stella-booking-service/internal/domain"
)

// Service сервис работы с бронями для клиента и бэк-офиса:
// получение, отмена, списки. Создание брони - отдельный usecase
// с сериализуемой транзакцией.
type Service struct {
	repo   ReservationRepository
	logger Logger
}

// NewService создает сервис броней
func NewService(repo ReservationRepository, logger Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// GetReservation возвращает бронь по ID с проверкой владельца.
// clientID == nil означает запрос бэк-офиса без проверки владельца.
func (s *Service) GetReservation(ctx context.Context, id int64, clientID *int64) (*domain.Reservation, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrReservationNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}

	if clientID != nil && res.ClientID != *clientID {
		s.logger.Warn("Reservations: client=%d tried to access reservation id=%d of client=%d",
			*clientID, id, res.ClientID)
		return nil, ErrAccessDenied
	}

	return res, nil
}

// CancelReservation отменяет бронь с указанием причины
func (s *Service) CancelReservation(ctx context.Context, id int64, clientID *int64, reason string) error {
	if len(reason) > domain.MaxCancelReasonLength {
		return fmt.Errorf("%w: cancellation reason too long", ErrInvalidInput)
	}

	res, err := s.GetReservation(ctx, id, clientID)
	if err != nil {
		return err
	}

	if !res.CanBeCancelled() {
		s.logger.Warn("Reservations: reservation id=%d in status %s cannot be cancelled", id, res.Status)
		return ErrCannotCancel
	}

	if err := s.repo.Cancel(ctx, id, reason); err != nil {
		if errors.Is(err, storage.ErrReservationNotFound) {
			return ErrReservationNotFound
		}
		return fmt.Errorf("%w: failed to cancel reservation: %v", ErrInternal, err)
	}

	s.logger.Info("Reservations: reservation id=%d cancelled", id)
	return nil
}

// ListReservations возвращает брони по фильтру
func (s *Service) ListReservations(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	reservations, err := s.repo.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
	}
	return reservations, nil
}
