package get_reservation

import (
	"context"

	"github.com/manueles91/stella-booking-service/internal/domain"
)

type ReservationService interface {
	GetReservation(ctx context.Context, id int64, clientID *int64) (*domain.Reservation, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
