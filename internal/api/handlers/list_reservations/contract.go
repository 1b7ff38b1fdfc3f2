package list_reservations

import (
	"context"

	"github.com/manueles91/stella-booking-service/internal/domain"
)

type ReservationService interface {
	ListReservations(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
