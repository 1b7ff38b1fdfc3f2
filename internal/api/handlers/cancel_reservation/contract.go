package cancel_reservation

import "context"

type ReservationService interface {
	CancelReservation(ctx context.Context, id int64, clientID *int64, reason string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
