package create_reservation

import (
	"errors"
	"net/http"

	"github.com/manueles91/stella-booking-service/internal/api/handlers"
	"github.com/manueles91/stella-booking-service/internal/api/middleware"
	createReservation "github.com/manueles91/stella-booking-service/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDateOrTime   = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgItemNotFound        = "позиция не найдена"
	msgEmployeeNotFound    = "мастер не найден"
	msgEmployeeNotEligible = "мастер не выполняет эту позицию"
	msgSlotNotAvailable    = "выбранный временной слот недоступен"
	msgInvalidDate         = "некорректная дата записи"
	msgClosedWeekday       = "салон закрыт в этот день недели"
	msgInvalidTimeSlot     = "некорректный временной слот"
	msgTooLateToBook       = "время начала уже прошло"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(clientID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrSlotNotAvailable):
			h.logger.Warn("POST /reservations - Slot not available: client_id=%d, employee_id=%d", clientID, req.EmployeeID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createReservation.ErrItemNotFound):
			h.logger.Warn("POST /reservations - Item not found: client_id=%d, item=%s/%d", clientID, req.ItemType, req.ItemID)
			handlers.RespondNotFound(w, msgItemNotFound)

		case errors.Is(err, createReservation.ErrEmployeeNotFound):
			h.logger.Warn("POST /reservations - Employee not found: client_id=%d, employee_id=%d", clientID, req.EmployeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, createReservation.ErrEmployeeNotEligible):
			h.logger.Warn("POST /reservations - Employee not eligible: client_id=%d, employee_id=%d, item=%s/%d",
				clientID, req.EmployeeID, req.ItemType, req.ItemID)
			handlers.RespondBadRequest(w, msgEmployeeNotEligible)

		case errors.Is(err, createReservation.ErrInvalidDate):
			h.logger.Warn("POST /reservations - Invalid reservation date: client_id=%d, date=%s", clientID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createReservation.ErrClosedWeekday):
			h.logger.Warn("POST /reservations - Closed weekday: client_id=%d, date=%s", clientID, req.Date)
			handlers.RespondBadRequest(w, msgClosedWeekday)

		case errors.Is(err, createReservation.ErrInvalidTimeSlot):
			h.logger.Warn("POST /reservations - Invalid time slot: client_id=%d, time=%s", clientID, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createReservation.ErrTooLateToBook):
			h.logger.Warn("POST /reservations - Too late to book: client_id=%d, date=%s, time=%s",
				clientID, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: client_id=%d, error=%v", clientID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: client_id=%d, error=%v", clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, client_id=%d, employee_id=%d",
		result.ID, clientID, req.EmployeeID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
