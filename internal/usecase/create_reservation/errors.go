package create_reservation

import "errors"

var (
	// ErrItemNotFound возвращается, когда услуга или комбо не найдены
	ErrItemNotFound = errors.New("create_reservation: bookable item not found")

	// ErrEmployeeNotFound возвращается, когда мастер не найден или неактивен
	ErrEmployeeNotFound = errors.New("create_reservation: employee not found")

	// ErrEmployeeNotEligible возвращается, когда мастер не сертифицирован
	// на все услуги позиции
	ErrEmployeeNotEligible = errors.New("create_reservation: employee is not certified for this item")

	// ErrInvalidDate возвращается при дате записи в прошлом
	ErrInvalidDate = errors.New("create_reservation: invalid reservation date")

	// ErrClosedWeekday возвращается, когда салон закрыт в этот день недели
	ErrClosedWeekday = errors.New("create_reservation: salon is closed on this weekday")

	// ErrInvalidTimeSlot возвращается, когда время не лежит на сетке слотов
	// или не помещается в рабочее окно мастера
	ErrInvalidTimeSlot = errors.New("create_reservation: invalid time slot")

	// ErrTooLateToBook возвращается при попытке записаться на уже
	// прошедшее сегодня время
	ErrTooLateToBook = errors.New("create_reservation: slot start time has already passed")

	// ErrSlotNotAvailable возвращается, когда слот занят другой записью
	// или блокировкой
	ErrSlotNotAvailable = errors.New("create_reservation: slot is not available")

	// ErrDataIntegrity возвращается при битых данных каталога
	ErrDataIntegrity = errors.New("create_reservation: data integrity error")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
