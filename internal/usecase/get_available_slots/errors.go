package get_available_slots

import "errors"

var (
	// ErrItemNotFound возвращается, когда услуга или комбо не найдены
	ErrItemNotFound = errors.New("bookable item not found")

	// ErrEmployeeNotFound возвращается, когда запрошенный мастер
	// не входит в ростер
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrDataIntegrity возвращается при некорректных данных каталога
	// (например, неположительная длительность позиции)
	ErrDataIntegrity = errors.New("data integrity error")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrUpstreamUnavailable возвращается, когда не удалось прочитать данные
	// из хранилища. Ошибка ретраябельна на стороне вызывающего; сам движок
	// ретраев не делает. Никогда не схлопывается с пустым списком слотов.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
