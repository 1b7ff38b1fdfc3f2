package pricing

import "errors"

var (
	// ErrInvalidDiscount возвращается при скидке с некорректными данными
	// (значение вне диапазона, неизвестный тип)
	ErrInvalidDiscount = errors.New("pricing: invalid discount")

	// ErrConstituentNotFound возвращается, когда услуга из состава комбо
	// отсутствует в каталоге
	ErrConstituentNotFound = errors.New("pricing: combo constituent service not found")

	// ErrInvalidDuration возвращается при неположительной длительности услуги
	ErrInvalidDuration = errors.New("pricing: invalid duration")
)
