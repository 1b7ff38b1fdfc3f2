package catalog

import "errors"

var (
	// ErrItemNotFound возвращается, когда услуга или комбо не найдены
	// либо не предлагаются на текущую дату
	ErrItemNotFound = errors.New("item not found")

	// ErrDataIntegrity возвращается при некорректных данных каталога,
	// не позволяющих построить позицию
	ErrDataIntegrity = errors.New("catalog data integrity error")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("catalog service: internal error")
)
