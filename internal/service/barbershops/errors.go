package barbershops

import "errors"

var (
	// ErrBarbershopNotFound возвращается, когда барбершоп не найден
	ErrBarbershopNotFound = errors.New("barbershops: barbershop not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("barbershops: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("barbershops: internal error")
)
