package create_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrPastTime возвращается, когда время бронирования не в будущем
	ErrPastTime = errors.New("create_booking: booking time is not in the future")

	// ErrInvalidTimeSlot возвращается, когда время не совпадает ни с одним слотом сетки
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrSlotTaken возвращается, когда слот уже занят
	ErrSlotTaken = errors.New("create_booking: slot is already taken")

	// ErrForbidden возвращается, когда пользователь бронирует от имени другого
	ErrForbidden = errors.New("create_booking: cannot book on behalf of another user")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
