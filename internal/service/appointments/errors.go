package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда сеанс не найден
	ErrAppointmentNotFound = errors.New("appointments service: appointment not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на операцию
	ErrAccessDenied = errors.New("appointments service: access denied")

	// ErrCannotCancel возвращается, когда сеанс не может быть отменён
	ErrCannotCancel = errors.New("appointments service: appointment cannot be cancelled")

	// ErrCannotConfirm возвращается, когда сеанс не может быть подтверждён
	ErrCannotConfirm = errors.New("appointments service: appointment cannot be confirmed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("appointments service: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("appointments service: internal error")
)
