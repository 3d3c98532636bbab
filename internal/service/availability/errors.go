package availability

import "errors"

var (
	// ErrInvalidInput некорректные данные запроса
	ErrInvalidInput = errors.New("invalid input")

	// ErrAccessDenied доступ запрещен: менять расписание может только сам терапевт
	ErrAccessDenied = errors.New("access denied")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("internal service error")
)
