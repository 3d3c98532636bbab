package directory

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден в сервисе профилей
	ErrUserNotFound = errors.New("directory client: user not found")

	// ErrWrongRole возвращается, когда у пользователя не та роль, что ожидалась
	ErrWrongRole = errors.New("directory client: user has unexpected role")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("directory client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("directory client: invalid response")
)
