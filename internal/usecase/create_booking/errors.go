package create_booking

import "errors"

var (
	// ErrInvalidInterval возвращается, когда start >= end или данные запроса некорректны
	ErrInvalidInterval = errors.New("create_booking: invalid interval")

	// ErrClientNotFound возвращается, когда клиент не найден
	ErrClientNotFound = errors.New("create_booking: client not found")

	// ErrConflict возвращается, когда интервал пересекает неотменённую запись или блокировку времени
	ErrConflict = errors.New("create_booking: interval conflicts with an existing booking")

	// ErrStoreUnavailable возвращается при ошибках хранилища
	ErrStoreUnavailable = errors.New("create_booking: store unavailable")
)
