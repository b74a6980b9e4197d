package settings

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных значениях политики
	ErrInvalidInput = errors.New("settings: invalid input data")

	// ErrStoreUnavailable возвращается при ошибках хранилища
	ErrStoreUnavailable = errors.New("settings: store unavailable")
)
