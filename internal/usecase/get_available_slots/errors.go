package get_available_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректной дате или параметрах политики
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrStoreUnavailable возвращается, когда не удалось прочитать данные из хранилища
	ErrStoreUnavailable = errors.New("get_available_slots: store unavailable")
)
