package calendar

import "errors"

var (
	// ErrRuleNotFound возвращается, когда правило рабочих часов не найдено
	ErrRuleNotFound = errors.New("working hours rule not found")

	// ErrTimeOffNotFound возвращается, когда блокировка времени не найдена
	ErrTimeOffNotFound = errors.New("time off not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrStoreUnavailable возвращается при ошибках хранилища
	ErrStoreUnavailable = errors.New("calendar service: store unavailable")
)
