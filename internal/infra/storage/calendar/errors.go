package calendar

import "errors"

var (
	// ErrRuleNotFound возвращается, когда правило рабочих часов не найдено
	ErrRuleNotFound = errors.New("calendar.repository: working hours rule not found")

	// ErrTimeOffNotFound возвращается, когда блокировка времени не найдена
	ErrTimeOffNotFound = errors.New("calendar.repository: time off not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("calendar.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("calendar.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("calendar.repository: failed to scan row")
)
