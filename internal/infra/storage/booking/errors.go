package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда запись не найдена
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrOverlap возвращается, когда БД отклонила запись из-за пересечения (exclusion constraint)
	ErrOverlap = errors.New("booking.repository: booking overlaps an existing booking")

	// ErrClientNotFound возвращается при нарушении внешнего ключа на клиента
	ErrClientNotFound = errors.New("booking.repository: client not found")

	// ErrLock возвращается при ошибке взятия advisory-блокировки
	ErrLock = errors.New("booking.repository: failed to acquire lock")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
