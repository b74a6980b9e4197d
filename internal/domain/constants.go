package domain

// Значения политики расписания по умолчанию
const (
	DefaultSlotLengthMinutes   = 30
	DefaultBufferMinutes       = 0
	DefaultBlockPublicHolidays = true
)

// Ограничения бизнес-валидации
const (
	MinSlotLengthMinutes = 5
	MaxSlotLengthMinutes = 480 // 8 часов
	MinBufferMinutes     = 0
	MaxBufferMinutes     = 240
	MaxTimeOffReason     = 500
)

// NextSlotHorizonDays горизонт поиска ближайшего свободного слота (включая сегодня)
const NextSlotHorizonDays = 30

// Форматы времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Типы событий аудита
const (
	AuditBookingCreated       = "booking.created"
	AuditBookingStatusChanged = "booking.status_changed"
)
