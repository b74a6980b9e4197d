package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
)

// Request модель запроса на получение свободных слотов
type Request struct {
	Date              time.Time                // Календарная дата (время игнорируется)
	SlotLengthMinutes *int                     // Переопределение длительности слота (опционально)
	BufferMinutes     *int                     // Переопределение буфера (опционально)
	Policy            *domain.SchedulingPolicy // Уже определённая политика; если задана, настройки не читаются
}

// Response модель ответа со списком свободных слотов
type Response struct {
	Date   time.Time               // Полночь запрошенной даты в поясе клиники
	Policy domain.SchedulingPolicy // Политика, с которой генерировались слоты
	Slots  []domain.TimeSlot       // Свободные слоты в хронологическом порядке
}
