package find_next_slot

import (
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
)

// Request модель запроса поиска ближайшего слота
type Request struct {
	Now *time.Time // Момент, после которого ищется слот (по умолчанию текущее время)
}

// Response результат поиска
// Slot == nil означает, что в горизонте поиска свободных слотов нет (это не ошибка)
type Response struct {
	Slot         *domain.TimeSlot
	SearchedFrom time.Time
	DaysScanned  int
}
