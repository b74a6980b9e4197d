package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidPolicy некорректные параметры политики расписания
var ErrInvalidPolicy = errors.New("invalid scheduling policy")

// SchedulingPolicy политика нарезки слотов
type SchedulingPolicy struct {
	SlotLengthMinutes   int
	BufferMinutes       int
	BlockPublicHolidays bool
	UpdatedAt           time.Time
}

// DefaultSchedulingPolicy политика по умолчанию, если настройки в БД не заданы
func DefaultSchedulingPolicy() SchedulingPolicy {
	return SchedulingPolicy{
		SlotLengthMinutes:   DefaultSlotLengthMinutes,
		BufferMinutes:       DefaultBufferMinutes,
		BlockPublicHolidays: DefaultBlockPublicHolidays,
	}
}

// WithOverrides возвращает копию политики с явно переданными параметрами вызова
func (p SchedulingPolicy) WithOverrides(slotLengthMinutes, bufferMinutes *int) SchedulingPolicy {
	if slotLengthMinutes != nil {
		p.SlotLengthMinutes = *slotLengthMinutes
	}
	if bufferMinutes != nil {
		p.BufferMinutes = *bufferMinutes
	}
	return p
}

// SlotLength длительность слота
func (p SchedulingPolicy) SlotLength() time.Duration {
	return time.Duration(p.SlotLengthMinutes) * time.Minute
}

// Buffer буферное время вокруг записей
func (p SchedulingPolicy) Buffer() time.Duration {
	return time.Duration(p.BufferMinutes) * time.Minute
}

// Step шаг между началами соседних слотов одного правила
func (p SchedulingPolicy) Step() time.Duration {
	return p.SlotLength() + p.Buffer()
}

// Validate проверяет политику на допустимые границы
func (p SchedulingPolicy) Validate() error {
	if p.SlotLengthMinutes < MinSlotLengthMinutes || p.SlotLengthMinutes > MaxSlotLengthMinutes {
		return fmt.Errorf("%w: slot length must be between %d and %d minutes",
			ErrInvalidPolicy, MinSlotLengthMinutes, MaxSlotLengthMinutes)
	}
	if p.BufferMinutes < MinBufferMinutes || p.BufferMinutes > MaxBufferMinutes {
		return fmt.Errorf("%w: buffer must be between %d and %d minutes",
			ErrInvalidPolicy, MinBufferMinutes, MaxBufferMinutes)
	}
	return nil
}
