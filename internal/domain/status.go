package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidTransition недопустимая смена статуса
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrUnknownStatus неизвестный статус
	ErrUnknownStatus = errors.New("unknown booking status")
)

// InvalidTransitionError сообщает, какую именно смену статуса пытались выполнить
type InvalidTransitionError struct {
	From BookingStatus
	To   BookingStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%v: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

// Is позволяет проверять ошибку через errors.Is(err, ErrInvalidTransition)
func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// allowedTransitions таблица переходов; переход в тот же статус разрешён всегда
var allowedTransitions = map[BookingStatus][]BookingStatus{
	StatusBooked:    {StatusArrived, StatusNoShow, StatusCancelled},
	StatusArrived:   {StatusCompleted, StatusNoShow},
	StatusCompleted: {},
	StatusNoShow:    {},
	StatusCancelled: {},
}

// AllStatuses все статусы записи
var AllStatuses = []BookingStatus{
	StatusBooked,
	StatusArrived,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

// IsValid возвращает true для известного статуса
func (s BookingStatus) IsValid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// IsTerminal возвращает true для статусов без исходящих переходов
func (s BookingStatus) IsTerminal() bool {
	next, ok := allowedTransitions[s]
	return ok && len(next) == 0
}

// CanTransitionTo проверяет, разрешён ли переход s -> to
func (s BookingStatus) CanTransitionTo(to BookingStatus) bool {
	if !s.IsValid() || !to.IsValid() {
		return false
	}
	if s == to {
		return true
	}
	for _, allowed := range allowedTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ValidateTransition возвращает *InvalidTransitionError, если переход запрещён
func ValidateTransition(from, to BookingStatus) error {
	if !from.CanTransitionTo(to) {
		return &InvalidTransitionError{From: from, To: to}
	}
	return nil
}

// ParseStatus разбирает статус без учёта регистра ("arrived", "NO_SHOW", "no-show")
func ParseStatus(s string) (BookingStatus, error) {
	normalized := BookingStatus(strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_")))
	if !normalized.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
	return normalized, nil
}
