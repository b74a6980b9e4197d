package domain

import (
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/pkg/types"
)

// Effectivity период действия правила рабочих часов
// Закрытый набор вариантов: Standing (бессрочное) или Bounded (ограниченное датами)
type Effectivity interface {
	// Covers возвращает true, если правило действует в календарную дату date
	Covers(date time.Time) bool
	isEffectivity()
}

// Standing бессрочное правило, действует всегда
type Standing struct{}

func (Standing) Covers(time.Time) bool { return true }
func (Standing) isEffectivity()        {}

// Bounded правило с ограниченным периодом действия, границы включительно
// nil-граница означает отсутствие ограничения с этой стороны
type Bounded struct {
	From *time.Time
	To   *time.Time
}

func (b Bounded) Covers(date time.Time) bool {
	day := civilDate(date)
	if b.From != nil && day.Before(civilDate(*b.From)) {
		return false
	}
	if b.To != nil && day.After(civilDate(*b.To)) {
		return false
	}
	return true
}

func (Bounded) isEffectivity() {}

// NewEffectivity строит Effectivity из двух необязательных границ (как они хранятся в БД)
func NewEffectivity(from, to *time.Time) Effectivity {
	if from == nil && to == nil {
		return Standing{}
	}
	return Bounded{From: from, To: to}
}

// EffectiveBounds раскладывает Effectivity обратно на необязательные границы
func EffectiveBounds(e Effectivity) (from, to *time.Time) {
	if b, ok := e.(Bounded); ok {
		return b.From, b.To
	}
	return nil, nil
}

// WorkingHoursRule повторяющееся правило рабочих часов на день недели
type WorkingHoursRule struct {
	ID        int64
	Weekday   time.Weekday // 0 = воскресенье
	StartTime types.TimeString
	EndTime   types.TimeString
	Effective Effectivity
}

// IsStanding возвращает true для бессрочного правила
func (r *WorkingHoursRule) IsStanding() bool {
	_, ok := r.Effective.(Standing)
	return ok || r.Effective == nil
}

// AppliesTo возвращает true, если правило действует в дату date
func (r *WorkingHoursRule) AppliesTo(date time.Time) bool {
	if r.Weekday != date.Weekday() {
		return false
	}
	if r.Effective == nil {
		return true
	}
	return r.Effective.Covers(date)
}

// Window возвращает рабочее окно правила в дату date
func (r *WorkingHoursRule) Window(date time.Time, loc *time.Location) Interval {
	return Interval{Start: r.StartTime.On(date, loc), End: r.EndTime.On(date, loc)}
}

// TimeOff блокировка времени [Start, End): слоты не генерируются, записи не принимаются
type TimeOff struct {
	ID        int64
	Start     time.Time
	End       time.Time
	Reason    string
	CreatedAt time.Time
}

// Interval возвращает интервал блокировки
func (t *TimeOff) Interval() Interval {
	return Interval{Start: t.Start, End: t.End}
}

// civilDate отбрасывает время, сохраняя календарную дату
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
