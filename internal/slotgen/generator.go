// Package slotgen нарезает рабочий день на свободные слоты.
//
// Генератор чистый: получает снимок правил, блокировок и записей на день
// и ничего не изменяет, поэтому безопасен для параллельных вызовов.
package slotgen

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/internal/holidays"
)

// DaySnapshot данные, прочитанные из хранилища для одного дня
type DaySnapshot struct {
	Rules    []*domain.WorkingHoursRule // Все правила (фильтрация по дню недели и периоду выполняется здесь)
	TimeOff  []*domain.TimeOff          // Блокировки, пересекающие день
	Bookings []*domain.Booking          // Записи, пересекающие день (отменённые игнорируются)
}

// HolidayFunc проверяет, является ли календарная дата праздником
type HolidayFunc func(date time.Time) bool

// Generator генератор слотов для клиники в часовом поясе loc
type Generator struct {
	loc       *time.Location
	isHoliday HolidayFunc
}

// New создает генератор с государственным календарём праздников
func New(loc *time.Location) *Generator {
	return NewWithHolidays(loc, holidays.IsHoliday)
}

// NewWithHolidays создает генератор с произвольным календарём праздников
func NewWithHolidays(loc *time.Location, isHoliday HolidayFunc) *Generator {
	if loc == nil {
		loc = time.UTC
	}
	return &Generator{loc: loc, isHoliday: isHoliday}
}

// Location возвращает часовой пояс клиники
func (g *Generator) Location() *time.Location {
	return g.loc
}

// Generate возвращает свободные слоты на календарную дату date в хронологическом порядке
//
// Праздник (при включённой блокировке) и любая блокировка времени, задевающая день,
// закрывают день целиком. Слоты каждого правила выравниваются по началу правила
// с шагом slotLength+buffer. Пересекающиеся правила дают слоты независимо,
// дубликаты не удаляются.
func (g *Generator) Generate(date time.Time, snapshot DaySnapshot, policy domain.SchedulingPolicy) []domain.TimeSlot {
	slots := make([]domain.TimeSlot, 0)

	day := domain.DayRange(date, g.loc)

	if policy.BlockPublicHolidays && g.isHoliday != nil && g.isHoliday(day.Start) {
		return slots
	}

	rules := matchingRules(snapshot.Rules, day.Start)
	if len(rules) == 0 {
		return slots
	}

	for _, off := range snapshot.TimeOff {
		if off.Interval().Overlaps(day) {
			return slots
		}
	}

	slotLength := policy.SlotLength()
	step := policy.Step()
	if slotLength <= 0 || step <= 0 {
		return slots
	}

	busy := occupiedIntervals(snapshot.Bookings, policy.Buffer())

	for _, rule := range rules {
		window := rule.Window(day.Start, g.loc)

		for cursor := window.Start; !cursor.Add(slotLength).After(window.End); cursor = cursor.Add(step) {
			slot := domain.TimeSlot{Start: cursor, End: cursor.Add(slotLength)}
			if overlapsAny(slot.Interval(), busy) {
				continue
			}
			slots = append(slots, slot)
		}
	}

	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].Start.Before(slots[j].Start)
	})

	return slots
}

// matchingRules выбирает правила, действующие в дату day
func matchingRules(rules []*domain.WorkingHoursRule, day time.Time) []*domain.WorkingHoursRule {
	var matched []*domain.WorkingHoursRule
	for _, rule := range rules {
		if rule == nil || !rule.AppliesTo(day) {
			continue
		}
		if !rule.StartTime.IsBefore(rule.EndTime) {
			continue
		}
		matched = append(matched, rule)
	}
	return matched
}

// occupiedIntervals интервалы неотменённых записей, расширенные на buffer с обеих сторон
func occupiedIntervals(bookings []*domain.Booking, buffer time.Duration) []domain.Interval {
	busy := make([]domain.Interval, 0, len(bookings))
	for _, b := range bookings {
		if b == nil || !b.OccupiesTime() {
			continue
		}
		busy = append(busy, b.Interval().Expand(buffer))
	}
	return busy
}

func overlapsAny(slot domain.Interval, busy []domain.Interval) bool {
	for _, b := range busy {
		if slot.Overlaps(b) {
			return true
		}
	}
	return false
}
