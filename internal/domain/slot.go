package domain

import "time"

// TimeSlot окно времени, доступное для записи. Не хранится в БД
type TimeSlot struct {
	Start time.Time
	End   time.Time
}

// Duration возвращает длительность слота
func (s TimeSlot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Interval возвращает интервал слота [Start, End)
func (s TimeSlot) Interval() Interval {
	return Interval{Start: s.Start, End: s.End}
}
