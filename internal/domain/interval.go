package domain

import "time"

// Interval полуоткрытый интервал времени [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// IsValid возвращает true, если Start строго раньше End
func (i Interval) IsValid() bool {
	return !i.Start.IsZero() && !i.End.IsZero() && i.Start.Before(i.End)
}

// Overlaps проверяет пересечение двух полуоткрытых интервалов: s1 < e2 && e1 > s2
// Интервалы, касающиеся границами (e1 == s2), не пересекаются
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

// OverlapCases проверяет пересечение через три явных подслучая:
//   - новый интервал начинается внутри существующего
//   - новый интервал заканчивается внутри существующего
//   - новый интервал полностью содержит существующий
//
// Для корректных интервалов результат совпадает с Overlaps (см. тесты)
func (i Interval) OverlapCases(existing Interval) bool {
	startsDuring := !i.Start.Before(existing.Start) && i.Start.Before(existing.End)
	endsDuring := i.End.After(existing.Start) && !i.End.After(existing.End)
	contains := !i.Start.After(existing.Start) && !i.End.Before(existing.End)
	return startsDuring || endsDuring || contains
}

// Expand расширяет интервал на d в обе стороны
func (i Interval) Expand(d time.Duration) Interval {
	return Interval{Start: i.Start.Add(-d), End: i.End.Add(d)}
}

// DayRange возвращает интервал суток [00:00, следующие 00:00) для даты в поясе loc
func DayRange(date time.Time, loc *time.Location) Interval {
	start := StartOfDay(date, loc)
	return Interval{Start: start, End: start.AddDate(0, 0, 1)}
}

// StartOfDay возвращает полночь календарной даты date в поясе loc
// Календарная дата берётся из date как есть, без перевода в loc
func StartOfDay(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// DaysTouched возвращает полночи всех календарных дней (в поясе loc), которые задевает интервал
func DaysTouched(i Interval, loc *time.Location) []time.Time {
	first := StartOfDay(i.Start.In(loc), loc)
	last := StartOfDay(i.End.Add(-time.Nanosecond).In(loc), loc)

	days := make([]time.Time, 0, 1)
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}
	return days
}
