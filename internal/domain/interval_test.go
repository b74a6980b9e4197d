package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, time.March, 3, hour, minute, 0, 0, time.UTC)
}

func TestInterval_Overlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Interval
		expected bool
	}{
		{"касание границ не пересечение", Interval{at(9, 0), at(10, 0)}, Interval{at(10, 0), at(11, 0)}, false},
		{"касание слева", Interval{at(10, 0), at(11, 0)}, Interval{at(9, 0), at(10, 0)}, false},
		{"начинается внутри", Interval{at(9, 30), at(10, 30)}, Interval{at(9, 0), at(10, 0)}, true},
		{"заканчивается внутри", Interval{at(8, 30), at(9, 30)}, Interval{at(9, 0), at(10, 0)}, true},
		{"полностью содержит", Interval{at(8, 0), at(11, 0)}, Interval{at(9, 0), at(10, 0)}, true},
		{"полностью внутри", Interval{at(9, 15), at(9, 45)}, Interval{at(9, 0), at(10, 0)}, true},
		{"совпадает", Interval{at(9, 0), at(10, 0)}, Interval{at(9, 0), at(10, 0)}, true},
		{"раздельные", Interval{at(7, 0), at(8, 0)}, Interval{at(9, 0), at(10, 0)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.expected, tt.b.Overlaps(tt.a), "overlap must be symmetric")
			assert.Equal(t, tt.expected, tt.a.OverlapCases(tt.b))
		})
	}
}

// Перебираем все пары корректных интервалов на сетке с шагом 5 минут
// и убеждаемся, что три подслучая эквивалентны одному неравенству
func TestInterval_OverlapCasesEquivalence(t *testing.T) {
	const gridMinutes = 60
	const step = 5

	var intervals []Interval
	for s := 0; s < gridMinutes; s += step {
		for e := s + step; e <= gridMinutes; e += step {
			intervals = append(intervals, Interval{
				Start: at(9, 0).Add(time.Duration(s) * time.Minute),
				End:   at(9, 0).Add(time.Duration(e) * time.Minute),
			})
		}
	}
	require.NotEmpty(t, intervals)

	for _, a := range intervals {
		for _, b := range intervals {
			require.Equal(t, a.Overlaps(b), a.OverlapCases(b),
				"mismatch for [%s,%s) vs [%s,%s)",
				a.Start.Format(TimeFormat), a.End.Format(TimeFormat),
				b.Start.Format(TimeFormat), b.End.Format(TimeFormat))
		}
	}
}

func TestInterval_IsValid(t *testing.T) {
	assert.True(t, Interval{at(9, 0), at(9, 1)}.IsValid())
	assert.False(t, Interval{at(9, 0), at(9, 0)}.IsValid())
	assert.False(t, Interval{at(10, 0), at(9, 0)}.IsValid())
	assert.False(t, Interval{End: at(9, 0)}.IsValid())
}

func TestInterval_Expand(t *testing.T) {
	expanded := Interval{at(10, 0), at(10, 30)}.Expand(5 * time.Minute)
	assert.Equal(t, at(9, 55), expanded.Start)
	assert.Equal(t, at(10, 35), expanded.End)
}

func TestDayRange(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	day := DayRange(time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC), loc)
	assert.Equal(t, time.Date(2025, time.March, 3, 0, 0, 0, 0, loc), day.Start)
	assert.Equal(t, time.Date(2025, time.March, 4, 0, 0, 0, 0, loc), day.End)
}

func TestDaysTouched(t *testing.T) {
	t.Run("внутри одного дня", func(t *testing.T) {
		days := DaysTouched(Interval{at(9, 0), at(10, 0)}, time.UTC)
		require.Len(t, days, 1)
		assert.Equal(t, at(0, 0), days[0])
	})

	t.Run("заканчивается ровно в полночь", func(t *testing.T) {
		days := DaysTouched(Interval{at(23, 0), at(0, 0).AddDate(0, 0, 1)}, time.UTC)
		require.Len(t, days, 1)
		assert.Equal(t, at(0, 0), days[0])
	})

	t.Run("через полночь", func(t *testing.T) {
		days := DaysTouched(Interval{at(23, 0), at(1, 0).AddDate(0, 0, 1)}, time.UTC)
		require.Len(t, days, 2)
		assert.Equal(t, at(0, 0), days[0])
		assert.Equal(t, at(0, 0).AddDate(0, 0, 1), days[1])
	})

	t.Run("дни считаются в поясе клиники", func(t *testing.T) {
		loc := time.FixedZone("UTC+3", 3*60*60)
		// 22:30 UTC = 01:30 следующего дня по UTC+3
		days := DaysTouched(Interval{at(22, 30), at(23, 0)}, loc)
		require.Len(t, days, 1)
		assert.Equal(t, time.Date(2025, time.March, 4, 0, 0, 0, 0, loc), days[0])
	})
}
