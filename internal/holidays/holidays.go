// Package holidays вычисляет государственные праздники клиники.
// Набор праздников зависит только от календарного года даты.
package holidays

import (
	"sort"
	"time"
)

// Holiday праздничный день
type Holiday struct {
	Date time.Time // Полночь в UTC
	Name string
}

// fixedHolidays праздники с постоянной датой
var fixedHolidays = []struct {
	month time.Month
	day   int
	name  string
}{
	{time.January, 1, "New Year's Day"},
	{time.May, 1, "Labour Day"},
	{time.June, 17, "National Day"},
	{time.December, 25, "Christmas Day"},
	{time.December, 26, "Boxing Day"},
}

// easterOffsets праздники, отсчитываемые от Пасхи (в днях)
var easterOffsets = []struct {
	offset int
	name   string
}{
	{-3, "Maundy Thursday"},
	{-2, "Good Friday"},
	{0, "Easter Sunday"},
	{1, "Easter Monday"},
	{39, "Ascension Day"},
	{49, "Whit Sunday"},
	{50, "Whit Monday"},
}

// Easter возвращает дату католической (григорианской) Пасхи для года
// Анонимный григорианский алгоритм (Meeus/Jones/Butcher)
func Easter(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// PublicHolidays возвращает праздники года, отсортированные по дате
func PublicHolidays(year int) []Holiday {
	result := make([]Holiday, 0, len(fixedHolidays)+len(easterOffsets)+2)

	for _, h := range fixedHolidays {
		result = append(result, Holiday{Date: civil(year, h.month, h.day), Name: h.name})
	}

	easter := Easter(year)
	for _, h := range easterOffsets {
		result = append(result, Holiday{Date: easter.AddDate(0, 0, h.offset), Name: h.name})
	}

	result = append(result,
		Holiday{Date: firstWeekdayOnOrAfter(civil(year, time.April, 19), time.Thursday), Name: "First Day of Summer"},
		Holiday{Date: firstWeekdayOnOrAfter(civil(year, time.August, 1), time.Monday), Name: "Commerce Day"},
	)

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result
}

// PublicHolidaysFor возвращает множество праздничных дат года (ключ полночь UTC)
func PublicHolidaysFor(year int) map[time.Time]struct{} {
	holidays := PublicHolidays(year)
	set := make(map[time.Time]struct{}, len(holidays))
	for _, h := range holidays {
		set[h.Date] = struct{}{}
	}
	return set
}

// IsHoliday возвращает true, если календарная дата date праздничная
// Учитывается только дата (год, месяц, день), часовой пояс и время игнорируются
func IsHoliday(date time.Time) bool {
	y, m, d := date.Date()
	_, ok := PublicHolidaysFor(y)[civil(y, m, d)]
	return ok
}

func civil(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func firstWeekdayOnOrAfter(from time.Time, weekday time.Weekday) time.Time {
	shift := (int(weekday) - int(from.Weekday()) + 7) % 7
	return from.AddDate(0, 0, shift)
}
