package civilday

import (
	"fmt"
	"time"
)

// Format формат представления дня в виде строки
const Format = "2006-01-02"

// Day represents a calendar day in a fixed-offset civil calendar.
// Сравнение дней идёт по полям, а не по инстантам - это исключает
// ошибки классификации дня на границе полуночи целевой таймзоны.
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

// Calendar конвертирует инстанты в календарные дни и обратно
// для фиксированного смещения от UTC (без переходов на летнее время)
type Calendar struct {
	loc *time.Location
}

// NewCalendar создает календарь с фиксированным смещением от UTC в часах
// Пример: NewCalendar(-7) для зоны UTC-7 без DST
func NewCalendar(utcOffsetHours int) Calendar {
	name := fmt.Sprintf("UTC%+d", utcOffsetHours)
	return Calendar{loc: time.FixedZone(name, utcOffsetHours*60*60)}
}

// Location returns the fixed-offset location backing the calendar.
func (c Calendar) Location() *time.Location {
	return c.loc
}

// DayOf возвращает календарный день, на который приходится инстант
func (c Calendar) DayOf(t time.Time) Day {
	local := t.In(c.loc)
	y, m, d := local.Date()
	return Day{Year: y, Month: m, Day: d}
}

// StartOf возвращает UTC-инстант начала дня (00:00:00 по локальному времени)
func (c Calendar) StartOf(d Day) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, c.loc).UTC()
}

// EndOf возвращает UTC-инстант конца дня (23:59:59.999 по локальному времени)
func (c Calendar) EndOf(d Day) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 23, 59, 59, 999_000_000, c.loc).UTC()
}

// Today возвращает сегодняшний календарный день для переданного "сейчас"
func (c Calendar) Today(now time.Time) Day {
	return c.DayOf(now)
}

// AddDays returns the day shifted by n calendar days (n may be negative).
func (d Day) AddDays(n int) Day {
	t := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
	y, m, dd := t.Date()
	return Day{Year: y, Month: m, Day: dd}
}

// DaysBetween возвращает количество целых дней от from до to
// Результат отрицательный, если to раньше from
func DaysBetween(from, to Day) int {
	a := time.Date(from.Year, from.Month, from.Day, 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year, to.Month, to.Day, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// Before reports whether d is strictly earlier than other.
func (d Day) Before(other Day) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// After reports whether d is strictly later than other.
func (d Day) After(other Day) bool {
	return other.Before(d)
}

// Equal reports whether d and other are the same calendar day.
func (d Day) Equal(other Day) bool {
	return d == other
}

// IsZero reports whether d is the zero value.
func (d Day) IsZero() bool {
	return d == Day{}
}

// Max возвращает более поздний из двух дней
func Max(a, b Day) Day {
	if a.Before(b) {
		return b
	}
	return a
}

// String возвращает день в формате YYYY-MM-DD
func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Parse разбирает строку формата YYYY-MM-DD в календарный день
func Parse(s string) (Day, error) {
	t, err := time.Parse(Format, s)
	if err != nil {
		return Day{}, err
	}
	y, m, d := t.Date()
	return Day{Year: y, Month: m, Day: d}, nil
}
