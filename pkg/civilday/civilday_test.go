package civilday

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayOf_MidnightBoundary(t *testing.T) {
	cal := NewCalendar(-7)

	// 06:59 UTC = 23:59 предыдущего дня в UTC-7
	beforeMidnight := time.Date(2026, 3, 15, 6, 59, 0, 0, time.UTC)
	assert.Equal(t, Day{Year: 2026, Month: time.March, Day: 14}, cal.DayOf(beforeMidnight))

	// 07:00 UTC = 00:00 по UTC-7, уже новый день
	atMidnight := time.Date(2026, 3, 15, 7, 0, 0, 0, time.UTC)
	assert.Equal(t, Day{Year: 2026, Month: time.March, Day: 15}, cal.DayOf(atMidnight))
}

func TestDayOf_Idempotent(t *testing.T) {
	cal := NewCalendar(-7)

	// Нормализация инстанта начала дня обратно в день не должна дрейфовать
	day := Day{Year: 2026, Month: time.January, Day: 1}
	for i := 0; i < 3650; i++ {
		start := cal.StartOf(day)
		require.Equal(t, day, cal.DayOf(start), "drift on day %s", day)
		end := cal.EndOf(day)
		require.Equal(t, day, cal.DayOf(end), "end-of-day drift on %s", day)
		day = day.AddDays(1)
	}
}

func TestAddDays_MonthAndYearRollover(t *testing.T) {
	assert.Equal(t, Day{Year: 2026, Month: time.March, Day: 1},
		Day{Year: 2026, Month: time.February, Day: 28}.AddDays(1))

	// 2028 високосный
	assert.Equal(t, Day{Year: 2028, Month: time.February, Day: 29},
		Day{Year: 2028, Month: time.February, Day: 28}.AddDays(1))

	assert.Equal(t, Day{Year: 2027, Month: time.January, Day: 1},
		Day{Year: 2026, Month: time.December, Day: 31}.AddDays(1))

	assert.Equal(t, Day{Year: 2026, Month: time.December, Day: 31},
		Day{Year: 2027, Month: time.January, Day: 30}.AddDays(-30))
}

func TestDaysBetween(t *testing.T) {
	a := Day{Year: 2026, Month: time.March, Day: 15}

	assert.Equal(t, 0, DaysBetween(a, a))
	assert.Equal(t, 1, DaysBetween(a, a.AddDays(1)))
	assert.Equal(t, -1, DaysBetween(a, a.AddDays(-1)))
	assert.Equal(t, 365, DaysBetween(a, a.AddDays(365)))
}

func TestCompare(t *testing.T) {
	a := Day{Year: 2026, Month: time.March, Day: 15}
	b := Day{Year: 2026, Month: time.March, Day: 16}

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(a))
	assert.Equal(t, b, Max(a, b))
	assert.Equal(t, b, Max(b, a))
}

func TestParseAndString(t *testing.T) {
	day, err := Parse("2026-03-15")
	require.NoError(t, err)
	assert.Equal(t, Day{Year: 2026, Month: time.March, Day: 15}, day)
	assert.Equal(t, "2026-03-15", day.String())

	_, err = Parse("15.03.2026")
	assert.Error(t, err)
}

func TestIsZero(t *testing.T) {
	assert.True(t, Day{}.IsZero())
	assert.False(t, Day{Year: 2026, Month: time.January, Day: 1}.IsZero())
}
