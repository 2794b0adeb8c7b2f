package scheduler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DealSchedulerService/internal/domain"
	"github.com/m04kA/SMC-DealSchedulerService/pkg/civilday"
	"github.com/m04kA/SMC-DealSchedulerService/pkg/ptr"
)

var testCal = civilday.NewCalendar(-7)

func day(s string) civilday.Day {
	d, err := civilday.Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

func reservation(id int64, categoryKey string, entity string, start, end civilday.Day) *domain.Reservation {
	r := &domain.Reservation{
		ID:          id,
		CategoryKey: categoryKey,
		StartDate:   testCal.StartOf(start),
		EndDate:     testCal.StartOf(end),
		Status:      domain.StatusScheduled,
	}
	if entity != "" {
		r.EntityName = ptr.Ptr(entity)
	}
	return r
}

func testPolicy() domain.SchedulePolicy {
	return domain.DefaultSchedulePolicy()
}

func TestSearch_EmptyCalendarReturnsToday(t *testing.T) {
	today := day("2026-03-15")

	result, err := Search(Request{
		CategoryKey:  "Food:Restaurants:Sushi",
		DurationDays: 7,
		SearchFrom:   today,
		Today:        today,
	}, nil, testPolicy(), testCal)

	require.NoError(t, err)
	assert.Equal(t, today, result.Date)
	assert.Equal(t, 0, result.LeadTimeDays)
	assert.Equal(t, 1, result.Attempts)
}

func TestSearch_CategoryOccupiedWalksPastTheSpan(t *testing.T) {
	today := day("2026-03-15")

	// Категория занята 5 дней: 15.03 - 19.03 включительно
	occupied := []*domain.Reservation{
		reservation(1, "Food:Restaurants:Sushi", "", today, today.AddDays(4)),
	}

	result, err := Search(Request{
		CategoryKey:  "Food:Restaurants:Sushi",
		DurationDays: 7,
		SearchFrom:   today,
		Today:        today,
	}, occupied, testPolicy(), testCal)

	require.NoError(t, err)
	assert.Equal(t, today.AddDays(5), result.Date)
	assert.Equal(t, 5, result.LeadTimeDays)
	assert.Equal(t, 6, result.Attempts)
}

func TestSearch_OtherCategoryDoesNotBlock(t *testing.T) {
	today := day("2026-03-15")

	occupied := []*domain.Reservation{
		reservation(1, "Food:Restaurants:Pizza", "", today, today.AddDays(4)),
	}

	result, err := Search(Request{
		CategoryKey:  "Food:Restaurants:Sushi",
		DurationDays: 7,
		SearchFrom:   today,
		Today:        today,
	}, occupied, testPolicy(), testCal)

	require.NoError(t, err)
	assert.Equal(t, today, result.Date)
}

func TestSearch_CooldownJumpsDirectly(t *testing.T) {
	today := day("2026-03-15")

	// Последний запуск мерчанта закончился вчера: daysSince(today) = 1
	// При cooldown 30 прыжок сразу на 29 дней, вторая попытка валидна
	history := []*domain.Reservation{
		reservation(1, "Food:Bakeries", "SushiGo", today.AddDays(-7), today.AddDays(-1)),
	}

	result, err := Search(Request{
		CategoryKey:  "Food:Restaurants:Sushi",
		EntityName:   ptr.Ptr("SushiGo"),
		DurationDays: 7,
		SearchFrom:   today,
		Today:        today,
	}, history, testPolicy(), testCal)

	require.NoError(t, err)
	assert.Equal(t, today.AddDays(29), result.Date)
	assert.Equal(t, 2, result.Attempts)
}

func TestSearch_CooldownBoundaryIsInclusive(t *testing.T) {
	today := day("2026-03-15")

	// Ровно 30 дней с конца прошлого запуска - разрешено
	history := []*domain.Reservation{
		reservation(1, "Food:Bakeries", "SushiGo", today.AddDays(-37), today.AddDays(-30)),
	}

	result, err := Search(Request{
		CategoryKey:  "Food:Restaurants:Sushi",
		EntityName:   ptr.Ptr("SushiGo"),
		DurationDays: 7,
		SearchFrom:   today,
		Today:        today,
	}, history, testPolicy(), testCal)

	require.NoError(t, err)
	assert.Equal(t, today, result.Date)
	assert.Equal(t, 1, result.Attempts)
}

func TestSearch_CooldownUsesMostRestrictiveReservation(t *testing.T) {
	today := day("2026-03-15")

	history := []*domain.Reservation{
		reservation(1, "Food:Bakeries", "SushiGo", today.AddDays(-60), today.AddDays(-55)),
		reservation(2, "Food:Coffee", "SushiGo", today.AddDays(-12), today.AddDays(-5)),
	}

	result, err := Search(Request{
		CategoryKey:  "Food:Restaurants:Sushi",
		EntityName:   ptr.Ptr("SushiGo"),
		DurationDays: 7,
		SearchFrom:   today,
		Today:        today,
	}, history, testPolicy(), testCal)

	require.NoError(t, err)
	// daysSince самого позднего конца (-5) = 5, прыжок на 25 дней
	assert.Equal(t, today.AddDays(25), result.Date)
}

func TestSearch_CooldownExceptionOverridesDefault(t *testing.T) {
	today := day("2026-03-15")

	policy := testPolicy()
	policy.Exceptions = []domain.EntityException{
		{EntityName: "sushigo", Kind: domain.ExceptionCooldownDays, Value: 5},
	}

	history := []*domain.Reservation{
		reservation(1, "Food:Bakeries", "SushiGo", today.AddDays(-10), today.AddDays(-6)),
	}

	result, err := Search(Request{
		CategoryKey:  "Food:Restaurants:Sushi",
		EntityName:   ptr.Ptr("SushiGo"),
		DurationDays: 7,
		SearchFrom:   today,
		Today:        today,
	}, history, policy, testCal)

	require.NoError(t, err)
	// daysSince = 6 >= 5 - персональный cooldown уже выдержан
	assert.Equal(t, today, result.Date)
}

func TestSearch_CapacityFullPushesToNextDay(t *testing.T) {
	today := day("2026-03-15")

	// День полностью забит: 13 стартов при maxPerDay = 13
	occupied := make([]*domain.Reservation, 0, 13)
	for i := int64(1); i <= 13; i++ {
		occupied = append(occupied,
			reservation(i, "Unrelated:Category", "", today, today.AddDays(6)))
	}

	result, err := Search(Request{
		CategoryKey:  "Food:Restaurants:Sushi",
		DurationDays: 7,
		SearchFrom:   today,
		Today:        today,
	}, occupied, testPolicy(), testCal)

	require.NoError(t, err)
	assert.Equal(t, today.AddDays(1), result.Date)
	assert.Equal(t, 2, result.Attempts)
}

func TestSearch_CapacityCountsStartsOnly(t *testing.T) {
	today := day("2026-03-15")

	// 13 бронирований ПЕРЕСЕКАЮТ сегодняшний день, но стартовали вчера -
	// на дневной лимит стартов они не влияют
	occupied := make([]*domain.Reservation, 0, 13)
	for i := int64(1); i <= 13; i++ {
		occupied = append(occupied,
			reservation(i, "Unrelated:Category", "", today.AddDays(-1), today.AddDays(5)))
	}

	result, err := Search(Request{
		CategoryKey:  "Food:Restaurants:Sushi",
		DurationDays: 7,
		SearchFrom:   today,
		Today:        today,
	}, occupied, testPolicy(), testCal)

	require.NoError(t, err)
	assert.Equal(t, today, result.Date)
}

func TestSearch_SearchFromInPastIsLiftedToToday(t *testing.T) {
	today := day("2026-03-15")

	result, err := Search(Request{
		CategoryKey:  "Food:Restaurants:Sushi",
		DurationDays: 7,
		SearchFrom:   today.AddDays(-10),
		Today:        today,
	}, nil, testPolicy(), testCal)

	require.NoError(t, err)
	assert.Equal(t, today, result.Date)
}

func TestSearch_CancelledReservationsDoNotBlock(t *testing.T) {
	today := day("2026-03-15")

	cancelled := reservation(1, "Food:Restaurants:Sushi", "", today, today.AddDays(6))
	cancelled.Status = domain.StatusCancelled

	result, err := Search(Request{
		CategoryKey:  "Food:Restaurants:Sushi",
		DurationDays: 7,
		SearchFrom:   today,
		Today:        today,
	}, []*domain.Reservation{cancelled}, testPolicy(), testCal)

	require.NoError(t, err)
	assert.Equal(t, today, result.Date)
}

func TestSearch_ExcludedReservationDoesNotBlock(t *testing.T) {
	today := day("2026-03-15")

	// Перепланирование: собственное бронирование не конфликтует само с собой
	own := reservation(42, "Food:Restaurants:Sushi", "SushiGo", today, today.AddDays(6))

	result, err := Search(Request{
		CategoryKey:          "Food:Restaurants:Sushi",
		EntityName:           ptr.Ptr("SushiGo"),
		DurationDays:         7,
		SearchFrom:           today,
		Today:                today,
		ExcludeReservationID: ptr.Ptr(int64(42)),
	}, []*domain.Reservation{own}, testPolicy(), testCal)

	require.NoError(t, err)
	assert.Equal(t, today, result.Date)
}

func TestSearch_ExhaustsAfterMaxAttempts(t *testing.T) {
	today := day("2026-03-15")

	policy := testPolicy()
	policy.MaxSearchAttempts = 10

	// Категория занята дольше горизонта поиска
	occupied := []*domain.Reservation{
		reservation(1, "Food:Restaurants:Sushi", "", today, today.AddDays(400)),
	}

	_, err := Search(Request{
		CategoryKey:  "Food:Restaurants:Sushi",
		DurationDays: 7,
		SearchFrom:   today,
		Today:        today,
	}, occupied, policy, testCal)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSearchExhausted))

	var exhausted *ExhaustedError
	require.True(t, errors.As(err, &exhausted))
	assert.Equal(t, 10, exhausted.Attempts)
}

func TestSearch_ResultSurvivesRecheck(t *testing.T) {
	today := day("2026-03-15")

	occupied := []*domain.Reservation{
		reservation(1, "Food:Restaurants:Sushi", "", today, today.AddDays(2)),
		reservation(2, "Food:Coffee", "SushiGo", today.AddDays(-20), today.AddDays(-15)),
	}

	policy := testPolicy()

	result, err := Search(Request{
		CategoryKey:  "Food:Restaurants:Sushi",
		EntityName:   ptr.Ptr("SushiGo"),
		DurationDays: 7,
		SearchFrom:   today,
		Today:        today,
	}, occupied, policy, testCal)
	require.NoError(t, err)

	// Найденная дата обязана проходить повторную проверку по всем правилам
	violations, err := CheckRange(RangeRequest{
		CategoryKey: "Food:Restaurants:Sushi",
		EntityName:  ptr.Ptr("SushiGo"),
		Start:       result.Date,
		End:         result.Date.AddDays(6),
	}, occupied, policy, testCal)
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestSearch_InvalidInput(t *testing.T) {
	today := day("2026-03-15")

	cases := []struct {
		name string
		req  Request
	}{
		{"missing category", Request{DurationDays: 7, SearchFrom: today, Today: today}},
		{"zero duration", Request{CategoryKey: "Food", DurationDays: 0, SearchFrom: today, Today: today}},
		{"missing searchFrom", Request{CategoryKey: "Food", DurationDays: 7, Today: today}},
		{"missing today", Request{CategoryKey: "Food", DurationDays: 7, SearchFrom: today}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Search(tc.req, nil, testPolicy(), testCal)
			assert.True(t, errors.Is(err, ErrInvalidInput))
		})
	}
}

func TestCheckRange_CollectsAllViolations(t *testing.T) {
	today := day("2026-03-15")

	occupied := []*domain.Reservation{
		// Конфликт по категории
		reservation(1, "Food:Restaurants:Sushi", "", today, today.AddDays(3)),
		// Конфликт по cooldown
		reservation(2, "Food:Coffee", "SushiGo", today.AddDays(-10), today.AddDays(-5)),
	}
	// Конфликт по capacity: день забит стартами
	for i := int64(3); i < 16; i++ {
		occupied = append(occupied, reservation(i, "Unrelated:Category", "", today, today.AddDays(1)))
	}

	violations, err := CheckRange(RangeRequest{
		CategoryKey: "Food:Restaurants:Sushi",
		EntityName:  ptr.Ptr("SushiGo"),
		Start:       today,
		End:         today.AddDays(6),
	}, occupied, testPolicy(), testCal)

	require.NoError(t, err)
	require.Len(t, violations, 3)
	assert.Equal(t, RuleCategoryExclusivity, violations[0].Rule)
	assert.Equal(t, RuleEntityCooldown, violations[1].Rule)
	assert.Equal(t, RuleDailyCapacity, violations[2].Rule)
}

func TestCheckRange_ValidRange(t *testing.T) {
	today := day("2026-03-15")

	violations, err := CheckRange(RangeRequest{
		CategoryKey: "Food:Restaurants:Sushi",
		Start:       today,
		End:         today.AddDays(6),
	}, nil, testPolicy(), testCal)

	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestCheckRange_EndBeforeStart(t *testing.T) {
	today := day("2026-03-15")

	_, err := CheckRange(RangeRequest{
		CategoryKey: "Food:Restaurants:Sushi",
		Start:       today,
		End:         today.AddDays(-1),
	}, nil, testPolicy(), testCal)

	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestSearch_EntityMatchIsCaseInsensitive(t *testing.T) {
	today := day("2026-03-15")

	history := []*domain.Reservation{
		reservation(1, "Food:Bakeries", "SUSHIGO", today.AddDays(-7), today.AddDays(-1)),
	}

	result, err := Search(Request{
		CategoryKey:  "Food:Restaurants:Sushi",
		EntityName:   ptr.Ptr("sushigo"),
		DurationDays: 7,
		SearchFrom:   today,
		Today:        today,
	}, history, testPolicy(), testCal)

	require.NoError(t, err)
	// Cooldown сработал несмотря на разный регистр имени
	assert.Equal(t, today.AddDays(29), result.Date)
}

func TestSearch_MultiDayReservationOccupiesWholeSpan(t *testing.T) {
	searchFrom := day("2026-03-20")
	today := day("2026-03-15")

	// Бронирование 15.03 - 21.03 пересекает кандидата 20.03, хотя стартовало раньше
	occupied := []*domain.Reservation{
		reservation(1, "Food:Restaurants:Sushi", "", today, today.AddDays(6)),
	}

	result, err := Search(Request{
		CategoryKey:  "Food:Restaurants:Sushi",
		DurationDays: 7,
		SearchFrom:   searchFrom,
		Today:        today,
	}, occupied, testPolicy(), testCal)

	require.NoError(t, err)
	assert.Equal(t, today.AddDays(7), result.Date)
}

func TestSearch_LegacyCategoryKeyConflicts(t *testing.T) {
	today := day("2026-03-15")

	// Бронирование со старым форматом ключа "A > B" должно конфликтовать
	// с каноническим запросом "A:B"
	occupied := []*domain.Reservation{
		reservation(1, "Food > Restaurants > Sushi", "", today, today.AddDays(4)),
	}

	result, err := Search(Request{
		CategoryKey:  "Food:Restaurants:Sushi",
		DurationDays: 7,
		SearchFrom:   today,
		Today:        today,
	}, occupied, testPolicy(), testCal)

	require.NoError(t, err)
	assert.Equal(t, today.AddDays(5), result.Date)
}
