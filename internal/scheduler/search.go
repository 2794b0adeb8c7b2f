package scheduler

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-DealSchedulerService/internal/domain"
	"github.com/m04kA/SMC-DealSchedulerService/pkg/civilday"
)

// Request запрос на поиск ближайшей валидной даты запуска
type Request struct {
	CategoryKey          string
	EntityName           *string
	DurationDays         int
	SearchFrom           civilday.Day
	Today                civilday.Day
	ExcludeReservationID *int64
}

// Result результат успешного поиска
type Result struct {
	Date         civilday.Day
	LeadTimeDays int // Дней от "сегодня" до найденной даты
	Attempts     int // Сколько кандидатов просмотрено
}

// RangeRequest запрос на проверку уже выбранного диапазона дат
type RangeRequest struct {
	CategoryKey          string
	EntityName           *string
	Start                civilday.Day
	End                  civilday.Day
	ExcludeReservationID *int64
}

// Search ищет ближайшую дату, с которой бронирование длительностью
// DurationDays не нарушает ни одно из правил планирования
//
// Правила проверяются в фиксированном порядке: exclusivity -> cooldown -> capacity
// При первом нарушении кандидат сдвигается на шаг этого правила, и проверка
// начинается заново - остальные правила для старого кандидата не проверяются.
// Cooldown даёт самые большие гарантированные прыжки; exclusivity и capacity
// дают только локальную информацию и после прыжка перепроверяются по дням
//
// Поиск ограничен policy.MaxSearchAttempts кандидатами - завершение гарантировано
func Search(
	req Request,
	reservations []*domain.Reservation,
	policy domain.SchedulePolicy,
	cal civilday.Calendar,
) (*Result, error) {
	if err := validateSearchRequest(req); err != nil {
		return nil, err
	}
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("%w: policy: %v", ErrInvalidInput, err)
	}

	entity := normalizedEntity(req.EntityName)
	requiredCooldown := ResolveException(policy.Exceptions, entity, domain.ExceptionCooldownDays, policy.DefaultCooldownDays)

	spans := buildSpans(reservations, req.ExcludeReservationID, cal)

	// Искать в прошлом нет смысла: кандидат не может быть раньше сегодняшнего дня
	candidate := civilday.Max(req.SearchFrom, req.Today)

	for attempt := 1; attempt <= policy.MaxSearchAttempts; attempt++ {
		candidateEnd := candidate.AddDays(req.DurationDays - 1)

		violation := evaluateCandidate(spans, req.CategoryKey, entity, requiredCooldown, policy.Capacity, candidate, candidateEnd)
		if violation == nil {
			return &Result{
				Date:         candidate,
				LeadTimeDays: civilday.DaysBetween(req.Today, candidate),
				Attempts:     attempt,
			}, nil
		}

		candidate = candidate.AddDays(violation.AdvanceDays)
	}

	return nil, &ExhaustedError{Attempts: policy.MaxSearchAttempts}
}

// CheckRange проверяет уже выбранный диапазон по всем трём правилам и
// возвращает все найденные нарушения (не только первое) - для валидации
// даты, введённой человеком, нужен полный список проблем
func CheckRange(
	req RangeRequest,
	reservations []*domain.Reservation,
	policy domain.SchedulePolicy,
	cal civilday.Calendar,
) ([]Violation, error) {
	if req.CategoryKey == "" {
		return nil, fmt.Errorf("%w: category key is required", ErrInvalidInput)
	}
	if req.Start.IsZero() || req.End.IsZero() {
		return nil, fmt.Errorf("%w: start and end dates are required", ErrInvalidInput)
	}
	if req.End.Before(req.Start) {
		return nil, fmt.Errorf("%w: end date %s is before start date %s", ErrInvalidInput, req.End, req.Start)
	}
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("%w: policy: %v", ErrInvalidInput, err)
	}

	entity := normalizedEntity(req.EntityName)
	requiredCooldown := ResolveException(policy.Exceptions, entity, domain.ExceptionCooldownDays, policy.DefaultCooldownDays)

	spans := buildSpans(reservations, req.ExcludeReservationID, cal)

	violations := make([]Violation, 0, 3)

	if v := checkCategoryExclusivity(spans, req.CategoryKey, req.Start, req.End); v != nil {
		violations = append(violations, *v)
	}
	if v := checkEntityCooldown(spans, entity, requiredCooldown, req.Start); v != nil {
		violations = append(violations, *v)
	}
	if v := checkDailyCapacity(spans, req.Start, policy.Capacity); v != nil {
		violations = append(violations, *v)
	}

	return violations, nil
}

// evaluateCandidate применяет правила в фиксированном порядке и возвращает
// первое нарушение либо nil, если кандидат валиден
func evaluateCandidate(
	spans []span,
	categoryKey, entity string,
	requiredCooldown int,
	capacity domain.CapacityPolicy,
	candStart, candEnd civilday.Day,
) *Violation {
	if v := checkCategoryExclusivity(spans, categoryKey, candStart, candEnd); v != nil {
		return v
	}
	if v := checkEntityCooldown(spans, entity, requiredCooldown, candStart); v != nil {
		return v
	}
	if v := checkDailyCapacity(spans, candStart, capacity); v != nil {
		return v
	}
	return nil
}

func validateSearchRequest(req Request) error {
	if req.CategoryKey == "" {
		return fmt.Errorf("%w: category key is required", ErrInvalidInput)
	}
	if req.DurationDays <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidInput, req.DurationDays)
	}
	if req.SearchFrom.IsZero() {
		return fmt.Errorf("%w: searchFrom date is required", ErrInvalidInput)
	}
	if req.Today.IsZero() {
		return fmt.Errorf("%w: today date is required", ErrInvalidInput)
	}
	return nil
}

func normalizedEntity(entityName *string) string {
	if entityName == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(*entityName))
}
