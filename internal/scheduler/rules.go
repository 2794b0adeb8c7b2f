package scheduler

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-DealSchedulerService/internal/domain"
	"github.com/m04kA/SMC-DealSchedulerService/pkg/civilday"
)

// RuleName identifies one of the scheduling rules.
type RuleName string

const (
	RuleCategoryExclusivity RuleName = "category_exclusivity"
	RuleEntityCooldown      RuleName = "entity_cooldown"
	RuleDailyCapacity       RuleName = "daily_capacity"
)

// Violation описывает нарушение правила для даты-кандидата
type Violation struct {
	Rule RuleName

	// AdvanceDays на сколько дней сдвинуть кандидата, чтобы нарушение
	// могло исчезнуть. Для exclusivity и capacity всегда 1 (точной
	// информации о следующем свободном дне нет), для cooldown - прямой
	// прыжок к первому допустимому дню
	AdvanceDays int

	// ConflictID ID бронирования-виновника (0, если нарушение не сводится
	// к одному бронированию, как у capacity)
	ConflictID int64

	Detail string
}

// CapacityLevel классификация загрузки дня относительно capacity band
type CapacityLevel string

const (
	CapacityUnder CapacityLevel = "under"
	CapacityOK    CapacityLevel = "ok"
	CapacityOver  CapacityLevel = "over"
)

// ClassifyDayLoad classifies a day's start count against the capacity band.
// Только over блокирует бронирование; under носит информационный характер
func ClassifyDayLoad(count int, capacity domain.CapacityPolicy) CapacityLevel {
	switch {
	case count > capacity.MaxPerDay:
		return CapacityOver
	case count < capacity.MinPerDay:
		return CapacityUnder
	default:
		return CapacityOK
	}
}

// span бронирование, приведённое к календарным дням
// Строится один раз на весь поиск, чтобы не пересчитывать дни на каждой итерации
type span struct {
	id          int64
	categoryKey string
	entity      string // в нижнем регистре, "" если мерчант не привязан
	start       civilday.Day
	end         civilday.Day
}

// buildSpans конвертирует снапшот бронирований во внутренний вид
// Отменённые бронирования и excludeID пропускаются: они не занимают даты
//
// Сохранённый ключ категории нормализуется из старого формата "A > B":
// legacy-строка обязана конфликтовать со своим каноническим эквивалентом
func buildSpans(reservations []*domain.Reservation, excludeID *int64, cal civilday.Calendar) []span {
	spans := make([]span, 0, len(reservations))

	for _, r := range reservations {
		if !r.IsActive() {
			continue
		}
		if excludeID != nil && r.ID == *excludeID {
			continue
		}

		s := span{
			id:          r.ID,
			categoryKey: domain.NormalizeLegacyCategoryKey(r.CategoryKey),
			start:       cal.DayOf(r.StartDate),
			end:         cal.DayOf(r.EndDate),
		}
		if r.EntityName != nil {
			s.entity = strings.ToLower(strings.TrimSpace(*r.EntityName))
		}
		spans = append(spans, s)
	}

	return spans
}

// checkCategoryExclusivity проверяет, что ни одно бронирование с тем же
// каноническим ключом категории не пересекается с [candStart, candEnd]
//
// Пересечение интервалов включительное: candStart <= otherEnd && candEnd >= otherStart
// Шаг сдвига всегда 1 день - любой чужой слот может освободиться уже завтра
func checkCategoryExclusivity(spans []span, categoryKey string, candStart, candEnd civilday.Day) *Violation {
	for i := range spans {
		s := &spans[i]
		if s.categoryKey != categoryKey {
			continue
		}
		if !candStart.After(s.end) && !candEnd.Before(s.start) {
			return &Violation{
				Rule:        RuleCategoryExclusivity,
				AdvanceDays: 1,
				ConflictID:  s.id,
				Detail: fmt.Sprintf("category %q is occupied by reservation %d (%s - %s)",
					categoryKey, s.id, s.start, s.end),
			}
		}
	}
	return nil
}

// checkEntityCooldown проверяет минимальный перерыв между бронированиями мерчанта
//
// daysSince = candStart - конец чужого бронирования (в целых днях)
// Граница включительная: daysSince == requiredDays разрешён
//
// Сдвиг - прямой прыжок requiredDays - daysSince: следующий допустимый день
// известен аналитически, по-дневный перебор не нужен
func checkEntityCooldown(spans []span, entity string, requiredDays int, candStart civilday.Day) *Violation {
	if entity == "" || requiredDays <= 0 {
		return nil
	}

	found := false
	minDaysSince := 0
	var bindingID int64

	for i := range spans {
		s := &spans[i]
		if s.entity != entity {
			continue
		}
		daysSince := civilday.DaysBetween(s.end, candStart)
		if !found || daysSince < minDaysSince {
			found = true
			minDaysSince = daysSince
			bindingID = s.id
		}
	}

	if !found || minDaysSince >= requiredDays {
		return nil
	}

	return &Violation{
		Rule:        RuleEntityCooldown,
		AdvanceDays: requiredDays - minDaysSince,
		ConflictID:  bindingID,
		Detail: fmt.Sprintf("entity %q needs %d days since last run, only %d elapsed (reservation %d)",
			entity, requiredDays, minDaysSince, bindingID),
	}
}

// checkDailyCapacity проверяет дневной лимит запусков
//
// Считаются только бронирования, СТАРТУЮЩИЕ в день кандидата (не весь span)
// Кандидат учитывается в итоговом количестве: существующие count == maxPerDay
// означают, что новый запуск переполнит день
func checkDailyCapacity(spans []span, day civilday.Day, capacity domain.CapacityPolicy) *Violation {
	count := countStartsOn(spans, day)

	if ClassifyDayLoad(count+1, capacity) != CapacityOver {
		return nil
	}

	return &Violation{
		Rule:        RuleDailyCapacity,
		AdvanceDays: 1,
		Detail: fmt.Sprintf("day %s already has %d of %d allowed starts",
			day, count, capacity.MaxPerDay),
	}
}

func countStartsOn(spans []span, day civilday.Day) int {
	count := 0
	for i := range spans {
		if spans[i].start.Equal(day) {
			count++
		}
	}
	return count
}
