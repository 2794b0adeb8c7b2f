package domain

import (
	"fmt"
	"strings"
	"time"
)

// ExceptionKind вид персонального исключения для мерчанта
type ExceptionKind string

const (
	// ExceptionDurationDays переопределяет длительность бронирования по умолчанию
	ExceptionDurationDays ExceptionKind = "duration_days"

	// ExceptionCooldownDays переопределяет минимальный перерыв между бронированиями мерчанта
	ExceptionCooldownDays ExceptionKind = "cooldown_days"
)

// EntityException персональное переопределение правила для мерчанта/бизнеса
// На пару (entityName, kind) существует не более одного исключения,
// поиск по entityName регистронезависимый
type EntityException struct {
	ID         int64
	EntityName string
	Kind       ExceptionKind
	Value      int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Matches reports whether the exception applies to the given entity and kind.
func (e *EntityException) Matches(entityName string, kind ExceptionKind) bool {
	return e.Kind == kind && strings.EqualFold(e.EntityName, entityName)
}

// CapacityPolicy represents the [minPerDay, maxPerDay] capacity band:
// how many deal runs may start on the same local day.
type CapacityPolicy struct {
	MinPerDay int
	MaxPerDay int
}

// SchedulePolicy полный набор бизнес-правил планировщика
type SchedulePolicy struct {
	Capacity            CapacityPolicy
	DefaultCooldownDays int
	DefaultDurationDays int
	MaxSearchAttempts   int
	Exceptions          []EntityException
}

// Validate проверяет согласованность политики
func (p *SchedulePolicy) Validate() error {
	if p.Capacity.MinPerDay < 0 {
		return fmt.Errorf("minPerDay must be non-negative, got %d", p.Capacity.MinPerDay)
	}
	if p.Capacity.MaxPerDay < 0 {
		return fmt.Errorf("maxPerDay must be non-negative, got %d", p.Capacity.MaxPerDay)
	}
	if p.Capacity.MinPerDay > p.Capacity.MaxPerDay {
		return fmt.Errorf("minPerDay (%d) must not exceed maxPerDay (%d)",
			p.Capacity.MinPerDay, p.Capacity.MaxPerDay)
	}
	if p.DefaultCooldownDays < 0 {
		return fmt.Errorf("defaultCooldownDays must be non-negative, got %d", p.DefaultCooldownDays)
	}
	if p.DefaultDurationDays <= 0 {
		return fmt.Errorf("defaultDurationDays must be positive, got %d", p.DefaultDurationDays)
	}
	if p.MaxSearchAttempts <= 0 {
		return fmt.Errorf("maxSearchAttempts must be positive, got %d", p.MaxSearchAttempts)
	}

	seen := make(map[string]struct{}, len(p.Exceptions))
	for _, exc := range p.Exceptions {
		if strings.TrimSpace(exc.EntityName) == "" {
			return fmt.Errorf("exception entityName must not be empty")
		}
		if exc.Kind != ExceptionDurationDays && exc.Kind != ExceptionCooldownDays {
			return fmt.Errorf("unknown exception kind %q for entity %q", exc.Kind, exc.EntityName)
		}
		if exc.Value < 0 {
			return fmt.Errorf("exception value must be non-negative for entity %q", exc.EntityName)
		}
		if exc.Kind == ExceptionDurationDays && exc.Value == 0 {
			return fmt.Errorf("duration exception must be positive for entity %q", exc.EntityName)
		}
		key := strings.ToLower(exc.EntityName) + "/" + string(exc.Kind)
		if _, ok := seen[key]; ok {
			return fmt.Errorf("duplicate exception for entity %q kind %q", exc.EntityName, exc.Kind)
		}
		seen[key] = struct{}{}
	}

	return nil
}

// DefaultSchedulePolicy возвращает политику с дефолтными значениями
// Используется, когда в хранилище ещё нет сохранённой конфигурации
func DefaultSchedulePolicy() SchedulePolicy {
	return SchedulePolicy{
		Capacity: CapacityPolicy{
			MinPerDay: DefaultMinStartsPerDay,
			MaxPerDay: DefaultMaxStartsPerDay,
		},
		DefaultCooldownDays: DefaultCooldownDays,
		DefaultDurationDays: DefaultDurationDays,
		MaxSearchAttempts:   DefaultMaxSearchAttempts,
	}
}
