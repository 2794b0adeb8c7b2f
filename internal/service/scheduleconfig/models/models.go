package models

import (
	"github.com/m04kA/SMC-DealSchedulerService/internal/domain"
)

// Request модели

// UpdateConfigRequest запрос на обновление политики планирования
// Список исключений заменяется целиком
type UpdateConfigRequest struct {
	UserID              int64                    `json:"userId"`
	MinPerDay           int                      `json:"minPerDay"`
	MaxPerDay           int                      `json:"maxPerDay"`
	DefaultCooldownDays int                      `json:"defaultCooldownDays"`
	DefaultDurationDays int                      `json:"defaultDurationDays"`
	MaxSearchAttempts   int                      `json:"maxSearchAttempts"`
	Exceptions          []EntityExceptionRequest `json:"exceptions"`
}

// EntityExceptionRequest персональное исключение мерчанта в запросе
type EntityExceptionRequest struct {
	EntityName string `json:"entityName"`
	Kind       string `json:"kind"` // duration_days | cooldown_days
	Value      int    `json:"value"`
}

// ToDomainPolicy конвертирует request в domain политику
func (r *UpdateConfigRequest) ToDomainPolicy() domain.SchedulePolicy {
	exceptions := make([]domain.EntityException, 0, len(r.Exceptions))
	for _, exc := range r.Exceptions {
		exceptions = append(exceptions, domain.EntityException{
			EntityName: exc.EntityName,
			Kind:       domain.ExceptionKind(exc.Kind),
			Value:      exc.Value,
		})
	}

	return domain.SchedulePolicy{
		Capacity: domain.CapacityPolicy{
			MinPerDay: r.MinPerDay,
			MaxPerDay: r.MaxPerDay,
		},
		DefaultCooldownDays: r.DefaultCooldownDays,
		DefaultDurationDays: r.DefaultDurationDays,
		MaxSearchAttempts:   r.MaxSearchAttempts,
		Exceptions:          exceptions,
	}
}

// Response модели

// ConfigResponse ответ с эффективной политикой планирования
type ConfigResponse struct {
	MinPerDay           int                       `json:"minPerDay"`
	MaxPerDay           int                       `json:"maxPerDay"`
	DefaultCooldownDays int                       `json:"defaultCooldownDays"`
	DefaultDurationDays int                       `json:"defaultDurationDays"`
	MaxSearchAttempts   int                       `json:"maxSearchAttempts"`
	IsDefault           bool                      `json:"isDefault"` // true, если политика не настроена и применяются дефолты
	Exceptions          []EntityExceptionResponse `json:"exceptions"`
}

// EntityExceptionResponse персональное исключение мерчанта в ответе
type EntityExceptionResponse struct {
	ID         int64  `json:"id"`
	EntityName string `json:"entityName"`
	Kind       string `json:"kind"`
	Value      int    `json:"value"`
}

// FromDomainPolicy конвертирует domain политику в DTO
func FromDomainPolicy(policy *domain.SchedulePolicy, isDefault bool) *ConfigResponse {
	exceptions := make([]EntityExceptionResponse, 0, len(policy.Exceptions))
	for _, exc := range policy.Exceptions {
		exceptions = append(exceptions, EntityExceptionResponse{
			ID:         exc.ID,
			EntityName: exc.EntityName,
			Kind:       string(exc.Kind),
			Value:      exc.Value,
		})
	}

	return &ConfigResponse{
		MinPerDay:           policy.Capacity.MinPerDay,
		MaxPerDay:           policy.Capacity.MaxPerDay,
		DefaultCooldownDays: policy.DefaultCooldownDays,
		DefaultDurationDays: policy.DefaultDurationDays,
		MaxSearchAttempts:   policy.MaxSearchAttempts,
		IsDefault:           isDefault,
		Exceptions:          exceptions,
	}
}
