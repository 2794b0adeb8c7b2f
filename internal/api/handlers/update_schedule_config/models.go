package update_schedule_config

import (
	"github.com/m04kA/SMC-DealSchedulerService/internal/service/scheduleconfig/models"
)

// UpdateConfigRequest HTTP request model
// Список исключений заменяет существующий целиком
type UpdateConfigRequest struct {
	MinPerDay           int                      `json:"minPerDay"`
	MaxPerDay           int                      `json:"maxPerDay"`
	DefaultCooldownDays int                      `json:"defaultCooldownDays"`
	DefaultDurationDays int                      `json:"defaultDurationDays"`
	MaxSearchAttempts   int                      `json:"maxSearchAttempts"`
	Exceptions          []EntityExceptionRequest `json:"exceptions"`
}

// EntityExceptionRequest персональное исключение мерчанта
type EntityExceptionRequest struct {
	EntityName string `json:"entityName"`
	Kind       string `json:"kind"` // duration_days | cooldown_days
	Value      int    `json:"value"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateConfigRequest) ToServiceRequest(userID int64) *models.UpdateConfigRequest {
	exceptions := make([]models.EntityExceptionRequest, 0, len(r.Exceptions))
	for _, exc := range r.Exceptions {
		exceptions = append(exceptions, models.EntityExceptionRequest{
			EntityName: exc.EntityName,
			Kind:       exc.Kind,
			Value:      exc.Value,
		})
	}

	return &models.UpdateConfigRequest{
		UserID:              userID,
		MinPerDay:           r.MinPerDay,
		MaxPerDay:           r.MaxPerDay,
		DefaultCooldownDays: r.DefaultCooldownDays,
		DefaultDurationDays: r.DefaultDurationDays,
		MaxSearchAttempts:   r.MaxSearchAttempts,
		Exceptions:          exceptions,
	}
}
