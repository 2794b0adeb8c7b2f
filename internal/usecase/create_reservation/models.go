package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-DealSchedulerService/pkg/civilday"
)

// Request параметры создания бронирования запуска акции
// StartDate опциональна: без неё дата подбирается автоматически
type Request struct {
	CategorySegments []string
	EntityName       *string
	DurationDays     *int
	StartDate        *civilday.Day
	Notes            *string
}

// Response созданное бронирование
type Response struct {
	ID           int64        `json:"id"`
	CategoryPath []string     `json:"category_path"`
	CategoryKey  string       `json:"category_key"`
	EntityName   *string      `json:"entity_name,omitempty"`
	StartDate    civilday.Day `json:"start_date"`
	EndDate      civilday.Day `json:"end_date"`
	DurationDays int          `json:"duration_days"`
	Status       string       `json:"status"`
	Notes        *string      `json:"notes,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
