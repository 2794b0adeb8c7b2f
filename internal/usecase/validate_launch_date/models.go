package validate_launch_date

import (
	"github.com/m04kA/SMC-DealSchedulerService/pkg/civilday"
)

// Request параметры проверки конкретной даты запуска
// StartDate - календарный день площадки, а не инстант
type Request struct {
	CategorySegments []string
	EntityName       *string
	DurationDays     *int
	StartDate        civilday.Day
}

// ViolationInfo описание одного нарушенного правила планирования
type ViolationInfo struct {
	Rule        string `json:"rule"`
	Detail      string `json:"detail"`
	AdvanceDays int    `json:"advance_days"`
	ConflictID  *int64 `json:"conflict_id,omitempty"`
}

// Response результат проверки: либо дата свободна, либо список нарушений
type Response struct {
	Valid        bool            `json:"valid"`
	StartDate    civilday.Day    `json:"start_date"`
	EndDate      civilday.Day    `json:"end_date"`
	DurationDays int             `json:"duration_days"`
	CategoryKey  string          `json:"category_key"`
	Violations   []ViolationInfo `json:"violations,omitempty"`
}
