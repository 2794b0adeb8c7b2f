package validate_launch_date

import (
	validateLaunchDate "github.com/m04kA/SMC-DealSchedulerService/internal/usecase/validate_launch_date"
	"github.com/m04kA/SMC-DealSchedulerService/pkg/civilday"
)

// ValidateRequest HTTP request model
type ValidateRequest struct {
	Category     []string `json:"category"`
	EntityName   *string  `json:"entityName,omitempty"`
	DurationDays *int     `json:"durationDays,omitempty"`
	StartDate    string   `json:"startDate"` // "2026-03-15"
}

// ViolationResponse одно нарушение правила планирования
type ViolationResponse struct {
	Rule       string `json:"rule"`
	Detail     string `json:"detail"`
	ConflictID *int64 `json:"conflictId,omitempty"`
}

// ValidateResponse HTTP response model
type ValidateResponse struct {
	Valid        bool                `json:"valid"`
	StartDate    string              `json:"startDate"`
	EndDate      string              `json:"endDate"`
	DurationDays int                 `json:"durationDays"`
	CategoryKey  string              `json:"categoryKey"`
	Violations   []ViolationResponse `json:"violations,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Дата парсится в календарный день, минуя time.Time: "2026-03-20" - это
// день площадки, а не полночь UTC
func (r *ValidateRequest) ToUseCaseRequest() (*validateLaunchDate.Request, error) {
	startDate, err := civilday.Parse(r.StartDate)
	if err != nil {
		return nil, err
	}

	return &validateLaunchDate.Request{
		CategorySegments: r.Category,
		EntityName:       r.EntityName,
		DurationDays:     r.DurationDays,
		StartDate:        startDate,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *validateLaunchDate.Response) *ValidateResponse {
	violations := make([]ViolationResponse, 0, len(resp.Violations))
	for _, v := range resp.Violations {
		violations = append(violations, ViolationResponse{
			Rule:       v.Rule,
			Detail:     v.Detail,
			ConflictID: v.ConflictID,
		})
	}

	return &ValidateResponse{
		Valid:        resp.Valid,
		StartDate:    resp.StartDate.String(),
		EndDate:      resp.EndDate.String(),
		DurationDays: resp.DurationDays,
		CategoryKey:  resp.CategoryKey,
		Violations:   violations,
	}
}
