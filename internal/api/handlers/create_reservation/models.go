package create_reservation

import (
	"time"

	createReservation "github.com/m04kA/SMC-DealSchedulerService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-DealSchedulerService/pkg/civilday"
)

// CreateReservationRequest HTTP request model
// startDate опциональна: без неё дата подбирается автоматически
type CreateReservationRequest struct {
	Category     []string `json:"category"`
	EntityName   *string  `json:"entityName,omitempty"`
	DurationDays *int     `json:"durationDays,omitempty"`
	StartDate    *string  `json:"startDate,omitempty"` // "2026-03-15"
	Notes        *string  `json:"notes,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID           int64    `json:"id"`
	CategoryPath []string `json:"categoryPath"`
	CategoryKey  string   `json:"categoryKey"`
	EntityName   *string  `json:"entityName,omitempty"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	DurationDays int      `json:"durationDays"`
	Status       string   `json:"status"`
	Notes        *string  `json:"notes,omitempty"`
	CreatedAt    string   `json:"createdAt"`
	UpdatedAt    string   `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest() (*createReservation.Request, error) {
	req := &createReservation.Request{
		CategorySegments: r.Category,
		EntityName:       r.EntityName,
		DurationDays:     r.DurationDays,
		Notes:            r.Notes,
	}

	// Дата парсится в календарный день, минуя time.Time: "2026-03-20" - это
	// день площадки, а не полночь UTC
	if r.StartDate != nil {
		startDate, err := civilday.Parse(*r.StartDate)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:           resp.ID,
		CategoryPath: resp.CategoryPath,
		CategoryKey:  resp.CategoryKey,
		EntityName:   resp.EntityName,
		StartDate:    resp.StartDate.String(),
		EndDate:      resp.EndDate.String(),
		DurationDays: resp.DurationDays,
		Status:       resp.Status,
		Notes:        resp.Notes,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    resp.UpdatedAt.Format(time.RFC3339),
	}
}
