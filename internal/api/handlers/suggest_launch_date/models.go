package suggest_launch_date

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	suggestLaunchDate "github.com/m04kA/SMC-DealSchedulerService/internal/usecase/suggest_launch_date"
	"github.com/m04kA/SMC-DealSchedulerService/pkg/civilday"
)

// SuggestResponse HTTP response model
type SuggestResponse struct {
	Date         string `json:"date"` // "2026-03-15"
	LeadTimeDays int    `json:"leadTimeDays"`
	DurationDays int    `json:"durationDays"`
	Attempts     int    `json:"attempts"`
	CategoryKey  string `json:"categoryKey"`
}

// ParseQuery строит модель use case из query-параметров
// category передается как путь через запятую: "Еда,Рестораны,Суши"
// searchFrom опционален, дефолт - сегодня (use case сам поднимет прошлые даты)
//
// Даты парсятся сразу в календарный день: строка "2026-03-20" означает
// день площадки, а не полночь UTC
func ParseQuery(query url.Values) (*suggestLaunchDate.Request, error) {
	categoryRaw := strings.TrimSpace(query.Get("category"))
	if categoryRaw == "" {
		return nil, fmt.Errorf("параметр category обязателен")
	}
	segments := strings.Split(categoryRaw, ",")

	req := &suggestLaunchDate.Request{
		CategorySegments: segments,
	}

	if entity := strings.TrimSpace(query.Get("entityName")); entity != "" {
		req.EntityName = &entity
	}

	if durationRaw := query.Get("durationDays"); durationRaw != "" {
		duration, err := strconv.Atoi(durationRaw)
		if err != nil {
			return nil, fmt.Errorf("некорректный durationDays: %v", err)
		}
		req.DurationDays = &duration
	}

	if fromRaw := query.Get("searchFrom"); fromRaw != "" {
		searchFrom, err := civilday.Parse(fromRaw)
		if err != nil {
			return nil, fmt.Errorf("некорректный searchFrom: %v", err)
		}
		req.SearchFrom = searchFrom
	}

	if excludeRaw := query.Get("excludeReservationId"); excludeRaw != "" {
		excludeID, err := strconv.ParseInt(excludeRaw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("некорректный excludeReservationId: %v", err)
		}
		req.ExcludeReservationID = &excludeID
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *suggestLaunchDate.Response) *SuggestResponse {
	return &SuggestResponse{
		Date:         resp.Date.String(),
		LeadTimeDays: resp.LeadTimeDays,
		DurationDays: resp.DurationDays,
		Attempts:     resp.Attempts,
		CategoryKey:  resp.CategoryKey,
	}
}
