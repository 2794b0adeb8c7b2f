package suggest_launch_date

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-DealSchedulerService/internal/domain"
	"github.com/m04kA/SMC-DealSchedulerService/internal/scheduler"
	"github.com/m04kA/SMC-DealSchedulerService/pkg/civilday"
	"github.com/m04kA/SMC-DealSchedulerService/pkg/metrics"
)

// UseCase use case подбора ближайшей валидной даты запуска акции
type UseCase struct {
	reservationRepo ReservationRepository
	scheduleRepo    ScheduleRepository
	catalogClient   CatalogServiceClient
	timeProvider    TimeProvider
	calendar        civilday.Calendar
	metrics         *metrics.Metrics // nil, если метрики выключены
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	scheduleRepo ScheduleRepository,
	catalogClient CatalogServiceClient,
	calendar civilday.Calendar,
	metricsCollector *metrics.Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		scheduleRepo:    scheduleRepo,
		catalogClient:   catalogClient,
		timeProvider:    &RealTimeProvider{},
		calendar:        calendar,
		metrics:         metricsCollector,
		logger:          logger,
	}
}

// Execute выполняет use case подбора даты запуска
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SuggestLaunchDate: category=%v, entity=%v, duration=%v, searchFrom=%s",
		req.CategorySegments, strOrDash(req.EntityName), intOrDash(req.DurationDays), req.SearchFrom)

	// 1. Валидация входных данных
	categoryPath, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("SuggestLaunchDate: validation failed: %v", err)
		return nil, err
	}
	categoryKey := categoryPath.Key()

	// 2. Получаем текущее время и сегодняшний день
	now := uc.timeProvider.Now()
	today := uc.calendar.Today(now)
	searchFrom := req.SearchFrom
	if searchFrom.IsZero() {
		searchFrom = today
	}

	// 3. Загружаем политику планирования с исключениями
	policy, err := loadEffectivePolicy(ctx, uc.scheduleRepo)
	if err != nil {
		uc.logger.Error("SuggestLaunchDate: failed to load policy: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 4. Разрешаем эффективную длительность
	duration := resolveDuration(ctx, uc.catalogClient, policy, categoryKey, req.EntityName, req.DurationDays, uc.logger)

	// 5. Собираем снапшот бронирований
	// Горизонт покрывает весь диапазон поиска плюс длительность нового бронирования
	entity := ""
	if req.EntityName != nil {
		entity = *req.EntityName
	}
	cooldown := scheduler.ResolveException(policy.Exceptions, entity, domain.ExceptionCooldownDays, policy.DefaultCooldownDays)

	horizon := policy.MaxSearchAttempts + duration
	reservations, err := collectSnapshot(ctx, uc.reservationRepo, uc.calendar, civilday.Max(searchFrom, today), horizon, cooldown, req.EntityName)
	if err != nil {
		uc.logger.Error("SuggestLaunchDate: failed to collect snapshot: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 6. Запускаем поиск
	result, err := scheduler.Search(scheduler.Request{
		CategoryKey:          categoryKey,
		EntityName:           req.EntityName,
		DurationDays:         duration,
		SearchFrom:           searchFrom,
		Today:                today,
		ExcludeReservationID: req.ExcludeReservationID,
	}, reservations, policy, uc.calendar)

	if err != nil {
		var exhausted *scheduler.ExhaustedError
		switch {
		case errors.As(err, &exhausted):
			uc.observeSearch("exhausted", exhausted.Attempts)
			uc.logger.Warn("SuggestLaunchDate: search exhausted for category=%s after %d candidates",
				categoryKey, exhausted.Attempts)
			return nil, fmt.Errorf("%w: tried %d candidates", ErrSearchExhausted, exhausted.Attempts)

		case errors.Is(err, scheduler.ErrInvalidInput):
			uc.logger.Warn("SuggestLaunchDate: scheduler rejected input: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)

		default:
			uc.observeSearch("error", 0)
			uc.logger.Error("SuggestLaunchDate: search failed for category=%s: %v", categoryKey, err)
			return nil, fmt.Errorf("%w: search failed: %v", ErrInternal, err)
		}
	}

	uc.observeSearch("found", result.Attempts)
	uc.logger.Info("SuggestLaunchDate: found date=%s leadTime=%d attempts=%d for category=%s",
		result.Date, result.LeadTimeDays, result.Attempts, categoryKey)

	return &Response{
		Date:         result.Date,
		LeadTimeDays: result.LeadTimeDays,
		DurationDays: duration,
		Attempts:     result.Attempts,
		CategoryKey:  categoryKey,
	}, nil
}

func (uc *UseCase) observeSearch(outcome string, attempts int) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.SearchResultsTotal.WithLabelValues(outcome).Inc()
	if attempts > 0 {
		uc.metrics.SearchAttemptsTotal.WithLabelValues(outcome).Observe(float64(attempts))
	}
}

// validateRequest валидирует входные данные и строит путь категории
func validateRequest(req *Request) (domain.CategoryPath, error) {
	if len(req.CategorySegments) == 0 {
		return nil, fmt.Errorf("%w: category path is required", ErrInvalidInput)
	}

	categoryPath, err := domain.NewCategoryPath(req.CategorySegments...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCategory, err)
	}

	if req.DurationDays != nil && *req.DurationDays <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidInput, *req.DurationDays)
	}
	if req.DurationDays != nil && *req.DurationDays > domain.MaxDurationDays {
		return nil, fmt.Errorf("%w: duration must not exceed %d days", ErrInvalidInput, domain.MaxDurationDays)
	}

	return categoryPath, nil
}

func strOrDash(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func intOrDash(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}
