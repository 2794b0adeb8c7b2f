package suggest_launch_date

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DealSchedulerService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-DealSchedulerService/internal/infra/storage/schedule"
	catalogClient "github.com/m04kA/SMC-DealSchedulerService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-DealSchedulerService/internal/scheduler"
	"github.com/m04kA/SMC-DealSchedulerService/pkg/civilday"
)

// loadEffectivePolicy загружает политику планирования с исключениями
// Если политика не настроена, используются дефолтные значения
func loadEffectivePolicy(ctx context.Context, repo ScheduleRepository) (domain.SchedulePolicy, error) {
	policy, err := repo.GetPolicy(ctx)
	if err != nil {
		if !errors.Is(err, scheduleRepo.ErrPolicyNotFound) {
			return domain.SchedulePolicy{}, fmt.Errorf("failed to get policy: %v", err)
		}
		defaults := domain.DefaultSchedulePolicy()
		policy = &defaults
	}

	exceptions, err := repo.ListExceptions(ctx)
	if err != nil {
		return domain.SchedulePolicy{}, fmt.Errorf("failed to list exceptions: %v", err)
	}
	policy.Exceptions = exceptions

	return *policy, nil
}

// collectSnapshot собирает снапшот бронирований для планировщика:
// все активные бронирования, пересекающиеся с окном поиска, плюс вся
// история мерчанта - cooldown смотрит на прошлые бронирования, которые
// в окно поиска не попадают
//
// История мерчанта читается первой: прыжок cooldown может перенести
// кандидата за конец последнего бронирования мерчанта, и окно должно
// покрывать дни приземления, иначе exclusivity и capacity там проверятся
// по пустому снапшоту
func collectSnapshot(
	ctx context.Context,
	repo ReservationRepository,
	cal civilday.Calendar,
	searchFrom civilday.Day,
	horizonDays int,
	cooldownDays int,
	entityName *string,
) ([]*domain.Reservation, error) {
	var entityReservations []*domain.Reservation
	var lastEntityEnd civilday.Day

	if entityName != nil && *entityName != "" {
		var err error
		entityReservations, err = repo.GetByEntity(ctx, domain.EntityReservationsFilter{
			EntityName: *entityName,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to get entity reservations: %v", err)
		}
		for _, r := range entityReservations {
			end := cal.DayOf(r.EndDate)
			if lastEntityEnd.IsZero() || end.After(lastEntityEnd) {
				lastEntityEnd = end
			}
		}
	}

	windowEndDay := searchFrom.AddDays(horizonDays)
	if !lastEntityEnd.IsZero() {
		windowEndDay = civilday.Max(windowEndDay, lastEntityEnd.AddDays(cooldownDays+horizonDays))
	}

	reservations, err := repo.GetActiveInWindow(ctx, cal.StartOf(searchFrom), cal.EndOf(windowEndDay))
	if err != nil {
		return nil, fmt.Errorf("failed to get reservations in window: %v", err)
	}

	// Дедупликация: бронирования мерчанта могут попадать и в окно поиска
	seen := make(map[int64]struct{}, len(reservations))
	for _, r := range reservations {
		seen[r.ID] = struct{}{}
	}
	for _, r := range entityReservations {
		if _, ok := seen[r.ID]; !ok {
			reservations = append(reservations, r)
		}
	}

	return reservations, nil
}

// resolveDuration разрешает эффективную длительность бронирования
// Порядок приоритетов:
// 1. Явная длительность из запроса
// 2. Дефолт категории из CatalogService
// 3. Персональное исключение мерчанта (kind=duration_days)
// 4. Глобальный дефолт из политики
func resolveDuration(
	ctx context.Context,
	catalog CatalogServiceClient,
	policy domain.SchedulePolicy,
	categoryKey string,
	entityName *string,
	explicit *int,
	logger Logger,
) int {
	if explicit != nil && *explicit > 0 {
		return *explicit
	}

	duration, err := catalog.GetDefaultDurationWithGracefulDegradation(ctx, categoryKey)
	if err == nil {
		return duration
	}
	if !errors.Is(err, catalogClient.ErrCategoryNotFound) && !errors.Is(err, catalogClient.ErrServiceDegraded) {
		logger.Warn("resolveDuration: unexpected catalog error for category=%s: %v", categoryKey, err)
	}

	entity := ""
	if entityName != nil {
		entity = *entityName
	}
	if override := scheduler.ResolveException(policy.Exceptions, entity, domain.ExceptionDurationDays, 0); override > 0 {
		return override
	}

	return policy.DefaultDurationDays
}
