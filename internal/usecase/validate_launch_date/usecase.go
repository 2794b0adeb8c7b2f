package validate_launch_date

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

// UseCase use case проверки уже выбранной даты запуска акции
type UseCase struct {
	reservationRepo ReservationRepository
	scheduleRepo    ScheduleRepository
	catalogClient   CatalogServiceClient
	calendar        civilday.Calendar
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	scheduleRepo ScheduleRepository,
	catalogClient CatalogServiceClient,
	calendar civilday.Calendar,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		scheduleRepo:    scheduleRepo,
		catalogClient:   catalogClient,
		calendar:        calendar,
		logger:          logger,
	}
}

// Execute проверяет дату по всем правилам планирования и возвращает
// полный список нарушений - в отличие от поиска, здесь нужны все проблемы
// сразу, а не только первая
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	categoryPath, err := uc.validateRequest(req)
	if err != nil {
		uc.logger.Warn("ValidateLaunchDate: validation failed: %v", err)
		return nil, err
	}
	categoryKey := categoryPath.Key()
	startDate := req.StartDate

	// 2. Загружаем политику планирования с исключениями
	policy, err := uc.loadEffectivePolicy(ctx)
	if err != nil {
		uc.logger.Error("ValidateLaunchDate: failed to load policy: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 3. Разрешаем эффективную длительность
	duration := uc.resolveDuration(ctx, policy, categoryKey, req.EntityName, req.DurationDays)
	endDate := startDate.AddDays(duration - 1)

	// 4. Собираем снапшот бронирований вокруг проверяемого диапазона
	reservations, err := uc.collectSnapshot(ctx, startDate, endDate, policy.DefaultCooldownDays, req.EntityName)
	if err != nil {
		uc.logger.Error("ValidateLaunchDate: failed to collect snapshot: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 5. Проверяем диапазон по всем правилам
	violations, err := scheduler.CheckRange(scheduler.RangeRequest{
		CategoryKey: categoryKey,
		EntityName:  req.EntityName,
		Start:       startDate,
		End:         endDate,
	}, reservations, policy, uc.calendar)
	if err != nil {
		if errors.Is(err, scheduler.ErrInvalidInput) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Error("ValidateLaunchDate: check failed for category=%s: %v", categoryKey, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("ValidateLaunchDate: category=%s date=%s violations=%d",
		categoryKey, startDate, len(violations))

	return &Response{
		Valid:        len(violations) == 0,
		StartDate:    startDate,
		EndDate:      endDate,
		DurationDays: duration,
		CategoryKey:  categoryKey,
		Violations:   toViolationInfos(violations),
	}, nil
}

// loadEffectivePolicy загружает политику планирования с исключениями
// Если политика не настроена, используются дефолтные значения
func (uc *UseCase) loadEffectivePolicy(ctx context.Context) (domain.SchedulePolicy, error) {
	policy, err := uc.scheduleRepo.GetPolicy(ctx)
	if err != nil {
		if !errors.Is(err, scheduleRepo.ErrPolicyNotFound) {
			return domain.SchedulePolicy{}, fmt.Errorf("failed to get policy: %v", err)
		}
		defaults := domain.DefaultSchedulePolicy()
		policy = &defaults
	}

	exceptions, err := uc.scheduleRepo.ListExceptions(ctx)
	if err != nil {
		return domain.SchedulePolicy{}, fmt.Errorf("failed to list exceptions: %v", err)
	}
	policy.Exceptions = exceptions

	return *policy, nil
}

// collectSnapshot собирает бронирования, способные повлиять на проверку:
// окно расширено на cooldown в прошлое, плюс вся история мерчанта
func (uc *UseCase) collectSnapshot(
	ctx context.Context,
	start, end civilday.Day,
	cooldownDays int,
	entityName *string,
) ([]*domain.Reservation, error) {
	windowStart := uc.calendar.StartOf(start.AddDays(-cooldownDays))
	windowEnd := uc.calendar.EndOf(end)

	reservations, err := uc.reservationRepo.GetActiveInWindow(ctx, windowStart, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservations in window: %v", err)
	}

	if entityName == nil || *entityName == "" {
		return reservations, nil
	}

	entityReservations, err := uc.reservationRepo.GetByEntity(ctx, domain.EntityReservationsFilter{
		EntityName: *entityName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get entity reservations: %v", err)
	}

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
// Порядок приоритетов: явная из запроса -> дефолт категории из CatalogService ->
// персональное исключение мерчанта -> глобальный дефолт из политики
func (uc *UseCase) resolveDuration(
	ctx context.Context,
	policy domain.SchedulePolicy,
	categoryKey string,
	entityName *string,
	explicit *int,
) int {
	if explicit != nil && *explicit > 0 {
		return *explicit
	}

	duration, err := uc.catalogClient.GetDefaultDurationWithGracefulDegradation(ctx, categoryKey)
	if err == nil {
		return duration
	}
	if !errors.Is(err, catalogClient.ErrCategoryNotFound) && !errors.Is(err, catalogClient.ErrServiceDegraded) {
		uc.logger.Warn("ValidateLaunchDate: unexpected catalog error for category=%s: %v", categoryKey, err)
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

func (uc *UseCase) validateRequest(req *Request) (domain.CategoryPath, error) {
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
	if req.StartDate.IsZero() {
		return nil, fmt.Errorf("%w: start date is required", ErrInvalidInput)
	}

	return categoryPath, nil
}

func toViolationInfos(violations []scheduler.Violation) []ViolationInfo {
	if len(violations) == 0 {
		return nil
	}
	infos := make([]ViolationInfo, 0, len(violations))
	for _, v := range violations {
		info := ViolationInfo{
			Rule:        string(v.Rule),
			Detail:      v.Detail,
			AdvanceDays: v.AdvanceDays,
		}
		if v.ConflictID != 0 {
			conflictID := v.ConflictID
			info.ConflictID = &conflictID
		}
		infos = append(infos, info)
	}
	return infos
}
