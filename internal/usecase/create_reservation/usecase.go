package create_reservation

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

// UseCase use case для создания бронирования запуска акции
type UseCase struct {
	reservationRepo ReservationRepository
	scheduleRepo    ScheduleRepository
	catalogClient   CatalogServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	calendar        civilday.Calendar
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	scheduleRepo ScheduleRepository,
	catalogClient CatalogServiceClient,
	txManager TransactionManager,
	calendar civilday.Calendar,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		scheduleRepo:    scheduleRepo,
		catalogClient:   catalogClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		calendar:        calendar,
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка правил и вставка выполняются в сериализуемой транзакции:
// между чтением снапшота и записью никто не может занять ту же дату
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: category=%v, entity=%v, duration=%v, startDate=%v",
		req.CategorySegments, strOrDash(req.EntityName), req.DurationDays, req.StartDate)

	// 1. Валидация входных данных
	categoryPath, err := uc.validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}
	categoryKey := categoryPath.Key()

	// 2. Проверяем путь по дереву каталога (с graceful degradation)
	if err := uc.verifyCategoryExists(ctx, categoryPath); err != nil {
		uc.logger.Warn("CreateReservation: category check failed: %v", err)
		return nil, err
	}

	// 3. Получаем текущее время и сегодняшний день
	now := uc.timeProvider.Now()
	today := uc.calendar.Today(now)

	// Переменная для хранения результата
	var result *domain.Reservation
	var duration int

	// 4. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Загружаем политику планирования с исключениями
		policy, err := uc.loadEffectivePolicy(txCtx)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to load policy: %v", err)
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}

		// 4.2. Разрешаем эффективную длительность
		duration = uc.resolveDuration(txCtx, policy, categoryKey, req.EntityName, req.DurationDays)

		// 4.3. Определяем дату старта: явную или ближайшую найденную
		startDate, err := uc.resolveStartDate(txCtx, req, policy, categoryKey, duration, today)
		if err != nil {
			return err
		}
		endDate := startDate.AddDays(duration - 1)

		// 4.4. Создаем бронирование с денормализованным ключом категории
		reservation := &domain.Reservation{
			CategoryPath: categoryPath,
			CategoryKey:  categoryKey,
			EntityName:   req.EntityName,
			StartDate:    uc.calendar.StartOf(startDate),
			EndDate:      uc.calendar.StartOf(endDate),
			Status:       domain.StatusScheduled,
			Notes:        req.Notes,
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d", result.ID)

	return &Response{
		ID:           result.ID,
		CategoryPath: result.CategoryPath,
		CategoryKey:  result.CategoryKey,
		EntityName:   result.EntityName,
		StartDate:    uc.calendar.DayOf(result.StartDate),
		EndDate:      uc.calendar.DayOf(result.EndDate),
		DurationDays: duration,
		Status:       string(result.Status),
		Notes:        result.Notes,
		CreatedAt:    result.CreatedAt,
		UpdatedAt:    result.UpdatedAt,
	}, nil
}

// resolveStartDate внутри транзакции определяет дату старта
// Явная дата перепроверяется по всем правилам (снапшот читается с FOR UPDATE);
// без явной даты запускается поиск ближайшей валидной
func (uc *UseCase) resolveStartDate(
	ctx context.Context,
	req *Request,
	policy domain.SchedulePolicy,
	categoryKey string,
	duration int,
	today civilday.Day,
) (civilday.Day, error) {
	if req.StartDate != nil {
		startDate := *req.StartDate
		if startDate.Before(today) {
			return civilday.Day{}, fmt.Errorf("%w: start date %s is in the past", ErrInvalidInput, startDate)
		}
		endDate := startDate.AddDays(duration - 1)

		reservations, err := uc.collectSnapshot(ctx, startDate.AddDays(-policy.DefaultCooldownDays), endDate, 0, req.EntityName)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to collect snapshot: %v", err)
			return civilday.Day{}, fmt.Errorf("%w: %v", ErrInternal, err)
		}

		violations, err := scheduler.CheckRange(scheduler.RangeRequest{
			CategoryKey: categoryKey,
			EntityName:  req.EntityName,
			Start:       startDate,
			End:         endDate,
		}, reservations, policy, uc.calendar)
		if err != nil {
			if errors.Is(err, scheduler.ErrInvalidInput) {
				return civilday.Day{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			return civilday.Day{}, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		if len(violations) > 0 {
			uc.logger.Warn("CreateReservation: date %s not available, violations=%d", startDate, len(violations))
			return civilday.Day{}, fmt.Errorf("%w: %s", ErrDateNotAvailable, violations[0].Detail)
		}

		return startDate, nil
	}

	// Автоподбор: ищем ближайшую валидную дату начиная с сегодняшнего дня
	entity := ""
	if req.EntityName != nil {
		entity = *req.EntityName
	}
	cooldown := scheduler.ResolveException(policy.Exceptions, entity, domain.ExceptionCooldownDays, policy.DefaultCooldownDays)

	horizon := policy.MaxSearchAttempts + duration
	reservations, err := uc.collectSnapshot(ctx, today, today.AddDays(horizon), cooldown, req.EntityName)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to collect snapshot: %v", err)
		return civilday.Day{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	result, err := scheduler.Search(scheduler.Request{
		CategoryKey:  categoryKey,
		EntityName:   req.EntityName,
		DurationDays: duration,
		SearchFrom:   today,
		Today:        today,
	}, reservations, policy, uc.calendar)
	if err != nil {
		var exhausted *scheduler.ExhaustedError
		switch {
		case errors.As(err, &exhausted):
			uc.logger.Warn("CreateReservation: search exhausted after %d candidates", exhausted.Attempts)
			return civilday.Day{}, fmt.Errorf("%w: tried %d candidates", ErrSearchExhausted, exhausted.Attempts)
		case errors.Is(err, scheduler.ErrInvalidInput):
			return civilday.Day{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		default:
			return civilday.Day{}, fmt.Errorf("%w: search failed: %v", ErrInternal, err)
		}
	}

	return result.Date, nil
}

// verifyCategoryExists проверяет путь категории по дереву каталога
// Недоступность каталога не блокирует бронирование: проверка пропускается,
// синтаксис пути уже провалидирован
func (uc *UseCase) verifyCategoryExists(ctx context.Context, categoryPath domain.CategoryPath) error {
	tree, err := uc.catalogClient.GetCategoryTree(ctx)
	if err != nil {
		uc.logger.Warn("CreateReservation: category tree unavailable, skipping catalog check: %v", err)
		return nil
	}

	if !tree.ContainsPath(categoryPath) {
		return fmt.Errorf("%w: path %q is not present in the catalog", ErrInvalidCategory, categoryPath.Key())
	}

	return nil
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

// collectSnapshot читает бронирования окна плюс историю мерчанта
// Внутри сериализуемой транзакции строки окна блокируются (FOR UPDATE)
//
// При автоподборе прыжок cooldown может перенести кандидата за конец
// последнего бронирования мерчанта: окно расширяется до дней приземления,
// чтобы exclusivity и capacity там проверялись по полному снапшоту.
// Для явной даты cooldownDays передаётся нулём - прыжков нет
func (uc *UseCase) collectSnapshot(
	ctx context.Context,
	from, to civilday.Day,
	cooldownDays int,
	entityName *string,
) ([]*domain.Reservation, error) {
	var entityReservations []*domain.Reservation
	var lastEntityEnd civilday.Day

	if entityName != nil && *entityName != "" {
		var err error
		entityReservations, err = uc.reservationRepo.GetByEntity(ctx, domain.EntityReservationsFilter{
			EntityName: *entityName,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to get entity reservations: %v", err)
		}
		for _, r := range entityReservations {
			end := uc.calendar.DayOf(r.EndDate)
			if lastEntityEnd.IsZero() || end.After(lastEntityEnd) {
				lastEntityEnd = end
			}
		}
	}

	windowEnd := to
	if cooldownDays > 0 && !lastEntityEnd.IsZero() {
		windowEnd = civilday.Max(windowEnd, lastEntityEnd.AddDays(cooldownDays+civilday.DaysBetween(from, to)))
	}

	reservations, err := uc.reservationRepo.GetActiveInWindow(ctx, uc.calendar.StartOf(from), uc.calendar.EndOf(windowEnd))
	if err != nil {
		return nil, fmt.Errorf("failed to get reservations in window: %v", err)
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
		uc.logger.Warn("CreateReservation: unexpected catalog error for category=%s: %v", categoryKey, err)
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
