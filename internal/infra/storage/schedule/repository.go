package schedule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-DealSchedulerService/internal/domain"
	"github.com/m04kA/SMC-DealSchedulerService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DealSchedulerService/pkg/psqlbuilder"
)

// policyRowID политика планирования хранится единственной строкой
const policyRowID = 1

// Repository репозиторий для работы с политикой планирования и исключениями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория политики
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetPolicy получает сохранённую политику планирования (без исключений)
// Если политика не настроена, возвращает ErrPolicyNotFound -
// вызывающая сторона подставляет дефолты
func (r *Repository) GetPolicy(ctx context.Context) (*domain.SchedulePolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"min_per_day",
		"max_per_day",
		"default_cooldown_days",
		"default_duration_days",
		"max_search_attempts",
	).
		From("schedule_policy").
		Where(squirrel.Eq{"id": policyRowID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetPolicy - build select query: %v", ErrBuildQuery, err)
	}

	var policy domain.SchedulePolicy
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&policy.Capacity.MinPerDay,
		&policy.Capacity.MaxPerDay,
		&policy.DefaultCooldownDays,
		&policy.DefaultDurationDays,
		&policy.MaxSearchAttempts,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetPolicy - scan policy: %v", ErrScanRow, err)
	}

	return &policy, nil
}

// UpsertPolicy сохраняет политику планирования (вставка или обновление
// единственной строки)
func (r *Repository) UpsertPolicy(ctx context.Context, policy *domain.SchedulePolicy) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedule_policy").
		Columns(
			"id",
			"min_per_day",
			"max_per_day",
			"default_cooldown_days",
			"default_duration_days",
			"max_search_attempts",
		).
		Values(
			policyRowID,
			policy.Capacity.MinPerDay,
			policy.Capacity.MaxPerDay,
			policy.DefaultCooldownDays,
			policy.DefaultDurationDays,
			policy.MaxSearchAttempts,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			min_per_day = EXCLUDED.min_per_day,
			max_per_day = EXCLUDED.max_per_day,
			default_cooldown_days = EXCLUDED.default_cooldown_days,
			default_duration_days = EXCLUDED.default_duration_days,
			max_search_attempts = EXCLUDED.max_search_attempts,
			updated_at = NOW()`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpsertPolicy - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertPolicy - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// ListExceptions получает все персональные исключения мерчантов
func (r *Repository) ListExceptions(ctx context.Context) ([]domain.EntityException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"entity_name",
		"kind",
		"value",
		"created_at",
		"updated_at",
	).
		From("entity_exceptions").
		OrderBy("entity_name ASC, kind ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListExceptions - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListExceptions - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	exceptions := make([]domain.EntityException, 0)

	for rows.Next() {
		var exc domain.EntityException
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&exc.ID,
			&exc.EntityName,
			&exc.Kind,
			&exc.Value,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListExceptions - scan row: %v", ErrScanRow, err)
		}

		exc.CreatedAt = createdAt.Time
		exc.UpdatedAt = updatedAt.Time

		exceptions = append(exceptions, exc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListExceptions - rows error: %v", ErrScanRow, err)
	}

	return exceptions, nil
}

// ReplaceExceptions полностью заменяет список исключений
// Вызывается внутри транзакции update-операции конфигурации
func (r *Repository) ReplaceExceptions(ctx context.Context, exceptions []domain.EntityException) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("entity_exceptions").ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceExceptions - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceExceptions - execute delete: %v", ErrExecQuery, err)
	}

	if len(exceptions) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("entity_exceptions").
		Columns("entity_name", "kind", "value")

	for _, exc := range exceptions {
		insertBuilder = insertBuilder.Values(exc.EntityName, exc.Kind, exc.Value)
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceExceptions - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceExceptions - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
