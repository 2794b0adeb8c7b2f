package scheduleconfig

import (
	"context"

	"github.com/m04kA/SMC-DealSchedulerService/internal/domain"
)

// ScheduleRepository интерфейс репозитория политики планирования
type ScheduleRepository interface {
	GetPolicy(ctx context.Context) (*domain.SchedulePolicy, error)
	UpsertPolicy(ctx context.Context, policy *domain.SchedulePolicy) error
	ListExceptions(ctx context.Context) ([]domain.EntityException, error)
	ReplaceExceptions(ctx context.Context, exceptions []domain.EntityException) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
