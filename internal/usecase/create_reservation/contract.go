package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DealSchedulerService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	GetActiveInWindow(ctx context.Context, windowStart, windowEnd time.Time) ([]*domain.Reservation, error)
	GetByEntity(ctx context.Context, filter domain.EntityReservationsFilter) ([]*domain.Reservation, error)
}

// ScheduleRepository интерфейс репозитория политики планирования
type ScheduleRepository interface {
	GetPolicy(ctx context.Context) (*domain.SchedulePolicy, error)
	ListExceptions(ctx context.Context) ([]domain.EntityException, error)
}

// CatalogServiceClient интерфейс клиента сервиса каталога категорий
type CatalogServiceClient interface {
	GetDefaultDurationWithGracefulDegradation(ctx context.Context, categoryKey string) (int, error)
	GetCategoryTree(ctx context.Context) (*domain.CategoryNode, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider предоставляет текущее время (для тестируемости)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальная реализация TimeProvider
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
