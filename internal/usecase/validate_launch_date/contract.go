package validate_launch_date

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DealSchedulerService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
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
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
