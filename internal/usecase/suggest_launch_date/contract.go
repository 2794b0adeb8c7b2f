package suggest_launch_date

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DealSchedulerService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	// GetActiveInWindow получает активные бронирования, пересекающиеся с окном поиска
	GetActiveInWindow(ctx context.Context, windowStart, windowEnd time.Time) ([]*domain.Reservation, error)

	// GetByEntity получает все бронирования мерчанта (для правила cooldown
	// нужна и история, не попадающая в окно поиска)
	GetByEntity(ctx context.Context, filter domain.EntityReservationsFilter) ([]*domain.Reservation, error)
}

// ScheduleRepository интерфейс репозитория политики планирования
type ScheduleRepository interface {
	GetPolicy(ctx context.Context) (*domain.SchedulePolicy, error)
	ListExceptions(ctx context.Context) ([]domain.EntityException, error)
}

// CatalogServiceClient интерфейс клиента для CatalogService
type CatalogServiceClient interface {
	GetDefaultDurationWithGracefulDegradation(ctx context.Context, categoryKey string) (int, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
