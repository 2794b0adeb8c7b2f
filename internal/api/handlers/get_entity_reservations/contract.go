package get_entity_reservations

import (
	"context"

	"github.com/m04kA/SMC-DealSchedulerService/internal/service/reservations/models"
)

type ReservationService interface {
	GetEntityReservations(ctx context.Context, req *models.GetEntityReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
