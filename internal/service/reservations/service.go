package reservations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	reservationRepo "github.com/m04kA/SMC-DealSchedulerService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-DealSchedulerService/internal/service/reservations/models"
)

// Service сервис для работы с бронированиями акций
type Service struct {
	reservationRepo ReservationRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(reservationRepo ReservationRepository, logger Logger) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d", id)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched reservation id=%d", id)
	return models.FromDomainReservation(reservation), nil
}

// GetEntityReservations получает бронирования мерчанта с гибкой фильтрацией
// Используется админской таблицей бронирований
func (s *Service) GetEntityReservations(ctx context.Context, req *models.GetEntityReservationsRequest) (*models.ReservationListResponse, error) {
	if strings.TrimSpace(req.EntityName) == "" {
		s.logger.Warn("GetEntityReservations: empty entity name")
		return nil, fmt.Errorf("%w: entityName is required", ErrInvalidInput)
	}

	s.logger.Info("GetEntityReservations: fetching reservations for entity=%s", req.EntityName)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetEntityReservations: invalid status=%v for entity=%s", req.Status, req.EntityName)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.GetByEntity(ctx, filter)
	if err != nil {
		s.logger.Error("GetEntityReservations: repository error for entity=%s: %v", req.EntityName, err)
		return nil, fmt.Errorf("%w: GetEntityReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetEntityReservations: successfully fetched %d reservations for entity=%s",
		len(reservations), req.EntityName)
	return models.FromDomainReservationList(reservations), nil
}

// Cancel отменяет бронирование с указанием причины
// Отменить можно только запланированное или идущее бронирование
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelReservationRequest) (*models.ReservationResponse, error) {
	s.logger.Info("Cancel: cancelling reservation id=%d by user=%d", id, req.UserID)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !reservation.CanBeCancelled() {
		s.logger.Warn("Cancel: reservation id=%d in status=%s cannot be cancelled", id, reservation.Status)
		return nil, ErrCannotCancel
	}

	if err := s.reservationRepo.Cancel(ctx, id, req.CancellationReason); err != nil {
		s.logger.Error("Cancel: failed to cancel reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Перечитываем бронирование, чтобы вернуть актуальное состояние
	cancelled, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Cancel: failed to re-fetch reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%d", id)
	return models.FromDomainReservation(cancelled), nil
}
