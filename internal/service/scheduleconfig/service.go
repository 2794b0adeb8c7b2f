package scheduleconfig

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DealSchedulerService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-DealSchedulerService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-DealSchedulerService/internal/service/scheduleconfig/models"
)

// Service сервис для работы с политикой планирования
type Service struct {
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(scheduleRepo ScheduleRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetEffective возвращает эффективную политику планирования:
// сохранённую конфигурацию, либо дефолты, если политика ещё не настроена
// Исключения мерчантов подгружаются в обоих случаях
func (s *Service) GetEffective(ctx context.Context) (*models.ConfigResponse, error) {
	s.logger.Info("GetEffective: fetching schedule policy")

	isDefault := false
	policy, err := s.scheduleRepo.GetPolicy(ctx)
	if err != nil {
		if !errors.Is(err, scheduleRepo.ErrPolicyNotFound) {
			s.logger.Error("GetEffective: repository error: %v", err)
			return nil, fmt.Errorf("%w: GetEffective - repository error: %v", ErrInternal, err)
		}
		defaults := domain.DefaultSchedulePolicy()
		policy = &defaults
		isDefault = true
		s.logger.Info("GetEffective: no stored policy, using defaults")
	}

	exceptions, err := s.scheduleRepo.ListExceptions(ctx)
	if err != nil {
		s.logger.Error("GetEffective: failed to list exceptions: %v", err)
		return nil, fmt.Errorf("%w: GetEffective - failed to list exceptions: %v", ErrInternal, err)
	}
	policy.Exceptions = exceptions

	s.logger.Info("GetEffective: policy fetched (default=%t, exceptions=%d)", isDefault, len(exceptions))
	return models.FromDomainPolicy(policy, isDefault), nil
}

// Update сохраняет политику планирования и заменяет список исключений
// Политика и исключения пишутся в одной транзакции
func (s *Service) Update(ctx context.Context, req *models.UpdateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Update: updating schedule policy by user=%d (exceptions=%d)", req.UserID, len(req.Exceptions))

	policy := req.ToDomainPolicy()
	if err := policy.Validate(); err != nil {
		s.logger.Warn("Update: policy validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidPolicy, err)
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.scheduleRepo.UpsertPolicy(txCtx, &policy); err != nil {
			return fmt.Errorf("%w: Update - upsert policy: %v", ErrInternal, err)
		}
		if err := s.scheduleRepo.ReplaceExceptions(txCtx, policy.Exceptions); err != nil {
			return fmt.Errorf("%w: Update - replace exceptions: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Update: transaction failed: %v", err)
		return nil, err
	}

	s.logger.Info("Update: schedule policy updated by user=%d", req.UserID)

	// Перечитываем, чтобы вернуть сохранённые ID исключений
	return s.GetEffective(ctx)
}
