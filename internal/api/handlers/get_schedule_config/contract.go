package get_schedule_config

import (
	"context"

	"github.com/m04kA/SMC-DealSchedulerService/internal/service/scheduleconfig/models"
)

type ScheduleConfigService interface {
	GetEffective(ctx context.Context) (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
