package validate_launch_date

import (
	"context"

	validateLaunchDate "github.com/m04kA/SMC-DealSchedulerService/internal/usecase/validate_launch_date"
)

type ValidateLaunchDateUseCase interface {
	Execute(ctx context.Context, req *validateLaunchDate.Request) (*validateLaunchDate.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
