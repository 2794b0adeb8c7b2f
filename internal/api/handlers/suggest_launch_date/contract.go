package suggest_launch_date

import (
	"context"

	suggestLaunchDate "github.com/m04kA/SMC-DealSchedulerService/internal/usecase/suggest_launch_date"
)

type SuggestLaunchDateUseCase interface {
	Execute(ctx context.Context, req *suggestLaunchDate.Request) (*suggestLaunchDate.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
