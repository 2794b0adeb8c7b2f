package validate_launch_date

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DealSchedulerService/internal/api/handlers"
	validateLaunchDate "github.com/m04kA/SMC-DealSchedulerService/internal/usecase/validate_launch_date"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidCategory    = "некорректный путь категории"
	msgInvalidInput       = "некорректные входные данные"
)

type Handler struct {
	useCase ValidateLaunchDateUseCase
	logger  Logger
}

func NewHandler(useCase ValidateLaunchDateUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/schedule/validate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /schedule/validate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /schedule/validate - Failed to parse date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, validateLaunchDate.ErrInvalidCategory):
			h.logger.Warn("POST /schedule/validate - Invalid category: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCategory)

		case errors.Is(err, validateLaunchDate.ErrInvalidInput):
			h.logger.Warn("POST /schedule/validate - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /schedule/validate - Failed to validate date: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /schedule/validate - Date checked: category=%s, valid=%t, violations=%d",
		result.CategoryKey, result.Valid, len(result.Violations))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
