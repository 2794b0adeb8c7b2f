package suggest_launch_date

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DealSchedulerService/internal/api/handlers"
	suggestLaunchDate "github.com/m04kA/SMC-DealSchedulerService/internal/usecase/suggest_launch_date"
)

const (
	msgInvalidQuery     = "некорректные параметры запроса"
	msgInvalidCategory  = "некорректный путь категории"
	msgNoDateAvailable  = "не удалось найти доступную дату в пределах горизонта поиска"
	msgInvalidInput     = "некорректные входные данные"
)

type Handler struct {
	useCase SuggestLaunchDateUseCase
	logger  Logger
}

func NewHandler(useCase SuggestLaunchDateUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedule/next-available
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := ParseQuery(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /schedule/next-available - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, suggestLaunchDate.ErrInvalidCategory):
			h.logger.Warn("GET /schedule/next-available - Invalid category: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCategory)

		case errors.Is(err, suggestLaunchDate.ErrInvalidInput):
			h.logger.Warn("GET /schedule/next-available - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, suggestLaunchDate.ErrSearchExhausted):
			h.logger.Warn("GET /schedule/next-available - Search exhausted: %v", err)
			handlers.RespondError(w, http.StatusConflict, msgNoDateAvailable)

		default:
			h.logger.Error("GET /schedule/next-available - Failed to suggest date: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /schedule/next-available - Date suggested: date=%s, attempts=%d",
		result.Date, result.Attempts)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
