package update_schedule_config

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DealSchedulerService/internal/api/handlers"
	"github.com/m04kA/SMC-DealSchedulerService/internal/api/middleware"
	"github.com/m04kA/SMC-DealSchedulerService/internal/service/scheduleconfig"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidPolicy      = "несогласованная политика планирования"
	msgInvalidInput       = "некорректные входные данные"
	msgMissingUserID      = "отсутствует ID пользователя"
)

type Handler struct {
	service ScheduleConfigService
	logger  Logger
}

func NewHandler(service ScheduleConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/schedule/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /schedule/config - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /schedule/config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, scheduleconfig.ErrInvalidPolicy):
			h.logger.Warn("PUT /schedule/config - Invalid policy: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidPolicy)

		case errors.Is(err, scheduleconfig.ErrInvalidInput):
			h.logger.Warn("PUT /schedule/config - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /schedule/config - Failed to update config: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /schedule/config - Config updated successfully: user_id=%d", userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
