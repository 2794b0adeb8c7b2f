package get_schedule_config

import (
	"net/http"

	"github.com/m04kA/SMC-DealSchedulerService/internal/api/handlers"
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

// Handle GET /api/v1/schedule/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	config, err := h.service.GetEffective(r.Context())
	if err != nil {
		h.logger.Error("GET /schedule/config - Failed to get config: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /schedule/config - Config retrieved successfully: isDefault=%t", config.IsDefault)
	handlers.RespondJSON(w, http.StatusOK, config)
}
