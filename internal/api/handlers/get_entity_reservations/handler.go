package get_entity_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DealSchedulerService/internal/api/handlers"
	"github.com/m04kA/SMC-DealSchedulerService/internal/service/reservations"
	"github.com/m04kA/SMC-DealSchedulerService/internal/service/reservations/models"
	"github.com/m04kA/SMC-DealSchedulerService/pkg/civilday"
)

const (
	msgMissingEntityName = "имя мерчанта обязательно"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidQuery      = "некорректные параметры запроса"
)

type Handler struct {
	service  ReservationService
	calendar civilday.Calendar
	logger   Logger
}

func NewHandler(service ReservationService, calendar civilday.Calendar, logger Logger) *Handler {
	return &Handler{
		service:  service,
		calendar: calendar,
		logger:   logger,
	}
}

// Handle GET /api/v1/entities/{entityName}/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	entityName := vars["entityName"]
	if entityName == "" {
		h.logger.Warn("GET /entities/{name}/reservations - Missing entity name")
		handlers.RespondBadRequest(w, msgMissingEntityName)
		return
	}

	req := &models.GetEntityReservationsRequest{EntityName: entityName}

	query := r.URL.Query()

	// Границы периода - календарные дни площадки: начало периода
	// конвертируется в начало дня, конец - в конец дня
	if startRaw := query.Get("startDate"); startRaw != "" {
		day, err := civilday.Parse(startRaw)
		if err != nil {
			h.logger.Warn("GET /entities/{name}/reservations - Invalid startDate: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		startDate := h.calendar.StartOf(day)
		req.StartDate = &startDate
	}

	if endRaw := query.Get("endDate"); endRaw != "" {
		day, err := civilday.Parse(endRaw)
		if err != nil {
			h.logger.Warn("GET /entities/{name}/reservations - Invalid endDate: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		endDate := h.calendar.EndOf(day)
		req.EndDate = &endDate
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if includeRaw := query.Get("includeInactive"); includeRaw != "" {
		includeInactive, err := strconv.ParseBool(includeRaw)
		if err != nil {
			h.logger.Warn("GET /entities/{name}/reservations - Invalid includeInactive: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
		req.IncludeInactive = includeInactive
	}

	result, err := h.service.GetEntityReservations(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /entities/{name}/reservations - Invalid input: entity=%s, error=%v", entityName, err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /entities/{name}/reservations - Failed to get reservations: entity=%s, error=%v",
				entityName, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /entities/{name}/reservations - Retrieved %d reservations for entity=%s",
		len(result.Reservations), entityName)
	handlers.RespondJSON(w, http.StatusOK, result)
}
