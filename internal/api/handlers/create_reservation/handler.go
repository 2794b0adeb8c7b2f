package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DealSchedulerService/internal/api/handlers"
	createReservation "github.com/m04kA/SMC-DealSchedulerService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidCategory    = "некорректный путь категории"
	msgInvalidInput       = "некорректные входные данные"
	msgDateNotAvailable   = "выбранная дата недоступна"
	msgNoDateAvailable    = "не удалось найти доступную дату в пределах горизонта поиска"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrDateNotAvailable):
			h.logger.Warn("POST /reservations - Date not available: %v", err)
			handlers.RespondConflict(w, msgDateNotAvailable)

		case errors.Is(err, createReservation.ErrSearchExhausted):
			h.logger.Warn("POST /reservations - Search exhausted: %v", err)
			handlers.RespondConflict(w, msgNoDateAvailable)

		case errors.Is(err, createReservation.ErrInvalidCategory):
			h.logger.Warn("POST /reservations - Invalid category: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCategory)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, category=%s, start=%s",
		result.ID, result.CategoryKey, result.StartDate)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
