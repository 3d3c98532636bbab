package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/TRG-ScheduleService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/TRG-ScheduleService/internal/usecase/get_available_slots"
)

const (
	msgInvalidTherapistID = "некорректный ID терапевта"
	msgMissingDate        = "дата обязательна"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidParams      = "некорректные параметры запроса"
	msgDateInPast         = "дата в прошлом"
	msgDateTooFar         = "дата слишком далеко в будущем"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/therapists/{therapistId}/available-slots
// Query params: date (обязательный, YYYY-MM-DD), duration, granularity (опциональные)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	therapistID, err := uuid.Parse(vars["therapistId"])
	if err != nil {
		h.logger.Warn("GET /therapists/{id}/available-slots - Invalid therapist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTherapistID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /therapists/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(
		therapistID,
		dateStr,
		r.URL.Query().Get("duration"),
		r.URL.Query().Get("granularity"),
	)
	if err != nil {
		h.logger.Warn("GET /therapists/{id}/available-slots - Invalid params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /therapists/{id}/available-slots - Invalid input: therapist_id=%s, error=%v", therapistID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /therapists/{id}/available-slots - Date in past: therapist_id=%s, date=%s", therapistID, dateStr)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /therapists/{id}/available-slots - Date too far: therapist_id=%s, date=%s", therapistID, dateStr)
			handlers.RespondBadRequest(w, msgDateTooFar)

		default:
			h.logger.Error("GET /therapists/{id}/available-slots - Failed to get slots: therapist_id=%s, error=%v", therapistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /therapists/{id}/available-slots - Slots retrieved: therapist_id=%s, date=%s, slots_count=%d",
		therapistID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
