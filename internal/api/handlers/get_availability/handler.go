package get_availability

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/TRG-ScheduleService/internal/api/handlers"
)

const (
	msgInvalidTherapistID = "некорректный ID терапевта"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/therapists/{therapistId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	therapistID, err := uuid.Parse(vars["therapistId"])
	if err != nil {
		h.logger.Warn("GET /therapists/{id}/availability - Invalid therapist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTherapistID)
		return
	}

	result, err := h.service.GetByTherapist(r.Context(), therapistID)
	if err != nil {
		h.logger.Error("GET /therapists/{id}/availability - Failed to get availability: therapist_id=%s, error=%v", therapistID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /therapists/{id}/availability - Availability retrieved: therapist_id=%s, rules_count=%d",
		therapistID, len(result.Rules))
	handlers.RespondJSON(w, http.StatusOK, result)
}
