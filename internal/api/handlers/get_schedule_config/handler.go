package get_schedule_config

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
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/therapists/{therapistId}/schedule-config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	therapistID, err := uuid.Parse(vars["therapistId"])
	if err != nil {
		h.logger.Warn("GET /therapists/{id}/schedule-config - Invalid therapist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTherapistID)
		return
	}

	result, err := h.service.GetByTherapist(r.Context(), therapistID)
	if err != nil {
		h.logger.Error("GET /therapists/{id}/schedule-config - Failed to get config: therapist_id=%s, error=%v", therapistID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /therapists/{id}/schedule-config - Config retrieved: therapist_id=%s, is_default=%t",
		therapistID, result.IsDefault)
	handlers.RespondJSON(w, http.StatusOK, result)
}
