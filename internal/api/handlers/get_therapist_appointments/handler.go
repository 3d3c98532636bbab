package get_therapist_appointments

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/TRG-ScheduleService/internal/api/handlers"
	"github.com/m04kA/TRG-ScheduleService/internal/api/middleware"
	"github.com/m04kA/TRG-ScheduleService/internal/domain"
	"github.com/m04kA/TRG-ScheduleService/internal/service/appointments"
	"github.com/m04kA/TRG-ScheduleService/internal/service/appointments/models"
)

const (
	msgInvalidTherapistID = "некорректный ID терапевта"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgInvalidDateRange   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidFilter      = "некорректные параметры фильтрации"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/therapists/{therapistId}/appointments
// Query params: start_date, end_date, status, include_inactive (все опциональные)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	therapistID, err := uuid.Parse(vars["therapistId"])
	if err != nil {
		h.logger.Warn("GET /therapists/{id}/appointments - Invalid therapist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTherapistID)
		return
	}

	requesterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /therapists/{id}/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.GetTherapistAppointmentsRequest{
		TherapistID:     therapistID,
		RequesterID:     requesterID,
		IncludeInactive: r.URL.Query().Get("include_inactive") == "true",
	}

	if startDateStr := r.URL.Query().Get("start_date"); startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			h.logger.Warn("GET /therapists/{id}/appointments - Invalid start_date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDateRange)
			return
		}
		req.StartDate = &startDate
	}

	if endDateStr := r.URL.Query().Get("end_date"); endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			h.logger.Warn("GET /therapists/{id}/appointments - Invalid end_date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDateRange)
			return
		}
		req.EndDate = &endDate
	}

	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetTherapistAppointments(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /therapists/{id}/appointments - Access denied: therapist_id=%s, requester_id=%s", therapistID, requesterID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /therapists/{id}/appointments - Invalid filter: therapist_id=%s, error=%v", therapistID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /therapists/{id}/appointments - Failed to get appointments: therapist_id=%s, error=%v", therapistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /therapists/{id}/appointments - Appointments retrieved: therapist_id=%s, count=%d", therapistID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
