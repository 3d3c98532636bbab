package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/TRG-ScheduleService/internal/api/handlers"
	"github.com/m04kA/TRG-ScheduleService/internal/api/middleware"
	createAppointment "github.com/m04kA/TRG-ScheduleService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidRequest      = "некорректные данные запроса, проверьте therapist_id, date и start_time"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgTherapistNotFound   = "терапевт не найден"
	msgPatientNotFound     = "пациент не найден"
	msgInvalidInput        = "некорректные данные записи"
	msgInvalidDate         = "некорректная дата записи"
	msgDateTooFar          = "дата записи слишком далеко в будущем"
	msgTooLateToBook       = "слишком поздно для записи на этот слот"
	msgOutsideWorkingHours = "выбранное время вне рабочих часов терапевта"
	msgSlotConflict        = "выбранный временной слот уже занят"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(patientID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotConflict):
			h.logger.Warn("POST /appointments - Slot conflict: therapist_id=%s, patient_id=%s, date=%s, start=%s",
				req.TherapistID, patientID, req.Date, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, createAppointment.ErrTherapistNotFound):
			h.logger.Warn("POST /appointments - Therapist not found: therapist_id=%s", req.TherapistID)
			handlers.RespondNotFound(w, msgTherapistNotFound)

		case errors.Is(err, createAppointment.ErrPatientNotFound):
			h.logger.Warn("POST /appointments - Patient not found: patient_id=%s", patientID)
			handlers.RespondNotFound(w, msgPatientNotFound)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: patient_id=%s, error=%v", patientID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Invalid date: patient_id=%s, date=%s", patientID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createAppointment.ErrDateTooFarInFuture):
			h.logger.Warn("POST /appointments - Date too far in future: patient_id=%s, date=%s", patientID, req.Date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createAppointment.ErrTooLateToBook):
			h.logger.Warn("POST /appointments - Too late to book: patient_id=%s, date=%s, start=%s",
				patientID, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createAppointment.ErrOutsideWorkingHours):
			h.logger.Warn("POST /appointments - Outside working hours: therapist_id=%s, date=%s, start=%s",
				req.TherapistID, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: therapist_id=%s, patient_id=%s, error=%v",
				req.TherapistID, patientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /appointments - Appointment created: appointment_id=%d, therapist_id=%s, patient_id=%s",
		result.ID, req.TherapistID, patientID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
