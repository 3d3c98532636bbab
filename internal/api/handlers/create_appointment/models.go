package create_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/TRG-ScheduleService/internal/domain"
	createAppointment "github.com/m04kA/TRG-ScheduleService/internal/usecase/create_appointment"
	"github.com/m04kA/TRG-ScheduleService/pkg/types"
)

// CreateAppointmentRequest HTTP-модель запроса на создание сеанса
// Пациент берется из контекста аутентификации, а не из тела запроса
type CreateAppointmentRequest struct {
	TherapistID     string  `json:"therapist_id"`
	Date            string  `json:"date"`       // YYYY-MM-DD
	StartTime       string  `json:"start_time"` // HH:MM
	DurationMinutes *int    `json:"duration_minutes,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP-модель созданного сеанса
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	TherapistID     string  `json:"therapist_id"`
	PatientID       string  `json:"patient_id"`
	Date            string  `json:"date"`
	StartTime       string  `json:"start_time"`
	DurationMinutes int     `json:"duration_minutes"`
	Status          string  `json:"status"`
	TherapistName   string  `json:"therapist_name"`
	PatientName     string  `json:"patient_name"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

// ToUseCaseRequest конвертирует HTTP-запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(patientID uuid.UUID) (*createAppointment.Request, error) {
	therapistID, err := uuid.Parse(r.TherapistID)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		TherapistID:     therapistID,
		PatientID:       patientID,
		Date:            date,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
		Notes:           r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP-модель
func FromUseCaseResponse(result *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              result.ID,
		TherapistID:     result.TherapistID.String(),
		PatientID:       result.PatientID.String(),
		Date:            result.Date.Format(domain.DateFormat),
		StartTime:       result.StartTime.String(),
		DurationMinutes: result.DurationMinutes,
		Status:          result.Status,
		TherapistName:   result.TherapistName,
		PatientName:     result.PatientName,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       result.UpdatedAt.Format(time.RFC3339),
	}
}
