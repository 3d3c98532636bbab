package models

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/TRG-ScheduleService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// CancelAppointmentRequest запрос на отмену сеанса
type CancelAppointmentRequest struct {
	UserID             uuid.UUID
	CancellationReason string
}

// ConfirmAppointmentRequest запрос на подтверждение сеанса терапевтом
type ConfirmAppointmentRequest struct {
	UserID uuid.UUID
}

// GetPatientAppointmentsRequest запрос на получение сеансов пациента
type GetPatientAppointmentsRequest struct {
	PatientID   uuid.UUID
	RequesterID uuid.UUID
	Status      *string
}

// GetTherapistAppointmentsRequest запрос на получение сеансов терапевта
type GetTherapistAppointmentsRequest struct {
	TherapistID     uuid.UUID
	RequesterID     uuid.UUID
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *string
	IncludeInactive bool
}

// ToDomainFilter конвертирует запрос в domain-фильтр
func (r *GetTherapistAppointmentsRequest) ToDomainFilter() (domain.TherapistAppointmentsFilter, error) {
	filter := domain.TherapistAppointmentsFilter{
		TherapistID:     r.TherapistID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return domain.TherapistAppointmentsFilter{}, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// AppointmentResponse модель сеанса для внешних потребителей
type AppointmentResponse struct {
	ID                 int64      `json:"id"`
	TherapistID        uuid.UUID  `json:"therapist_id"`
	PatientID          uuid.UUID  `json:"patient_id"`
	Date               time.Time  `json:"date"`
	StartTime          string     `json:"start_time"`
	DurationMinutes    int        `json:"duration_minutes"`
	Status             string     `json:"status"`
	TherapistName      string     `json:"therapist_name"`
	PatientName        string     `json:"patient_name"`
	Notes              *string    `json:"notes,omitempty"`
	CancellationReason *string    `json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// AppointmentListResponse список сеансов
type AppointmentListResponse struct {
	Appointments []*AppointmentResponse `json:"appointments"`
	Total        int                    `json:"total"`
}

// FromDomainAppointment конвертирует domain-модель в response
func FromDomainAppointment(apt *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:                 apt.ID,
		TherapistID:        apt.TherapistID,
		PatientID:          apt.PatientID,
		Date:               apt.AppointmentDate,
		StartTime:          apt.StartTime.String(),
		DurationMinutes:    apt.DurationMinutes,
		Status:             string(apt.Status),
		TherapistName:      apt.TherapistName,
		PatientName:        apt.PatientName,
		Notes:              apt.Notes,
		CancellationReason: apt.CancellationReason,
		CancelledAt:        apt.CancelledAt,
		CreatedAt:          apt.CreatedAt,
		UpdatedAt:          apt.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain-моделей в response
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	result := make([]*AppointmentResponse, len(appointments))
	for i, apt := range appointments {
		result[i] = FromDomainAppointment(apt)
	}

	return &AppointmentListResponse{
		Appointments: result,
		Total:        len(result),
	}
}

// ToDomainStatus конвертирует строку в domain.AppointmentStatus
func ToDomainStatus(status string) (domain.AppointmentStatus, error) {
	switch domain.AppointmentStatus(status) {
	case domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusCompleted,
		domain.StatusCancelledByPatient,
		domain.StatusCancelledByTherapist,
		domain.StatusNoShow:
		return domain.AppointmentStatus(status), nil
	default:
		return "", ErrInvalidStatus
	}
}
