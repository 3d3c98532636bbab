package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/TRG-ScheduleService/pkg/types"
)

// AppointmentStatus статус сеанса терапии
type AppointmentStatus string

const (
	StatusPending              AppointmentStatus = "pending"
	StatusConfirmed            AppointmentStatus = "confirmed"
	StatusCompleted            AppointmentStatus = "completed"
	StatusCancelledByPatient   AppointmentStatus = "cancelled_by_patient"
	StatusCancelledByTherapist AppointmentStatus = "cancelled_by_therapist"
	StatusNoShow               AppointmentStatus = "no_show"
)

// Appointment сеанс терапии между терапевтом и пациентом
type Appointment struct {
	ID              int64
	TherapistID     uuid.UUID
	PatientID       uuid.UUID
	AppointmentDate time.Time // Дата сеанса (без времени)
	StartTime       types.TimeString
	DurationMinutes int
	Status          AppointmentStatus

	// Денормализованные данные для истории
	TherapistName string
	PatientName   string
	Notes         *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive возвращает true, если сеанс занимает слот в расписании
// Ожидающие подтверждения сеансы тоже блокируют слот (см. DESIGN.md)
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelledByPatient &&
		a.Status != StatusCancelledByTherapist &&
		a.Status != StatusNoShow
}

// IsCancelled возвращает true, если сеанс отменён
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelledByPatient || a.Status == StatusCancelledByTherapist
}

// CanBeCancelled возвращает true, если сеанс может быть отменён
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// CanBeConfirmed возвращает true, если сеанс может быть подтверждён терапевтом
func (a *Appointment) CanBeConfirmed() bool {
	return a.Status == StatusPending
}

// EndTime возвращает время окончания сеанса
func (a *Appointment) EndTime() (types.TimeString, error) {
	return a.StartTime.AddMinutes(a.DurationMinutes)
}

// TherapistAppointmentsFilter фильтр для получения сеансов терапевта
type TherapistAppointmentsFilter struct {
	TherapistID     uuid.UUID          // Обязательный параметр
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отменённые и no-show сеансы
}
