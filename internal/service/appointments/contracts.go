package appointments

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/TRG-ScheduleService/internal/domain"
)

// AppointmentRepository интерфейс репозитория сеансов
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByPatientID(ctx context.Context, patientID uuid.UUID, status *domain.AppointmentStatus) ([]*domain.Appointment, error)
	GetByTherapistWithFilter(ctx context.Context, filter domain.TherapistAppointmentsFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	Cancel(ctx context.Context, id int64, status domain.AppointmentStatus, reason string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
