package get_therapist_appointments

import (
	"context"

	"github.com/m04kA/TRG-ScheduleService/internal/service/appointments/models"
)

type AppointmentService interface {
	GetTherapistAppointments(ctx context.Context, req *models.GetTherapistAppointmentsRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
