package get_schedule_config

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/TRG-ScheduleService/internal/service/scheduleconfig/models"
)

type ConfigService interface {
	GetByTherapist(ctx context.Context, therapistID uuid.UUID) (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
