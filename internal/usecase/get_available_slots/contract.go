package get_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/TRG-ScheduleService/internal/domain"
	"github.com/m04kA/TRG-ScheduleService/internal/integrations/directory"
)

// AvailabilityRepository интерфейс репозитория правил доступности
type AvailabilityRepository interface {
	// GetActiveByTherapistAndDay получает активные правила терапевта на день недели
	GetActiveByTherapistAndDay(ctx context.Context, therapistID uuid.UUID, dayOfWeek int) ([]*domain.AvailabilityRule, error)
}

// AppointmentRepository интерфейс репозитория сеансов
type AppointmentRepository interface {
	GetByTherapistWithFilter(ctx context.Context, filter domain.TherapistAppointmentsFilter) ([]*domain.Appointment, error)
}

// ConfigRepository интерфейс репозитория конфигурации расписания
type ConfigRepository interface {
	// GetConfigWithHierarchy получает конфигурацию с учетом иерархии приоритетов
	GetConfigWithHierarchy(ctx context.Context, therapistID uuid.UUID) (*domain.ScheduleConfig, error)
}

// DirectoryClient интерфейс клиента сервиса профилей
type DirectoryClient interface {
	GetTherapist(ctx context.Context, therapistID uuid.UUID) (*directory.User, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
