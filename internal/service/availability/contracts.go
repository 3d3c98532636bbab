package availability

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/TRG-ScheduleService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория правил доступности
type AvailabilityRepository interface {
	GetByTherapist(ctx context.Context, therapistID uuid.UUID) ([]*domain.AvailabilityRule, error)
	Create(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error)
	DeleteByTherapist(ctx context.Context, therapistID uuid.UUID) error
}

// TransactionManager интерфейс менеджера транзакций
// Замена недельного расписания выполняется атомарно: удаление + вставка
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
