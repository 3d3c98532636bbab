package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/TRG-ScheduleService/pkg/types"
)

// AvailabilityRule еженедельное окно приёма терапевта
// Несколько правил на один день недели допустимы (например, утренний и вечерний
// блоки) и могут пересекаться — движок слотов обязан давать корректный результат
// и в этом случае
type AvailabilityRule struct {
	ID          int64
	TherapistID uuid.UUID
	DayOfWeek   int // 0 = воскресенье ... 6 = суббота (как в исходных данных)
	StartTime   types.TimeString
	EndTime     types.TimeString
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsWellFormed проверяет инвариант правила: начало строго раньше конца
// Правило с start >= end не даёт слотов, но и не является ошибкой запроса
func (r *AvailabilityRule) IsWellFormed() bool {
	return r.StartTime.IsBefore(r.EndTime)
}

// MatchesDate возвращает true, если правило действует в указанную дату
func (r *AvailabilityRule) MatchesDate(date time.Time) bool {
	return r.IsActive && int(date.Weekday()) == r.DayOfWeek
}
