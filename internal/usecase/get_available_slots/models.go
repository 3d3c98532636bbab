package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/TRG-ScheduleService/internal/domain"
)

// Request модель запроса на получение свободных слотов
type Request struct {
	TherapistID        uuid.UUID // ID терапевта
	Date               time.Time // Дата, на которую запрашиваются слоты (без времени)
	DurationMinutes    *int      // Длительность сеанса; nil = из конфигурации
	GranularityMinutes *int      // Шаг между слотами; nil = из конфигурации
}

// Response модель ответа со списком свободных слотов
type Response struct {
	TherapistID uuid.UUID
	Date        time.Time
	Slots       []domain.Slot // Упорядочены по времени начала, без дубликатов
}
