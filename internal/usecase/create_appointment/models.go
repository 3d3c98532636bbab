package create_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/TRG-ScheduleService/pkg/types"
)

// Request модель запроса на создание сеанса
type Request struct {
	TherapistID     uuid.UUID        // ID терапевта
	PatientID       uuid.UUID        // ID пациента (инициатор записи)
	Date            time.Time        // Дата сеанса (без времени)
	StartTime       types.TimeString // Время начала (например, "10:00")
	DurationMinutes *int             // Длительность; nil = из конфигурации терапевта
	Notes           *string          // Заметки к записи (опционально)
}

// Response модель ответа с созданным сеансом
type Response struct {
	ID              int64
	TherapistID     uuid.UUID
	PatientID       uuid.UUID
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          string

	// Денормализованные данные
	TherapistName string
	PatientName   string
	Notes         *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
