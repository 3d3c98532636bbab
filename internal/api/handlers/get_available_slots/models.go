package get_available_slots

import (
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/TRG-ScheduleService/internal/domain"
	getAvailableSlots "github.com/m04kA/TRG-ScheduleService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP-модель ответа со свободными слотами
type AvailableSlotsResponse struct {
	TherapistID string          `json:"therapist_id"`
	Date        string          `json:"date"`
	Slots       []AvailableSlot `json:"slots"`
}

// AvailableSlot модель свободного слота
type AvailableSlot struct {
	StartTime       string `json:"start_time"`
	DurationMinutes int    `json:"duration_minutes"`
}

// ToUseCaseRequest собирает запрос use case из параметров HTTP-запроса
// durationStr и granularityStr опциональны: пустая строка означает значение из конфигурации
func ToUseCaseRequest(therapistID uuid.UUID, dateStr, durationStr, granularityStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	req := &getAvailableSlots.Request{
		TherapistID: therapistID,
		Date:        date,
	}

	if durationStr != "" {
		duration, err := strconv.Atoi(durationStr)
		if err != nil {
			return nil, err
		}
		req.DurationMinutes = &duration
	}

	if granularityStr != "" {
		granularity, err := strconv.Atoi(granularityStr)
		if err != nil {
			return nil, err
		}
		req.GranularityMinutes = &granularity
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP-модель
func FromUseCaseResponse(result *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, 0, len(result.Slots))
	for _, slot := range result.Slots {
		slots = append(slots, AvailableSlot{
			StartTime:       slot.StartTime.String(),
			DurationMinutes: slot.DurationMinutes,
		})
	}

	return &AvailableSlotsResponse{
		TherapistID: result.TherapistID.String(),
		Date:        result.Date.Format(domain.DateFormat),
		Slots:       slots,
	}
}
