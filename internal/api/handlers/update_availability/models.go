package update_availability

import (
	"github.com/google/uuid"

	"github.com/m04kA/TRG-ScheduleService/internal/service/availability/models"
	"github.com/m04kA/TRG-ScheduleService/pkg/types"
)

// UpdateAvailabilityRequest HTTP-модель запроса на замену недельного расписания
type UpdateAvailabilityRequest struct {
	Rules []WeeklyRule `json:"rules"`
}

// WeeklyRule одно правило недельного расписания
type WeeklyRule struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	IsActive  bool   `json:"is_active"`
}

// ToServiceRequest конвертирует HTTP-запрос в модель сервиса
func (r *UpdateAvailabilityRequest) ToServiceRequest(therapistID, requesterID uuid.UUID) *models.ReplaceAvailabilityRequest {
	rules := make([]models.WeeklyRuleInput, 0, len(r.Rules))
	for _, rule := range r.Rules {
		rules = append(rules, models.WeeklyRuleInput{
			DayOfWeek: rule.DayOfWeek,
			StartTime: types.TimeString(rule.StartTime),
			EndTime:   types.TimeString(rule.EndTime),
			IsActive:  rule.IsActive,
		})
	}

	return &models.ReplaceAvailabilityRequest{
		TherapistID: therapistID,
		RequesterID: requesterID,
		Rules:       rules,
	}
}
