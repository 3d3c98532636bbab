package models

import (
	"github.com/google/uuid"

	"github.com/m04kA/TRG-ScheduleService/internal/domain"
	"github.com/m04kA/TRG-ScheduleService/pkg/types"
)

// WeeklyRuleInput одно правило недельного расписания в запросе на замену
type WeeklyRuleInput struct {
	DayOfWeek int              `json:"day_of_week"` // 0 = воскресенье ... 6 = суббота
	StartTime types.TimeString `json:"start_time"`
	EndTime   types.TimeString `json:"end_time"`
	IsActive  bool             `json:"is_active"`
}

// ReplaceAvailabilityRequest запрос на полную замену недельного расписания терапевта
type ReplaceAvailabilityRequest struct {
	TherapistID uuid.UUID         `json:"-"`
	RequesterID uuid.UUID         `json:"-"`
	Rules       []WeeklyRuleInput `json:"rules"`
}

// AvailabilityRuleResponse правило доступности в ответе
type AvailabilityRuleResponse struct {
	ID        int64            `json:"id"`
	DayOfWeek int              `json:"day_of_week"`
	StartTime types.TimeString `json:"start_time"`
	EndTime   types.TimeString `json:"end_time"`
	IsActive  bool             `json:"is_active"`
}

// AvailabilityResponse недельное расписание терапевта
type AvailabilityResponse struct {
	TherapistID uuid.UUID                  `json:"therapist_id"`
	Rules       []AvailabilityRuleResponse `json:"rules"`
}

// ToDomainRule конвертирует правило запроса в доменную модель
func (in WeeklyRuleInput) ToDomainRule(therapistID uuid.UUID) *domain.AvailabilityRule {
	return &domain.AvailabilityRule{
		TherapistID: therapistID,
		DayOfWeek:   in.DayOfWeek,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		IsActive:    in.IsActive,
	}
}

// FromDomainRules конвертирует доменные правила в ответ API
func FromDomainRules(therapistID uuid.UUID, rules []*domain.AvailabilityRule) *AvailabilityResponse {
	out := make([]AvailabilityRuleResponse, 0, len(rules))
	for _, rule := range rules {
		out = append(out, AvailabilityRuleResponse{
			ID:        rule.ID,
			DayOfWeek: rule.DayOfWeek,
			StartTime: rule.StartTime,
			EndTime:   rule.EndTime,
			IsActive:  rule.IsActive,
		})
	}

	return &AvailabilityResponse{
		TherapistID: therapistID,
		Rules:       out,
	}
}
