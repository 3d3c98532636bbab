package models

import (
	"github.com/google/uuid"

	"github.com/m04kA/TRG-ScheduleService/internal/domain"
)

// UpdateConfigRequest запрос на создание или обновление конфигурации терапевта
type UpdateConfigRequest struct {
	TherapistID             uuid.UUID `json:"-"`
	RequesterID             uuid.UUID `json:"-"`
	SessionDurationMinutes  int       `json:"session_duration_minutes"`
	SlotGranularityMinutes  int       `json:"slot_granularity_minutes"`
	AdvanceBookingDays      int       `json:"advance_booking_days"`
	MinBookingNoticeMinutes int       `json:"min_booking_notice_minutes"`
}

// ConfigResponse конфигурация расписания в ответе API
type ConfigResponse struct {
	TherapistID             *uuid.UUID `json:"therapist_id,omitempty"`
	SessionDurationMinutes  int        `json:"session_duration_minutes"`
	SlotGranularityMinutes  int        `json:"slot_granularity_minutes"`
	AdvanceBookingDays      int        `json:"advance_booking_days"`
	MinBookingNoticeMinutes int        `json:"min_booking_notice_minutes"`
	IsDefault               bool       `json:"is_default"`
}

// ToDomainConfig конвертирует запрос в доменную модель
func (r *UpdateConfigRequest) ToDomainConfig() *domain.ScheduleConfig {
	therapistID := r.TherapistID
	return &domain.ScheduleConfig{
		TherapistID:             &therapistID,
		SessionDurationMinutes:  r.SessionDurationMinutes,
		SlotGranularityMinutes:  r.SlotGranularityMinutes,
		AdvanceBookingDays:      r.AdvanceBookingDays,
		MinBookingNoticeMinutes: r.MinBookingNoticeMinutes,
	}
}

// FromDomainConfig конвертирует доменную модель в ответ API
func FromDomainConfig(cfg *domain.ScheduleConfig, isDefault bool) *ConfigResponse {
	return &ConfigResponse{
		TherapistID:             cfg.TherapistID,
		SessionDurationMinutes:  cfg.SessionDurationMinutes,
		SlotGranularityMinutes:  cfg.SlotGranularityMinutes,
		AdvanceBookingDays:      cfg.AdvanceBookingDays,
		MinBookingNoticeMinutes: cfg.MinBookingNoticeMinutes,
		IsDefault:               isDefault,
	}
}
