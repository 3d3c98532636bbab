package domain

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleConfig параметры формирования слотов
// Двухуровневая иерархия: конфигурация конкретного терапевта (TherapistID задан)
// перекрывает глобальную конфигурацию практики (TherapistID == nil)
type ScheduleConfig struct {
	ID                      int64
	TherapistID             *uuid.UUID // NULL = глобальная конфигурация практики
	SessionDurationMinutes  int
	SlotGranularityMinutes  int // Шаг между началами соседних слотов
	AdvanceBookingDays      int // 0 = без ограничения
	MinBookingNoticeMinutes int
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// IsGlobal возвращает true, если это глобальная конфигурация практики
func (c *ScheduleConfig) IsGlobal() bool {
	return c.TherapistID == nil
}

// HasAdvanceBookingLimit возвращает true, если ограничен горизонт бронирования
func (c *ScheduleConfig) HasAdvanceBookingLimit() bool {
	return c.AdvanceBookingDays > 0
}

// DefaultScheduleConfig возвращает конфигурацию со значениями по умолчанию
// Используется, когда в БД нет ни персональной, ни глобальной записи
func DefaultScheduleConfig() *ScheduleConfig {
	return &ScheduleConfig{
		SessionDurationMinutes:  DefaultSessionDurationMinutes,
		SlotGranularityMinutes:  DefaultSlotGranularityMinutes,
		AdvanceBookingDays:      DefaultAdvanceBookingDays,
		MinBookingNoticeMinutes: DefaultMinBookingNoticeMinutes,
	}
}
