package scheduleconfig

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/TRG-ScheduleService/internal/domain"
	cfgRepo "github.com/m04kA/TRG-ScheduleService/internal/infra/storage/scheduleconfig"
	"github.com/m04kA/TRG-ScheduleService/internal/service/scheduleconfig/models"
)

// Service сервис конфигурации расписания: длительность сеанса,
// шаг сетки слотов, горизонт и минимальное время до записи
type Service struct {
	configRepo ConfigRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(configRepo ConfigRepository, logger Logger) *Service {
	return &Service{
		configRepo: configRepo,
		logger:     logger,
	}
}

// GetByTherapist получает действующую конфигурацию терапевта
// Иерархия: персональная -> глобальная -> значения по умолчанию
func (s *Service) GetByTherapist(ctx context.Context, therapistID uuid.UUID) (*models.ConfigResponse, error) {
	s.logger.Info("GetByTherapist: fetching config for therapist=%s", therapistID)

	cfg, err := s.configRepo.GetConfigWithHierarchy(ctx, therapistID)
	if err != nil {
		if errors.Is(err, cfgRepo.ErrConfigNotFound) {
			s.logger.Info("GetByTherapist: no config for therapist=%s, using defaults", therapistID)
			return models.FromDomainConfig(domain.DefaultScheduleConfig(), true), nil
		}
		s.logger.Error("GetByTherapist: repository error for therapist=%s: %v", therapistID, err)
		return nil, fmt.Errorf("%w: GetByTherapist - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainConfig(cfg, false), nil
}

// Update создает или обновляет персональную конфигурацию терапевта
func (s *Service) Update(ctx context.Context, req *models.UpdateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Update: updating config for therapist=%s", req.TherapistID)

	if req.RequesterID != req.TherapistID {
		s.logger.Warn("Update: access denied for requester=%s", req.RequesterID)
		return nil, ErrAccessDenied
	}

	if err := validateConfig(req); err != nil {
		s.logger.Warn("Update: validation failed for therapist=%s: %v", req.TherapistID, err)
		return nil, err
	}

	cfg, err := s.configRepo.Upsert(ctx, req.ToDomainConfig())
	if err != nil {
		s.logger.Error("Update: repository error for therapist=%s: %v", req.TherapistID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated config for therapist=%s", req.TherapistID)
	return models.FromDomainConfig(cfg, false), nil
}

// validateConfig проверяет границы бизнес-валидации конфигурации
func validateConfig(req *models.UpdateConfigRequest) error {
	if req.SessionDurationMinutes < domain.MinSessionDurationMinutes || req.SessionDurationMinutes > domain.MaxSessionDurationMinutes {
		return fmt.Errorf("%w: session_duration_minutes must be between %d and %d", ErrInvalidInput, domain.MinSessionDurationMinutes, domain.MaxSessionDurationMinutes)
	}
	if req.SlotGranularityMinutes < domain.MinSlotGranularityMinutes || req.SlotGranularityMinutes > domain.MaxSlotGranularityMinutes {
		return fmt.Errorf("%w: slot_granularity_minutes must be between %d and %d", ErrInvalidInput, domain.MinSlotGranularityMinutes, domain.MaxSlotGranularityMinutes)
	}
	if req.AdvanceBookingDays < domain.MinAdvanceBookingDays || req.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advance_booking_days must be between %d and %d", ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}
	if req.MinBookingNoticeMinutes < domain.MinNoticeMinutes || req.MinBookingNoticeMinutes > domain.MaxNoticeMinutes {
		return fmt.Errorf("%w: min_booking_notice_minutes must be between %d and %d", ErrInvalidInput, domain.MinNoticeMinutes, domain.MaxNoticeMinutes)
	}

	return nil
}
