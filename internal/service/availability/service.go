package availability

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/TRG-ScheduleService/internal/domain"
	"github.com/m04kA/TRG-ScheduleService/internal/service/availability/models"
)

// Service сервис управления недельным расписанием терапевтов
type Service struct {
	availabilityRepo AvailabilityRepository
	txManager        TransactionManager
	logger           Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(availabilityRepo AvailabilityRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// GetByTherapist получает недельное расписание терапевта
// Публичная операция: расписание видят все, включая неактивные правила
func (s *Service) GetByTherapist(ctx context.Context, therapistID uuid.UUID) (*models.AvailabilityResponse, error) {
	s.logger.Info("GetByTherapist: fetching availability for therapist=%s", therapistID)

	rules, err := s.availabilityRepo.GetByTherapist(ctx, therapistID)
	if err != nil {
		s.logger.Error("GetByTherapist: repository error for therapist=%s: %v", therapistID, err)
		return nil, fmt.Errorf("%w: GetByTherapist - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRules(therapistID, rules), nil
}

// Replace полностью заменяет недельное расписание терапевта
// Старые правила удаляются, новые вставляются в одной транзакции,
// чтобы конкурентное чтение не увидело пустое расписание
func (s *Service) Replace(ctx context.Context, req *models.ReplaceAvailabilityRequest) (*models.AvailabilityResponse, error) {
	s.logger.Info("Replace: replacing availability for therapist=%s with %d rules", req.TherapistID, len(req.Rules))

	if req.RequesterID != req.TherapistID {
		s.logger.Warn("Replace: access denied for requester=%s", req.RequesterID)
		return nil, ErrAccessDenied
	}

	if err := validateRules(req.Rules); err != nil {
		s.logger.Warn("Replace: validation failed for therapist=%s: %v", req.TherapistID, err)
		return nil, err
	}

	created := make([]*domain.AvailabilityRule, 0, len(req.Rules))

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.availabilityRepo.DeleteByTherapist(ctx, req.TherapistID); err != nil {
			return fmt.Errorf("delete existing rules: %w", err)
		}

		for _, in := range req.Rules {
			rule, err := s.availabilityRepo.Create(ctx, in.ToDomainRule(req.TherapistID))
			if err != nil {
				return fmt.Errorf("create rule: %w", err)
			}
			created = append(created, rule)
		}

		return nil
	})

	if err != nil {
		s.logger.Error("Replace: transaction failed for therapist=%s: %v", req.TherapistID, err)
		return nil, fmt.Errorf("%w: Replace - transaction error: %v", ErrInternal, err)
	}

	s.logger.Info("Replace: successfully replaced availability for therapist=%s", req.TherapistID)
	return models.FromDomainRules(req.TherapistID, created), nil
}

// validateRules проверяет корректность всех правил запроса
func validateRules(rules []models.WeeklyRuleInput) error {
	for i, rule := range rules {
		if rule.DayOfWeek < domain.MinDayOfWeek || rule.DayOfWeek > domain.MaxDayOfWeek {
			return fmt.Errorf("%w: rule %d - day_of_week must be between %d and %d", ErrInvalidInput, i, domain.MinDayOfWeek, domain.MaxDayOfWeek)
		}
		if err := rule.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: rule %d - invalid start_time: %v", ErrInvalidInput, i, err)
		}
		if err := rule.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: rule %d - invalid end_time: %v", ErrInvalidInput, i, err)
		}
		if !rule.StartTime.IsBefore(rule.EndTime) {
			return fmt.Errorf("%w: rule %d - start_time must be before end_time", ErrInvalidInput, i)
		}
	}

	return nil
}
