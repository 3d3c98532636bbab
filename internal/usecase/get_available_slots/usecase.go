package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/TRG-ScheduleService/internal/domain"
	configRepo "github.com/m04kA/TRG-ScheduleService/internal/infra/storage/scheduleconfig"
	"github.com/m04kA/TRG-ScheduleService/internal/integrations/directory"
)

// UseCase use case вычисления свободных слотов терапевта на дату
//
// Чистый запрос без побочных эффектов: результат — функция от правил
// доступности и активных сеансов, никакого состояния между вызовами
type UseCase struct {
	availabilityRepo AvailabilityRepository
	appointmentRepo  AppointmentRepository
	configRepo       ConfigRepository
	directoryClient  DirectoryClient
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	appointmentRepo AppointmentRepository,
	configRepo ConfigRepository,
	directoryClient DirectoryClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		appointmentRepo:  appointmentRepo,
		configRepo:       configRepo,
		directoryClient:  directoryClient,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: therapist=%s, date=%s",
		req.TherapistID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем терапевта в сервисе профилей
	// Неизвестный терапевт для выдачи слотов означает нулевую доступность,
	// а не ошибку: пустой список, как и для дня без правил
	if _, err := uc.directoryClient.GetTherapist(ctx, req.TherapistID); err != nil {
		if errors.Is(err, directory.ErrUserNotFound) || errors.Is(err, directory.ErrWrongRole) {
			uc.logger.Warn("GetAvailableSlots: therapist id=%s not found in directory", req.TherapistID)
			return uc.emptyResponse(req), nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get therapist id=%s: %v", req.TherapistID, err)
		return nil, fmt.Errorf("%w: failed to get therapist: %v", ErrInternal, err)
	}

	// 4. Получаем конфигурацию расписания с учетом иерархии
	cfg, err := uc.configRepo.GetConfigWithHierarchy(ctx, req.TherapistID)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get config: %v", err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}

	if cfg == nil {
		cfg = domain.DefaultScheduleConfig()
		uc.logger.Info("GetAvailableSlots: using default config for therapist=%s", req.TherapistID)
	}

	duration := cfg.SessionDurationMinutes
	if req.DurationMinutes != nil {
		duration = *req.DurationMinutes
	}
	granularity := cfg.SlotGranularityMinutes
	if req.GranularityMinutes != nil {
		granularity = *req.GranularityMinutes
	}

	// 5. Валидация даты с учетом конфигурации
	if err := validateDate(req.Date, now, cfg.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 6. Получаем правила доступности на день недели запрошенной даты
	rules, err := uc.availabilityRepo.GetActiveByTherapistAndDay(ctx, req.TherapistID, int(req.Date.Weekday()))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get availability rules: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability rules: %v", ErrInternal, err)
	}

	if len(rules) == 0 {
		uc.logger.Info("GetAvailableSlots: therapist=%s has no rules for weekday=%d",
			req.TherapistID, int(req.Date.Weekday()))
		return uc.emptyResponse(req), nil
	}

	// 7. Получаем активные сеансы на эту дату
	filter := domain.TherapistAppointmentsFilter{
		TherapistID:     req.TherapistID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false, // Только сеансы, блокирующие слоты
	}

	appointments, err := uc.appointmentRepo.GetByTherapistWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 8. Вычисляем свободные слоты и применяем minBookingNoticeMinutes
	starts := computeSlots(rules, appointments, duration, granularity)
	starts = filterByNotice(starts, req.Date, now, cfg.MinBookingNoticeMinutes)

	slots := make([]domain.Slot, len(starts))
	for i, start := range starts {
		slots[i] = domain.Slot{
			StartTime:       start,
			DurationMinutes: duration,
		}
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for therapist=%s, date=%s",
		len(slots), req.TherapistID, req.Date.Format(domain.DateFormat))

	return &Response{
		TherapistID: req.TherapistID,
		Date:        req.Date,
		Slots:       slots,
	}, nil
}

func (uc *UseCase) emptyResponse(req *Request) *Response {
	return &Response{
		TherapistID: req.TherapistID,
		Date:        req.Date,
		Slots:       []domain.Slot{},
	}
}
