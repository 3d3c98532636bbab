package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/TRG-ScheduleService/internal/domain"
	configRepo "github.com/m04kA/TRG-ScheduleService/internal/infra/storage/scheduleconfig"
	"github.com/m04kA/TRG-ScheduleService/internal/integrations/directory"
)

// UseCase use case создания сеанса терапии
//
// Владеет инвариантом «никаких двойных записей»: проверка пересечений и вставка
// выполняются одной SERIALIZABLE-транзакцией с блокировкой строк дня (FOR UPDATE),
// поэтому из гонящихся запросов на пересекающиеся интервалы фиксируется не более
// одного, остальные получают ErrSlotConflict. Список слотов, который клиент видел
// раньше, здесь не участвует — конфликт всегда перепроверяется на момент вставки
type UseCase struct {
	appointmentRepo  AppointmentRepository
	availabilityRepo AvailabilityRepository
	configRepo       ConfigRepository
	directoryClient  DirectoryClient
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	availabilityRepo AvailabilityRepository,
	configRepo ConfigRepository,
	directoryClient DirectoryClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo:  appointmentRepo,
		availabilityRepo: availabilityRepo,
		configRepo:       configRepo,
		directoryClient:  directoryClient,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case создания сеанса
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: therapist=%s, patient=%s, date=%s, time=%s",
		req.TherapistID, req.PatientID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация формы запроса — до любого обращения к данным
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем терапевта в сервисе профилей
	// В отличие от выдачи слотов, для записи неизвестный терапевт — явная ошибка
	therapist, err := uc.directoryClient.GetTherapist(ctx, req.TherapistID)
	if err != nil {
		if errors.Is(err, directory.ErrUserNotFound) || errors.Is(err, directory.ErrWrongRole) {
			uc.logger.Warn("CreateAppointment: therapist id=%s not found", req.TherapistID)
			return nil, ErrTherapistNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get therapist id=%s: %v", req.TherapistID, err)
		return nil, fmt.Errorf("%w: failed to get therapist: %v", ErrInternal, err)
	}

	// 4. Проверяем пациента
	patient, err := uc.directoryClient.GetPatient(ctx, req.PatientID)
	if err != nil {
		if errors.Is(err, directory.ErrUserNotFound) || errors.Is(err, directory.ErrWrongRole) {
			uc.logger.Warn("CreateAppointment: patient id=%s not found", req.PatientID)
			return nil, ErrPatientNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get patient id=%s: %v", req.PatientID, err)
		return nil, fmt.Errorf("%w: failed to get patient: %v", ErrInternal, err)
	}

	var result *domain.Appointment

	// 5. Проверка пересечений и вставка — единая атомарная секция
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Конфигурация расписания с учетом иерархии
		cfg, err := uc.configRepo.GetConfigWithHierarchy(txCtx, req.TherapistID)
		if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Error("CreateAppointment: failed to get config: %v", err)
			return fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
		}

		if cfg == nil {
			cfg = domain.DefaultScheduleConfig()
			uc.logger.Info("CreateAppointment: using default config for therapist=%s", req.TherapistID)
		}

		duration := cfg.SessionDurationMinutes
		if req.DurationMinutes != nil {
			duration = *req.DurationMinutes
		}

		// 5.2. Валидация даты и минимального времени до записи
		if err := validateDate(req.Date, now, cfg.AdvanceBookingDays); err != nil {
			uc.logger.Warn("CreateAppointment: date validation failed: %v", err)
			return err
		}

		if err := validateBookingTime(req.Date, req.StartTime, now, cfg.MinBookingNoticeMinutes); err != nil {
			uc.logger.Warn("CreateAppointment: booking time validation failed: %v", err)
			return err
		}

		startMinutes, err := req.StartTime.TotalMinutes()
		if err != nil {
			return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
		}

		// 5.3. Интервал должен помещаться в окно приёма терапевта
		rules, err := uc.availabilityRepo.GetActiveByTherapistAndDay(txCtx, req.TherapistID, int(req.Date.Weekday()))
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get availability rules: %v", err)
			return fmt.Errorf("%w: failed to get availability rules: %v", ErrInternal, err)
		}

		if !fitsWorkingHours(rules, startMinutes, duration) {
			uc.logger.Warn("CreateAppointment: slot %s+%dmin outside working hours, therapist=%s",
				req.StartTime, duration, req.TherapistID)
			return ErrOutsideWorkingHours
		}

		// 5.4. Активные сеансы дня с блокировкой строк (FOR UPDATE)
		filter := domain.TherapistAppointmentsFilter{
			TherapistID:     req.TherapistID,
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false,
		}

		appointments, err := uc.appointmentRepo.GetByTherapistWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 5.5. Проверка пересечений на актуальном снимке
		if conflict := findConflict(appointments, startMinutes, duration); conflict != nil {
			uc.logger.Warn("CreateAppointment: slot conflict with appointment id=%d (%s+%dmin)",
				conflict.ID, conflict.StartTime, conflict.DurationMinutes)
			return ErrSlotConflict
		}

		// 5.6. Создаем сеанс со статусом pending: подтверждает терапевт
		apt := &domain.Appointment{
			TherapistID:     req.TherapistID,
			PatientID:       req.PatientID,
			AppointmentDate: req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: duration,
			Status:          domain.StatusPending,
			TherapistName:   therapist.Name,
			PatientName:     patient.Name,
			Notes:           req.Notes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, apt)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	return &Response{
		ID:              result.ID,
		TherapistID:     result.TherapistID,
		PatientID:       result.PatientID,
		Date:            result.AppointmentDate,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		TherapistName:   result.TherapistName,
		PatientName:     result.PatientName,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}
