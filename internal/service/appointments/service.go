package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/TRG-ScheduleService/internal/domain"
	aptRepo "github.com/m04kA/TRG-ScheduleService/internal/infra/storage/appointment"
	"github.com/m04kA/TRG-ScheduleService/internal/service/appointments/models"
)

// Service сервис для работы с сеансами: чтение, отмена, подтверждение
// Создание сеанса живёт отдельно в usecase create_appointment,
// поскольку требует транзакционной проверки пересечений
type Service struct {
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса сеансов
func NewService(appointmentRepo AppointmentRepository, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// GetByID получает сеанс по ID
// Сеанс видят только его участники: пациент и терапевт
func (s *Service) GetByID(ctx context.Context, id int64, userID uuid.UUID) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%s", id, userID)

	apt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, aptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !isParticipant(apt, userID) {
		s.logger.Warn("GetByID: access denied for user=%s to appointment id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainAppointment(apt), nil
}

// GetPatientAppointments получает историю сеансов пациента
// Доступно только самому пациенту
func (s *Service) GetPatientAppointments(ctx context.Context, req *models.GetPatientAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetPatientAppointments: patient=%s, requester=%s", req.PatientID, req.RequesterID)

	if req.RequesterID != req.PatientID {
		s.logger.Warn("GetPatientAppointments: access denied for requester=%s", req.RequesterID)
		return nil, ErrAccessDenied
	}

	var domainStatus *domain.AppointmentStatus
	if req.Status != nil {
		status, err := models.ToDomainStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetPatientAppointments: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	appointments, err := s.appointmentRepo.GetByPatientID(ctx, req.PatientID, domainStatus)
	if err != nil {
		s.logger.Error("GetPatientAppointments: repository error for patient=%s: %v", req.PatientID, err)
		return nil, fmt.Errorf("%w: GetPatientAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetPatientAppointments: fetched %d appointments for patient=%s", len(appointments), req.PatientID)
	return models.FromDomainAppointmentList(appointments), nil
}

// GetTherapistAppointments получает сеансы терапевта с фильтрацией
// по периоду, статусу и включению неактивных сеансов
// Доступно только самому терапевту
func (s *Service) GetTherapistAppointments(ctx context.Context, req *models.GetTherapistAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetTherapistAppointments: therapist=%s, requester=%s", req.TherapistID, req.RequesterID)

	if req.RequesterID != req.TherapistID {
		s.logger.Warn("GetTherapistAppointments: access denied for requester=%s", req.RequesterID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetTherapistAppointments: invalid filter for therapist=%s: %v", req.TherapistID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.GetByTherapistWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetTherapistAppointments: repository error for therapist=%s: %v", req.TherapistID, err)
		return nil, fmt.Errorf("%w: GetTherapistAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetTherapistAppointments: fetched %d appointments for therapist=%s", len(appointments), req.TherapistID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Cancel отменяет сеанс
// Пациент отменяет свой сеанс (cancelled_by_patient),
// терапевт — свой (cancelled_by_therapist)
func (s *Service) Cancel(ctx context.Context, appointmentID int64, req *models.CancelAppointmentRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%d by user=%s", appointmentID, req.UserID)

	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	apt, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, aptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !apt.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", appointmentID, apt.Status)
		return ErrCannotCancel
	}

	var cancelStatus domain.AppointmentStatus
	switch req.UserID {
	case apt.PatientID:
		cancelStatus = domain.StatusCancelledByPatient
	case apt.TherapistID:
		cancelStatus = domain.StatusCancelledByTherapist
	default:
		s.logger.Warn("Cancel: access denied for user=%s to appointment id=%d", req.UserID, appointmentID)
		return ErrAccessDenied
	}

	if err := s.appointmentRepo.Cancel(ctx, appointmentID, cancelStatus, req.CancellationReason); err != nil {
		if errors.Is(err, aptRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d with status=%s", appointmentID, cancelStatus)
	return nil
}

// Confirm подтверждает ожидающий сеанс
// Доступно только терапевту сеанса
func (s *Service) Confirm(ctx context.Context, appointmentID int64, req *models.ConfirmAppointmentRequest) error {
	s.logger.Info("Confirm: confirming appointment id=%d by user=%s", appointmentID, req.UserID)

	apt, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, aptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Confirm: appointment id=%d not found", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Confirm: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
	}

	if req.UserID != apt.TherapistID {
		s.logger.Warn("Confirm: access denied for user=%s to appointment id=%d", req.UserID, appointmentID)
		return ErrAccessDenied
	}

	if !apt.CanBeConfirmed() {
		s.logger.Warn("Confirm: appointment id=%d cannot be confirmed, status=%s", appointmentID, apt.Status)
		return ErrCannotConfirm
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, appointmentID, domain.StatusConfirmed); err != nil {
		if errors.Is(err, aptRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Confirm: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Confirm: successfully confirmed appointment id=%d", appointmentID)
	return nil
}

// isParticipant проверяет, что пользователь — участник сеанса
func isParticipant(apt *domain.Appointment, userID uuid.UUID) bool {
	return apt.PatientID == userID || apt.TherapistID == userID
}
