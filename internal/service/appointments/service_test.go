package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TRG-ScheduleService/internal/domain"
	aptRepo "github.com/m04kA/TRG-ScheduleService/internal/infra/storage/appointment"
	"github.com/m04kA/TRG-ScheduleService/internal/service/appointments/models"
	"github.com/m04kA/TRG-ScheduleService/pkg/types"
)

type fakeAppointmentRepo struct {
	appointments map[int64]*domain.Appointment

	cancelledID     int64
	cancelledStatus domain.AppointmentStatus
	cancelledReason string
	updatedID       int64
	updatedStatus   domain.AppointmentStatus
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	apt, ok := f.appointments[id]
	if !ok {
		return nil, aptRepo.ErrAppointmentNotFound
	}
	return apt, nil
}

func (f *fakeAppointmentRepo) GetByPatientID(_ context.Context, patientID uuid.UUID, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	result := make([]*domain.Appointment, 0)
	for _, apt := range f.appointments {
		if apt.PatientID != patientID {
			continue
		}
		if status != nil && apt.Status != *status {
			continue
		}
		result = append(result, apt)
	}
	return result, nil
}

func (f *fakeAppointmentRepo) GetByTherapistWithFilter(_ context.Context, filter domain.TherapistAppointmentsFilter) ([]*domain.Appointment, error) {
	result := make([]*domain.Appointment, 0)
	for _, apt := range f.appointments {
		if apt.TherapistID == filter.TherapistID {
			result = append(result, apt)
		}
	}
	return result, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus) error {
	if _, ok := f.appointments[id]; !ok {
		return aptRepo.ErrAppointmentNotFound
	}
	f.updatedID = id
	f.updatedStatus = status
	f.appointments[id].Status = status
	return nil
}

func (f *fakeAppointmentRepo) Cancel(_ context.Context, id int64, status domain.AppointmentStatus, reason string) error {
	if _, ok := f.appointments[id]; !ok {
		return aptRepo.ErrAppointmentNotFound
	}
	f.cancelledID = id
	f.cancelledStatus = status
	f.cancelledReason = reason
	f.appointments[id].Status = status
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

var (
	therapistID = uuid.MustParse("aa11bb22-cc33-4d44-8e55-ff6677889900")
	patientID   = uuid.MustParse("00998877-6655-4a44-8b33-221100aabbcc")
	strangerID  = uuid.MustParse("12345678-9abc-4def-8123-456789abcdef")
)

func pendingAppointment(id int64) *domain.Appointment {
	return &domain.Appointment{
		ID:              id,
		TherapistID:     therapistID,
		PatientID:       patientID,
		AppointmentDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("10:00"),
		DurationMinutes: 60,
		Status:          domain.StatusPending,
		TherapistName:   "Анна Ким",
		PatientName:     "Игорь Лебедев",
	}
}

func newTestService(apts ...*domain.Appointment) (*Service, *fakeAppointmentRepo) {
	repo := &fakeAppointmentRepo{appointments: make(map[int64]*domain.Appointment)}
	for _, apt := range apts {
		repo.appointments[apt.ID] = apt
	}
	return NewService(repo, noopLogger{}), repo
}

func TestGetByID_ParticipantsOnly(t *testing.T) {
	svc, _ := newTestService(pendingAppointment(1))

	resp, err := svc.GetByID(context.Background(), 1, patientID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)

	resp, err = svc.GetByID(context.Background(), 1, therapistID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)

	_, err = svc.GetByID(context.Background(), 1, strangerID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetByID(context.Background(), 42, patientID)

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestCancel_ByPatient(t *testing.T) {
	svc, repo := newTestService(pendingAppointment(1))

	err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{
		UserID:             patientID,
		CancellationReason: "заболел",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelledByPatient, repo.cancelledStatus)
	assert.Equal(t, "заболел", repo.cancelledReason)
}

func TestCancel_ByTherapist(t *testing.T) {
	svc, repo := newTestService(pendingAppointment(1))

	err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{
		UserID: therapistID,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelledByTherapist, repo.cancelledStatus)
}

func TestCancel_StrangerDenied(t *testing.T) {
	svc, _ := newTestService(pendingAppointment(1))

	err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{
		UserID: strangerID,
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	apt := pendingAppointment(1)
	apt.Status = domain.StatusCancelledByPatient
	svc, _ := newTestService(apt)

	err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{
		UserID: patientID,
	})

	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestConfirm_TherapistOnly(t *testing.T) {
	svc, repo := newTestService(pendingAppointment(1))

	err := svc.Confirm(context.Background(), 1, &models.ConfirmAppointmentRequest{UserID: patientID})
	assert.ErrorIs(t, err, ErrAccessDenied)

	err = svc.Confirm(context.Background(), 1, &models.ConfirmAppointmentRequest{UserID: therapistID})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, repo.updatedStatus)
}

func TestConfirm_OnlyPending(t *testing.T) {
	apt := pendingAppointment(1)
	apt.Status = domain.StatusConfirmed
	svc, _ := newTestService(apt)

	err := svc.Confirm(context.Background(), 1, &models.ConfirmAppointmentRequest{UserID: therapistID})

	assert.ErrorIs(t, err, ErrCannotConfirm)
}

func TestGetPatientAppointments_SelfOnly(t *testing.T) {
	svc, _ := newTestService(pendingAppointment(1))

	resp, err := svc.GetPatientAppointments(context.Background(), &models.GetPatientAppointmentsRequest{
		PatientID:   patientID,
		RequesterID: patientID,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)

	_, err = svc.GetPatientAppointments(context.Background(), &models.GetPatientAppointmentsRequest{
		PatientID:   patientID,
		RequesterID: therapistID,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetTherapistAppointments_InvalidStatus(t *testing.T) {
	svc, _ := newTestService(pendingAppointment(1))

	badStatus := "weird"
	_, err := svc.GetTherapistAppointments(context.Background(), &models.GetTherapistAppointmentsRequest{
		TherapistID: therapistID,
		RequesterID: therapistID,
		Status:      &badStatus,
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
