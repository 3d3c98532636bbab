package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TRG-ScheduleService/internal/domain"
	configRepo "github.com/m04kA/TRG-ScheduleService/internal/infra/storage/scheduleconfig"
	"github.com/m04kA/TRG-ScheduleService/internal/integrations/directory"
	"github.com/m04kA/TRG-ScheduleService/pkg/ptr"
	"github.com/m04kA/TRG-ScheduleService/pkg/types"
)

type fakeAvailabilityRepo struct {
	rules []*domain.AvailabilityRule
	err   error
}

func (f *fakeAvailabilityRepo) GetActiveByTherapistAndDay(_ context.Context, _ uuid.UUID, _ int) ([]*domain.AvailabilityRule, error) {
	return f.rules, f.err
}

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	err          error
}

func (f *fakeAppointmentRepo) GetByTherapistWithFilter(_ context.Context, _ domain.TherapistAppointmentsFilter) ([]*domain.Appointment, error) {
	return f.appointments, f.err
}

type fakeConfigRepo struct {
	cfg *domain.ScheduleConfig
	err error
}

func (f *fakeConfigRepo) GetConfigWithHierarchy(_ context.Context, _ uuid.UUID) (*domain.ScheduleConfig, error) {
	return f.cfg, f.err
}

type fakeDirectoryClient struct {
	therapist *directory.User
	err       error
}

func (f *fakeDirectoryClient) GetTherapist(_ context.Context, _ uuid.UUID) (*directory.User, error) {
	return f.therapist, f.err
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time {
	return f.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newTestUseCase(
	availabilityR *fakeAvailabilityRepo,
	appointmentR *fakeAppointmentRepo,
	configR *fakeConfigRepo,
	dirClient *fakeDirectoryClient,
	now time.Time,
) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityR,
		appointmentRepo:  appointmentR,
		configRepo:       configR,
		directoryClient:  dirClient,
		timeProvider:     &fixedTimeProvider{now: now},
		logger:           noopLogger{},
	}
}

var (
	testTherapistID = uuid.MustParse("7f8e2a10-4b3c-4d5e-9f60-112233445566")
	// Вторник
	testDate = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	testNow  = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
)

func activeRule(start, end string) *domain.AvailabilityRule {
	return &domain.AvailabilityRule{
		TherapistID: testTherapistID,
		DayOfWeek:   int(testDate.Weekday()),
		StartTime:   types.TimeString(start),
		EndTime:     types.TimeString(end),
		IsActive:    true,
	}
}

func TestExecute_HappyPath(t *testing.T) {
	uc := newTestUseCase(
		&fakeAvailabilityRepo{rules: []*domain.AvailabilityRule{activeRule("09:00", "12:00")}},
		&fakeAppointmentRepo{},
		&fakeConfigRepo{err: configRepo.ErrConfigNotFound},
		&fakeDirectoryClient{therapist: &directory.User{ID: testTherapistID, Role: "therapist"}},
		testNow,
	)

	resp, err := uc.Execute(context.Background(), &Request{
		TherapistID: testTherapistID,
		Date:        testDate,
	})

	require.NoError(t, err)
	assert.Equal(t, testTherapistID, resp.TherapistID)
	// Конфигурации нет: сеанс 60 минут, шаг 30
	require.Len(t, resp.Slots, 5)
	assert.Equal(t, "09:00", resp.Slots[0].StartTime.String())
	assert.Equal(t, 60, resp.Slots[0].DurationMinutes)
	assert.Equal(t, "11:00", resp.Slots[4].StartTime.String())
}

func TestExecute_UnknownTherapistGivesEmptyList(t *testing.T) {
	uc := newTestUseCase(
		&fakeAvailabilityRepo{rules: []*domain.AvailabilityRule{activeRule("09:00", "12:00")}},
		&fakeAppointmentRepo{},
		&fakeConfigRepo{err: configRepo.ErrConfigNotFound},
		&fakeDirectoryClient{err: directory.ErrUserNotFound},
		testNow,
	)

	resp, err := uc.Execute(context.Background(), &Request{
		TherapistID: testTherapistID,
		Date:        testDate,
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_NoRulesGivesEmptyList(t *testing.T) {
	uc := newTestUseCase(
		&fakeAvailabilityRepo{rules: nil},
		&fakeAppointmentRepo{},
		&fakeConfigRepo{err: configRepo.ErrConfigNotFound},
		&fakeDirectoryClient{therapist: &directory.User{ID: testTherapistID, Role: "therapist"}},
		testNow,
	)

	resp, err := uc.Execute(context.Background(), &Request{
		TherapistID: testTherapistID,
		Date:        testDate,
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ConfigOverrides(t *testing.T) {
	cfg := &domain.ScheduleConfig{
		TherapistID:             &testTherapistID,
		SessionDurationMinutes:  90,
		SlotGranularityMinutes:  60,
		AdvanceBookingDays:      30,
		MinBookingNoticeMinutes: 0,
	}

	uc := newTestUseCase(
		&fakeAvailabilityRepo{rules: []*domain.AvailabilityRule{activeRule("09:00", "12:00")}},
		&fakeAppointmentRepo{},
		&fakeConfigRepo{cfg: cfg},
		&fakeDirectoryClient{therapist: &directory.User{ID: testTherapistID, Role: "therapist"}},
		testNow,
	)

	resp, err := uc.Execute(context.Background(), &Request{
		TherapistID: testTherapistID,
		Date:        testDate,
	})

	require.NoError(t, err)
	// Сеанс 90 минут, шаг 60: 09:00-10:30 и 10:30-12:00 не попадает на шаг, остаётся 10:00-11:30
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, "09:00", resp.Slots[0].StartTime.String())
	assert.Equal(t, "10:00", resp.Slots[1].StartTime.String())
	assert.Equal(t, 90, resp.Slots[0].DurationMinutes)
}

func TestExecute_RequestOverridesConfig(t *testing.T) {
	uc := newTestUseCase(
		&fakeAvailabilityRepo{rules: []*domain.AvailabilityRule{activeRule("09:00", "11:00")}},
		&fakeAppointmentRepo{},
		&fakeConfigRepo{err: configRepo.ErrConfigNotFound},
		&fakeDirectoryClient{therapist: &directory.User{ID: testTherapistID, Role: "therapist"}},
		testNow,
	)

	resp, err := uc.Execute(context.Background(), &Request{
		TherapistID:        testTherapistID,
		Date:               testDate,
		DurationMinutes:    ptr.Ptr(30),
		GranularityMinutes: ptr.Ptr(60),
	})

	require.NoError(t, err)
	// Шаг 60: кандидаты 09:00 и 10:00; 30-минутный сеанс c 10:30 не попадает на шаг
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, "09:00", resp.Slots[0].StartTime.String())
	assert.Equal(t, "10:00", resp.Slots[1].StartTime.String())
	assert.Equal(t, 30, resp.Slots[0].DurationMinutes)
}

func TestExecute_PastDateRejected(t *testing.T) {
	uc := newTestUseCase(
		&fakeAvailabilityRepo{},
		&fakeAppointmentRepo{},
		&fakeConfigRepo{err: configRepo.ErrConfigNotFound},
		&fakeDirectoryClient{therapist: &directory.User{ID: testTherapistID, Role: "therapist"}},
		testNow,
	)

	_, err := uc.Execute(context.Background(), &Request{
		TherapistID: testTherapistID,
		Date:        testNow.AddDate(0, 0, -1),
	})

	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_DateBeyondHorizonRejected(t *testing.T) {
	cfg := domain.DefaultScheduleConfig()
	cfg.AdvanceBookingDays = 7

	uc := newTestUseCase(
		&fakeAvailabilityRepo{},
		&fakeAppointmentRepo{},
		&fakeConfigRepo{cfg: cfg},
		&fakeDirectoryClient{therapist: &directory.User{ID: testTherapistID, Role: "therapist"}},
		testNow,
	)

	_, err := uc.Execute(context.Background(), &Request{
		TherapistID: testTherapistID,
		Date:        testNow.AddDate(0, 0, 14),
	})

	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_InvalidRequest(t *testing.T) {
	uc := newTestUseCase(
		&fakeAvailabilityRepo{},
		&fakeAppointmentRepo{},
		&fakeConfigRepo{},
		&fakeDirectoryClient{},
		testNow,
	)

	_, err := uc.Execute(context.Background(), &Request{Date: testDate})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		TherapistID:     testTherapistID,
		Date:            testDate,
		DurationMinutes: ptr.Ptr(-1),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_SameDayNoticeFilter(t *testing.T) {
	// Сегодняшний день: now=10:15, notice 60 минут → допустимы слоты с 11:15
	sameDayNow := time.Date(2026, 9, 1, 10, 15, 0, 0, time.UTC)

	uc := newTestUseCase(
		&fakeAvailabilityRepo{rules: []*domain.AvailabilityRule{activeRule("09:00", "14:00")}},
		&fakeAppointmentRepo{},
		&fakeConfigRepo{err: configRepo.ErrConfigNotFound},
		&fakeDirectoryClient{therapist: &directory.User{ID: testTherapistID, Role: "therapist"}},
		sameDayNow,
	)

	resp, err := uc.Execute(context.Background(), &Request{
		TherapistID: testTherapistID,
		Date:        testDate,
	})

	require.NoError(t, err)
	for _, slot := range resp.Slots {
		minutes, merr := slot.StartTime.TotalMinutes()
		require.NoError(t, merr)
		assert.GreaterOrEqual(t, minutes, 11*60+15, "slot %s too close to now", slot.StartTime)
	}
	assert.Equal(t, "11:30", resp.Slots[0].StartTime.String())
}
