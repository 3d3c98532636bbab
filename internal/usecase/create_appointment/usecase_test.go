package create_appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TRG-ScheduleService/internal/domain"
	configRepo "github.com/m04kA/TRG-ScheduleService/internal/infra/storage/scheduleconfig"
	"github.com/m04kA/TRG-ScheduleService/internal/integrations/directory"
	"github.com/m04kA/TRG-ScheduleService/pkg/types"
)

// fakeAppointmentStore хранит сеансы в памяти и раздаёт их обоим
// интерфейсам use case: чтение с фильтром и вставка
type fakeAppointmentStore struct {
	mu           sync.Mutex
	appointments []*domain.Appointment
	nextID       int64
}

func (f *fakeAppointmentStore) GetByTherapistWithFilter(_ context.Context, filter domain.TherapistAppointmentsFilter) ([]*domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	result := make([]*domain.Appointment, 0, len(f.appointments))
	for _, apt := range f.appointments {
		if apt.TherapistID != filter.TherapistID {
			continue
		}
		if !filter.IncludeInactive && !apt.IsActive() {
			continue
		}
		result = append(result, apt)
	}

	return result, nil
}

func (f *fakeAppointmentStore) Create(_ context.Context, apt *domain.Appointment) (*domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	apt.ID = f.nextID
	apt.CreatedAt = time.Now()
	apt.UpdatedAt = apt.CreatedAt
	f.appointments = append(f.appointments, apt)

	return apt, nil
}

type fakeAvailabilityRepo struct {
	rules []*domain.AvailabilityRule
}

func (f *fakeAvailabilityRepo) GetActiveByTherapistAndDay(_ context.Context, _ uuid.UUID, _ int) ([]*domain.AvailabilityRule, error) {
	return f.rules, nil
}

type fakeConfigRepo struct {
	cfg *domain.ScheduleConfig
	err error
}

func (f *fakeConfigRepo) GetConfigWithHierarchy(_ context.Context, _ uuid.UUID) (*domain.ScheduleConfig, error) {
	return f.cfg, f.err
}

type fakeDirectoryClient struct {
	therapist    *directory.User
	therapistErr error
	patient      *directory.User
	patientErr   error
}

func (f *fakeDirectoryClient) GetTherapist(_ context.Context, _ uuid.UUID) (*directory.User, error) {
	return f.therapist, f.therapistErr
}

func (f *fakeDirectoryClient) GetPatient(_ context.Context, _ uuid.UUID) (*directory.User, error) {
	return f.patient, f.patientErr
}

// fakeTxManager сериализует транзакции мьютексом: проверка пересечений
// и вставка выполняются атомарно, как в настоящей serializable-транзакции
type fakeTxManager struct {
	mu sync.Mutex
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
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

var (
	testTherapistID = uuid.MustParse("1b6fb4c7-2a3d-4e5f-8a90-aabbccddeeff")
	testPatientID   = uuid.MustParse("9c1d2e3f-4a5b-6c7d-8e9f-001122334455")
	otherPatientID  = uuid.MustParse("5e4d3c2b-1a09-4f8e-7d6c-ffeeddccbbaa")
	testDate        = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	testNow         = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
)

func workdayRules() []*domain.AvailabilityRule {
	return []*domain.AvailabilityRule{
		{
			TherapistID: testTherapistID,
			DayOfWeek:   int(testDate.Weekday()),
			StartTime:   types.TimeString("09:00"),
			EndTime:     types.TimeString("17:00"),
			IsActive:    true,
		},
	}
}

func newTestUseCase(store *fakeAppointmentStore, rules []*domain.AvailabilityRule) *UseCase {
	return &UseCase{
		appointmentRepo:  store,
		availabilityRepo: &fakeAvailabilityRepo{rules: rules},
		configRepo:       &fakeConfigRepo{err: configRepo.ErrConfigNotFound},
		directoryClient: &fakeDirectoryClient{
			therapist: &directory.User{ID: testTherapistID, Name: "Анна Ким", Role: "therapist"},
			patient:   &directory.User{ID: testPatientID, Name: "Игорь Лебедев", Role: "patient"},
		},
		txManager:    &fakeTxManager{},
		timeProvider: &fixedTimeProvider{now: testNow},
		logger:       noopLogger{},
	}
}

func bookingRequest(patientID uuid.UUID, startTime string) *Request {
	return &Request{
		TherapistID: testTherapistID,
		PatientID:   patientID,
		Date:        testDate,
		StartTime:   types.TimeString(startTime),
	}
}

func TestExecute_HappyPath(t *testing.T) {
	store := &fakeAppointmentStore{}
	uc := newTestUseCase(store, workdayRules())

	resp, err := uc.Execute(context.Background(), bookingRequest(testPatientID, "10:00"))

	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
	assert.Equal(t, "10:00", resp.StartTime.String())
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, "Анна Ким", resp.TherapistName)
	assert.Equal(t, "Игорь Лебедев", resp.PatientName)
}

func TestExecute_ValidationBeforeDataAccess(t *testing.T) {
	// Репозитории и клиент профилей намеренно nil: валидация формы запроса
	// должна отклонить запрос до любого обращения к ним
	uc := &UseCase{
		txManager:    &fakeTxManager{},
		timeProvider: &fixedTimeProvider{now: testNow},
		logger:       noopLogger{},
	}

	tests := []struct {
		name string
		req  *Request
	}{
		{name: "нет терапевта", req: &Request{PatientID: testPatientID, Date: testDate, StartTime: "10:00"}},
		{name: "нет пациента", req: &Request{TherapistID: testTherapistID, Date: testDate, StartTime: "10:00"}},
		{name: "терапевт записывается к себе", req: bookingRequest(testTherapistID, "10:00")},
		{name: "нет даты", req: &Request{TherapistID: testTherapistID, PatientID: testPatientID, StartTime: "10:00"}},
		{name: "нет времени", req: &Request{TherapistID: testTherapistID, PatientID: testPatientID, Date: testDate}},
		{name: "кривое время", req: bookingRequest(testPatientID, "25:99")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_TherapistNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentStore{}, workdayRules())
	uc.directoryClient = &fakeDirectoryClient{
		therapistErr: directory.ErrUserNotFound,
	}

	_, err := uc.Execute(context.Background(), bookingRequest(testPatientID, "10:00"))

	assert.ErrorIs(t, err, ErrTherapistNotFound)
}

func TestExecute_PatientNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentStore{}, workdayRules())
	uc.directoryClient = &fakeDirectoryClient{
		therapist:  &directory.User{ID: testTherapistID, Role: "therapist"},
		patientErr: directory.ErrUserNotFound,
	}

	_, err := uc.Execute(context.Background(), bookingRequest(testPatientID, "10:00"))

	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentStore{}, workdayRules())

	// Сеанс 16:30-17:30 вылезает за закрытие 17:00
	_, err := uc.Execute(context.Background(), bookingRequest(testPatientID, "16:30"))
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)

	// Сеанс 16:00-17:00 заканчивается ровно на закрытии — допустим
	_, err = uc.Execute(context.Background(), bookingRequest(testPatientID, "16:00"))
	assert.NoError(t, err)
}

func TestExecute_NoRulesForDay(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentStore{}, nil)

	_, err := uc.Execute(context.Background(), bookingRequest(testPatientID, "10:00"))

	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestExecute_SlotConflict(t *testing.T) {
	store := &fakeAppointmentStore{}
	uc := newTestUseCase(store, workdayRules())

	_, err := uc.Execute(context.Background(), bookingRequest(testPatientID, "10:00"))
	require.NoError(t, err)

	// Пересечение наполовину
	_, err = uc.Execute(context.Background(), bookingRequest(otherPatientID, "10:30"))
	assert.ErrorIs(t, err, ErrSlotConflict)

	// Тот же слот целиком
	_, err = uc.Execute(context.Background(), bookingRequest(otherPatientID, "10:00"))
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_BackToBackAllowed(t *testing.T) {
	store := &fakeAppointmentStore{}
	uc := newTestUseCase(store, workdayRules())

	_, err := uc.Execute(context.Background(), bookingRequest(testPatientID, "10:00"))
	require.NoError(t, err)

	// Сеанс 11:00-12:00 начинается ровно на конце предыдущего
	_, err = uc.Execute(context.Background(), bookingRequest(otherPatientID, "11:00"))
	assert.NoError(t, err)
}

func TestExecute_CancelledDoesNotBlock(t *testing.T) {
	store := &fakeAppointmentStore{}
	store.appointments = []*domain.Appointment{
		{
			ID:              1,
			TherapistID:     testTherapistID,
			PatientID:       otherPatientID,
			AppointmentDate: testDate,
			StartTime:       types.TimeString("10:00"),
			DurationMinutes: 60,
			Status:          domain.StatusCancelledByPatient,
		},
	}
	store.nextID = 1

	uc := newTestUseCase(store, workdayRules())

	_, err := uc.Execute(context.Background(), bookingRequest(testPatientID, "10:00"))

	assert.NoError(t, err)
}

func TestExecute_SameDayTooLate(t *testing.T) {
	sameDayNow := time.Date(2026, 9, 1, 9, 30, 0, 0, time.UTC)

	uc := newTestUseCase(&fakeAppointmentStore{}, workdayRules())
	uc.timeProvider = &fixedTimeProvider{now: sameDayNow}

	// now=09:30, notice 60 минут: слот 10:00 уже недоступен
	_, err := uc.Execute(context.Background(), bookingRequest(testPatientID, "10:00"))
	assert.ErrorIs(t, err, ErrTooLateToBook)

	// Слот 10:30 ровно на границе допустимого
	_, err = uc.Execute(context.Background(), bookingRequest(testPatientID, "10:30"))
	assert.NoError(t, err)
}

func TestExecute_PastDateRejected(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentStore{}, workdayRules())

	req := bookingRequest(testPatientID, "10:00")
	req.Date = testNow.AddDate(0, 0, -1)

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_ConcurrentBookingSameSlot(t *testing.T) {
	// Два конкурентных запроса на один слот: ровно один успех, один конфликт
	store := &fakeAppointmentStore{}
	uc := newTestUseCase(store, workdayRules())

	var wg sync.WaitGroup
	errs := make([]error, 2)

	for i, patientID := range []uuid.UUID{testPatientID, otherPatientID} {
		wg.Add(1)
		go func(idx int, pid uuid.UUID) {
			defer wg.Done()
			_, errs[idx] = uc.Execute(context.Background(), bookingRequest(pid, "14:00"))
		}(i, patientID)
	}
	wg.Wait()

	successes := 0
	conflicts := 0
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		default:
			require.ErrorIs(t, err, ErrSlotConflict)
			conflicts++
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, conflicts)

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Len(t, store.appointments, 1)
}
