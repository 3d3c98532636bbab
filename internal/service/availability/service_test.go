package availability

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TRG-ScheduleService/internal/domain"
	"github.com/m04kA/TRG-ScheduleService/internal/service/availability/models"
	"github.com/m04kA/TRG-ScheduleService/pkg/types"
)

type fakeAvailabilityRepo struct {
	rules     []*domain.AvailabilityRule
	nextID    int64
	deleted   []uuid.UUID
	createErr error
	getErr    error
}

func (f *fakeAvailabilityRepo) GetByTherapist(_ context.Context, therapistID uuid.UUID) ([]*domain.AvailabilityRule, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}

	out := make([]*domain.AvailabilityRule, 0)
	for _, rule := range f.rules {
		if rule.TherapistID == therapistID {
			out = append(out, rule)
		}
	}
	return out, nil
}

func (f *fakeAvailabilityRepo) Create(_ context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}

	f.nextID++
	created := *rule
	created.ID = f.nextID
	f.rules = append(f.rules, &created)
	return &created, nil
}

func (f *fakeAvailabilityRepo) DeleteByTherapist(_ context.Context, therapistID uuid.UUID) error {
	f.deleted = append(f.deleted, therapistID)

	kept := f.rules[:0]
	for _, rule := range f.rules {
		if rule.TherapistID != therapistID {
			kept = append(kept, rule)
		}
	}
	f.rules = kept
	return nil
}

// fakeTxManager выполняет функцию без реальной транзакции
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func workdayRules() []models.WeeklyRuleInput {
	return []models.WeeklyRuleInput{
		{DayOfWeek: 1, StartTime: types.TimeString("09:00"), EndTime: types.TimeString("13:00"), IsActive: true},
		{DayOfWeek: 1, StartTime: types.TimeString("14:00"), EndTime: types.TimeString("18:00"), IsActive: true},
		{DayOfWeek: 3, StartTime: types.TimeString("10:00"), EndTime: types.TimeString("16:00"), IsActive: false},
	}
}

func TestReplace_HappyPath(t *testing.T) {
	therapistID := uuid.New()
	repo := &fakeAvailabilityRepo{}
	tx := &fakeTxManager{}
	svc := NewService(repo, tx, noopLogger{})

	resp, err := svc.Replace(context.Background(), &models.ReplaceAvailabilityRequest{
		TherapistID: therapistID,
		RequesterID: therapistID,
		Rules:       workdayRules(),
	})

	require.NoError(t, err)
	assert.Equal(t, therapistID, resp.TherapistID)
	assert.Len(t, resp.Rules, 3)
	assert.Equal(t, 1, tx.calls, "delete and inserts must run in one transaction")
	assert.Equal(t, []uuid.UUID{therapistID}, repo.deleted)

	// Созданным правилам присвоены идентификаторы
	for _, rule := range resp.Rules {
		assert.NotZero(t, rule.ID)
	}
}

func TestReplace_ReplacesExistingRules(t *testing.T) {
	therapistID := uuid.New()
	repo := &fakeAvailabilityRepo{}
	tx := &fakeTxManager{}
	svc := NewService(repo, tx, noopLogger{})

	_, err := svc.Replace(context.Background(), &models.ReplaceAvailabilityRequest{
		TherapistID: therapistID,
		RequesterID: therapistID,
		Rules:       workdayRules(),
	})
	require.NoError(t, err)

	// Повторная замена одним правилом: старые три исчезают
	resp, err := svc.Replace(context.Background(), &models.ReplaceAvailabilityRequest{
		TherapistID: therapistID,
		RequesterID: therapistID,
		Rules: []models.WeeklyRuleInput{
			{DayOfWeek: 5, StartTime: types.TimeString("12:00"), EndTime: types.TimeString("15:00"), IsActive: true},
		},
	})

	require.NoError(t, err)
	assert.Len(t, resp.Rules, 1)
	assert.Len(t, repo.rules, 1)
}

func TestReplace_EmptyRulesClearsSchedule(t *testing.T) {
	therapistID := uuid.New()
	repo := &fakeAvailabilityRepo{}
	svc := NewService(repo, &fakeTxManager{}, noopLogger{})

	_, err := svc.Replace(context.Background(), &models.ReplaceAvailabilityRequest{
		TherapistID: therapistID,
		RequesterID: therapistID,
		Rules:       workdayRules(),
	})
	require.NoError(t, err)

	resp, err := svc.Replace(context.Background(), &models.ReplaceAvailabilityRequest{
		TherapistID: therapistID,
		RequesterID: therapistID,
		Rules:       []models.WeeklyRuleInput{},
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Rules)
	assert.Empty(t, repo.rules)
}

func TestReplace_StrangerDenied(t *testing.T) {
	repo := &fakeAvailabilityRepo{}
	svc := NewService(repo, &fakeTxManager{}, noopLogger{})

	_, err := svc.Replace(context.Background(), &models.ReplaceAvailabilityRequest{
		TherapistID: uuid.New(),
		RequesterID: uuid.New(),
		Rules:       workdayRules(),
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.deleted, "no writes on denied request")
}

func TestReplace_InvalidRules(t *testing.T) {
	therapistID := uuid.New()

	tests := []struct {
		name string
		rule models.WeeklyRuleInput
	}{
		{
			name: "день недели вне диапазона",
			rule: models.WeeklyRuleInput{DayOfWeek: 7, StartTime: types.TimeString("09:00"), EndTime: types.TimeString("17:00")},
		},
		{
			name: "отрицательный день недели",
			rule: models.WeeklyRuleInput{DayOfWeek: -1, StartTime: types.TimeString("09:00"), EndTime: types.TimeString("17:00")},
		},
		{
			name: "нечитаемое время начала",
			rule: models.WeeklyRuleInput{DayOfWeek: 1, StartTime: types.TimeString("25:00"), EndTime: types.TimeString("17:00")},
		},
		{
			name: "начало не раньше конца",
			rule: models.WeeklyRuleInput{DayOfWeek: 1, StartTime: types.TimeString("17:00"), EndTime: types.TimeString("09:00")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeAvailabilityRepo{}
			svc := NewService(repo, &fakeTxManager{}, noopLogger{})

			_, err := svc.Replace(context.Background(), &models.ReplaceAvailabilityRequest{
				TherapistID: therapistID,
				RequesterID: therapistID,
				Rules:       []models.WeeklyRuleInput{tt.rule},
			})

			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, repo.deleted, "no writes on invalid request")
		})
	}
}

func TestReplace_RepositoryFailure(t *testing.T) {
	therapistID := uuid.New()
	repo := &fakeAvailabilityRepo{createErr: errors.New("connection refused")}
	svc := NewService(repo, &fakeTxManager{}, noopLogger{})

	_, err := svc.Replace(context.Background(), &models.ReplaceAvailabilityRequest{
		TherapistID: therapistID,
		RequesterID: therapistID,
		Rules:       workdayRules(),
	})

	assert.ErrorIs(t, err, ErrInternal)
}

func TestGetByTherapist(t *testing.T) {
	therapistID := uuid.New()
	repo := &fakeAvailabilityRepo{
		rules: []*domain.AvailabilityRule{
			{ID: 1, TherapistID: therapistID, DayOfWeek: 2, StartTime: types.TimeString("09:00"), EndTime: types.TimeString("17:00"), IsActive: true},
			{ID: 2, TherapistID: uuid.New(), DayOfWeek: 3, StartTime: types.TimeString("10:00"), EndTime: types.TimeString("18:00"), IsActive: true},
		},
	}
	svc := NewService(repo, &fakeTxManager{}, noopLogger{})

	resp, err := svc.GetByTherapist(context.Background(), therapistID)

	require.NoError(t, err)
	assert.Equal(t, therapistID, resp.TherapistID)
	require.Len(t, resp.Rules, 1, "only the requested therapist's rules")
	assert.Equal(t, int64(1), resp.Rules[0].ID)
}

func TestGetByTherapist_RepositoryFailure(t *testing.T) {
	repo := &fakeAvailabilityRepo{getErr: errors.New("connection refused")}
	svc := NewService(repo, &fakeTxManager{}, noopLogger{})

	_, err := svc.GetByTherapist(context.Background(), uuid.New())

	assert.ErrorIs(t, err, ErrInternal)
}
