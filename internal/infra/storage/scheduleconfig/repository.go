package scheduleconfig

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/TRG-ScheduleService/internal/domain"
	"github.com/m04kA/TRG-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/TRG-ScheduleService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий конфигурации расписания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var configColumns = []string{
	"id",
	"therapist_id",
	"session_duration_minutes",
	"slot_granularity_minutes",
	"advance_booking_days",
	"min_booking_notice_minutes",
	"created_at",
	"updated_at",
}

// GetByTherapist получает конфигурацию конкретного терапевта
// therapistID == nil означает глобальную конфигурацию практики
func (r *Repository) GetByTherapist(ctx context.Context, therapistID *uuid.UUID) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(configColumns...).
		From("schedule_config")

	if therapistID == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"therapist_id": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"therapist_id": *therapistID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTherapist - build select query: %v", ErrBuildQuery, err)
	}

	var cfg domain.ScheduleConfig
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&cfg.TherapistID,
		&cfg.SessionDurationMinutes,
		&cfg.SlotGranularityMinutes,
		&cfg.AdvanceBookingDays,
		&cfg.MinBookingNoticeMinutes,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTherapist - scan config: %v", ErrScanRow, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return &cfg, nil
}

// GetConfigWithHierarchy получает конфигурацию с учетом иерархии приоритетов:
// 1. Персональная конфигурация терапевта
// 2. Глобальная конфигурация практики
// Если ни одной записи нет, возвращает ErrConfigNotFound
func (r *Repository) GetConfigWithHierarchy(ctx context.Context, therapistID uuid.UUID) (*domain.ScheduleConfig, error) {
	cfg, err := r.GetByTherapist(ctx, &therapistID)
	if err == nil {
		return cfg, nil
	}
	if err != ErrConfigNotFound {
		return nil, fmt.Errorf("%w: GetConfigWithHierarchy - therapist level: %v", ErrExecQuery, err)
	}

	cfg, err = r.GetByTherapist(ctx, nil)
	if err == nil {
		return cfg, nil
	}
	if err != ErrConfigNotFound {
		return nil, fmt.Errorf("%w: GetConfigWithHierarchy - global level: %v", ErrExecQuery, err)
	}

	return nil, ErrConfigNotFound
}

// Upsert создает или обновляет конфигурацию терапевта (глобальную при nil)
// Уникальность по therapist_id обеспечена индексом uq_schedule_config_therapist
func (r *Repository) Upsert(ctx context.Context, cfg *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedule_config").
		Columns(
			"therapist_id",
			"session_duration_minutes",
			"slot_granularity_minutes",
			"advance_booking_days",
			"min_booking_notice_minutes",
		).
		Values(
			cfg.TherapistID,
			cfg.SessionDurationMinutes,
			cfg.SlotGranularityMinutes,
			cfg.AdvanceBookingDays,
			cfg.MinBookingNoticeMinutes,
		).
		Suffix(`ON CONFLICT (therapist_id) DO UPDATE SET
			session_duration_minutes = EXCLUDED.session_duration_minutes,
			slot_granularity_minutes = EXCLUDED.slot_granularity_minutes,
			advance_booking_days = EXCLUDED.advance_booking_days,
			min_booking_notice_minutes = EXCLUDED.min_booking_notice_minutes,
			updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return cfg, nil
}
