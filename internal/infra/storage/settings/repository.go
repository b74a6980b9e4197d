package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/psqlbuilder"
)

const (
	tableName = "scheduling_settings"

	// singletonID единственная строка настроек клиники
	singletonID = 1
)

// Repository репозиторий политики расписания
// Таблица хранит одну строку (id = 1)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get возвращает сохранённую политику расписания
// Если строка ещё не создана, возвращает ErrSettingsNotFound
func (r *Repository) Get(ctx context.Context) (*domain.SchedulingPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"slot_length_minutes",
		"buffer_minutes",
		"block_public_holidays",
		"updated_at",
	).
		From(tableName).
		Where(squirrel.Eq{"id": singletonID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var policy domain.SchedulingPolicy
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&policy.SlotLengthMinutes,
		&policy.BufferMinutes,
		&policy.BlockPublicHolidays,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %v", ErrScanRow, err)
	}

	policy.UpdatedAt = updatedAt.Time

	return &policy, nil
}

// Upsert создает или обновляет строку настроек
func (r *Repository) Upsert(ctx context.Context, policy *domain.SchedulingPolicy) (*domain.SchedulingPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("id", "slot_length_minutes", "buffer_minutes", "block_public_holidays").
		Values(singletonID, policy.SlotLengthMinutes, policy.BufferMinutes, policy.BlockPublicHolidays).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			slot_length_minutes = EXCLUDED.slot_length_minutes,
			buffer_minutes = EXCLUDED.buffer_minutes,
			block_public_holidays = EXCLUDED.block_public_holidays,
			updated_at = NOW()
		RETURNING updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	result := *policy
	result.UpdatedAt = updatedAt.Time

	return &result, nil
}
