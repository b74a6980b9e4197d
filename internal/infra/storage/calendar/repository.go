package calendar

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/psqlbuilder"
)

const (
	rulesTable   = "working_hours_rules"
	timeOffTable = "time_off"
)

// Repository хранилище правил рабочих часов и блокировок времени
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория календаря
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListRules возвращает правила рабочих часов
// Если weekday задан, возвращаются только правила этого дня недели
func (r *Repository) ListRules(ctx context.Context, weekday *time.Weekday) ([]*domain.WorkingHoursRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"weekday",
		"start_time",
		"end_time",
		"effective_from",
		"effective_to",
	).
		From(rulesTable).
		OrderBy("weekday ASC", "start_time ASC", "id ASC")

	if weekday != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"weekday": int(*weekday)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListRules - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRules - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.WorkingHoursRule, 0)
	for rows.Next() {
		var rule domain.WorkingHoursRule
		var day int
		var from, to sql.NullTime

		if err := rows.Scan(&rule.ID, &day, &rule.StartTime, &rule.EndTime, &from, &to); err != nil {
			return nil, fmt.Errorf("%w: ListRules - scan rule: %v", ErrScanRow, err)
		}

		rule.Weekday = time.Weekday(day)
		rule.Effective = domain.NewEffectivity(nullTimePtr(from), nullTimePtr(to))
		rules = append(rules, &rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListRules - rows iteration: %v", ErrScanRow, err)
	}

	return rules, nil
}

// CreateRule сохраняет новое правило рабочих часов
func (r *Repository) CreateRule(ctx context.Context, rule *domain.WorkingHoursRule) (*domain.WorkingHoursRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	from, to := domain.EffectiveBounds(rule.Effective)

	query, args, err := psqlbuilder.Insert(rulesTable).
		Columns("weekday", "start_time", "end_time", "effective_from", "effective_to").
		Values(int(rule.Weekday), rule.StartTime, rule.EndTime, datePtr(from), datePtr(to)).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateRule - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&rule.ID); err != nil {
		return nil, fmt.Errorf("%w: CreateRule - execute insert: %v", ErrExecQuery, err)
	}

	return rule, nil
}

// DeleteRule удаляет правило рабочих часов
func (r *Repository) DeleteRule(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, rulesTable, id, ErrRuleNotFound)
}

// ListTimeOff возвращает блокировки времени
// Если interval задан, возвращаются только блокировки, пересекающие его
func (r *Repository) ListTimeOff(ctx context.Context, interval *domain.Interval) ([]*domain.TimeOff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "start_time", "end_time", "reason", "created_at").
		From(timeOffTable).
		OrderBy("start_time ASC", "id ASC")

	if interval != nil {
		selectBuilder = selectBuilder.Where(squirrel.And{
			squirrel.Lt{"start_time": interval.End.UTC()},
			squirrel.Gt{"end_time": interval.Start.UTC()},
		})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListTimeOff - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListTimeOff - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.TimeOff, 0)
	for rows.Next() {
		var off domain.TimeOff
		var reason sql.NullString
		var createdAt sql.NullTime

		if err := rows.Scan(&off.ID, &off.Start, &off.End, &reason, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListTimeOff - scan time off: %v", ErrScanRow, err)
		}

		off.Reason = reason.String
		off.CreatedAt = createdAt.Time
		result = append(result, &off)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListTimeOff - rows iteration: %v", ErrScanRow, err)
	}

	return result, nil
}

// CreateTimeOff сохраняет новую блокировку времени
func (r *Repository) CreateTimeOff(ctx context.Context, off *domain.TimeOff) (*domain.TimeOff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(timeOffTable).
		Columns("start_time", "end_time", "reason").
		Values(off.Start.UTC(), off.End.UTC(), off.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateTimeOff - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&off.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: CreateTimeOff - execute insert: %v", ErrExecQuery, err)
	}
	off.CreatedAt = createdAt.Time

	return off, nil
}

// DeleteTimeOff удаляет блокировку времени
func (r *Repository) DeleteTimeOff(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, timeOffTable, id, ErrTimeOffNotFound)
}

func (r *Repository) deleteByID(ctx context.Context, table string, id int64, notFound error) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: delete from %s - build query: %v", ErrBuildQuery, table, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: delete from %s - execute: %v", ErrExecQuery, table, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: delete from %s - rows affected: %v", ErrExecQuery, table, err)
	}
	if affected == 0 {
		return notFound
	}

	return nil
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

// datePtr приводит границу периода к значению для колонки DATE
func datePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(domain.DateFormat)
}

