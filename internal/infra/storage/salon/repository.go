package salon

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Repository репозиторий салонов: часы работы, сотрудники и услуги
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория салонов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetSalon получает салон вместе с недельным расписанием.
// Дни без строки в salon_hours считаются выходными.
func (r *Repository) GetSalon(ctx context.Context, salonID string) (*domain.Salon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "owner_id", "name").
		From("salons").
		Where(squirrel.Eq{"id": salonID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSalon - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Salon
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.OwnerID, &s.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSalonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSalon - scan salon: %w", ErrScanRow, err)
	}

	hours, err := r.getWeeklyHours(ctx, executor, salonID)
	if err != nil {
		return nil, err
	}
	s.Hours = hours

	return &s, nil
}

// GetDayHours получает часы работы салона на день недели
func (r *Repository) GetDayHours(ctx context.Context, salonID string, weekday domain.Weekday) (*domain.DayHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("opens_at", "closes_at").
		From("salon_hours").
		Where(squirrel.Eq{"salon_id": salonID, "weekday": string(weekday)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetDayHours - build select query: %v", ErrBuildQuery, err)
	}

	var hours domain.DayHours
	err = executor.QueryRowContext(ctx, query, args...).Scan(&hours.Open.Start, &hours.Open.End)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHoursNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDayHours - scan hours: %w", ErrScanRow, err)
	}

	breaks, err := r.getBreaks(ctx, executor, salonID, &weekday)
	if err != nil {
		return nil, err
	}
	hours.Breaks = breaks[weekday]
	if hours.Breaks == nil {
		hours.Breaks = []types.Interval{}
	}

	if err := hours.Validate(); err != nil {
		return nil, fmt.Errorf("%w: GetDayHours - salon=%s weekday=%s: %v", ErrInvalidRecord, salonID, weekday, err)
	}

	return &hours, nil
}

// ReplaceHours заменяет расписание салона целиком.
// Вызывать внутри транзакции: удаление и вставка должны примениться вместе.
func (r *Repository) ReplaceHours(ctx context.Context, salonID string, hours domain.WeeklyHours) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	for _, table := range []string{"salon_breaks", "salon_hours"} {
		query, args, err := psqlbuilder.Delete(table).
			Where(squirrel.Eq{"salon_id": salonID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: ReplaceHours - build delete %s: %v", ErrBuildQuery, table, err)
		}
		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: ReplaceHours - delete %s: %w", ErrExecQuery, table, err)
		}
	}

	if len(hours) == 0 {
		return nil
	}

	hoursInsert := psqlbuilder.Insert("salon_hours").Columns("salon_id", "weekday", "opens_at", "closes_at")
	breaksInsert := psqlbuilder.Insert("salon_breaks").Columns("salon_id", "weekday", "starts_at", "ends_at")
	hasBreaks := false

	// Порядок дней фиксирован, чтобы запросы были детерминированы
	for _, day := range domain.Weekdays {
		h, ok := hours[day]
		if !ok {
			continue
		}
		hoursInsert = hoursInsert.Values(salonID, string(day), h.Open.Start, h.Open.End)
		for _, b := range h.Breaks {
			breaksInsert = breaksInsert.Values(salonID, string(day), b.Start, b.End)
			hasBreaks = true
		}
	}

	query, args, err := hoursInsert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceHours - build insert hours: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceHours - insert hours: %w", ErrExecQuery, err)
	}

	if !hasBreaks {
		return nil
	}

	query, args, err = breaksInsert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceHours - build insert breaks: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceHours - insert breaks: %w", ErrExecQuery, err)
	}

	return nil
}

// getWeeklyHours собирает расписание всех дней салона
func (r *Repository) getWeeklyHours(ctx context.Context, executor DBExecutor, salonID string) (domain.WeeklyHours, error) {
	query, args, err := psqlbuilder.Select("weekday", "opens_at", "closes_at").
		From("salon_hours").
		Where(squirrel.Eq{"salon_id": salonID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getWeeklyHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getWeeklyHours - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	hours := make(domain.WeeklyHours)
	for rows.Next() {
		var (
			day domain.Weekday
			h   domain.DayHours
		)
		if err := rows.Scan(&day, &h.Open.Start, &h.Open.End); err != nil {
			return nil, fmt.Errorf("%w: getWeeklyHours - scan row: %w", ErrScanRow, err)
		}
		h.Breaks = []types.Interval{}
		hours[day] = h
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getWeeklyHours - rows error: %w", ErrScanRow, err)
	}

	breaks, err := r.getBreaks(ctx, executor, salonID, nil)
	if err != nil {
		return nil, err
	}
	for day, list := range breaks {
		h, ok := hours[day]
		if !ok {
			// Перерывы выходного дня не имеют смысла
			continue
		}
		h.Breaks = list
		hours[day] = h
	}

	return hours, nil
}

// getBreaks получает перерывы салона, опционально только за один день
func (r *Repository) getBreaks(ctx context.Context, executor DBExecutor, salonID string, weekday *domain.Weekday) (map[domain.Weekday][]types.Interval, error) {
	selectBuilder := psqlbuilder.Select("weekday", "starts_at", "ends_at").
		From("salon_breaks").
		Where(squirrel.Eq{"salon_id": salonID}).
		OrderBy("weekday ASC", "starts_at ASC")

	if weekday != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"weekday": string(*weekday)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getBreaks - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getBreaks - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	breaks := make(map[domain.Weekday][]types.Interval)
	for rows.Next() {
		var (
			day domain.Weekday
			b   types.Interval
		)
		if err := rows.Scan(&day, &b.Start, &b.End); err != nil {
			return nil, fmt.Errorf("%w: getBreaks - scan row: %w", ErrScanRow, err)
		}
		breaks[day] = append(breaks[day], b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getBreaks - rows error: %w", ErrScanRow, err)
	}

	return breaks, nil
}
