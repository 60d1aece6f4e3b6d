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

// GetEmployee получает сотрудника салона вместе с его личными перерывами.
// Рабочее окно хранится строкой "HH:MM-HH:MM" и разбирается при чтении.
func (r *Repository) GetEmployee(ctx context.Context, salonID, employeeID string) (*domain.Employee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "salon_id", "name", "work_hours").
		From("employees").
		Where(squirrel.Eq{"id": employeeID, "salon_id": salonID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetEmployee - build select query: %v", ErrBuildQuery, err)
	}

	var e domain.Employee
	err = executor.QueryRowContext(ctx, query, args...).Scan(&e.ID, &e.SalonID, &e.Name, &e.WorkHours)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetEmployee - scan employee: %w", ErrScanRow, err)
	}

	query, args, err = psqlbuilder.Select("starts_at", "ends_at").
		From("employee_breaks").
		Where(squirrel.Eq{"employee_id": employeeID}).
		OrderBy("starts_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetEmployee - build breaks query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetEmployee - execute breaks query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	e.Breaks = make([]types.Interval, 0)
	for rows.Next() {
		var b types.Interval
		if err := rows.Scan(&b.Start, &b.End); err != nil {
			return nil, fmt.Errorf("%w: GetEmployee - scan break: %w", ErrScanRow, err)
		}
		e.Breaks = append(e.Breaks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetEmployee - rows error: %w", ErrScanRow, err)
	}

	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("%w: GetEmployee - employee=%s: %v", ErrInvalidRecord, employeeID, err)
	}

	return &e, nil
}

// GetService получает услугу салона
func (r *Repository) GetService(ctx context.Context, salonID, serviceID string) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "salon_id", "name", "duration_minutes", "price").
		From("services").
		Where(squirrel.Eq{"id": serviceID, "salon_id": salonID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Service
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.SalonID, &s.Name, &s.DurationMinutes, &s.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %w", ErrScanRow, err)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%w: GetService - service=%s: %v", ErrInvalidRecord, serviceID, err)
	}

	return &s, nil
}
