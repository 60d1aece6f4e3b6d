package salon

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(dbmetrics.Wrap(db, nil)), mock
}

func TestRepository_GetDayHours(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT opens_at, closes_at FROM salon_hours`).
		WillReturnRows(sqlmock.NewRows([]string{"opens_at", "closes_at"}).AddRow("09:00", "17:00"))
	mock.ExpectQuery(`SELECT weekday, starts_at, ends_at FROM salon_breaks`).
		WillReturnRows(sqlmock.NewRows([]string{"weekday", "starts_at", "ends_at"}).
			AddRow("wednesday", "12:00", "13:00"))

	hours, err := repo.GetDayHours(context.Background(), "salon-1", domain.Wednesday)

	require.NoError(t, err)
	assert.Equal(t, types.MustParseInterval("09:00-17:00"), hours.Open)
	assert.Equal(t, []types.Interval{types.MustParseInterval("12:00-13:00")}, hours.Breaks)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetDayHours_Closed(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT opens_at, closes_at FROM salon_hours`).
		WillReturnRows(sqlmock.NewRows([]string{"opens_at", "closes_at"}))

	_, err := repo.GetDayHours(context.Background(), "salon-1", domain.Sunday)

	assert.ErrorIs(t, err, ErrHoursNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepository_GetDayHours_KeepsDriverError(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT opens_at, closes_at FROM salon_hours`).
		WillReturnError(&pq.Error{Code: "40001"})

	_, err := repo.GetDayHours(context.Background(), "salon-1", domain.Wednesday)

	assert.ErrorIs(t, err, ErrScanRow)
	var pqErr *pq.Error
	require.ErrorAs(t, err, &pqErr)
	assert.Equal(t, pq.ErrorCode("40001"), pqErr.Code)
}

func TestRepository_GetDayHours_BreakOutsideHours(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT opens_at, closes_at FROM salon_hours`).
		WillReturnRows(sqlmock.NewRows([]string{"opens_at", "closes_at"}).AddRow("09:00", "17:00"))
	mock.ExpectQuery(`SELECT weekday, starts_at, ends_at FROM salon_breaks`).
		WillReturnRows(sqlmock.NewRows([]string{"weekday", "starts_at", "ends_at"}).
			AddRow("monday", "17:30", "18:00"))

	_, err := repo.GetDayHours(context.Background(), "salon-1", domain.Monday)

	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestRepository_GetSalon(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT id, owner_id, name FROM salons`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "name"}).AddRow("salon-1", "owner-1", "Salon"))
	mock.ExpectQuery(`SELECT weekday, opens_at, closes_at FROM salon_hours`).
		WillReturnRows(sqlmock.NewRows([]string{"weekday", "opens_at", "closes_at"}).
			AddRow("monday", "09:00", "17:00").
			AddRow("tuesday", "10:00", "18:00"))
	mock.ExpectQuery(`SELECT weekday, starts_at, ends_at FROM salon_breaks`).
		WillReturnRows(sqlmock.NewRows([]string{"weekday", "starts_at", "ends_at"}).
			AddRow("monday", "12:00", "13:00").
			AddRow("sunday", "12:00", "13:00"))

	s, err := repo.GetSalon(context.Background(), "salon-1")

	require.NoError(t, err)
	assert.Equal(t, "owner-1", s.OwnerID)
	require.Len(t, s.Hours, 2)
	assert.Len(t, s.Hours[domain.Monday].Breaks, 1)
	assert.Empty(t, s.Hours[domain.Tuesday].Breaks)
	_, sunday := s.Hours[domain.Sunday]
	assert.False(t, sunday)
}

func TestRepository_GetSalon_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT id, owner_id, name FROM salons`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "name"}))

	_, err := repo.GetSalon(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrSalonNotFound)
}

func TestRepository_ReplaceHours(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(`DELETE FROM salon_breaks`).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM salon_hours`).WillReturnResult(sqlmock.NewResult(0, 7))
	mock.ExpectExec(`INSERT INTO salon_hours`).
		WithArgs("salon-1", "monday", "09:00", "17:00", "salon-1", "friday", "10:00", "16:00").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`INSERT INTO salon_breaks`).
		WithArgs("salon-1", "monday", "12:00", "13:00").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.ReplaceHours(context.Background(), "salon-1", domain.WeeklyHours{
		domain.Friday: {Open: types.MustParseInterval("10:00-16:00")},
		domain.Monday: {
			Open:   types.MustParseInterval("09:00-17:00"),
			Breaks: []types.Interval{types.MustParseInterval("12:00-13:00")},
		},
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetEmployee(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT id, salon_id, name, work_hours FROM employees`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "salon_id", "name", "work_hours"}).
			AddRow("emp-1", "salon-1", "Anna", "10:00-18:00"))
	mock.ExpectQuery(`SELECT starts_at, ends_at FROM employee_breaks`).
		WillReturnRows(sqlmock.NewRows([]string{"starts_at", "ends_at"}).AddRow("14:00", "14:30"))

	e, err := repo.GetEmployee(context.Background(), "salon-1", "emp-1")

	require.NoError(t, err)
	assert.Equal(t, types.MustParseInterval("10:00-18:00"), e.WorkHours)
	assert.Equal(t, []types.Interval{types.MustParseInterval("14:00-14:30")}, e.Breaks)
}

func TestRepository_GetService_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT id, salon_id, name, duration_minutes, price FROM services`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "salon_id", "name", "duration_minutes", "price"}))

	_, err := repo.GetService(context.Background(), "salon-1", "svc-404")

	assert.ErrorIs(t, err, ErrServiceNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
