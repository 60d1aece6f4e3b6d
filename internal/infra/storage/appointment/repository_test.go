package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
)

var day = time.Date(2026, 1, 28, 0, 0, 0, 0, time.UTC)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(dbmetrics.Wrap(db, nil)), mock
}

func newAppointment() *domain.Appointment {
	return &domain.Appointment{
		SalonID:    "salon-1",
		EmployeeID: "emp-1",
		ServiceID:  "svc-1",
		CustomerID: "cust-1",
		StartTime:  day.Add(10 * time.Hour),
		EndTime:    day.Add(10*time.Hour + 30*time.Minute),
	}
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newMock(t)
	created := time.Date(2026, 1, 20, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO appointments .* RETURNING created_at`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	a, err := repo.Create(context.Background(), newAppointment())

	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, created, a.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_Conflict(t *testing.T) {
	tests := []struct {
		name string
		code pq.ErrorCode
	}{
		{"exclusion violation", "23P01"},
		{"serialization failure", "40001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMock(t)
			mock.ExpectQuery(`INSERT INTO appointments`).WillReturnError(&pq.Error{Code: tt.code})

			_, err := repo.Create(context.Background(), newAppointment())

			assert.ErrorIs(t, err, ErrOverlap)
			assert.ErrorIs(t, err, domain.ErrConflict)
		})
	}
}

func TestRepository_Create_OtherError(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery(`INSERT INTO appointments`).WillReturnError(errors.New("connection reset"))

	_, err := repo.Create(context.Background(), newAppointment())

	assert.ErrorIs(t, err, ErrExecQuery)
	assert.NotErrorIs(t, err, domain.ErrConflict)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery(`SELECT .* FROM appointments WHERE id = \$1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.GetByID(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := newMock(t)
	a := newAppointment()
	mock.ExpectQuery(`SELECT .* FROM appointments WHERE id = \$1`).
		WithArgs("a-1").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("a-1", a.SalonID, a.EmployeeID, a.ServiceID, a.CustomerID, a.StartTime, a.EndTime, day))

	got, err := repo.GetByID(context.Background(), "a-1")

	require.NoError(t, err)
	assert.Equal(t, "a-1", got.ID)
	assert.Equal(t, a.StartTime, got.StartTime)
	assert.Equal(t, a.EndTime, got.EndTime)
}

func TestRepository_ListByEmployee_LocksInsideTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(dbmetrics.Wrap(db, nil))
	a := newAppointment()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM appointments WHERE .* ORDER BY start_time ASC FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("a-1", a.SalonID, a.EmployeeID, a.ServiceID, a.CustomerID, a.StartTime, a.EndTime, day))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	from, to := domain.DayRange(day)
	list, err := repo.ListByEmployee(dbmetrics.WithTx(context.Background(), tx), domain.AppointmentsFilter{
		SalonID:    a.SalonID,
		EmployeeID: a.EmployeeID,
		From:       from,
		To:         to,
	})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	require.Len(t, list, 1)
	assert.Equal(t, "a-1", list[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByEmployee_NoLockOutsideTransaction(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT .* FROM appointments WHERE .* ORDER BY start_time ASC$`).
		WillReturnRows(sqlmock.NewRows(columns))

	from, to := domain.DayRange(day)
	list, err := repo.ListByEmployee(context.Background(), domain.AppointmentsFilter{
		SalonID: "salon-1", EmployeeID: "emp-1", From: from, To: to,
	})

	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByEmployee_SerializationFailure(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery(`SELECT .* FROM appointments`).WillReturnError(&pq.Error{Code: "40001"})

	from, to := domain.DayRange(day)
	_, err := repo.ListByEmployee(context.Background(), domain.AppointmentsFilter{
		SalonID: "salon-1", EmployeeID: "emp-1", From: from, To: to,
	})

	assert.ErrorIs(t, err, ErrExecQuery)
	assert.True(t, IsConflict(err))
}

func TestIsConflict(t *testing.T) {
	assert.True(t, IsConflict(&pq.Error{Code: "40001"}))
	assert.True(t, IsConflict(ErrOverlap))
	assert.False(t, IsConflict(&pq.Error{Code: "23503"}))
	assert.False(t, IsConflict(errors.New("boom")))
}
