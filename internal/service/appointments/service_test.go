package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SalonBooking/internal/service/appointments/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

var wednesday = time.Date(2026, 1, 28, 0, 0, 0, 0, time.UTC)

func newService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	s := memory.NewStore()
	require.NoError(t, s.AddSalon(domain.Salon{ID: "salon-1", OwnerID: "owner-1"}))
	require.NoError(t, s.AddEmployee(domain.Employee{
		ID: "emp-1", SalonID: "salon-1", WorkHours: types.MustParseInterval("09:00-17:00"),
	}))
	return NewService(s, s, time.UTC, logger.NewNop()), s
}

func book(t *testing.T, s *memory.Store, start time.Time) *domain.Appointment {
	t.Helper()
	a, err := s.Create(context.Background(), &domain.Appointment{
		SalonID:    "salon-1",
		EmployeeID: "emp-1",
		ServiceID:  "svc-1",
		CustomerID: "cust-1",
		StartTime:  start,
		EndTime:    start.Add(45 * time.Minute),
	})
	require.NoError(t, err)
	return a
}

func TestGetByID(t *testing.T) {
	svc, store := newService(t)
	a := book(t, store, wednesday.Add(10*time.Hour))

	tests := []struct {
		name    string
		userID  string
		wantErr error
	}{
		{"customer", "cust-1", nil},
		{"salon owner", "owner-1", nil},
		{"stranger", "cust-2", domain.ErrAccessDenied},
		{"anonymous", "", domain.ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.GetByID(context.Background(), a.ID, tt.userID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "2026-01-28", resp.Date)
			assert.Equal(t, "10:00", resp.StartTime)
			assert.Equal(t, "10:45", resp.EndTime)
			assert.Equal(t, 45, resp.DurationMinutes)
		})
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.GetByID(context.Background(), "missing", "cust-1")

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestListEmployeeDay(t *testing.T) {
	svc, store := newService(t)
	book(t, store, wednesday.Add(15*time.Hour))
	book(t, store, wednesday.Add(9*time.Hour))
	book(t, store, wednesday.AddDate(0, 0, 1).Add(9*time.Hour))

	resp, err := svc.ListEmployeeDay(context.Background(), &models.ListEmployeeDayRequest{
		UserID: "owner-1", SalonID: "salon-1", EmployeeID: "emp-1", Date: wednesday,
	})

	require.NoError(t, err)
	require.Equal(t, 2, resp.Total)
	assert.Equal(t, "09:00", resp.Appointments[0].StartTime)
	assert.Equal(t, "15:00", resp.Appointments[1].StartTime)
}

func TestListEmployeeDay_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     *models.ListEmployeeDayRequest
		wantErr error
	}{
		{
			name:    "not an owner",
			req:     &models.ListEmployeeDayRequest{UserID: "cust-1", SalonID: "salon-1", EmployeeID: "emp-1", Date: wednesday},
			wantErr: ErrAccessDenied,
		},
		{
			name:    "unknown salon",
			req:     &models.ListEmployeeDayRequest{UserID: "owner-1", SalonID: "nope", EmployeeID: "emp-1", Date: wednesday},
			wantErr: ErrSalonNotFound,
		},
		{
			name:    "unknown employee",
			req:     &models.ListEmployeeDayRequest{UserID: "owner-1", SalonID: "salon-1", EmployeeID: "emp-404", Date: wednesday},
			wantErr: ErrEmployeeNotFound,
		},
		{
			name:    "missing date",
			req:     &models.ListEmployeeDayRequest{UserID: "owner-1", SalonID: "salon-1", EmployeeID: "emp-1"},
			wantErr: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService(t)

			_, err := svc.ListEmployeeDay(context.Background(), tt.req)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
