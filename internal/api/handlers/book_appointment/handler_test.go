package book_appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	bookAppointment "github.com/m04kA/SMC-SalonBooking/internal/usecase/book_appointment"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

const validBody = `{"salonId":"salon-1","employeeId":"emp-1","serviceId":"svc-30","date":"2026-01-28","startTime":"10:00"}`

type fakeUseCase struct {
	got *bookAppointment.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *bookAppointment.Request) (*bookAppointment.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	start := req.StartTime.On(req.Date)
	return &bookAppointment.Response{
		ID:              "appt-1",
		SalonID:         req.SalonID,
		EmployeeID:      req.EmployeeID,
		ServiceID:       req.ServiceID,
		CustomerID:      req.CustomerID,
		StartTime:       start,
		EndTime:         start.Add(30 * time.Minute),
		DurationMinutes: 30,
		CreatedAt:       start.Add(-time.Hour),
	}, nil
}

func serve(uc BookAppointmentUseCase, userID, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	protected := r.PathPrefix("/api/v1").Subrouter()
	protected.Use(middleware.Auth)
	protected.HandleFunc("/appointments", NewHandler(uc, logger.NewNop()).Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	if userID != "" {
		req.Header.Set(middleware.UserIDHeader, userID)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{}

	rec := serve(uc, "cust-1", validBody)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "cust-1", uc.got.CustomerID)
	assert.Equal(t, types.MustParseTimeOfDay("10:00"), uc.got.StartTime)

	var body AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "appt-1", body.ID)
	assert.Equal(t, "2026-01-28", body.Date)
	assert.Equal(t, "10:00", body.StartTime)
	assert.Equal(t, "10:30", body.EndTime)
}

func TestHandle_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `date=2026-01-28`},
		{"unknown field", `{"salonId":"salon-1","customerId":"someone-else"}`},
		{"bad date", `{"salonId":"salon-1","employeeId":"emp-1","serviceId":"svc-30","date":"28/01/2026","startTime":"10:00"}`},
		{"bad time", `{"salonId":"salon-1","employeeId":"emp-1","serviceId":"svc-30","date":"2026-01-28","startTime":"25:00"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{}

			rec := serve(uc, "cust-1", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, uc.got)
		})
	}
}

func TestHandle_Unauthorized(t *testing.T) {
	rec := serve(&fakeUseCase{}, "", validBody)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandle_UseCaseErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"slot taken", bookAppointment.ErrSlotNotAvailable, http.StatusConflict},
		{"day locked", bookAppointment.ErrSlotBusy, http.StatusConflict},
		{"employee not found", bookAppointment.ErrEmployeeNotFound, http.StatusNotFound},
		{"service not found", bookAppointment.ErrServiceNotFound, http.StatusNotFound},
		{"salon closed", bookAppointment.ErrSalonClosed, http.StatusNotFound},
		{"past date", bookAppointment.ErrInvalidDate, http.StatusBadRequest},
		{"too late", bookAppointment.ErrTooLateToBook, http.StatusBadRequest},
		{"invalid input", bookAppointment.ErrInvalidInput, http.StatusBadRequest},
		{"internal", bookAppointment.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, "cust-1", validBody)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
