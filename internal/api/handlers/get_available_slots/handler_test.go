package get_available_slots

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type fakeUseCase struct {
	got  *getAvailableSlots.Request
	resp *getAvailableSlots.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.got = req
	return f.resp, f.err
}

func serve(uc GetAvailableSlotsUseCase, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/salons/{salonId}/employees/{employeeId}/available-slots",
		NewHandler(uc, logger.NewNop()).Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_Success(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{
		Date:            time.Date(2026, 1, 28, 0, 0, 0, 0, time.UTC),
		SalonID:         "salon-1",
		EmployeeID:      "emp-1",
		ServiceID:       "svc-30",
		DurationMinutes: 30,
		Slots:           []string{"09:00", "09:10"},
	}}

	rec := serve(uc, "/api/v1/salons/salon-1/employees/emp-1/available-slots?serviceId=svc-30&date=2026-01-28")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "salon-1", uc.got.SalonID)
	assert.Equal(t, "emp-1", uc.got.EmployeeID)
	assert.Equal(t, "svc-30", uc.got.ServiceID)

	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2026-01-28", body.Date)
	assert.Equal(t, []string{"09:00", "09:10"}, body.Slots)
	assert.Equal(t, 30, body.DurationMinutes)
}

func TestHandle_EmptySlotsIsArray(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{
		Date:  time.Date(2026, 1, 28, 0, 0, 0, 0, time.UTC),
		Slots: []string{},
	}}

	rec := serve(uc, "/api/v1/salons/salon-1/employees/emp-1/available-slots?serviceId=svc-30&date=2026-01-28")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"slots":[]`)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		err        error
		wantStatus int
	}{
		{
			name:       "missing service",
			target:     "/api/v1/salons/salon-1/employees/emp-1/available-slots?date=2026-01-28",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing date",
			target:     "/api/v1/salons/salon-1/employees/emp-1/available-slots?serviceId=svc-30",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "bad date",
			target:     "/api/v1/salons/salon-1/employees/emp-1/available-slots?serviceId=svc-30&date=28.01.2026",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "use case validation",
			target:     "/api/v1/salons/salon-1/employees/emp-1/available-slots?serviceId=svc-30&date=2026-01-28",
			err:        getAvailableSlots.ErrInvalidInput,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "internal",
			target:     "/api/v1/salons/salon-1/employees/emp-1/available-slots?serviceId=svc-30&date=2026-01-28",
			err:        errors.Join(getAvailableSlots.ErrInternal, errors.New("db down")),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, tt.target)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
