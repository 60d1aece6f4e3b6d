package update_salon_hours

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SalonBooking/internal/service/salons"
	"github.com/m04kA/SMC-SalonBooking/internal/service/salons/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

func setup(t *testing.T) (*mux.Router, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, store.AddSalon(domain.Salon{ID: "salon-1", OwnerID: "owner-1"}))

	svc := salons.NewService(store, memory.NewTxManager(store), logger.NewNop())
	r := mux.NewRouter()
	protected := r.PathPrefix("/api/v1").Subrouter()
	protected.Use(middleware.Auth)
	protected.HandleFunc("/salons/{salonId}/hours", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodPut)
	return r, store
}

func put(r *mux.Router, salonID, userID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, "/api/v1/salons/"+salonID+"/hours", strings.NewReader(body))
	req.Header.Set(middleware.UserIDHeader, userID)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Updated(t *testing.T) {
	r, store := setup(t)

	rec := put(r, "salon-1", "owner-1",
		`{"hours":{"monday":{"open":"09:00-18:00","breaks":["13:00-14:00"]},"Friday":{"open":"10:00-16:00"}}}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.HoursResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"monday", "friday"}, body.Weekdays)

	hours, err := store.GetDayHours(context.Background(), "salon-1", domain.Monday)
	require.NoError(t, err)
	assert.Equal(t, "09:00-18:00", hours.Open.String())
	assert.Len(t, hours.Breaks, 1)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		salonID    string
		userID     string
		body       string
		wantStatus int
	}{
		{"not owner", "salon-1", "cust-1", `{"hours":{"monday":{"open":"09:00-17:00"}}}`, http.StatusForbidden},
		{"unknown salon", "missing", "owner-1", `{"hours":{"monday":{"open":"09:00-17:00"}}}`, http.StatusNotFound},
		{"unknown weekday", "salon-1", "owner-1", `{"hours":{"funday":{"open":"09:00-17:00"}}}`, http.StatusBadRequest},
		{"break outside day", "salon-1", "owner-1", `{"hours":{"monday":{"open":"09:00-17:00","breaks":["08:00-09:30"]}}}`, http.StatusBadRequest},
		{"reversed interval", "salon-1", "owner-1", `{"hours":{"monday":{"open":"17:00-09:00"}}}`, http.StatusBadRequest},
		{"broken json", "salon-1", "owner-1", `{"hours":`, http.StatusBadRequest},
		{"no user", "salon-1", "", `{"hours":{}}`, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := setup(t)

			rec := put(r, tt.salonID, tt.userID, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
