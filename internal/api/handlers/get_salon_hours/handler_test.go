package get_salon_hours

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SalonBooking/internal/service/salons"
	"github.com/m04kA/SMC-SalonBooking/internal/service/salons/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

func serve(t *testing.T, salonID string) *httptest.ResponseRecorder {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, store.AddSalon(domain.Salon{
		ID:      "configured",
		OwnerID: "owner-1",
		Hours: domain.WeeklyHours{
			domain.Monday: {Open: types.MustParseInterval("10:00-19:00"), Breaks: []types.Interval{}},
		},
	}))
	require.NoError(t, store.AddSalon(domain.Salon{ID: "fresh", OwnerID: "owner-1"}))

	svc := salons.NewService(store, memory.NewTxManager(store), logger.NewNop())
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/salons/{salonId}/hours", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/salons/"+salonID+"/hours", nil))
	return rec
}

func TestHandle_Configured(t *testing.T) {
	rec := serve(t, "configured")

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.HoursResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.IsDefault)
	assert.Equal(t, []string{"monday"}, body.Weekdays)
	assert.Equal(t, "10:00-19:00", body.Hours["monday"].Open.String())
}

func TestHandle_DefaultHours(t *testing.T) {
	rec := serve(t, "fresh")

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.HoursResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.IsDefault)
	assert.Len(t, body.Hours, 7)
}

func TestHandle_NotFound(t *testing.T) {
	rec := serve(t, "missing")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
