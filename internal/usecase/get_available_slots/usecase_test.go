package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/availability"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// 2026-01-28 среда
var wednesday = time.Date(2026, 1, 28, 0, 0, 0, 0, time.UTC)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type recordedMetrics struct {
	mode  string
	count int
	calls int
}

func (m *recordedMetrics) ObserveSlots(mode string, count int) {
	m.mode, m.count = mode, count
	m.calls++
}

type failingAppointments struct{}

func (failingAppointments) ListByEmployee(context.Context, domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	return nil, errors.New("connection refused")
}

func newStore(t *testing.T, salonBreaks ...string) *memory.Store {
	t.Helper()
	breaks := make([]types.Interval, 0, len(salonBreaks))
	for _, b := range salonBreaks {
		breaks = append(breaks, types.MustParseInterval(b))
	}

	s := memory.NewStore()
	require.NoError(t, s.AddSalon(domain.Salon{
		ID:      "salon-1",
		OwnerID: "owner-1",
		Hours: domain.WeeklyHours{
			domain.Wednesday: {Open: types.MustParseInterval("09:00-17:00"), Breaks: breaks},
		},
	}))
	require.NoError(t, s.AddEmployee(domain.Employee{
		ID: "emp-1", SalonID: "salon-1", WorkHours: types.MustParseInterval("09:00-17:00"),
	}))
	require.NoError(t, s.AddService(domain.Service{ID: "svc-30", SalonID: "salon-1", DurationMinutes: 30}))
	require.NoError(t, s.AddService(domain.Service{ID: "svc-60", SalonID: "salon-1", DurationMinutes: 60}))
	return s
}

func newUseCase(s *memory.Store, opts Options, now time.Time) (*UseCase, *recordedMetrics) {
	m := &recordedMetrics{}
	uc := NewUseCase(s, s, opts, m, logger.NewNop())
	uc.timeProvider = fixedClock{now: now}
	return uc, m
}

func request(serviceID string, date time.Time) *Request {
	return &Request{SalonID: "salon-1", EmployeeID: "emp-1", ServiceID: serviceID, Date: date}
}

func TestExecute_ScenarioA(t *testing.T) {
	uc, m := newUseCase(newStore(t), Options{}, wednesday.Add(-24*time.Hour))

	resp, err := uc.Execute(context.Background(), request("svc-30", wednesday))

	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, "09:00", resp.Slots[0])
	assert.Equal(t, "16:30", resp.Slots[len(resp.Slots)-1])
	assert.Len(t, resp.Slots, 46)
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, string(availability.ModeExact), m.mode)
	assert.Equal(t, 46, m.count)
}

func TestExecute_ScenarioB(t *testing.T) {
	uc, _ := newUseCase(newStore(t, "12:00-13:00"), Options{}, wednesday.Add(-time.Hour))

	resp, err := uc.Execute(context.Background(), request("svc-60", wednesday))

	require.NoError(t, err)
	assert.NotContains(t, resp.Slots, "11:30")
	assert.NotContains(t, resp.Slots, "12:00")
	assert.Contains(t, resp.Slots, "11:00")
	assert.Contains(t, resp.Slots, "13:00")
}

func TestExecute_ScenarioC(t *testing.T) {
	s := newStore(t)
	_, err := s.Create(context.Background(), &domain.Appointment{
		SalonID:    "salon-1",
		EmployeeID: "emp-1",
		ServiceID:  "svc-30",
		CustomerID: "cust-1",
		StartTime:  wednesday.Add(10 * time.Hour),
		EndTime:    wednesday.Add(10*time.Hour + 30*time.Minute),
	})
	require.NoError(t, err)
	uc, _ := newUseCase(s, Options{}, wednesday.Add(-time.Hour))

	resp, err := uc.Execute(context.Background(), request("svc-30", wednesday))

	require.NoError(t, err)
	for _, busy := range []string{"09:40", "09:50", "10:00", "10:10", "10:20"} {
		assert.NotContains(t, resp.Slots, busy)
	}
	assert.Contains(t, resp.Slots, "09:30")
	assert.Contains(t, resp.Slots, "10:30")
}

func TestExecute_NextCandidateMode(t *testing.T) {
	uc, m := newUseCase(newStore(t), Options{Mode: availability.ModeNextCandidate}, wednesday.Add(-time.Hour))

	resp, err := uc.Execute(context.Background(), request("svc-30", wednesday))

	require.NoError(t, err)
	// на свободном дне соседний кандидат всегда ближе длительности услуги,
	// остаётся только последний кандидат сетки
	assert.Equal(t, []string{"16:50"}, resp.Slots)
	assert.Equal(t, string(availability.ModeNextCandidate), m.mode)
}

func TestExecute_DropsPastStartsToday(t *testing.T) {
	uc, _ := newUseCase(newStore(t), Options{}, wednesday.Add(11*time.Hour+5*time.Minute))

	resp, err := uc.Execute(context.Background(), request("svc-30", wednesday))

	require.NoError(t, err)
	assert.Equal(t, "11:10", resp.Slots[0])
}

func TestExecute_EmptyResults(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
		now  time.Time
	}{
		{
			name: "salon closed on weekday",
			req:  request("svc-30", wednesday.AddDate(0, 0, 4)),
			now:  wednesday,
		},
		{
			name: "unknown salon",
			req:  &Request{SalonID: "nope", EmployeeID: "emp-1", ServiceID: "svc-30", Date: wednesday},
			now:  wednesday.Add(-time.Hour),
		},
		{
			name: "unknown employee",
			req:  &Request{SalonID: "salon-1", EmployeeID: "emp-404", ServiceID: "svc-30", Date: wednesday},
			now:  wednesday.Add(-time.Hour),
		},
		{
			name: "unknown service",
			req:  request("svc-404", wednesday),
			now:  wednesday.Add(-time.Hour),
		},
		{
			name: "date in the past",
			req:  request("svc-30", wednesday),
			now:  wednesday.AddDate(0, 0, 1),
		},
		{
			name: "after closing today",
			req:  request("svc-30", wednesday),
			now:  wednesday.Add(17 * time.Hour),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, m := newUseCase(newStore(t), Options{}, tt.now)

			resp, err := uc.Execute(context.Background(), tt.req)

			require.NoError(t, err)
			assert.NotNil(t, resp.Slots)
			assert.Empty(t, resp.Slots)
			assert.Equal(t, 1, m.calls)
			assert.Zero(t, m.count)
		})
	}
}

func TestExecute_ServiceLongerThanDay(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.AddService(domain.Service{ID: "svc-long", SalonID: "salon-1", DurationMinutes: 9 * 60}))
	uc, _ := newUseCase(s, Options{}, wednesday.Add(-time.Hour))

	resp, err := uc.Execute(context.Background(), request("svc-long", wednesday))

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_Validation(t *testing.T) {
	uc, _ := newUseCase(newStore(t), Options{}, wednesday)

	tests := []struct {
		name string
		req  *Request
	}{
		{"missing salon", &Request{EmployeeID: "emp-1", ServiceID: "svc-30", Date: wednesday}},
		{"missing employee", &Request{SalonID: "salon-1", ServiceID: "svc-30", Date: wednesday}},
		{"missing service", &Request{SalonID: "salon-1", EmployeeID: "emp-1", Date: wednesday}},
		{"missing date", &Request{SalonID: "salon-1", EmployeeID: "emp-1", ServiceID: "svc-30"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)

			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestExecute_StorageFailure(t *testing.T) {
	s := newStore(t)
	uc := NewUseCase(s, failingAppointments{}, Options{}, nil, logger.NewNop())
	uc.timeProvider = fixedClock{now: wednesday.Add(-time.Hour)}

	_, err := uc.Execute(context.Background(), request("svc-30", wednesday))

	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_Idempotent(t *testing.T) {
	uc, _ := newUseCase(newStore(t, "12:00-12:30"), Options{}, wednesday.Add(-time.Hour))

	first, err := uc.Execute(context.Background(), request("svc-60", wednesday))
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), request("svc-60", wednesday))
	require.NoError(t, err)

	assert.Equal(t, first.Slots, second.Slots)
}

func TestExecute_SalonTimezone(t *testing.T) {
	plus3 := time.FixedZone("UTC+3", 3*60*60)
	// 08:30 UTC = 11:30 в поясе салона
	now := time.Date(2026, 1, 28, 8, 30, 0, 0, time.UTC)
	uc, _ := newUseCase(newStore(t), Options{Location: plus3}, now)

	resp, err := uc.Execute(context.Background(), request("svc-30", wednesday))

	require.NoError(t, err)
	assert.Equal(t, plus3, resp.Date.Location())
	assert.Equal(t, "11:30", resp.Slots[0])
}
