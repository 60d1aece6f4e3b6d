package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/salon"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Store хранилище салонов и записей в памяти процесса.
// Реализует те же методы, что и репозитории salon и appointment,
// и возвращает их ошибки, поэтому use case не различает драйверы.
type Store struct {
	mu           sync.RWMutex
	salons       map[string]*domain.Salon
	employees    map[string]*domain.Employee
	services     map[string]*domain.Service
	appointments map[string]*domain.Appointment
	byEmployee   map[string][]*domain.Appointment

	txMu sync.Mutex
	now  func() time.Time
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		salons:       make(map[string]*domain.Salon),
		employees:    make(map[string]*domain.Employee),
		services:     make(map[string]*domain.Service),
		appointments: make(map[string]*domain.Appointment),
		byEmployee:   make(map[string][]*domain.Appointment),
		now:          time.Now,
	}
}

// AddSalon добавляет или заменяет салон
func (s *Store) AddSalon(sl domain.Salon) error {
	if sl.ID == "" {
		return fmt.Errorf("%w: salon id is required", domain.ErrValidation)
	}
	if err := sl.Hours.Validate(); err != nil {
		return fmt.Errorf("salon %s: %w", sl.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sl.Hours = copyWeeklyHours(sl.Hours)
	s.salons[sl.ID] = &sl
	return nil
}

// AddEmployee добавляет или заменяет сотрудника существующего салона
func (s *Store) AddEmployee(e domain.Employee) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("employee %s: %w", e.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.salons[e.SalonID]; !ok {
		return fmt.Errorf("employee %s: %w", e.ID, salon.ErrSalonNotFound)
	}
	e.Breaks = slices.Clone(e.Breaks)
	s.employees[e.ID] = &e
	return nil
}

// AddService добавляет или заменяет услугу существующего салона
func (s *Store) AddService(svc domain.Service) error {
	if err := svc.Validate(); err != nil {
		return fmt.Errorf("service %s: %w", svc.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.salons[svc.SalonID]; !ok {
		return fmt.Errorf("service %s: %w", svc.ID, salon.ErrSalonNotFound)
	}
	s.services[svc.ID] = &svc
	return nil
}

// GetSalon получает салон вместе с недельным расписанием
func (s *Store) GetSalon(_ context.Context, salonID string) (*domain.Salon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sl, ok := s.salons[salonID]
	if !ok {
		return nil, salon.ErrSalonNotFound
	}
	result := *sl
	result.Hours = copyWeeklyHours(sl.Hours)
	return &result, nil
}

// GetDayHours получает часы работы салона на день недели
func (s *Store) GetDayHours(_ context.Context, salonID string, weekday domain.Weekday) (*domain.DayHours, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sl, ok := s.salons[salonID]
	if !ok {
		return nil, salon.ErrHoursNotFound
	}
	h, ok := sl.Hours[weekday]
	if !ok {
		return nil, salon.ErrHoursNotFound
	}
	h.Breaks = cloneBreaks(h.Breaks)
	return &h, nil
}

// ReplaceHours заменяет расписание салона целиком
func (s *Store) ReplaceHours(_ context.Context, salonID string, hours domain.WeeklyHours) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sl, ok := s.salons[salonID]
	if !ok {
		return salon.ErrSalonNotFound
	}
	sl.Hours = copyWeeklyHours(hours)
	return nil
}

// GetEmployee получает сотрудника салона
func (s *Store) GetEmployee(_ context.Context, salonID, employeeID string) (*domain.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.employees[employeeID]
	if !ok || e.SalonID != salonID {
		return nil, salon.ErrEmployeeNotFound
	}
	result := *e
	result.Breaks = cloneBreaks(e.Breaks)
	return &result, nil
}

// GetService получает услугу салона
func (s *Store) GetService(_ context.Context, salonID, serviceID string) (*domain.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	svc, ok := s.services[serviceID]
	if !ok || svc.SalonID != salonID {
		return nil, salon.ErrServiceNotFound
	}
	result := *svc
	return &result, nil
}

// Create сохраняет запись, если она не пересекается с записями того же сотрудника.
// Проверка и вставка выполняются под одной блокировкой.
func (s *Store) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.byEmployee[a.EmployeeID] {
		if existing.Overlaps(a.StartTime, a.EndTime) {
			return nil, fmt.Errorf("%w: employee=%s %s-%s", appointment.ErrOverlap, a.EmployeeID,
				a.StartTime.Format(domain.TimeFormat), a.EndTime.Format(domain.TimeFormat))
		}
	}

	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.CreatedAt = s.now()

	stored := *a
	s.appointments[stored.ID] = &stored

	list := append(s.byEmployee[a.EmployeeID], &stored)
	slices.SortFunc(list, func(x, y *domain.Appointment) int {
		return x.StartTime.Compare(y.StartTime)
	})
	s.byEmployee[a.EmployeeID] = list

	return a, nil
}

// GetByID получает запись по ID
func (s *Store) GetByID(_ context.Context, id string) (*domain.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.appointments[id]
	if !ok {
		return nil, appointment.ErrAppointmentNotFound
	}
	result := *a
	return &result, nil
}

// ListByEmployee получает записи сотрудника, пересекающиеся с периодом [From, To),
// по возрастанию времени начала
func (s *Store) ListByEmployee(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Appointment, 0)
	for _, a := range s.byEmployee[filter.EmployeeID] {
		if a.SalonID != filter.SalonID || !a.Overlaps(filter.From, filter.To) {
			continue
		}
		c := *a
		result = append(result, &c)
	}
	return result, nil
}

func cloneBreaks(breaks []types.Interval) []types.Interval {
	if breaks == nil {
		return []types.Interval{}
	}
	return slices.Clone(breaks)
}

func copyWeeklyHours(hours domain.WeeklyHours) domain.WeeklyHours {
	result := make(domain.WeeklyHours, len(hours))
	for day, h := range hours {
		h.Breaks = cloneBreaks(h.Breaks)
		result[day] = h
	}
	return result
}
