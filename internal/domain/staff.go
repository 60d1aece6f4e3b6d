package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Employee сотрудник салона. Рабочее окно одно на все дни недели.
type Employee struct {
	ID        string
	SalonID   string
	Name      string
	WorkHours types.Interval
	Breaks    []types.Interval // личные перерывы сотрудника, действуют вместе с перерывами салона
}

// Validate проверяет рабочее окно и перерывы сотрудника
func (e *Employee) Validate() error {
	if err := e.WorkHours.Validate(); err != nil {
		return fmt.Errorf("%w: work hours: %v", ErrValidation, err)
	}
	for _, b := range e.Breaks {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("%w: employee break %s: %v", ErrValidation, b, err)
		}
	}
	return nil
}

// Service услуга салона
type Service struct {
	ID              string
	SalonID         string
	Name            string
	DurationMinutes int
	Price           float64
}

// Duration длительность услуги
func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

// Validate проверяет длительность услуги
func (s *Service) Validate() error {
	if s.DurationMinutes < MinServiceDurationMinutes {
		return fmt.Errorf("%w: service duration must be at least %d minute", ErrValidation, MinServiceDurationMinutes)
	}
	if s.DurationMinutes > MaxServiceDurationMinutes {
		return fmt.Errorf("%w: service duration must be at most %d minutes", ErrValidation, MaxServiceDurationMinutes)
	}
	if s.Price < 0 {
		return fmt.Errorf("%w: service price must not be negative", ErrValidation)
	}
	return nil
}
