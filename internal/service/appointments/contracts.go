package appointments

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	ListByEmployee(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// SalonRepository интерфейс репозитория салонов (для проверки владельца)
type SalonRepository interface {
	GetSalon(ctx context.Context, salonID string) (*domain.Salon, error)
	GetEmployee(ctx context.Context, salonID, employeeID string) (*domain.Employee, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
