package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// SalonRepository интерфейс чтения часов работы, сотрудников и услуг салона
type SalonRepository interface {
	GetDayHours(ctx context.Context, salonID string, weekday domain.Weekday) (*domain.DayHours, error)
	GetEmployee(ctx context.Context, salonID, employeeID string) (*domain.Employee, error)
	GetService(ctx context.Context, salonID, serviceID string) (*domain.Service, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// ListByEmployee получает записи сотрудника, пересекающиеся с периодом
	ListByEmployee(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// Metrics интерфейс метрик выдачи слотов
type Metrics interface {
	ObserveSlots(mode string, count int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

type noopMetrics struct{}

func (noopMetrics) ObserveSlots(string, int) {}
