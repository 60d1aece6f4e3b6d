package book_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/events"
	"github.com/m04kA/SMC-SalonBooking/pkg/locker"
)

// SalonRepository интерфейс чтения часов работы, сотрудников и услуг салона
type SalonRepository interface {
	GetDayHours(ctx context.Context, salonID string, weekday domain.Weekday) (*domain.DayHours, error)
	GetEmployee(ctx context.Context, salonID, employeeID string) (*domain.Employee, error)
	GetService(ctx context.Context, salonID, serviceID string) (*domain.Service, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	ListByEmployee(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Locker блокировка по ключу (сотрудник, дата), общая для всех экземпляров сервиса
type Locker interface {
	Obtain(ctx context.Context, key string) (locker.ReleaseFunc, error)
}

// EventPublisher интерфейс публикации событий о записях
type EventPublisher interface {
	PublishAppointmentBooked(ctx context.Context, event events.AppointmentBooked) error
	Topic() string
}

// Metrics интерфейс метрик записи
type Metrics interface {
	ObserveBooking(outcome string)
	ObserveLockWait(acquired bool, elapsed time.Duration)
	ObserveEventFailure(topic string)
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

func (noopMetrics) ObserveBooking(string) {}
func (noopMetrics) ObserveLockWait(bool, time.Duration) {}
func (noopMetrics) ObserveEventFailure(string) {}
