package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-SalonBooking/internal/availability"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Options параметры сетки слотов
type Options struct {
	Step     time.Duration     // шаг сетки, по умолчанию domain.DefaultSlotStep
	Mode     availability.Mode // режим отбора по длительности услуги
	Location *time.Location    // часовой пояс салонов, по умолчанию UTC
}

// UseCase use case для получения доступных слотов для записи
type UseCase struct {
	salonRepo       SalonRepository
	appointmentRepo AppointmentRepository
	opts            Options
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	salonRepo SalonRepository,
	appointmentRepo AppointmentRepository,
	opts Options,
	metrics Metrics,
	logger Logger,
) *UseCase {
	if opts.Step <= 0 {
		opts.Step = domain.DefaultSlotStep
	}
	if opts.Mode == "" {
		opts.Mode = availability.ModeExact
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}

	return &UseCase{
		salonRepo:       salonRepo,
		appointmentRepo: appointmentRepo,
		opts:            opts,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов.
// Если салон в этот день закрыт или сотрудник, услуга не найдены, возвращается пустой список.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: salon=%s, employee=%s, service=%s, date=%s",
		req.SalonID, req.EmployeeID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время и привязываем дату к поясу салона
	now := uc.timeProvider.Now()
	y, m, d := req.Date.Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, uc.opts.Location)

	response := &Response{
		Date:       date,
		SalonID:    req.SalonID,
		EmployeeID: req.EmployeeID,
		ServiceID:  req.ServiceID,
		Slots:      []string{},
	}

	// 3. Прошедшая дата - пустой список
	if isDateInPast(date, now) {
		uc.logger.Info("GetAvailableSlots: date %s is in the past", date.Format(domain.DateFormat))
		uc.metrics.ObserveSlots(string(uc.opts.Mode), 0)
		return response, nil
	}

	// 4. Загружаем часы салона, сотрудника, услугу и записи параллельно
	var (
		hours        *domain.DayHours
		employee     *domain.Employee
		service      *domain.Service
		appointments []*domain.Appointment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		hours, err = uc.salonRepo.GetDayHours(gctx, req.SalonID, domain.WeekdayOf(date))
		return err
	})
	g.Go(func() error {
		var err error
		employee, err = uc.salonRepo.GetEmployee(gctx, req.SalonID, req.EmployeeID)
		return err
	})
	g.Go(func() error {
		var err error
		service, err = uc.salonRepo.GetService(gctx, req.SalonID, req.ServiceID)
		return err
	})
	g.Go(func() error {
		from, to := domain.DayRange(date)
		var err error
		appointments, err = uc.appointmentRepo.ListByEmployee(gctx, domain.AppointmentsFilter{
			SalonID:    req.SalonID,
			EmployeeID: req.EmployeeID,
			From:       from,
			To:         to,
		})
		return err
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Info("GetAvailableSlots: nothing to offer for salon=%s, employee=%s, service=%s: %v",
				req.SalonID, req.EmployeeID, req.ServiceID, err)
			uc.metrics.ObserveSlots(string(uc.opts.Mode), 0)
			return response, nil
		}
		uc.logger.Error("GetAvailableSlots: failed to load day context: %v", err)
		return nil, fmt.Errorf("%w: failed to load day context: %v", ErrInternal, err)
	}

	// 5. Строим контекст дня и считаем слоты
	day := availability.NewDay(date, *hours, employee, appointments)
	response.DurationMinutes = service.DurationMinutes
	response.Slots = availability.Labels(day.Slots(service.Duration(), availability.Options{
		Step: uc.opts.Step,
		Mode: uc.opts.Mode,
		Now:  now,
	}))

	uc.metrics.ObserveSlots(string(uc.opts.Mode), len(response.Slots))
	uc.logger.Info("GetAvailableSlots: generated %d slots for salon=%s, employee=%s, service=%s, date=%s",
		len(response.Slots), req.SalonID, req.EmployeeID, req.ServiceID, date.Format(domain.DateFormat))

	return response, nil
}
