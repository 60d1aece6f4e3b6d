package book_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-SalonBooking/internal/availability"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/events"
	"github.com/m04kA/SMC-SalonBooking/pkg/locker"
	"github.com/m04kA/SMC-SalonBooking/pkg/metrics"
)

// UseCase use case для создания записи к сотруднику
type UseCase struct {
	salonRepo       SalonRepository
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	locker          Locker
	publisher       EventPublisher
	metrics         Metrics
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case.
// publisher и metrics могут быть nil, location по умолчанию UTC.
func NewUseCase(
	salonRepo SalonRepository,
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	lock Locker,
	publisher EventPublisher,
	bookingMetrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	if bookingMetrics == nil {
		bookingMetrics = noopMetrics{}
	}
	if location == nil {
		location = time.UTC
	}

	return &UseCase{
		salonRepo:       salonRepo,
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		locker:          lock,
		publisher:       publisher,
		metrics:         bookingMetrics,
		location:        location,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи.
// Запись создаётся, только если окно [start, start+длительность) свободно по свежему состоянию;
// проверка и вставка выполняются под блокировкой дня сотрудника в сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookAppointment: customer=%s, salon=%s, employee=%s, service=%s, date=%s, time=%s",
		req.CustomerID, req.SalonID, req.EmployeeID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookAppointment: validation failed: %v", err)
		return nil, uc.reject(err)
	}

	// 2. Получаем текущее время и проверяем дату
	now := uc.timeProvider.Now()
	y, m, d := req.Date.Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, uc.location)

	if isDateInPast(date, now) {
		uc.logger.Warn("BookAppointment: date %s is in the past", date.Format(domain.DateFormat))
		return nil, uc.reject(ErrInvalidDate)
	}

	// 3. Получаем сотрудника и услугу
	var (
		employee *domain.Employee
		service  *domain.Service
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		employee, err = uc.salonRepo.GetEmployee(gctx, req.SalonID, req.EmployeeID)
		if errors.Is(err, domain.ErrNotFound) {
			return ErrEmployeeNotFound
		}
		return err
	})
	g.Go(func() error {
		var err error
		service, err = uc.salonRepo.GetService(gctx, req.SalonID, req.ServiceID)
		if errors.Is(err, domain.ErrNotFound) {
			return ErrServiceNotFound
		}
		return err
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("BookAppointment: %v (salon=%s, employee=%s, service=%s)",
				err, req.SalonID, req.EmployeeID, req.ServiceID)
			return nil, uc.reject(err)
		}
		uc.logger.Error("BookAppointment: failed to load employee and service: %v", err)
		return nil, uc.fail(fmt.Errorf("%w: failed to load employee and service: %v", ErrInternal, err))
	}

	// 4. Вычисляем окно записи
	start := req.StartTime.On(date)
	window := availability.NewWindow(start, service.Duration())

	if start.Before(now) {
		uc.logger.Warn("BookAppointment: start %s is before now %s", start.Format(time.RFC3339), now.Format(time.RFC3339))
		return nil, uc.reject(ErrTooLateToBook)
	}

	// 5. Блокируем день сотрудника
	release, err := uc.obtainLock(ctx, lockKey(req.EmployeeID, date))
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			uc.logger.Warn("BookAppointment: failed to release lock for employee=%s: %v", req.EmployeeID, err)
		}
	}()

	// Переменная для хранения результата
	var result *domain.Appointment

	// 6. Проверяем окно по свежему состоянию и сохраняем запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Часы салона на день недели
		hours, err := uc.salonRepo.GetDayHours(txCtx, req.SalonID, domain.WeekdayOf(date))
		if err != nil {
			if appointmentRepo.IsConflict(err) {
				return err
			}
			if errors.Is(err, domain.ErrNotFound) {
				uc.logger.Warn("BookAppointment: salon=%s is closed on %s", req.SalonID, domain.WeekdayOf(date))
				return ErrSalonClosed
			}
			uc.logger.Error("BookAppointment: failed to get salon hours: %v", err)
			return fmt.Errorf("%w: failed to get salon hours: %v", ErrInternal, err)
		}

		// 6.2. Записи сотрудника на этот день с блокировкой (FOR UPDATE)
		from, to := domain.DayRange(date)
		appointments, err := uc.appointmentRepo.ListByEmployee(txCtx, domain.AppointmentsFilter{
			SalonID:    req.SalonID,
			EmployeeID: req.EmployeeID,
			From:       from,
			To:         to,
		})
		if err != nil {
			if appointmentRepo.IsConflict(err) {
				return err
			}
			uc.logger.Error("BookAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 6.3. Проверяем окно целиком
		day := availability.NewDay(date, *hours, employee, appointments)
		if err := day.Check(window); err != nil {
			uc.logger.Warn("BookAppointment: slot %s-%s is not available: %v",
				window.Start.Format(domain.TimeFormat), window.End.Format(domain.TimeFormat), err)
			return fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
		}

		// 6.4. Сохраняем запись
		created, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			SalonID:    req.SalonID,
			EmployeeID: req.EmployeeID,
			ServiceID:  req.ServiceID,
			CustomerID: req.CustomerID,
			StartTime:  window.Start,
			EndTime:    window.End,
		})
		if err != nil {
			if appointmentRepo.IsConflict(err) {
				uc.logger.Warn("BookAppointment: concurrent booking won the slot: %v", err)
				return fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
			}
			uc.logger.Error("BookAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, uc.classify(err)
	}

	uc.logger.Info("BookAppointment: successfully created appointment id=%s", result.ID)
	uc.metrics.ObserveBooking(metrics.OutcomeCreated)

	// 7. Публикуем событие, ошибка публикации не отменяет запись
	uc.publish(ctx, result, now)

	return &Response{
		ID:              result.ID,
		SalonID:         result.SalonID,
		EmployeeID:      result.EmployeeID,
		ServiceID:       result.ServiceID,
		CustomerID:      result.CustomerID,
		StartTime:       result.StartTime,
		EndTime:         result.EndTime,
		DurationMinutes: service.DurationMinutes,
		CreatedAt:       result.CreatedAt,
	}, nil
}

// obtainLock берёт блокировку дня сотрудника и пишет время ожидания в метрики
func (uc *UseCase) obtainLock(ctx context.Context, key string) (locker.ReleaseFunc, error) {
	started := time.Now()
	release, err := uc.locker.Obtain(ctx, key)
	uc.metrics.ObserveLockWait(err == nil, time.Since(started))

	if err != nil {
		if errors.Is(err, locker.ErrNotObtained) {
			uc.logger.Warn("BookAppointment: lock %s is busy: %v", key, err)
			return nil, uc.conflict(fmt.Errorf("%w: %v", ErrSlotBusy, err))
		}
		uc.logger.Error("BookAppointment: failed to obtain lock %s: %v", key, err)
		return nil, uc.fail(fmt.Errorf("%w: failed to obtain lock: %v", ErrInternal, err))
	}
	return release, nil
}

// classify переводит ошибку транзакции в ошибку use case и пишет исход в метрики
func (uc *UseCase) classify(err error) error {
	switch {
	case errors.Is(err, ErrSlotNotAvailable):
		return uc.conflict(err)
	case errors.Is(err, ErrSalonClosed):
		return uc.reject(err)
	case appointmentRepo.IsConflict(err):
		// serialization failure при чтении или фиксации транзакции
		uc.logger.Warn("BookAppointment: transaction lost the race: %v", err)
		return uc.conflict(fmt.Errorf("%w: %v", ErrSlotNotAvailable, err))
	case errors.Is(err, ErrInternal):
		return uc.fail(err)
	default:
		uc.logger.Error("BookAppointment: transaction failed: %v", err)
		return uc.fail(fmt.Errorf("%w: transaction failed: %v", ErrInternal, err))
	}
}

func (uc *UseCase) publish(ctx context.Context, a *domain.Appointment, now time.Time) {
	event := events.AppointmentBooked{
		EventID:       uuid.NewString(),
		AppointmentID: a.ID,
		SalonID:       a.SalonID,
		EmployeeID:    a.EmployeeID,
		ServiceID:     a.ServiceID,
		CustomerID:    a.CustomerID,
		StartTime:     a.StartTime,
		EndTime:       a.EndTime,
		OccurredAt:    now,
	}

	if err := uc.publisher.PublishAppointmentBooked(context.WithoutCancel(ctx), event); err != nil {
		uc.metrics.ObserveEventFailure(uc.publisher.Topic())
		uc.logger.Error("BookAppointment: failed to publish event for appointment id=%s: %v", a.ID, err)
	}
}

func (uc *UseCase) reject(err error) error {
	uc.metrics.ObserveBooking(metrics.OutcomeRejected)
	return err
}

func (uc *UseCase) conflict(err error) error {
	uc.metrics.ObserveBooking(metrics.OutcomeConflict)
	return err
}

func (uc *UseCase) fail(err error) error {
	uc.metrics.ObserveBooking(metrics.OutcomeFailed)
	return err
}
