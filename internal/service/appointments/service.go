package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/appointment"
	salonRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/salon"
	"github.com/m04kA/SMC-SalonBooking/internal/service/appointments/models"
)

// Service сервис для просмотра записей
type Service struct {
	appointmentRepo AppointmentRepository
	salonRepo       SalonRepository
	location        *time.Location
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	salonRepo SalonRepository,
	location *time.Location,
	logger Logger,
) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		appointmentRepo: appointmentRepo,
		salonRepo:       salonRepo,
		location:        location,
		logger:          logger,
	}
}

// GetByID получает запись по ID.
// Запись видят клиент, который её создал, и владелец салона.
func (s *Service) GetByID(ctx context.Context, id string, userID string) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%s for user=%s", id, userID)

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%s not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if !appointment.IsVisibleTo(userID) {
		if err := s.checkOwnerAccess(ctx, appointment.SalonID, userID); err != nil {
			s.logger.Warn("GetByID: access denied for user=%s to appointment id=%s", userID, id)
			return nil, err
		}
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%s", id)
	return models.FromDomainAppointment(appointment, s.location), nil
}

// ListEmployeeDay получает записи сотрудника на день по возрастанию времени начала.
// Доступно только владельцу салона.
func (s *Service) ListEmployeeDay(ctx context.Context, req *models.ListEmployeeDayRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListEmployeeDay: fetching appointments for salon=%s, employee=%s, date=%s, user=%s",
		req.SalonID, req.EmployeeID, req.Date.Format(domain.DateFormat), req.UserID)

	if req.Date.IsZero() {
		s.logger.Warn("ListEmployeeDay: date is required")
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем права доступа владельца
	if err := s.checkOwnerAccess(ctx, req.SalonID, req.UserID); err != nil {
		return nil, err
	}

	if _, err := s.salonRepo.GetEmployee(ctx, req.SalonID, req.EmployeeID); err != nil {
		if errors.Is(err, salonRepo.ErrEmployeeNotFound) {
			s.logger.Warn("ListEmployeeDay: employee=%s not found in salon=%s", req.EmployeeID, req.SalonID)
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("ListEmployeeDay: failed to get employee=%s: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
	}

	y, m, d := req.Date.Date()
	from, to := domain.DayRange(time.Date(y, m, d, 0, 0, 0, 0, s.location))

	list, err := s.appointmentRepo.ListByEmployee(ctx, domain.AppointmentsFilter{
		SalonID:    req.SalonID,
		EmployeeID: req.EmployeeID,
		From:       from,
		To:         to,
	})
	if err != nil {
		s.logger.Error("ListEmployeeDay: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListEmployeeDay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListEmployeeDay: successfully fetched %d appointments", len(list))
	return models.FromDomainAppointmentList(list, s.location), nil
}

// checkOwnerAccess проверяет, что пользователь является владельцем салона
func (s *Service) checkOwnerAccess(ctx context.Context, salonID, userID string) error {
	salon, err := s.salonRepo.GetSalon(ctx, salonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			s.logger.Warn("checkOwnerAccess: salon=%s not found", salonID)
			return ErrSalonNotFound
		}
		s.logger.Error("checkOwnerAccess: failed to get salon=%s: %v", salonID, err)
		return fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	if !salon.IsOwner(userID) {
		s.logger.Warn("checkOwnerAccess: user=%s is not an owner of salon=%s", userID, salonID)
		return ErrAccessDenied
	}
	return nil
}
