package salons

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	salonRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/salon"
	"github.com/m04kA/SMC-SalonBooking/internal/service/salons/models"
)

// Service сервис для работы с часами работы салонов
type Service struct {
	salonRepo SalonRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса салонов
func NewService(
	salonRepo SalonRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		salonRepo: salonRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// DefaultHours расписание по умолчанию: 09:00-17:00 каждый день без перерывов
func (s *Service) DefaultHours() domain.WeeklyHours {
	return domain.DefaultWeeklyHours()
}

// GetHours получает расписание салона.
// Если салон ещё не настраивал часы, возвращается расписание по умолчанию с признаком IsDefault.
func (s *Service) GetHours(ctx context.Context, salonID string) (*models.HoursResponse, error) {
	s.logger.Info("GetHours: fetching hours for salon=%s", salonID)

	salon, err := s.salonRepo.GetSalon(ctx, salonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			s.logger.Warn("GetHours: salon=%s not found", salonID)
			return nil, ErrSalonNotFound
		}
		s.logger.Error("GetHours: repository error for salon=%s: %v", salonID, err)
		return nil, fmt.Errorf("%w: GetHours - repository error: %v", ErrInternal, err)
	}

	if len(salon.Hours) == 0 {
		s.logger.Info("GetHours: salon=%s has no hours configured, using defaults", salonID)
		return models.FromDomainHours(salonID, s.DefaultHours(), true), nil
	}

	return models.FromDomainHours(salonID, salon.Hours, false), nil
}

// UpdateHours заменяет расписание салона целиком.
// Доступно только владельцу салона.
func (s *Service) UpdateHours(ctx context.Context, req *models.UpdateHoursRequest) (*models.HoursResponse, error) {
	s.logger.Info("UpdateHours: updating hours for salon=%s by user=%s", req.SalonID, req.UserID)

	// 1. Валидируем расписание
	hours, err := req.ToDomain()
	if err != nil {
		s.logger.Warn("UpdateHours: invalid weekday: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := hours.Validate(); err != nil {
		s.logger.Warn("UpdateHours: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Проверяем владельца и заменяем расписание в одной транзакции
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		salon, err := s.salonRepo.GetSalon(txCtx, req.SalonID)
		if err != nil {
			if errors.Is(err, salonRepo.ErrSalonNotFound) {
				s.logger.Warn("UpdateHours: salon=%s not found", req.SalonID)
				return ErrSalonNotFound
			}
			s.logger.Error("UpdateHours: failed to get salon=%s: %v", req.SalonID, err)
			return fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
		}

		if !salon.IsOwner(req.UserID) {
			s.logger.Warn("UpdateHours: user=%s is not an owner of salon=%s", req.UserID, req.SalonID)
			return ErrAccessDenied
		}

		if err := s.salonRepo.ReplaceHours(txCtx, req.SalonID, hours); err != nil {
			s.logger.Error("UpdateHours: failed to replace hours for salon=%s: %v", req.SalonID, err)
			return fmt.Errorf("%w: failed to replace hours: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateHours: successfully updated hours for salon=%s, %d working days", req.SalonID, len(hours))
	return models.FromDomainHours(req.SalonID, hours, false), nil
}
