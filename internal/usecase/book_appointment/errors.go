package book_appointment

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	// ErrEmployeeNotFound возвращается, когда сотрудник не найден в салоне
	ErrEmployeeNotFound = fmt.Errorf("book_appointment: employee %w", domain.ErrNotFound)

	// ErrServiceNotFound возвращается, когда услуга не найдена в салоне
	ErrServiceNotFound = fmt.Errorf("book_appointment: service %w", domain.ErrNotFound)

	// ErrSalonClosed возвращается, когда у салона нет часов работы на день недели
	ErrSalonClosed = fmt.Errorf("book_appointment: salon has no hours on this day: %w", domain.ErrNotFound)

	// ErrSlotNotAvailable возвращается, когда выбранное время уже недоступно
	ErrSlotNotAvailable = fmt.Errorf("book_appointment: slot is not available: %w", domain.ErrConflict)

	// ErrSlotBusy возвращается, когда тот же день сотрудника сейчас бронирует другой запрос
	ErrSlotBusy = fmt.Errorf("book_appointment: employee day is being booked concurrently: %w", domain.ErrConflict)

	// ErrInvalidDate возвращается при записи на прошедшую дату
	ErrInvalidDate = fmt.Errorf("book_appointment: invalid booking date: %w", domain.ErrValidation)

	// ErrTooLateToBook возвращается, когда время начала уже прошло
	ErrTooLateToBook = fmt.Errorf("book_appointment: start time is in the past: %w", domain.ErrValidation)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("book_appointment: invalid input data: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_appointment: internal error")
)
