package salons

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = fmt.Errorf("salon %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда пользователь не является владельцем салона
	ErrAccessDenied = fmt.Errorf("salons: %w", domain.ErrAccessDenied)

	// ErrInvalidInput возвращается при некорректных часах работы
	ErrInvalidInput = fmt.Errorf("salons: invalid input data: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("salons: internal error")
)
