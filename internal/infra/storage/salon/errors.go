package salon

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = fmt.Errorf("salon.repository: salon %w", domain.ErrNotFound)

	// ErrHoursNotFound возвращается, когда у салона нет часов работы на день недели
	ErrHoursNotFound = fmt.Errorf("salon.repository: day hours %w", domain.ErrNotFound)

	// ErrEmployeeNotFound возвращается, когда сотрудник не найден в салоне
	ErrEmployeeNotFound = fmt.Errorf("salon.repository: employee %w", domain.ErrNotFound)

	// ErrServiceNotFound возвращается, когда услуга не найдена в салоне
	ErrServiceNotFound = fmt.Errorf("salon.repository: service %w", domain.ErrNotFound)

	// ErrInvalidRecord возвращается, когда запись в БД не проходит валидацию домена
	ErrInvalidRecord = errors.New("salon.repository: invalid record")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("salon.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("salon.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("salon.repository: failed to scan row")
)
