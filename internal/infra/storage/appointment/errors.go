package appointment

import (
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Коды ошибок PostgreSQL, означающие конфликт записи
const (
	pqSerializationFailure = "40001"
	pqExclusionViolation   = "23P01"
	pqUniqueViolation      = "23505"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = fmt.Errorf("appointment.repository: appointment %w", domain.ErrNotFound)

	// ErrOverlap возвращается, когда новая запись пересекается с существующей у того же сотрудника
	ErrOverlap = fmt.Errorf("appointment.repository: overlapping appointment: %w", domain.ErrConflict)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)

// IsConflict сообщает, что ошибка PostgreSQL означает конкурентную запись того же слота:
// сбой сериализации транзакции или нарушение ограничения исключения
func IsConflict(err error) bool {
	if errors.Is(err, ErrOverlap) {
		return true
	}
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	switch string(pqErr.Code) {
	case pqSerializationFailure, pqExclusionViolation, pqUniqueViolation:
		return true
	}
	return false
}
