package book_appointment

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	SalonID    string          // ID салона
	EmployeeID string          // ID сотрудника
	ServiceID  string          // ID услуги
	CustomerID string          // ID клиента (из заголовка авторизации)
	Date       time.Time       // Дата записи (без времени)
	StartTime  types.TimeOfDay // Выбранный слот "HH:MM"
}

// Response модель созданной записи
type Response struct {
	ID              string
	SalonID         string
	EmployeeID      string
	ServiceID       string
	CustomerID      string
	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int
	CreatedAt       time.Time
}
