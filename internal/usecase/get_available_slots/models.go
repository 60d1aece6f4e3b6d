package get_available_slots

import (
	"time"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	SalonID    string    // ID салона
	EmployeeID string    // ID сотрудника
	ServiceID  string    // ID услуги
	Date       time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time // Дата, на которую запрашивались слоты
	SalonID         string
	EmployeeID      string
	ServiceID       string
	DurationMinutes int      // Длительность услуги, 0 если услуга не найдена
	Slots           []string // Время начала свободных слотов "HH:MM" по возрастанию
}
