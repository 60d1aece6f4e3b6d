package domain

import "time"

// Appointment подтверждённая запись клиента к сотруднику.
// Создаётся только при успешной проверке слота и после этого не изменяется.
type Appointment struct {
	ID         string
	SalonID    string
	EmployeeID string
	ServiceID  string
	CustomerID string
	StartTime  time.Time
	EndTime    time.Time
	CreatedAt  time.Time
}

// Overlaps сообщает, что запись пересекается с интервалом [start, end)
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return a.StartTime.Before(end) && start.Before(a.EndTime)
}

// Duration длительность записи
func (a *Appointment) Duration() time.Duration {
	return a.EndTime.Sub(a.StartTime)
}

// IsVisibleTo сообщает, что пользователь может просматривать запись как клиент
func (a *Appointment) IsVisibleTo(userID string) bool {
	return userID != "" && a.CustomerID == userID
}

// AppointmentsFilter фильтр выборки записей сотрудника
type AppointmentsFilter struct {
	SalonID    string    // Обязательный параметр
	EmployeeID string    // Обязательный параметр
	From       time.Time // Начало периода (включительно)
	To         time.Time // Конец периода (не включительно)
}

// DayRange возвращает границы календарного дня date: [00:00, 00:00 следующего дня)
func DayRange(date time.Time) (time.Time, time.Time) {
	y, m, d := date.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, date.Location())
	return start, start.AddDate(0, 0, 1)
}
