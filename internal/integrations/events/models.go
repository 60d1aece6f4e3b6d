package events

import "time"

// EventTypeAppointmentBooked тип события о созданной записи
const EventTypeAppointmentBooked = "appointment.booked"

// AppointmentBooked событие о созданной записи
type AppointmentBooked struct {
	EventID       string    `json:"event_id"`
	AppointmentID string    `json:"appointment_id"`
	SalonID       string    `json:"salon_id"`
	EmployeeID    string    `json:"employee_id"`
	ServiceID     string    `json:"service_id"`
	CustomerID    string    `json:"customer_id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	OccurredAt    time.Time `json:"occurred_at"`
}
