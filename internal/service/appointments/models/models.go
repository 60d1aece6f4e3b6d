package models

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Request модели

// ListEmployeeDayRequest запрос расписания сотрудника на день
type ListEmployeeDayRequest struct {
	UserID     string    `json:"-"`
	SalonID    string    `json:"salonId"`
	EmployeeID string    `json:"employeeId"`
	Date       time.Time `json:"date"`
}

// Response модели

// AppointmentResponse запись к сотруднику
type AppointmentResponse struct {
	ID              string    `json:"id"`
	SalonID         string    `json:"salonId"`
	EmployeeID      string    `json:"employeeId"`
	ServiceID       string    `json:"serviceId"`
	CustomerID      string    `json:"customerId"`
	Date            string    `json:"date"`      // YYYY-MM-DD в поясе салона
	StartTime       string    `json:"startTime"` // HH:MM в поясе салона
	EndTime         string    `json:"endTime"`   // HH:MM в поясе салона
	DurationMinutes int       `json:"durationMinutes"`
	StartsAt        time.Time `json:"startsAt"`
	CreatedAt       time.Time `json:"createdAt"`
}

// AppointmentListResponse список записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// FromDomainAppointment конвертирует доменную запись в ответ
func FromDomainAppointment(a *domain.Appointment, loc *time.Location) *AppointmentResponse {
	start := a.StartTime.In(loc)
	end := a.EndTime.In(loc)
	return &AppointmentResponse{
		ID:              a.ID,
		SalonID:         a.SalonID,
		EmployeeID:      a.EmployeeID,
		ServiceID:       a.ServiceID,
		CustomerID:      a.CustomerID,
		Date:            start.Format(domain.DateFormat),
		StartTime:       start.Format(domain.TimeFormat),
		EndTime:         end.Format(domain.TimeFormat),
		DurationMinutes: int(a.Duration() / time.Minute),
		StartsAt:        start,
		CreatedAt:       a.CreatedAt,
	}
}

// FromDomainAppointmentList конвертирует список доменных записей в ответ
func FromDomainAppointmentList(list []*domain.Appointment, loc *time.Location) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(list)),
		Total:        len(list),
	}
	for _, a := range list {
		resp.Appointments = append(resp.Appointments, *FromDomainAppointment(a, loc))
	}
	return resp
}
