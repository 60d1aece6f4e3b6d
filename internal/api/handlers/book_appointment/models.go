package book_appointment

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookAppointment "github.com/m04kA/SMC-SalonBooking/internal/usecase/book_appointment"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

var (
	errInvalidDate = errors.New("invalid date")
	errInvalidTime = errors.New("invalid start time")
)

// BookAppointmentRequest HTTP request model
type BookAppointmentRequest struct {
	SalonID    string `json:"salonId"`
	EmployeeID string `json:"employeeId"`
	ServiceID  string `json:"serviceId"`
	Date       string `json:"date"`      // YYYY-MM-DD
	StartTime  string `json:"startTime"` // HH:MM, один из слотов available-slots
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом даты и времени)
func (r *BookAppointmentRequest) ToUseCaseRequest(customerID string) (*bookAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}

	start, err := types.ParseTimeOfDay(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidTime, err)
	}

	return &bookAppointment.Request{
		SalonID:    r.SalonID,
		EmployeeID: r.EmployeeID,
		ServiceID:  r.ServiceID,
		CustomerID: customerID,
		Date:       date,
		StartTime:  start,
	}, nil
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              string    `json:"id"`
	SalonID         string    `json:"salonId"`
	EmployeeID      string    `json:"employeeId"`
	ServiceID       string    `json:"serviceId"`
	CustomerID      string    `json:"customerId"`
	Date            string    `json:"date"`
	StartTime       string    `json:"startTime"`
	EndTime         string    `json:"endTime"`
	DurationMinutes int       `json:"durationMinutes"`
	StartsAt        time.Time `json:"startsAt"`
	CreatedAt       time.Time `json:"createdAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		SalonID:         resp.SalonID,
		EmployeeID:      resp.EmployeeID,
		ServiceID:       resp.ServiceID,
		CustomerID:      resp.CustomerID,
		Date:            resp.StartTime.Format(domain.DateFormat),
		StartTime:       resp.StartTime.Format(domain.TimeFormat),
		EndTime:         resp.EndTime.Format(domain.TimeFormat),
		DurationMinutes: resp.DurationMinutes,
		StartsAt:        resp.StartTime,
		CreatedAt:       resp.CreatedAt,
	}
}
