package availability

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Причины, по которым окно недоступно
var (
	ErrOutsideSalonHours = errors.New("window is outside of salon hours")
	ErrOutsideWorkHours  = errors.New("window is outside of employee work hours")
	ErrOnBreak           = errors.New("window overlaps a break")
	ErrAppointmentClash  = errors.New("window overlaps an existing appointment")
	ErrEmptyWindow       = errors.New("window is empty")
)

// Day рабочий контекст одного сотрудника на одну дату.
// Все окна привязаны к календарной дате Date.
type Day struct {
	Date         time.Time
	SalonHours   Window
	WorkHours    Window
	Breaks       []Window // перерывы салона и сотрудника
	Appointments []Window // записи сотрудника на эту дату
}

// NewDay строит контекст дня из часов салона, сотрудника и его записей.
// Записи из других дней не мешают и могут быть переданы как есть.
func NewDay(date time.Time, hours domain.DayHours, employee *domain.Employee, appointments []*domain.Appointment) Day {
	y, m, d := date.Date()
	date = time.Date(y, m, d, 0, 0, 0, 0, date.Location())

	day := Day{
		Date:         date,
		SalonHours:   anchor(hours.Open, date),
		WorkHours:    anchor(employee.WorkHours, date),
		Breaks:       make([]Window, 0, len(hours.Breaks)+len(employee.Breaks)),
		Appointments: make([]Window, 0, len(appointments)),
	}

	for _, b := range hours.Breaks {
		day.Breaks = append(day.Breaks, anchor(b, date))
	}
	for _, b := range employee.Breaks {
		day.Breaks = append(day.Breaks, anchor(b, date))
	}
	for _, a := range appointments {
		day.Appointments = append(day.Appointments, Window{Start: a.StartTime, End: a.EndTime})
	}

	return day
}

func anchor(iv types.Interval, date time.Time) Window {
	start, end := iv.On(date)
	return Window{Start: start, End: end}
}

// AvailableAt момент t внутри рабочего окна, вне перерывов и вне записей
func (d Day) AvailableAt(t time.Time) bool {
	if !d.WorkHours.Contains(t) {
		return false
	}
	if containedInAny(t, d.Breaks) {
		return false
	}
	return !containedInAny(t, d.Appointments)
}

// Check проверяет окно целиком и возвращает причину недоступности или nil
func (d Day) Check(w Window) error {
	switch {
	case w.IsEmpty():
		return ErrEmptyWindow
	case !d.SalonHours.Covers(w):
		return ErrOutsideSalonHours
	case !d.WorkHours.Covers(w):
		return ErrOutsideWorkHours
	case overlapsAny(w, d.Breaks):
		return ErrOnBreak
	case overlapsAny(w, d.Appointments):
		return ErrAppointmentClash
	}
	return nil
}

// AvailableFor окно [start, end) можно занять целиком
func (d Day) AvailableFor(w Window) bool {
	return d.Check(w) == nil
}

// FreeWindows свободные промежутки рабочего дня сотрудника внутри часов салона
func (d Day) FreeWindows() []Window {
	open := Window{Start: laterOf(d.SalonHours.Start, d.WorkHours.Start), End: earlierOf(d.SalonHours.End, d.WorkHours.End)}
	holes := make([]Window, 0, len(d.Breaks)+len(d.Appointments))
	holes = append(holes, d.Breaks...)
	holes = append(holes, d.Appointments...)
	return Subtract(open, holes...)
}

// HasRoomFor есть свободный промежуток не короче duration
func (d Day) HasRoomFor(duration time.Duration) bool {
	for _, w := range d.FreeWindows() {
		if w.Duration() >= duration {
			return true
		}
	}
	return false
}

func (d Day) String() string {
	return fmt.Sprintf("%s salon=%s-%s work=%s-%s breaks=%d appointments=%d",
		d.Date.Format(domain.DateFormat),
		d.SalonHours.Start.Format(domain.TimeFormat), d.SalonHours.End.Format(domain.TimeFormat),
		d.WorkHours.Start.Format(domain.TimeFormat), d.WorkHours.End.Format(domain.TimeFormat),
		len(d.Breaks), len(d.Appointments))
}

func laterOf(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func earlierOf(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
