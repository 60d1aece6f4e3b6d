package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Weekday день недели в виде ключа расписания ("monday" ... "sunday")
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// Weekdays все дни недели в порядке с понедельника
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// WeekdayOf возвращает ключ расписания для календарной даты
func WeekdayOf(date time.Time) Weekday {
	return Weekday(strings.ToLower(date.Weekday().String()))
}

// ParseWeekday проверяет и нормализует название дня недели
func ParseWeekday(s string) (Weekday, error) {
	w := Weekday(strings.ToLower(strings.TrimSpace(s)))
	if !w.IsValid() {
		return "", fmt.Errorf("%w: unknown weekday %q", ErrValidation, s)
	}
	return w, nil
}

// IsValid сообщает, что это один из семи дней недели
func (w Weekday) IsValid() bool {
	for _, d := range Weekdays {
		if w == d {
			return true
		}
	}
	return false
}

// DayHours часы работы салона в один день недели и перерывы внутри них
type DayHours struct {
	Open   types.Interval
	Breaks []types.Interval
}

// Validate проверяет, что окно непустое, а перерывы непустые и лежат внутри окна.
// Перерывы могут пересекаться между собой.
func (h DayHours) Validate() error {
	if err := h.Open.Validate(); err != nil {
		return fmt.Errorf("%w: day hours: %v", ErrValidation, err)
	}
	for _, b := range h.Breaks {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("%w: break %s: %v", ErrValidation, b, err)
		}
		if !b.Within(h.Open) {
			return fmt.Errorf("%w: break %s is outside of day hours %s", ErrValidation, b, h.Open)
		}
	}
	return nil
}

// WeeklyHours расписание салона по дням недели. Отсутствующий ключ означает выходной.
type WeeklyHours map[Weekday]DayHours

// Validate проверяет все дни расписания
func (w WeeklyHours) Validate() error {
	for day, hours := range w {
		if !day.IsValid() {
			return fmt.Errorf("%w: unknown weekday %q", ErrValidation, day)
		}
		if err := hours.Validate(); err != nil {
			return fmt.Errorf("%s: %w", day, err)
		}
	}
	return nil
}

// Salon салон, которым управляет один владелец
type Salon struct {
	ID      string
	OwnerID string
	Name    string
	Hours   WeeklyHours
}

// IsOwner сообщает, что пользователь является владельцем салона
func (s *Salon) IsOwner(userID string) bool {
	return userID != "" && s.OwnerID == userID
}

// DefaultWeeklyHours расписание для салона, который ещё не настроил часы: 09:00-17:00 без перерывов
func DefaultWeeklyHours() WeeklyHours {
	hours := make(WeeklyHours, len(Weekdays))
	for _, d := range Weekdays {
		hours[d] = DayHours{Open: DefaultOpenHours, Breaks: []types.Interval{}}
	}
	return hours
}
