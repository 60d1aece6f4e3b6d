package models

import (
	"fmt"
	"slices"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модели

// UpdateHoursRequest запрос на замену расписания салона.
// Дни, которых нет в Hours, становятся выходными.
type UpdateHoursRequest struct {
	UserID  string              `json:"-"`
	SalonID string              `json:"-"`
	Hours   map[string]DayHours `json:"hours"`
}

// ToDomain проверяет названия дней недели и собирает доменное расписание
func (r *UpdateHoursRequest) ToDomain() (domain.WeeklyHours, error) {
	hours := make(domain.WeeklyHours, len(r.Hours))
	for name, h := range r.Hours {
		day, err := domain.ParseWeekday(name)
		if err != nil {
			return nil, err
		}
		if _, ok := hours[day]; ok {
			return nil, fmt.Errorf("%w: weekday %q is set twice", domain.ErrValidation, name)
		}
		breaks := h.Breaks
		if breaks == nil {
			breaks = []types.Interval{}
		}
		hours[day] = domain.DayHours{Open: h.Open, Breaks: breaks}
	}
	return hours, nil
}

// Response модели

// DayHours часы работы в один день недели
type DayHours struct {
	Open   types.Interval   `json:"open"`
	Breaks []types.Interval `json:"breaks"`
}

// HoursResponse расписание салона.
// IsDefault означает, что салон ещё не настраивал часы и показано расписание по умолчанию.
type HoursResponse struct {
	SalonID   string              `json:"salonId"`
	Hours     map[string]DayHours `json:"hours"`
	Weekdays  []string            `json:"weekdays"` // дни из Hours по порядку с понедельника
	IsDefault bool                `json:"isDefault"`
}

// FromDomainHours конвертирует доменное расписание в ответ
func FromDomainHours(salonID string, hours domain.WeeklyHours, isDefault bool) *HoursResponse {
	resp := &HoursResponse{
		SalonID:   salonID,
		Hours:     make(map[string]DayHours, len(hours)),
		Weekdays:  make([]string, 0, len(hours)),
		IsDefault: isDefault,
	}
	for _, day := range domain.Weekdays {
		h, ok := hours[day]
		if !ok {
			continue
		}
		breaks := slices.Clone(h.Breaks)
		if breaks == nil {
			breaks = []types.Interval{}
		}
		resp.Hours[string(day)] = DayHours{Open: h.Open, Breaks: breaks}
		resp.Weekdays = append(resp.Weekdays, string(day))
	}
	return resp
}
