package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Default configuration values
const (
	DefaultSlotStep = 10 * time.Minute
)

// DefaultOpenHours часы работы по умолчанию для каждого дня недели
var DefaultOpenHours = types.Interval{
	Start: types.TimeOfDay(9 * 60),
	End:   types.TimeOfDay(17 * 60),
}

// Business validation constants
const (
	MinServiceDurationMinutes = 1
	MaxServiceDurationMinutes = types.MinutesPerDay
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
