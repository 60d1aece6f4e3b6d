package availability

import (
	"fmt"
	"iter"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Mode способ отбора кандидатов по длительности услуги
type Mode string

const (
	// ModeExact окно [t, t+D) проверяется целиком
	ModeExact Mode = "exact"

	// ModeNextCandidate кандидат принимается, если следующий кандидат начинается
	// не раньше t+D; последний кандидат принимается всегда.
	// Пропускает препятствия, не выровненные по шагу сетки.
	ModeNextCandidate Mode = "next_candidate"
)

// ParseMode проверяет название режима
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeExact, ModeNextCandidate:
		return Mode(s), nil
	case "":
		return ModeExact, nil
	}
	return "", fmt.Errorf("%w: unknown slot filter mode %q", domain.ErrValidation, s)
}

// Candidates обходит часы салона с шагом step и выдаёт моменты t,
// в которые сотрудник доступен и окно [t, t+step) не пересекает записи.
// Шаг отсчитывается по настенным часам пояса салона, поэтому в дни перевода часов
// подписи не повторяются, а несуществующее локальное время пропускается.
// Последовательность ленивая и при каждом обходе вычисляется заново.
func (d Day) Candidates(step time.Duration) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		if step < time.Minute {
			return
		}
		for clock := clockOf(d.SalonHours.Start); clock < types.MinutesPerDay; clock = clock.Add(step) {
			t := clock.On(d.Date)
			if !t.Before(d.SalonHours.End) {
				return
			}
			if clockOf(t) != clock {
				continue
			}
			if !d.AvailableAt(t) {
				continue
			}
			if overlapsAny(NewWindow(t, step), d.Appointments) {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

// clockOf время на настенных часах в поясе t
func clockOf(t time.Time) types.TimeOfDay {
	return types.TimeOfDay(t.Hour()*60 + t.Minute())
}

// FilterByDuration оставляет кандидатов, в которые помещается услуга длительностью duration
func (d Day) FilterByDuration(candidates iter.Seq[time.Time], duration time.Duration, mode Mode) iter.Seq[time.Time] {
	if mode == ModeNextCandidate {
		return filterByNextCandidate(candidates, duration)
	}
	return func(yield func(time.Time) bool) {
		if duration <= 0 {
			return
		}
		for t := range candidates {
			if !d.AvailableFor(NewWindow(t, duration)) {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

func filterByNextCandidate(candidates iter.Seq[time.Time], duration time.Duration) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		if duration <= 0 {
			return
		}
		var (
			prev    time.Time
			hasPrev bool
		)
		for t := range candidates {
			if hasPrev && !t.Before(prev.Add(duration)) {
				if !yield(prev) {
					return
				}
			}
			prev, hasPrev = t, true
		}
		if hasPrev {
			yield(prev)
		}
	}
}

// NotBefore отбрасывает моменты раньше now
func NotBefore(seq iter.Seq[time.Time], now time.Time) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		for t := range seq {
			if t.Before(now) {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

// Options параметры расчёта слотов
type Options struct {
	Step time.Duration // шаг сетки, по умолчанию domain.DefaultSlotStep
	Mode Mode
	Now  time.Time // слоты раньше Now не выдаются; нулевое значение отключает проверку
}

// Slots полный конвейер: кандидаты по сетке, отбор по длительности, отсечение прошлого
func (d Day) Slots(duration time.Duration, opts Options) iter.Seq[time.Time] {
	step := opts.Step
	if step <= 0 {
		step = domain.DefaultSlotStep
	}
	// окно услуги целиком помещается только в свободный промежуток
	if opts.Mode != ModeNextCandidate && !d.HasRoomFor(duration) {
		return func(func(time.Time) bool) {}
	}
	seq := d.FilterByDuration(d.Candidates(step), duration, opts.Mode)
	if !opts.Now.IsZero() {
		seq = NotBefore(seq, opts.Now)
	}
	return seq
}

// Labels собирает последовательность в подписи "HH:MM"
func Labels(seq iter.Seq[time.Time]) []string {
	labels := make([]string, 0)
	for t := range seq {
		labels = append(labels, t.Format(domain.TimeFormat))
	}
	return labels
}
